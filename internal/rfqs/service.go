package rfqs

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/pagination"
)

// Service exposes RFQ listing, summaries and email drafts.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	Summary(ctx context.Context) (map[string]BidSummary, error)
	Overdue(ctx context.Context) ([]RFQDTO, error)
	CountByStatus(ctx context.Context) (map[enums.RFQStatus]int, error)
	Draft(ctx context.Context, input DraftInput) (*Draft, error)
}

// ListParams filters and pages the RFQ list.
type ListParams struct {
	BidID  string
	Limit  int
	Cursor string
}

type service struct {
	repo             Repository
	overdueAfterDays int
	now              func() time.Time
}

// NewService wires RFQ dependencies. overdueAfterDays must not be negative.
func NewService(repo Repository, overdueAfterDays int) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("rfqs repository required")
	}
	if overdueAfterDays < 0 {
		return nil, fmt.Errorf("overdue threshold must not be negative")
	}
	return &service{repo: repo, overdueAfterDays: overdueAfterDays, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	query := listParams{
		BidExternalID: strings.TrimSpace(params.BidID),
		Limit:         pagination.LimitWithBuffer(params.Limit),
	}
	cursor, err := pagination.ParseCursor(params.Cursor)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cursor")
	}
	query.Cursor = cursor

	rows, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list rfqs")
	}
	rows, more := pagination.Trim(rows, params.Limit)

	now := s.now()
	items := make([]RFQDTO, 0, len(rows))
	for _, rfq := range rows {
		items = append(items, toRFQDTO(rfq, DisplayStatus(rfq, now, s.overdueAfterDays)))
	}

	result := &ListResult{Items: items}
	if more && len(rows) > 0 {
		last := rows[len(rows)-1]
		result.Cursor = pagination.EncodeCursor(pagination.Cursor{CreatedAt: last.CreatedAt, ID: last.ID})
	}
	return result, nil
}

func (s *service) Summary(ctx context.Context) (map[string]BidSummary, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rfqs")
	}
	return Summarize(rows, s.now(), s.overdueAfterDays), nil
}

// CountByStatus tallies every RFQ by its display status.
func (s *service) CountByStatus(ctx context.Context) (map[enums.RFQStatus]int, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load rfqs")
	}
	now := s.now()
	counts := make(map[enums.RFQStatus]int)
	for _, rfq := range rows {
		counts[DisplayStatus(rfq, now, s.overdueAfterDays)]++
	}
	return counts, nil
}

// Overdue lists sent RFQs still waiting on a vendor past the threshold.
func (s *service) Overdue(ctx context.Context) ([]RFQDTO, error) {
	now := s.now()
	sentBy := now.Add(-time.Duration(s.overdueAfterDays+1) * day)
	rows, err := s.repo.ListAwaitingResponse(ctx, sentBy)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load awaiting rfqs")
	}
	out := make([]RFQDTO, 0, len(rows))
	for _, rfq := range rows {
		status := DisplayStatus(rfq, now, s.overdueAfterDays)
		if status != enums.RFQStatusOverdue {
			continue
		}
		out = append(out, toRFQDTO(rfq, status))
	}
	return out, nil
}

func (s *service) Draft(ctx context.Context, input DraftInput) (*Draft, error) {
	bidID := strings.TrimSpace(input.BidID)
	if bidID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	if strings.TrimSpace(input.VendorName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "vendor name required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "at least one item required")
	}
	for i, item := range input.Items {
		if strings.TrimSpace(item.PartNumber) == "" && strings.TrimSpace(item.Description) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item needs a part number or description").
				WithDetails(map[string]any{"index": i})
		}
		if item.Qty.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must not be negative").
				WithDetails(map[string]any{"index": i})
		}
	}

	bid, err := s.repo.FindBidByExternalID(ctx, bidID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bid")
	}

	draft := buildDraft(bid, input)
	return &draft, nil
}
