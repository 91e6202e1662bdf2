package bids

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/logger"
)

// Service exposes bid triage and listing.
type Service interface {
	List(ctx context.Context, source string) (*ListResult, error)
	Sources(ctx context.Context) ([]SourceDTO, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) error
	Dismiss(ctx context.Context, input DismissInput) error
}

// Options tunes the date windows used when listing bids.
type Options struct {
	ClosingSoonDays  int
	ClosedRetainDays int
}

type service struct {
	repo Repository
	rfqs RFQSummarizer
	opts Options
	logg *logger.Logger
	now  func() time.Time
}

// NewService wires bid dependencies. The RFQ summarizer is optional; without
// it every bid reports an empty RFQ summary.
func NewService(repo Repository, summarizer RFQSummarizer, opts Options, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("bids repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if opts.ClosingSoonDays < 0 || opts.ClosedRetainDays < 0 {
		return nil, fmt.Errorf("bid day windows must not be negative")
	}
	return &service{repo: repo, rfqs: summarizer, opts: opts, logg: logg, now: time.Now}, nil
}

func (s *service) List(ctx context.Context, source string) (*ListResult, error) {
	now := s.now()
	params := listParams{ClosedCutoff: closedCutoff(now, s.opts.ClosedRetainDays)}

	label := strings.TrimSpace(source)
	if label == "" {
		label = "all"
	}

	var rows []models.Bid
	candidates := sourceCandidates(source)
	if len(candidates) == 0 {
		found, err := s.repo.ListVisible(ctx, params)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bids")
		}
		rows = found
	}
	for _, name := range candidates {
		found, err := s.listBySourceName(ctx, name, params)
		if err != nil {
			return nil, err
		}
		if len(found) > 0 {
			rows = found
			break
		}
	}

	summaries := s.summaries(ctx)
	items := make([]BidDTO, 0, len(rows))
	for _, bid := range rows {
		items = append(items, toBidDTO(bid, now, s.opts.ClosingSoonDays, summaries[bid.ExternalID]))
	}
	return &ListResult{Items: items, Source: label}, nil
}

func (s *service) listBySourceName(ctx context.Context, name string, params listParams) ([]models.Bid, error) {
	src, err := s.repo.FindSourceByName(ctx, name)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load source")
	}
	params.SourceID = &src.ID
	rows, err := s.repo.ListVisible(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bids")
	}
	return rows, nil
}

// summaries returns nil when the RFQ lookup fails.
func (s *service) summaries(ctx context.Context) map[string]rfqs.BidSummary {
	if s.rfqs == nil {
		return nil
	}
	out, err := s.rfqs.Summary(ctx)
	if err != nil {
		s.logg.Error(ctx, "rfq summary unavailable; listing bids without it", err)
		return nil
	}
	return out
}

func (s *service) Sources(ctx context.Context) ([]SourceDTO, error) {
	rows, err := s.repo.ListActiveSources(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list sources")
	}
	out := make([]SourceDTO, 0, len(rows))
	for _, src := range rows {
		out = append(out, SourceDTO{ID: src.ID, Name: src.Name})
	}
	return out, nil
}

func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) error {
	bidID := strings.TrimSpace(input.BidID)
	if bidID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	status, err := enums.ParseBidStatus(input.Status)
	if err != nil {
		allowed := make([]string, 0, len(enums.BidStatuses()))
		for _, candidate := range enums.BidStatuses() {
			allowed = append(allowed, candidate.String())
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bid status").
			WithDetails(map[string]any{"allowed": allowed})
	}

	affected, err := s.repo.UpdateStatus(ctx, bidID, status.String())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bid status")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
	}
	ctx = s.logg.WithBidID(ctx, bidID)
	s.logg.Info(ctx, "bid status updated")
	return nil
}

func (s *service) Dismiss(ctx context.Context, input DismissInput) error {
	bidID := strings.TrimSpace(input.BidID)
	if bidID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	affected, err := s.repo.Dismiss(ctx, bidID, input.SourceID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "dismiss bid")
	}
	if affected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "bid not found")
	}
	ctx = s.logg.WithBidID(ctx, bidID)
	s.logg.Info(ctx, "bid dismissed")
	return nil
}
