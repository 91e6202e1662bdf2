package quotes

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/enums"
	pkgerrors "github.com/baxterbids/bidboard/pkg/errors"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

// Service exposes quote listing, comparison and status changes.
type Service interface {
	ListQuotes(ctx context.Context, bidID string) ([]QuoteDTO, error)
	Compare(ctx context.Context, bidID string) (*Comparison, error)
	UpdateStatus(ctx context.Context, input UpdateStatusInput) (*QuoteDTO, error)
}

type service struct {
	repo    Repository
	tiers   []decimal.Decimal
	metrics *metrics.QuoteMetrics
}

// NewService builds the quote service. Empty tiers fall back to
// DefaultMarkupTiers; metrics may be nil.
func NewService(repo Repository, tiers []decimal.Decimal, m *metrics.QuoteMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	for _, tier := range tiers {
		if tier.IsNegative() {
			return nil, fmt.Errorf("markup tier %s must not be negative", tier)
		}
	}
	return &service{repo: repo, tiers: tiers, metrics: m}, nil
}

func (s *service) ListQuotes(ctx context.Context, bidID string) ([]QuoteDTO, error) {
	bidID, err := requireBidID(bidID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByBid(ctx, bidID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotes")
	}
	out := make([]QuoteDTO, 0, len(rows))
	for _, q := range rows {
		out = append(out, toQuoteDTO(q))
	}
	return out, nil
}

// Compare loads the current quotes for bidID and rebuilds the comparison.
func (s *service) Compare(ctx context.Context, bidID string) (*Comparison, error) {
	bidID, err := requireBidID(bidID)
	if err != nil {
		return nil, err
	}
	rows, err := s.repo.ListByBid(ctx, bidID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quotes")
	}
	cmp := Compare(bidID, rows, s.tiers)
	s.metrics.IncComparison()
	return &cmp, nil
}

// UpdateStatus applies an explicit status change. Repeating the current
// status only updates notes.
func (s *service) UpdateStatus(ctx context.Context, input UpdateStatusInput) (*QuoteDTO, error) {
	if input.QuoteID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quote id required")
	}
	next, err := enums.ParseQuoteStatus(strings.TrimSpace(input.Status))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status").
			WithDetails(map[string]any{"allowed": enums.QuoteStatuses()})
	}

	current, err := s.repo.FindByID(ctx, input.QuoteID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load quote")
	}

	changed := current.Status.CanTransition(next)
	if !changed && current.Status != next {
		return nil, pkgerrors.New(pkgerrors.CodeStateConflict, "status change not allowed").
			WithDetails(map[string]any{"from": current.Status, "to": next})
	}
	if !changed && input.Notes == nil {
		dto := toQuoteDTO(*current)
		return &dto, nil
	}

	if err := s.repo.UpdateStatus(ctx, input.QuoteID, next, input.Notes); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "quote not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update quote status")
	}
	if changed {
		s.metrics.IncStatusChange(next.String())
	}

	updated, err := s.repo.FindByID(ctx, input.QuoteID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload quote")
	}
	dto := toQuoteDTO(*updated)
	return &dto, nil
}

func requireBidID(bidID string) (string, error) {
	bidID = strings.TrimSpace(bidID)
	if bidID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "bid id required")
	}
	return bidID, nil
}
