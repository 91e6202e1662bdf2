package cron

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/multierr"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

type stubQuoteLister struct {
	quotes []models.VendorQuote
	err    error
	calls  []time.Time
}

func (s *stubQuoteLister) ListPendingValidBefore(_ context.Context, cutoff time.Time) ([]models.VendorQuote, error) {
	s.calls = append(s.calls, cutoff)
	if s.err != nil {
		return nil, s.err
	}
	out := make([]models.VendorQuote, 0, len(s.quotes))
	for _, quote := range s.quotes {
		if quote.ValidUntil != nil && quote.ValidUntil.Before(cutoff) {
			out = append(out, quote)
		}
	}
	return out, nil
}

func quoteValidUntil(ts time.Time) models.VendorQuote {
	return models.VendorQuote{ID: uuid.New(), BidID: "MBTA-2024-001", VendorName: "Rotary Lift", ValidUntil: &ts}
}

func TestQuoteValidityJobBucketsWindows(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 0, 0, 0, time.UTC)
	lister := &stubQuoteLister{quotes: []models.VendorQuote{
		quoteValidUntil(now.Add(-48 * time.Hour)),
		quoteValidUntil(now.Add(-time.Hour)),
		quoteValidUntil(now.Add(24 * time.Hour)),
		quoteValidUntil(now.Add(10 * 24 * time.Hour)),
	}}
	reg := prometheus.NewRegistry()
	job, err := NewQuoteValidityJob(QuoteValidityJobParams{
		Logger:  logger.Nop(),
		Quotes:  lister,
		Metrics: metrics.NewCronJobMetrics(reg),
	})
	if err != nil {
		t.Fatalf("NewQuoteValidityJob: %v", err)
	}
	job.(*quoteValidityJob).now = func() time.Time { return now }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(lister.calls) != 2 || !lister.calls[1].Equal(now.Add(defaultExpiringWithin)) {
		t.Fatalf("unexpected cutoffs %v", lister.calls)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := gaugeValue(families, "bidboard_quotes_validity", "window", windowExpired); got != 2 {
		t.Fatalf("expected 2 expired, got %v", got)
	}
	if got := gaugeValue(families, "bidboard_quotes_validity", "window", windowExpiring); got != 1 {
		t.Fatalf("expected 1 expiring, got %v", got)
	}
}

func TestQuoteValidityJobCombinesErrors(t *testing.T) {
	job, err := NewQuoteValidityJob(QuoteValidityJobParams{
		Logger: logger.Nop(),
		Quotes: &stubQuoteLister{err: errors.New("db down")},
	})
	if err != nil {
		t.Fatalf("NewQuoteValidityJob: %v", err)
	}
	err = job.Run(context.Background())
	if err == nil {
		t.Fatal("expected error")
	}
	if got := len(multierr.Errors(err)); got != 2 {
		t.Fatalf("expected both lookups to fail, got %d errors", got)
	}
}
