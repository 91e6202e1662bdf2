package cron

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/multierr"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

const (
	QuoteValidityJobName = "quote_validity"

	defaultExpiringWithin = 3 * 24 * time.Hour

	windowExpired  = "expired"
	windowExpiring = "expiring"
)

type QuoteValidityJobParams struct {
	Logger         *logger.Logger
	Quotes         pendingQuoteLister
	Metrics        *metrics.CronJobMetrics
	ExpiringWithin time.Duration
}

type pendingQuoteLister interface {
	ListPendingValidBefore(ctx context.Context, cutoff time.Time) ([]models.VendorQuote, error)
}

// NewQuoteValidityJob flags pending quotes that have lapsed or are about to.
// Quote status is never changed here; a user decides what to do.
func NewQuoteValidityJob(params QuoteValidityJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Quotes == nil {
		return nil, fmt.Errorf("quotes repository required")
	}
	within := params.ExpiringWithin
	if within <= 0 {
		within = defaultExpiringWithin
	}
	return &quoteValidityJob{
		logg:    params.Logger,
		quotes:  params.Quotes,
		metrics: params.Metrics,
		within:  within,
		now:     time.Now,
	}, nil
}

type quoteValidityJob struct {
	logg    *logger.Logger
	quotes  pendingQuoteLister
	metrics *metrics.CronJobMetrics
	within  time.Duration
	now     func() time.Time
}

func (j *quoteValidityJob) Name() string { return QuoteValidityJobName }

// Run scans both windows even if one lookup fails.
func (j *quoteValidityJob) Run(ctx context.Context) error {
	now := j.now().UTC()
	var errs []error

	expired, err := j.quotes.ListPendingValidBefore(ctx, now)
	if err != nil {
		errs = append(errs, fmt.Errorf("load expired quotes: %w", err))
	} else {
		j.report(ctx, windowExpired, expired)
	}

	upcoming, err := j.quotes.ListPendingValidBefore(ctx, now.Add(j.within))
	if err != nil {
		errs = append(errs, fmt.Errorf("load expiring quotes: %w", err))
	} else {
		expiring := make([]models.VendorQuote, 0, len(upcoming))
		for _, quote := range upcoming {
			if quote.ValidUntil != nil && !quote.ValidUntil.Before(now) {
				expiring = append(expiring, quote)
			}
		}
		j.report(ctx, windowExpiring, expiring)
	}

	return multierr.Combine(errs...)
}

func (j *quoteValidityJob) report(ctx context.Context, window string, quotes []models.VendorQuote) {
	for _, quote := range quotes {
		logCtx := j.logg.WithBidID(ctx, quote.BidID)
		logCtx = j.logg.WithQuoteID(logCtx, quote.ID.String())
		logCtx = j.logg.WithFields(logCtx, map[string]any{
			"vendor":      quote.VendorName,
			"valid_until": quote.ValidUntil,
			"window":      window,
		})
		if window == windowExpired {
			j.logg.Warn(logCtx, "pending quote past its validity date")
		} else {
			j.logg.Info(logCtx, "pending quote expiring soon")
		}
	}
	j.metrics.SetQuoteValidity(window, len(quotes))
}
