package cron

import (
	"context"
	"fmt"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

const RFQFollowupJobName = "rfq_followup"

type RFQFollowupJobParams struct {
	Logger  *logger.Logger
	RFQs    overdueRFQLister
	Metrics *metrics.CronJobMetrics
}

type overdueRFQLister interface {
	Overdue(ctx context.Context) ([]rfqs.RFQDTO, error)
}

// NewRFQFollowupJob reports RFQs whose vendors have not answered in time.
// It only logs and publishes a gauge; reminders are sent by hand.
func NewRFQFollowupJob(params RFQFollowupJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.RFQs == nil {
		return nil, fmt.Errorf("rfq lister required")
	}
	return &rfqFollowupJob{
		logg:    params.Logger,
		rfqs:    params.RFQs,
		metrics: params.Metrics,
	}, nil
}

type rfqFollowupJob struct {
	logg    *logger.Logger
	rfqs    overdueRFQLister
	metrics *metrics.CronJobMetrics
}

func (j *rfqFollowupJob) Name() string { return RFQFollowupJobName }

func (j *rfqFollowupJob) Run(ctx context.Context) error {
	overdue, err := j.rfqs.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("load overdue rfqs: %w", err)
	}

	for _, rfq := range overdue {
		logCtx := j.logg.WithBidID(ctx, rfq.BidID)
		logCtx = j.logg.WithFields(logCtx, map[string]any{
			"rfq_id":    rfq.ID.String(),
			"vendor":    rfq.Vendor,
			"sent_date": rfq.SentDate,
			"due_date":  rfq.DueDate,
		})
		j.logg.Warn(logCtx, "rfq overdue; vendor follow-up needed")
	}

	j.metrics.SetOverdueRFQs(len(overdue))
	j.logg.Info(j.logg.WithField(ctx, "overdue", len(overdue)), "rfq follow-up scan complete")
	return nil
}
