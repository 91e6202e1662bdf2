package cron

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/enums"
	"github.com/baxterbids/bidboard/pkg/logger"
	"github.com/baxterbids/bidboard/pkg/metrics"
)

type stubOverdueLister struct {
	rows []rfqs.RFQDTO
	err  error
}

func (s stubOverdueLister) Overdue(context.Context) ([]rfqs.RFQDTO, error) {
	return s.rows, s.err
}

func TestRFQFollowupJobPublishesOverdueCount(t *testing.T) {
	reg := prometheus.NewRegistry()
	job, err := NewRFQFollowupJob(RFQFollowupJobParams{
		Logger: logger.Nop(),
		RFQs: stubOverdueLister{rows: []rfqs.RFQDTO{
			{ID: uuid.New(), BidID: "MBTA-2024-001", Vendor: "Rotary Lift", Status: enums.RFQStatusOverdue, SentDate: "2026-02-05"},
			{ID: uuid.New(), BidID: "MBTA-2024-003", Vendor: "Grainger", Status: enums.RFQStatusOverdue, SentDate: "2026-02-01"},
		}},
		Metrics: metrics.NewCronJobMetrics(reg),
	})
	if err != nil {
		t.Fatalf("NewRFQFollowupJob: %v", err)
	}
	if job.Name() != RFQFollowupJobName {
		t.Fatalf("unexpected name %q", job.Name())
	}
	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("run: %v", err)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	if got := gaugeValue(families, "bidboard_rfqs_overdue", "", ""); got != 2 {
		t.Fatalf("expected overdue gauge 2, got %v", got)
	}
}

func TestRFQFollowupJobReturnsListerError(t *testing.T) {
	job, err := NewRFQFollowupJob(RFQFollowupJobParams{
		Logger: logger.Nop(),
		RFQs:   stubOverdueLister{err: errors.New("db down")},
	})
	if err != nil {
		t.Fatalf("NewRFQFollowupJob: %v", err)
	}
	if err := job.Run(context.Background()); err == nil {
		t.Fatal("expected error")
	}
}

func TestNewRFQFollowupJobValidates(t *testing.T) {
	if _, err := NewRFQFollowupJob(RFQFollowupJobParams{RFQs: stubOverdueLister{}}); err == nil {
		t.Fatal("expected logger error")
	}
	if _, err := NewRFQFollowupJob(RFQFollowupJobParams{Logger: logger.Nop()}); err == nil {
		t.Fatal("expected lister error")
	}
}
