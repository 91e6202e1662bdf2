package bids

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/db/models"
)

// Repository defines persistence operations for bids and their sources.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListVisible(ctx context.Context, params listParams) ([]models.Bid, error)
	FindSourceByName(ctx context.Context, name string) (*models.Source, error)
	ListActiveSources(ctx context.Context) ([]models.Source, error)
	UpdateStatus(ctx context.Context, externalID, status string) (int64, error)
	Dismiss(ctx context.Context, externalID string, sourceID *uuid.UUID) (int64, error)
}

// RFQSummarizer reports per-bid RFQ progress keyed by external bid id.
type RFQSummarizer interface {
	Summary(ctx context.Context) (map[string]rfqs.BidSummary, error)
}

type listParams struct {
	SourceID     *uuid.UUID
	ClosedCutoff time.Time
}
