package rfqs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/pagination"
)

// Repository defines persistence operations for RFQs.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	List(ctx context.Context, params listParams) ([]models.RFQ, error)
	ListAll(ctx context.Context) ([]models.RFQ, error)
	ListAwaitingResponse(ctx context.Context, sentBy time.Time) ([]models.RFQ, error)
	FindBidByExternalID(ctx context.Context, externalID string) (*models.Bid, error)
}

type listParams struct {
	BidExternalID string
	Limit         int
	Cursor        *pagination.Cursor
}
