package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// Repository defines persistence operations for vendor quotes.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListByBid(ctx context.Context, bidID string) ([]models.VendorQuote, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.VendorQuote, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus, notes *string) error
	ListPendingValidBefore(ctx context.Context, cutoff time.Time) ([]models.VendorQuote, error)
}
