package quotes

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a quotes repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListByBid returns every quote for the bid with its items, oldest first.
func (r *repository) ListByBid(ctx context.Context, bidID string) ([]models.VendorQuote, error) {
	var quotes []models.VendorQuote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("bid_id = ?", bidID).
		Order("created_at ASC").
		Order("id ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VendorQuote, error) {
	var quote models.VendorQuote
	err := r.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&quote).Error
	if err != nil {
		return nil, err
	}
	return &quote, nil
}

// UpdateStatus writes status and, when given, notes. No other column changes.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.QuoteStatus, notes *string) error {
	updates := map[string]any{
		"status":     status,
		"updated_at": time.Now().UTC(),
	}
	if notes != nil {
		updates["notes"] = *notes
	}
	res := r.db.WithContext(ctx).
		Model(&models.VendorQuote{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ListPendingValidBefore returns pending quotes whose validity ends before cutoff.
func (r *repository) ListPendingValidBefore(ctx context.Context, cutoff time.Time) ([]models.VendorQuote, error) {
	var quotes []models.VendorQuote
	err := r.db.WithContext(ctx).
		Where("status = ?", enums.QuoteStatusPending).
		Where("valid_until IS NOT NULL AND valid_until < ?", cutoff).
		Order("valid_until ASC").
		Find(&quotes).Error
	if err != nil {
		return nil, err
	}
	return quotes, nil
}
