package rfqs

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an RFQ repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// List returns newest RFQs first with vendor and bid loaded.
func (r *repository) List(ctx context.Context, params listParams) ([]models.RFQ, error) {
	query := r.db.WithContext(ctx).
		Model(&models.RFQ{}).
		Preload("Company").
		Preload("Bid")

	if params.BidExternalID != "" {
		query = query.Where("bid_id IN (?)",
			r.db.Model(&models.Bid{}).Select("id").Where("external_id = ?", params.BidExternalID))
	}
	if params.Cursor != nil {
		query = query.Where("(created_at < ?) OR (created_at = ? AND id < ?)",
			params.Cursor.CreatedAt, params.Cursor.CreatedAt, params.Cursor.ID)
	}
	if params.Limit > 0 {
		query = query.Limit(params.Limit)
	}

	var rows []models.RFQ
	if err := query.Order("created_at DESC").Order("id DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAll loads every RFQ with its bid, for per-bid summaries.
func (r *repository) ListAll(ctx context.Context) ([]models.RFQ, error) {
	var rows []models.RFQ
	err := r.db.WithContext(ctx).
		Preload("Bid").
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListAwaitingResponse returns sent RFQs with no reply that went out no later than sentBy.
func (r *repository) ListAwaitingResponse(ctx context.Context, sentBy time.Time) ([]models.RFQ, error) {
	var rows []models.RFQ
	err := r.db.WithContext(ctx).
		Preload("Company").
		Preload("Bid").
		Where("status = ?", enums.RFQStatusSent).
		Where("received_date IS NULL").
		Where("sent_date IS NOT NULL AND sent_date <= ?", sentBy).
		Order("sent_date ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindBidByExternalID(ctx context.Context, externalID string) (*models.Bid, error) {
	var bid models.Bid
	err := r.db.WithContext(ctx).
		Where("external_id = ?", externalID).
		Order("created_at ASC").
		First(&bid).Error
	if err != nil {
		return nil, err
	}
	return &bid, nil
}
