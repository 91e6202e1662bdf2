package bids

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bids repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// ListVisible returns bids that are not dismissed, not marked no bid, and
// either undated or closing on/after the cutoff. Soonest close date first,
// undated bids last.
func (r *repository) ListVisible(ctx context.Context, params listParams) ([]models.Bid, error) {
	query := r.db.WithContext(ctx).
		Preload("Source").
		Where("dismissed = ?", false).
		Where("LOWER(status) <> ?", "no bid").
		Where("close_date IS NULL OR close_date >= ?", params.ClosedCutoff)
	if params.SourceID != nil {
		query = query.Where("source_id = ?", *params.SourceID)
	}

	var rows []models.Bid
	err := query.
		Order("CASE WHEN close_date IS NULL THEN 1 ELSE 0 END").
		Order("close_date ASC").
		Order("external_id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) FindSourceByName(ctx context.Context, name string) (*models.Source, error) {
	var source models.Source
	err := r.db.WithContext(ctx).
		Where("name = ?", name).
		First(&source).Error
	if err != nil {
		return nil, err
	}
	return &source, nil
}

func (r *repository) ListActiveSources(ctx context.Context) ([]models.Source, error) {
	var rows []models.Source
	err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("name ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatus sets the triage status on every bid carrying externalID.
func (r *repository) UpdateStatus(ctx context.Context, externalID, status string) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("external_id = ?", externalID).
		Updates(map[string]any{
			"status":     status,
			"updated_at": time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// Dismiss hides bids by external id, optionally narrowed to one source.
func (r *repository) Dismiss(ctx context.Context, externalID string, sourceID *uuid.UUID) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Bid{}).
		Where("external_id = ?", externalID)
	if sourceID != nil {
		query = query.Where("source_id = ?", *sourceID)
	}
	res := query.Updates(map[string]any{
		"dismissed":  true,
		"updated_at": time.Now().UTC(),
	})
	return res.RowsAffected, res.Error
}
