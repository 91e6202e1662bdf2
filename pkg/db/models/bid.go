package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/types"
)

// Bid is a government procurement opportunity written by the scrapers. Status
// holds the free-text triage value ("Interested", "no bid", ...).
type Bid struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SourceID       *uuid.UUID    `gorm:"column:source_id;type:uuid"`
	ExternalID     string        `gorm:"column:external_id;not null"`
	Title          string        `gorm:"column:title;not null"`
	Agency         *string       `gorm:"column:agency"`
	Status         string        `gorm:"column:status;not null;default:'Open'"`
	CloseDate      *time.Time    `gorm:"column:close_date"`
	EstimatedValue *string       `gorm:"column:estimated_value"`
	Category       *string       `gorm:"column:category"`
	URL            *string       `gorm:"column:url"`
	Dismissed      bool          `gorm:"column:dismissed;not null;default:false"`
	RawData        types.JSONMap `gorm:"column:raw_data;type:jsonb"`
	Source         *Source       `gorm:"foreignKey:SourceID"`
	CreatedAt      time.Time     `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time     `gorm:"column:updated_at;autoUpdateTime"`
}

func (b *Bid) BeforeCreate(*gorm.DB) error {
	ensureID(&b.ID)
	return nil
}
