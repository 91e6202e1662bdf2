package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/enums"
)

// RFQ tracks a request for quote sent to one vendor for one bid.
type RFQ struct {
	ID           uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BidID        uuid.UUID           `gorm:"column:bid_id;type:uuid;not null"`
	CompanyID    *uuid.UUID          `gorm:"column:company_id;type:uuid"`
	Status       enums.RFQStatus     `gorm:"column:status;type:text;not null;default:'draft'"`
	SentDate     *time.Time          `gorm:"column:sent_date"`
	DueDate      *time.Time          `gorm:"column:due_date"`
	ReceivedDate *time.Time          `gorm:"column:received_date"`
	QuoteAmount  decimal.NullDecimal `gorm:"column:quote_amount;type:numeric(14,2)"`
	Notes        *string             `gorm:"column:notes"`
	Bid          *Bid                `gorm:"foreignKey:BidID"`
	Company      *Company            `gorm:"foreignKey:CompanyID"`
	CreatedAt    time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (RFQ) TableName() string {
	return "rfqs"
}

func (r *RFQ) BeforeCreate(*gorm.DB) error {
	ensureID(&r.ID)
	return nil
}
