package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/baxterbids/bidboard/pkg/enums"
)

// VendorQuote is one vendor's priced response to an RFQ for a bid. Only
// Status and Notes change after ingestion.
type VendorQuote struct {
	ID              uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	BidID           string              `gorm:"column:bid_id;not null;index"`
	RFQID           *uuid.UUID          `gorm:"column:rfq_id;type:uuid"`
	VendorName      string              `gorm:"column:vendor_name;not null"`
	VendorEmail     string              `gorm:"column:vendor_email"`
	Shipping        decimal.NullDecimal `gorm:"column:shipping;type:numeric(14,2)"`
	Terms           *string             `gorm:"column:terms"`
	ValidUntil      *time.Time          `gorm:"column:valid_until"`
	TotalCost       decimal.NullDecimal `gorm:"column:total_cost;type:numeric(14,2)"`
	Status          enums.QuoteStatus   `gorm:"column:status;type:text;not null;default:'pending'"`
	ResponseDate    *time.Time          `gorm:"column:response_date"`
	ParseConfidence *float64            `gorm:"column:parse_confidence"`
	Notes           *string             `gorm:"column:notes"`
	SentAt          *time.Time          `gorm:"column:sent_at"`
	ReceivedAt      *time.Time          `gorm:"column:received_at"`
	Items           []QuoteItem         `gorm:"foreignKey:QuoteID;constraint:OnDelete:CASCADE"`
	CreatedAt       time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt       time.Time           `gorm:"column:updated_at;autoUpdateTime"`
}

func (q *VendorQuote) BeforeCreate(*gorm.DB) error {
	ensureID(&q.ID)
	if q.Status == "" {
		q.Status = enums.QuoteStatusPending
	}
	return nil
}
