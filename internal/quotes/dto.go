package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// QuoteItemDTO is the raw line as the vendor sent it, plus its derived part key.
type QuoteItemDTO struct {
	ID            uuid.UUID           `json:"id"`
	LineNumber    *int                `json:"line_number"`
	PartKey       string              `json:"part_key"`
	PartNumber    *string             `json:"part_number"`
	Description   *string             `json:"description"`
	Qty           decimal.Decimal     `json:"qty"`
	UOM           *string             `json:"uom"`
	UnitPrice     decimal.NullDecimal `json:"unit_price"`
	ExtendedPrice decimal.NullDecimal `json:"extended_price"`
	LeadTime      *string             `json:"lead_time"`
	Manufacturer  *string             `json:"manufacturer"`
	Comparable    bool                `json:"comparable"`
}

// QuoteDTO exposes one vendor quote with every item, comparable or not.
type QuoteDTO struct {
	ID                uuid.UUID           `json:"id"`
	BidID             string              `json:"bid_id"`
	RFQID             *uuid.UUID          `json:"rfq_id,omitempty"`
	VendorName        string              `json:"vendor_name"`
	VendorEmail       string              `json:"vendor_email"`
	Shipping          decimal.NullDecimal `json:"shipping"`
	Terms             *string             `json:"terms"`
	ValidUntil        *time.Time          `json:"valid_until"`
	TotalCost         decimal.NullDecimal `json:"total_cost"`
	Status            enums.QuoteStatus   `json:"status"`
	ResponseDate      *time.Time          `json:"response_date"`
	ParseConfidence   *float64            `json:"parse_confidence"`
	Notes             *string             `json:"notes"`
	SentAt            *time.Time          `json:"sent_at,omitempty"`
	ReceivedAt        *time.Time          `json:"received_at,omitempty"`
	ResponseTimeHours *float64            `json:"response_time_hours,omitempty"`
	Items             []QuoteItemDTO      `json:"items"`
	CreatedAt         time.Time           `json:"created_at"`
	UpdatedAt         time.Time           `json:"updated_at"`
}

// UpdateStatusInput carries a status change request for one quote.
type UpdateStatusInput struct {
	QuoteID uuid.UUID
	Status  string
	Notes   *string
}

func toQuoteDTO(q models.VendorQuote) QuoteDTO {
	items := make([]QuoteItemDTO, 0, len(q.Items))
	for _, item := range orderedItems(q.Items) {
		items = append(items, QuoteItemDTO{
			ID:            item.ID,
			LineNumber:    item.LineNumber,
			PartKey:       PartKey(item),
			PartNumber:    item.PartNumber,
			Description:   item.Description,
			Qty:           item.Qty,
			UOM:           item.UOM,
			UnitPrice:     item.UnitPrice,
			ExtendedPrice: item.EffectiveExtendedPrice(),
			LeadTime:      item.LeadTime,
			Manufacturer:  item.Manufacturer,
			Comparable:    item.Comparable(),
		})
	}
	return QuoteDTO{
		ID:                q.ID,
		BidID:             q.BidID,
		RFQID:             q.RFQID,
		VendorName:        q.VendorName,
		VendorEmail:       q.VendorEmail,
		Shipping:          q.Shipping,
		Terms:             q.Terms,
		ValidUntil:        q.ValidUntil,
		TotalCost:         q.TotalCost,
		Status:            q.Status,
		ResponseDate:      q.ResponseDate,
		ParseConfidence:   q.ParseConfidence,
		Notes:             q.Notes,
		SentAt:            q.SentAt,
		ReceivedAt:        q.ReceivedAt,
		ResponseTimeHours: ResponseTimeHours(q),
		Items:             items,
		CreatedAt:         q.CreatedAt,
		UpdatedAt:         q.UpdatedAt,
	}
}
