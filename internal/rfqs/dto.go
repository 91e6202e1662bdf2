package rfqs

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

const dateLayout = "2006-01-02"

// RFQDTO is the list representation of an RFQ with its derived status.
type RFQDTO struct {
	ID           uuid.UUID           `json:"id"`
	BidID        string              `json:"bid_id"`
	BidTitle     string              `json:"bid_title,omitempty"`
	VendorID     *uuid.UUID          `json:"vendor_id,omitempty"`
	Vendor       string              `json:"vendor"`
	Status       enums.RFQStatus     `json:"status"`
	StoredStatus enums.RFQStatus     `json:"stored_status"`
	SentDate     string              `json:"sent_date"`
	DueDate      string              `json:"due_date"`
	ReceivedDate string              `json:"received_date"`
	QuoteAmount  decimal.NullDecimal `json:"quote_amount"`
	Notes        string              `json:"notes,omitempty"`
}

// ListResult wraps a page of RFQs and the cursor for the next one.
type ListResult struct {
	Items  []RFQDTO `json:"items"`
	Cursor string   `json:"cursor"`
}

func toRFQDTO(rfq models.RFQ, status enums.RFQStatus) RFQDTO {
	dto := RFQDTO{
		ID:           rfq.ID,
		BidID:        bidKey(rfq),
		VendorID:     rfq.CompanyID,
		Status:       status,
		StoredStatus: rfq.Status,
		SentDate:     formatDate(rfq.SentDate),
		DueDate:      formatDate(rfq.DueDate),
		ReceivedDate: formatDate(rfq.ReceivedDate),
		QuoteAmount:  rfq.QuoteAmount,
	}
	if rfq.Bid != nil {
		dto.BidTitle = rfq.Bid.Title
	}
	if rfq.Company != nil {
		dto.Vendor = rfq.Company.Name
	}
	if rfq.Notes != nil {
		dto.Notes = *rfq.Notes
	}
	return dto
}

func formatDate(value *time.Time) string {
	if value == nil {
		return ""
	}
	return value.UTC().Format(dateLayout)
}
