package bids

import (
	"time"

	"github.com/google/uuid"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// BidDTO is a bid as the dashboard shows it. ID is the scraper's external id.
type BidDTO struct {
	ID          string              `json:"id"`
	UUID        uuid.UUID           `json:"uuid"`
	SourceID    *uuid.UUID          `json:"source_id,omitempty"`
	Source      string              `json:"source,omitempty"`
	Title       string              `json:"title"`
	Agency      string              `json:"agency"`
	CloseDate   string              `json:"close_date"`
	DaysLeft    *int                `json:"days_left"`
	Status      enums.BidUIStatus   `json:"status"`
	SheetStatus string              `json:"sheet_status"`
	Stage       enums.WorkflowStage `json:"stage"`
	Value       string              `json:"value"`
	Category    string              `json:"category"`
	URL         string              `json:"url"`
	RFQs        rfqs.BidSummary     `json:"rfqs"`
}

// ListResult carries the visible bids and the filter that produced them.
type ListResult struct {
	Items  []BidDTO `json:"items"`
	Source string   `json:"source"`
}

type SourceDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// UpdateStatusInput sets the triage status of a bid.
type UpdateStatusInput struct {
	BidID  string `json:"-"`
	Status string `json:"status" validate:"required"`
}

// DismissInput hides a bid from every list.
type DismissInput struct {
	BidID    string     `json:"bid_id" validate:"required"`
	SourceID *uuid.UUID `json:"source_id"`
}

func toBidDTO(bid models.Bid, now time.Time, closingSoonDays int, summary rfqs.BidSummary) BidDTO {
	daysLeft := DaysLeft(bid.CloseDate, now)
	dto := BidDTO{
		ID:          bid.ExternalID,
		UUID:        bid.ID,
		SourceID:    bid.SourceID,
		Title:       bid.Title,
		Agency:      agencyOf(bid),
		DaysLeft:    daysLeft,
		Status:      UIStatus(bid.Status, daysLeft, closingSoonDays),
		SheetStatus: bid.Status,
		Stage:       Stage(bid.Status, summary),
		Value:       deref(bid.EstimatedValue),
		Category:    deref(bid.Category),
		URL:         deref(bid.URL),
		RFQs:        summary,
	}
	if bid.Source != nil {
		dto.Source = bid.Source.Name
	}
	if bid.CloseDate != nil {
		dto.CloseDate = bid.CloseDate.UTC().Format(time.RFC3339)
	}
	if dto.URL == "" {
		dto.URL = "#"
	}
	return dto
}

// agencyOf prefers the agency column and falls back to the scraped payload.
func agencyOf(bid models.Bid) string {
	if agency := deref(bid.Agency); agency != "" {
		return agency
	}
	agency, _ := bid.RawData.Text("agency")
	return agency
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
