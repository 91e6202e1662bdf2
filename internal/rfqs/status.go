package rfqs

import (
	"time"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

const day = 24 * time.Hour

// DisplayStatus derives the status shown to users. A sent RFQ with no reply
// becomes overdue once more than overdueAfterDays whole days have passed.
func DisplayStatus(rfq models.RFQ, now time.Time, overdueAfterDays int) enums.RFQStatus {
	status := rfq.Status
	if status == "" {
		status = enums.RFQStatusDraft
	}
	if status != enums.RFQStatusSent || rfq.SentDate == nil || rfq.ReceivedDate != nil {
		return status
	}
	daysSinceSent := int(now.Sub(*rfq.SentDate) / day)
	if daysSinceSent > overdueAfterDays {
		return enums.RFQStatusOverdue
	}
	return status
}

// BidSummary counts a bid's RFQs by progress. Sent includes every RFQ that
// left draft, so received and overdue RFQs are counted there too.
type BidSummary struct {
	Total    int `json:"total"`
	Sent     int `json:"sent"`
	Received int `json:"received"`
	Overdue  int `json:"overdue"`
}

func (s *BidSummary) add(status enums.RFQStatus) {
	s.Total++
	switch status {
	case enums.RFQStatusSent:
		s.Sent++
	case enums.RFQStatusOverdue:
		s.Sent++
		s.Overdue++
	case enums.RFQStatusReceived:
		s.Sent++
		s.Received++
	}
}

// Summarize groups RFQs by the external id of their bid. RFQs whose bid was
// not loaded are keyed by the bid uuid.
func Summarize(rows []models.RFQ, now time.Time, overdueAfterDays int) map[string]BidSummary {
	out := make(map[string]BidSummary)
	for _, rfq := range rows {
		key := bidKey(rfq)
		summary := out[key]
		summary.add(DisplayStatus(rfq, now, overdueAfterDays))
		out[key] = summary
	}
	return out
}

func bidKey(rfq models.RFQ) string {
	if rfq.Bid != nil && rfq.Bid.ExternalID != "" {
		return rfq.Bid.ExternalID
	}
	return rfq.BidID.String()
}
