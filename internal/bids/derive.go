package bids

import (
	"math"
	"strings"
	"time"

	"github.com/baxterbids/bidboard/internal/rfqs"
	"github.com/baxterbids/bidboard/pkg/enums"
)

const day = 24 * time.Hour

// sourceSlugs maps URL slugs to source names stored by the scrapers.
var sourceSlugs = map[string]string{
	"caci":              "CACI",
	"highergov-hubzone": "HigherGov HUBZone",
	"sam.gov":           "SAM.gov",
}

// sourceCandidates returns the source names to try for a filter, in order.
// Known slugs resolve to a single name; anything else is tried title-cased
// and then upper-cased.
func sourceCandidates(filter string) []string {
	filter = strings.TrimSpace(filter)
	if filter == "" {
		return nil
	}
	normalized := strings.ToLower(filter)
	if name, ok := sourceSlugs[normalized]; ok {
		return []string{name}
	}
	if name, ok := sourceSlugs[strings.ReplaceAll(normalized, " ", "-")]; ok {
		return []string{name}
	}

	titled := strings.ToUpper(filter[:1]) + filter[1:]
	upper := strings.ToUpper(filter)
	if titled == upper {
		return []string{titled}
	}
	return []string{titled, upper}
}

// DaysLeft is the whole number of days until close, rounded up. Nil when the
// bid has no close date.
func DaysLeft(closeDate *time.Time, now time.Time) *int {
	if closeDate == nil {
		return nil
	}
	days := int(math.Ceil(float64(closeDate.Sub(now)) / float64(day)))
	return &days
}

// UIStatus labels a bid by urgency.
func UIStatus(storedStatus string, daysLeft *int, closingSoonDays int) enums.BidUIStatus {
	if strings.EqualFold(strings.TrimSpace(storedStatus), "closed") {
		return enums.BidUIStatusClosed
	}
	if daysLeft == nil {
		return enums.BidUIStatusActive
	}
	if *daysLeft <= 0 {
		return enums.BidUIStatusClosed
	}
	if *daysLeft <= closingSoonDays {
		return enums.BidUIStatusClosingSoon
	}
	return enums.BidUIStatusActive
}

// Stage places a bid in the pursuit pipeline. Award outranks RFQ progress,
// which outranks the user's triage status.
func Stage(storedStatus string, summary rfqs.BidSummary) enums.WorkflowStage {
	status := strings.ToLower(strings.TrimSpace(storedStatus))
	switch {
	case status == "won" || status == "awarded":
		return enums.WorkflowStageAwarded
	case summary.Received > 0:
		return enums.WorkflowStageQuotesReceived
	case summary.Sent > 0:
		return enums.WorkflowStageRFQSent
	case status == "interested" || status == "bidding":
		return enums.WorkflowStageInterested
	default:
		return enums.WorkflowStageNew
	}
}

// closedCutoff is local midnight retainDays before now.
func closedCutoff(now time.Time, retainDays int) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d-retainDays, 0, 0, 0, 0, now.Location())
}
