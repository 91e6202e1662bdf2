package enums

import (
	"fmt"
	"strings"
)

// BidStatus is the triage status a user assigns to a bid.
type BidStatus string

const (
	BidStatusOpen       BidStatus = "Open"
	BidStatusInterested BidStatus = "Interested"
	BidStatusBidding    BidStatus = "Bidding"
	BidStatusNoBid      BidStatus = "No Bid"
	BidStatusWon        BidStatus = "Won"
	BidStatusLost       BidStatus = "Lost"
)

var validBidStatuses = []BidStatus{
	BidStatusOpen,
	BidStatusInterested,
	BidStatusBidding,
	BidStatusNoBid,
	BidStatusWon,
	BidStatusLost,
}

// String implements fmt.Stringer.
func (s BidStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known BidStatus.
func (s BidStatus) IsValid() bool {
	for _, candidate := range validBidStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// BidStatuses returns the statuses a user may assign.
func BidStatuses() []BidStatus {
	out := make([]BidStatus, len(validBidStatuses))
	copy(out, validBidStatuses)
	return out
}

// ParseBidStatus converts raw input into a BidStatus. Matching ignores case so
// scraper-written values such as "no bid" resolve to the canonical form.
func ParseBidStatus(value string) (BidStatus, error) {
	trimmed := strings.TrimSpace(value)
	for _, candidate := range validBidStatuses {
		if strings.EqualFold(string(candidate), trimmed) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid bid status %q", value)
}
