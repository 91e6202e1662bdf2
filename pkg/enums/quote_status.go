package enums

import "fmt"

// QuoteStatus tracks where a vendor quote sits in review.
type QuoteStatus string

const (
	QuoteStatusPending   QuoteStatus = "pending"
	QuoteStatusAccepted  QuoteStatus = "accepted"
	QuoteStatusPartial   QuoteStatus = "partial"
	QuoteStatusRejected  QuoteStatus = "rejected"
	QuoteStatusCountered QuoteStatus = "countered"
	QuoteStatusExpired   QuoteStatus = "expired"
)

var validQuoteStatuses = []QuoteStatus{
	QuoteStatusPending,
	QuoteStatusAccepted,
	QuoteStatusPartial,
	QuoteStatusRejected,
	QuoteStatusCountered,
	QuoteStatusExpired,
}

// String implements fmt.Stringer.
func (s QuoteStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known QuoteStatus.
func (s QuoteStatus) IsValid() bool {
	for _, candidate := range validQuoteStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// CanTransition reports whether a quote may move from s to next. Any known
// status may move to any other known status, including back to pending.
func (s QuoteStatus) CanTransition(next QuoteStatus) bool {
	return s.IsValid() && next.IsValid() && s != next
}

// QuoteStatuses returns every known status in declaration order.
func QuoteStatuses() []QuoteStatus {
	out := make([]QuoteStatus, len(validQuoteStatuses))
	copy(out, validQuoteStatuses)
	return out
}

// ParseQuoteStatus converts raw input into a QuoteStatus.
func ParseQuoteStatus(value string) (QuoteStatus, error) {
	for _, candidate := range validQuoteStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid quote status %q", value)
}
