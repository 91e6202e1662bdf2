package enums

import "fmt"

// RFQStatus is the send-tracking state of a request for quote. Overdue is a
// display label derived at read time and is never stored.
type RFQStatus string

const (
	RFQStatusDraft    RFQStatus = "draft"
	RFQStatusSent     RFQStatus = "sent"
	RFQStatusReceived RFQStatus = "received"
	RFQStatusOverdue  RFQStatus = "overdue"
)

var validRFQStatuses = []RFQStatus{
	RFQStatusDraft,
	RFQStatusSent,
	RFQStatusReceived,
	RFQStatusOverdue,
}

// String implements fmt.Stringer.
func (s RFQStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known RFQStatus.
func (s RFQStatus) IsValid() bool {
	for _, candidate := range validRFQStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}

// IsStored reports whether the status may be persisted.
func (s RFQStatus) IsStored() bool {
	return s.IsValid() && s != RFQStatusOverdue
}

// ParseRFQStatus converts raw input into an RFQStatus. Empty input maps to draft.
func ParseRFQStatus(value string) (RFQStatus, error) {
	if value == "" {
		return RFQStatusDraft, nil
	}
	for _, candidate := range validRFQStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid rfq status %q", value)
}
