package enums

// BidUIStatus is the urgency label derived from a bid's close date.
type BidUIStatus string

const (
	BidUIStatusActive      BidUIStatus = "active"
	BidUIStatusClosingSoon BidUIStatus = "closing-soon"
	BidUIStatusClosed      BidUIStatus = "closed"
)

// String implements fmt.Stringer.
func (s BidUIStatus) String() string {
	return string(s)
}
