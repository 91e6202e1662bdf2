package quotes

import (
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
)

var hundred = decimal.NewFromInt(100)

// SummaryStats describes the spread of ranked vendor totals.
type SummaryStats struct {
	Lowest  decimal.Decimal `json:"lowest"`
	Highest decimal.Decimal `json:"highest"`
	Average decimal.Decimal `json:"average"`
	Count   int             `json:"count"`
}

// ComputeSummaryStats expects the output of RankVendors. With no responses
// every figure is zero. Average is rounded to cents.
func ComputeSummaryStats(ranked []RankedVendor) SummaryStats {
	if len(ranked) == 0 {
		return SummaryStats{Lowest: decimal.Zero, Highest: decimal.Zero, Average: decimal.Zero}
	}
	highest := ranked[0].Total
	sum := decimal.Zero
	for _, vendor := range ranked {
		if vendor.Total.GreaterThan(highest) {
			highest = vendor.Total
		}
		sum = sum.Add(vendor.Total)
	}
	return SummaryStats{
		Lowest:  ranked[0].Total,
		Highest: highest,
		Average: sum.Div(decimal.NewFromInt(int64(len(ranked)))).Round(2),
		Count:   len(ranked),
	}
}

// PercentAboveLowest is (total-lowest)/lowest*100 rounded to two places, or
// null when lowest is zero.
func PercentAboveLowest(total, lowest decimal.Decimal) decimal.NullDecimal {
	if lowest.IsZero() {
		return decimal.NullDecimal{}
	}
	pct := total.Sub(lowest).Div(lowest).Mul(hundred).Round(2)
	return decimal.NewNullDecimal(pct)
}

// ResponseTimeHours is the gap between RFQ send and quote receipt, or nil
// when either timestamp is missing.
func ResponseTimeHours(quote models.VendorQuote) *float64 {
	if quote.SentAt == nil || quote.ReceivedAt == nil {
		return nil
	}
	hours := quote.ReceivedAt.Sub(*quote.SentAt).Hours()
	return &hours
}
