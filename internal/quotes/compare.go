package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// VendorColumn is the per-quote header of the comparison matrix.
type VendorColumn struct {
	QuoteID           uuid.UUID           `json:"quote_id"`
	VendorName        string              `json:"vendor_name"`
	VendorEmail       string              `json:"vendor_email"`
	Status            enums.QuoteStatus   `json:"status"`
	Total             decimal.NullDecimal `json:"total"`
	Shipping          decimal.NullDecimal `json:"shipping"`
	Terms             string              `json:"terms"`
	ValidUntil        *time.Time          `json:"valid_until,omitempty"`
	ParseConfidence   *float64            `json:"parse_confidence,omitempty"`
	ResponseTimeHours *float64            `json:"response_time_hours,omitempty"`
	ItemCount         int                 `json:"item_count"`
}

// Comparison is the full derived view for one bid. It is rebuilt from the
// current quotes on every request and never stored.
type Comparison struct {
	BidID           string               `json:"bid_id"`
	Rows            []ComparisonRow      `json:"rows"`
	Vendors         []VendorColumn       `json:"vendors"`
	Ranking         []RankedVendor       `json:"ranking"`
	Stats           SummaryStats         `json:"stats"`
	Recommendations []RecommendationTier `json:"recommendations"`
}

// Lowest returns the rank-0 vendor, if any quote has a known total.
func (c Comparison) Lowest() (RankedVendor, bool) {
	if len(c.Ranking) == 0 {
		return RankedVendor{}, false
	}
	return c.Ranking[0], true
}

// Compare runs the normalizer and every engine step over quotes. Vendor
// columns follow input order.
func Compare(bidID string, quotes []models.VendorQuote, tiers []decimal.Decimal) Comparison {
	rows := ComputeBestPrice(Normalize(quotes).Rows())

	vendors := make([]VendorColumn, len(quotes))
	for i, quote := range quotes {
		column := VendorColumn{
			QuoteID:           quote.ID,
			VendorName:        quote.VendorName,
			VendorEmail:       quote.VendorEmail,
			Status:            quote.Status,
			Shipping:          quote.Shipping,
			Terms:             deref(quote.Terms),
			ValidUntil:        quote.ValidUntil,
			ParseConfidence:   quote.ParseConfidence,
			ResponseTimeHours: ResponseTimeHours(quote),
			ItemCount:         len(quote.Items),
		}
		if HasKnownTotal(quote, rows) {
			column.Total = decimal.NewNullDecimal(ComputeVendorTotal(quote, rows))
		}
		vendors[i] = column
	}

	ranking := RankVendors(quotes, rows)
	stats := ComputeSummaryStats(ranking)

	return Comparison{
		BidID:           bidID,
		Rows:            rows,
		Vendors:         vendors,
		Ranking:         ranking,
		Stats:           stats,
		Recommendations: ComputeBidRecommendation(stats.Lowest, tiers...),
	}
}
