package quotes

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

// RankedVendor is a quote with a known total, positioned by price.
type RankedVendor struct {
	Rank               int                 `json:"rank"`
	QuoteID            uuid.UUID           `json:"quote_id"`
	VendorName         string              `json:"vendor_name"`
	Status             enums.QuoteStatus   `json:"status"`
	Total              decimal.Decimal     `json:"total"`
	Declared           bool                `json:"declared_total"`
	ResponseDate       *time.Time          `json:"response_date,omitempty"`
	PercentAboveLowest decimal.NullDecimal `json:"percent_above_lowest"`
	ResponseTimeHours  *float64            `json:"response_time_hours,omitempty"`
}

// ComputeBestPrice flags, per row, every cell whose unit price equals the
// row's lowest non-null unit price. Rows are returned as copies.
func ComputeBestPrice(rows []ComparisonRow) []ComparisonRow {
	out := make([]ComparisonRow, len(rows))
	for i, row := range rows {
		row = row.clone()
		var (
			lowest decimal.Decimal
			found  bool
		)
		for _, cell := range row.Vendors {
			if !cell.UnitPrice.Valid {
				continue
			}
			if !found || cell.UnitPrice.Decimal.LessThan(lowest) {
				lowest = cell.UnitPrice.Decimal
				found = true
			}
		}
		for j := range row.Vendors {
			cell := &row.Vendors[j]
			cell.IsBestPrice = found && cell.UnitPrice.Valid && cell.UnitPrice.Decimal.Equal(lowest)
		}
		out[i] = row
	}
	return out
}

// ComputeVendorTotal returns the declared total when the vendor supplied one,
// otherwise the sum of the vendor's extended prices plus shipping.
func ComputeVendorTotal(quote models.VendorQuote, rows []ComparisonRow) decimal.Decimal {
	if quote.TotalCost.Valid {
		return quote.TotalCost.Decimal
	}
	total := decimal.Zero
	for _, row := range rows {
		for _, cell := range row.Vendors {
			if cell.QuoteID != quote.ID || !cell.ExtendedPrice.Valid {
				continue
			}
			total = total.Add(cell.ExtendedPrice.Decimal)
		}
	}
	if quote.Shipping.Valid {
		total = total.Add(quote.Shipping.Decimal)
	}
	return total
}

// HasKnownTotal reports whether a total can be stated for the quote at all.
func HasKnownTotal(quote models.VendorQuote, rows []ComparisonRow) bool {
	if quote.TotalCost.Valid || quote.Shipping.Valid {
		return true
	}
	for _, row := range rows {
		for _, cell := range row.Vendors {
			if cell.QuoteID == quote.ID && cell.ExtendedPrice.Valid {
				return true
			}
		}
	}
	return false
}

// RankVendors orders quotes with a known total from cheapest to dearest.
// Equal totals go to the earlier response date, undated responses last, and
// then to input order.
func RankVendors(quotes []models.VendorQuote, rows []ComparisonRow) []RankedVendor {
	type candidate struct {
		quote models.VendorQuote
		total decimal.Decimal
	}
	candidates := make([]candidate, 0, len(quotes))
	for _, quote := range quotes {
		if !HasKnownTotal(quote, rows) {
			continue
		}
		candidates = append(candidates, candidate{quote: quote, total: ComputeVendorTotal(quote, rows)})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if cmp := candidates[i].total.Cmp(candidates[j].total); cmp != 0 {
			return cmp < 0
		}
		return respondedBefore(candidates[i].quote.ResponseDate, candidates[j].quote.ResponseDate)
	})

	ranked := make([]RankedVendor, len(candidates))
	for i, c := range candidates {
		ranked[i] = RankedVendor{
			Rank:              i,
			QuoteID:           c.quote.ID,
			VendorName:        c.quote.VendorName,
			Status:            c.quote.Status,
			Total:             c.total,
			Declared:          c.quote.TotalCost.Valid,
			ResponseDate:      c.quote.ResponseDate,
			ResponseTimeHours: ResponseTimeHours(c.quote),
		}
	}
	if len(ranked) > 0 {
		lowest := ranked[0].Total
		for i := range ranked {
			ranked[i].PercentAboveLowest = PercentAboveLowest(ranked[i].Total, lowest)
		}
	}
	return ranked
}

func respondedBefore(a, b *time.Time) bool {
	switch {
	case a == nil:
		return false
	case b == nil:
		return true
	default:
		return a.Before(*b)
	}
}
