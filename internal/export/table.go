package export

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/internal/quotes"
)

// leading identity columns of the matrix, before the per-vendor pairs.
var identityHeaders = []string{"Part #", "Description", "Qty", "UOM"}

// precise marks a value kept at its stored scale, such as a unit price
// quoted to a tenth of a cent. Plain decimal.Decimal cells are money and
// print to the cent.
type precise decimal.Decimal

type tableRow struct {
	cells []any
	// best holds the column indexes of best-price cells.
	best []int
}

type table struct {
	title   string
	headers []string
	rows    []tableRow
}

// matrixTable lays out one row per part with a Unit/Ext column pair for each
// vendor, a best-vendor column and a trailing totals row.
func matrixTable(cmp *quotes.Comparison) table {
	headers := append([]string{}, identityHeaders...)
	for _, vendor := range cmp.Vendors {
		headers = append(headers, vendor.VendorName+" Unit", vendor.VendorName+" Ext")
	}
	headers = append(headers, "Best Vendor")

	out := table{title: "Comparison", headers: headers}
	for _, row := range cmp.Rows {
		cells := []any{row.PartNumber, row.Description, row.Qty.String(), row.UOM}
		var best []int
		var bestVendors []string
		for _, vendor := range cmp.Vendors {
			unit, ext, isBest := vendorPair(row.Cells(vendor.QuoteID))
			if isBest {
				best = append(best, len(cells))
				bestVendors = append(bestVendors, vendor.VendorName)
			}
			cells = append(cells, unit, ext)
		}
		cells = append(cells, strings.Join(bestVendors, ", "))
		out.rows = append(out.rows, tableRow{cells: cells, best: best})
	}

	totals := make([]any, len(identityHeaders))
	totals[0] = "Total"
	for _, vendor := range cmp.Vendors {
		totals = append(totals, nil, nullable(vendor.Total))
	}
	totals = append(totals, lowestVendor(cmp))
	out.rows = append(out.rows, tableRow{cells: totals})
	return out
}

func rankingTable(cmp *quotes.Comparison) table {
	out := table{
		title:   "Ranking",
		headers: []string{"Rank", "Vendor", "Total", "% Above Lowest", "Status", "Response Hours"},
	}
	for _, ranked := range cmp.Ranking {
		var hours any
		if ranked.ResponseTimeHours != nil {
			hours = *ranked.ResponseTimeHours
		}
		out.rows = append(out.rows, tableRow{cells: []any{
			ranked.Rank + 1,
			ranked.VendorName,
			ranked.Total,
			nullablePrecise(ranked.PercentAboveLowest),
			ranked.Status.String(),
			hours,
		}})
	}
	return out
}

func summaryTable(cmp *quotes.Comparison) table {
	out := table{title: "Summary", headers: []string{"Metric", "Value"}}
	out.rows = append(out.rows,
		tableRow{cells: []any{"Responses", cmp.Stats.Count}},
		tableRow{cells: []any{"Lowest", cmp.Stats.Lowest}},
		tableRow{cells: []any{"Highest", cmp.Stats.Highest}},
		tableRow{cells: []any{"Average", cmp.Stats.Average}},
	)
	for _, tier := range cmp.Recommendations {
		out.rows = append(out.rows, tableRow{cells: []any{"Bid @ " + tier.Label + " markup", tier.Price}})
	}
	return out
}

// vendorPair renders one vendor's Unit and Ext columns for a row. When a
// quote lists the part more than once the unit prices are joined and the
// extended prices summed, matching how the vendor total counts them.
func vendorPair(cells []quotes.VendorCell) (unit, ext any, best bool) {
	switch len(cells) {
	case 0:
		return nil, nil, false
	case 1:
		return nullablePrecise(cells[0].UnitPrice), nullable(cells[0].ExtendedPrice), cells[0].IsBestPrice
	}

	units := make([]string, 0, len(cells))
	sum := decimal.NullDecimal{}
	for _, cell := range cells {
		if cell.UnitPrice.Valid {
			units = append(units, formatPrecise(cell.UnitPrice.Decimal))
		} else {
			units = append(units, "-")
		}
		if cell.ExtendedPrice.Valid {
			sum = decimal.NewNullDecimal(sum.Decimal.Add(cell.ExtendedPrice.Decimal))
		}
		best = best || cell.IsBestPrice
	}
	return strings.Join(units, " / "), nullable(sum), best
}

func lowestVendor(cmp *quotes.Comparison) string {
	if lowest, ok := cmp.Lowest(); ok {
		return lowest.VendorName
	}
	return ""
}

func nullable(value decimal.NullDecimal) any {
	if !value.Valid {
		return nil
	}
	return value.Decimal
}

func nullablePrecise(value decimal.NullDecimal) any {
	if !value.Valid {
		return nil
	}
	return precise(value.Decimal)
}
