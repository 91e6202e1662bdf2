package quotes

import (
	"sort"
	"strconv"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
)

// VendorCell is one vendor's pricing for a comparison row.
type VendorCell struct {
	VendorName    string              `json:"vendor_name"`
	QuoteID       uuid.UUID           `json:"quote_id"`
	ItemID        uuid.UUID           `json:"item_id"`
	UnitPrice     decimal.NullDecimal `json:"unit_price"`
	ExtendedPrice decimal.NullDecimal `json:"extended_price"`
	LeadTime      string              `json:"lead_time"`
	Manufacturer  string              `json:"manufacturer"`
	IsBestPrice   bool                `json:"is_best_price"`
}

// ComparisonRow aligns the same part across every vendor that quoted it.
// Identity fields come from the first vendor that supplied the part.
type ComparisonRow struct {
	PartKey     string          `json:"part_key"`
	PartNumber  string          `json:"part_number"`
	Description string          `json:"description"`
	Qty         decimal.Decimal `json:"qty"`
	UOM         string          `json:"uom"`
	Vendors     []VendorCell    `json:"vendors"`
}

// Cells returns every cell quoteID contributed to this row. A quote that
// lists the same part twice yields two cells.
func (r ComparisonRow) Cells(quoteID uuid.UUID) []VendorCell {
	var out []VendorCell
	for _, cell := range r.Vendors {
		if cell.QuoteID == quoteID {
			out = append(out, cell)
		}
	}
	return out
}

func (r ComparisonRow) clone() ComparisonRow {
	out := r
	out.Vendors = make([]VendorCell, len(r.Vendors))
	copy(out.Vendors, r.Vendors)
	return out
}

// RowSet keeps comparison rows in first-seen order with a lookup by part key.
type RowSet struct {
	rows  []ComparisonRow
	index map[string]int
}

// Rows returns a copy of the rows in first-seen order.
func (s *RowSet) Rows() []ComparisonRow {
	if s == nil {
		return nil
	}
	out := make([]ComparisonRow, len(s.rows))
	for i, row := range s.rows {
		out[i] = row.clone()
	}
	return out
}

// Get looks up a row by part key.
func (s *RowSet) Get(partKey string) (ComparisonRow, bool) {
	if s == nil {
		return ComparisonRow{}, false
	}
	idx, ok := s.index[partKey]
	if !ok {
		return ComparisonRow{}, false
	}
	return s.rows[idx].clone(), true
}

func (s *RowSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// PartKey derives the identity used to align an item across vendors: the part
// number when set, else the description, else "line-<n>". Matching is exact,
// so " P100" and "P100" are different parts and a blank " " is a real key.
func PartKey(item models.QuoteItem) string {
	if nonEmpty(item.PartNumber) {
		return *item.PartNumber
	}
	if nonEmpty(item.Description) {
		return *item.Description
	}
	if item.LineNumber == nil {
		return "line-"
	}
	return "line-" + strconv.Itoa(*item.LineNumber)
}

// Normalize scans quotes in input order, and items by line number within each
// quote, building one row per distinct part key. Items without a part number
// or description are left out. Inputs are not modified.
func Normalize(quotes []models.VendorQuote) *RowSet {
	set := &RowSet{index: make(map[string]int)}
	for _, quote := range quotes {
		for _, item := range orderedItems(quote.Items) {
			if !item.Comparable() {
				continue
			}
			key := PartKey(item)
			idx, ok := set.index[key]
			if !ok {
				idx = len(set.rows)
				set.index[key] = idx
				set.rows = append(set.rows, ComparisonRow{
					PartKey:     key,
					PartNumber:  deref(item.PartNumber),
					Description: deref(item.Description),
					Qty:         item.Qty,
					UOM:         deref(item.UOM),
				})
			}
			set.rows[idx].Vendors = append(set.rows[idx].Vendors, VendorCell{
				VendorName:    quote.VendorName,
				QuoteID:       quote.ID,
				ItemID:        item.ID,
				UnitPrice:     item.UnitPrice,
				ExtendedPrice: item.EffectiveExtendedPrice(),
				LeadTime:      deref(item.LeadTime),
				Manufacturer:  deref(item.Manufacturer),
			})
		}
	}
	return set
}

// orderedItems returns a line-number sorted copy; unnumbered items keep their
// relative order after the numbered ones.
func orderedItems(items []models.QuoteItem) []models.QuoteItem {
	out := make([]models.QuoteItem, len(items))
	copy(out, items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].LineNumber, out[j].LineNumber
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return *a < *b
		}
	})
	return out
}

func nonEmpty(value *string) bool {
	return value != nil && *value != ""
}

func deref(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
