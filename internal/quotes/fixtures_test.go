package quotes

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baxterbids/bidboard/pkg/db/models"
	"github.com/baxterbids/bidboard/pkg/enums"
)

func strPtr(v string) *string { return &v }

func intPtr(v int) *int { return &v }

func money(v string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(v))
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func at(hour int) *time.Time {
	ts := time.Date(2026, 3, 2, hour, 0, 0, 0, time.UTC)
	return &ts
}

func item(part string, qty, unit string) models.QuoteItem {
	it := models.QuoteItem{ID: uuid.New(), Qty: dec(qty)}
	if part != "" {
		it.PartNumber = strPtr(part)
	}
	if unit != "" {
		it.UnitPrice = money(unit)
	}
	return it
}

func quote(vendor string, items ...models.QuoteItem) models.VendorQuote {
	id := uuid.New()
	for i := range items {
		items[i].QuoteID = id
	}
	return models.VendorQuote{
		ID:         id,
		BidID:      "BID-1",
		VendorName: vendor,
		Status:     enums.QuoteStatusPending,
		Items:      items,
	}
}

// bid1Quotes is the three-vendor example: A prices P100 at 10, B at 9 with a
// declared total, C sends a declared total only.
func bid1Quotes() []models.VendorQuote {
	a := quote("Vendor A", item("P100", "2", "10"))
	a.Shipping = money("5")
	a.ResponseDate = at(9)

	b := quote("Vendor B", item("P100", "2", "9"))
	b.TotalCost = money("25")
	b.ResponseDate = at(11)

	c := quote("Vendor C")
	c.TotalCost = money("50")
	c.ResponseDate = at(8)

	return []models.VendorQuote{a, b, c}
}
