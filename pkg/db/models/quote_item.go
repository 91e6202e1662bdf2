package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// QuoteItem is one priced line inside a vendor quote. IsBestPrice is computed
// by the comparison engine; the stored column is informational.
type QuoteItem struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	QuoteID       uuid.UUID           `gorm:"column:quote_id;type:uuid;not null;index"`
	LineNumber    *int                `gorm:"column:line_number"`
	PartNumber    *string             `gorm:"column:part_number"`
	Description   *string             `gorm:"column:description"`
	Qty           decimal.Decimal     `gorm:"column:qty;type:numeric(14,4);not null;default:0"`
	UOM           *string             `gorm:"column:uom"`
	UnitPrice     decimal.NullDecimal `gorm:"column:unit_price;type:numeric(14,4)"`
	ExtendedPrice decimal.NullDecimal `gorm:"column:extended_price;type:numeric(14,2)"`
	LeadTime      *string             `gorm:"column:lead_time"`
	Manufacturer  *string             `gorm:"column:manufacturer"`
	IsBestPrice   bool                `gorm:"column:is_best_price;not null;default:false"`
}

func (i *QuoteItem) BeforeCreate(*gorm.DB) error {
	ensureID(&i.ID)
	return nil
}

// Comparable reports whether the item carries a part number or description.
func (i QuoteItem) Comparable() bool {
	return nonEmpty(i.PartNumber) || nonEmpty(i.Description)
}

// EffectiveExtendedPrice returns the stored extended price, or unit price
// times quantity when only the unit price is known. Null otherwise.
func (i QuoteItem) EffectiveExtendedPrice() decimal.NullDecimal {
	if i.ExtendedPrice.Valid {
		return i.ExtendedPrice
	}
	if i.UnitPrice.Valid {
		return decimal.NewNullDecimal(i.UnitPrice.Decimal.Mul(i.Qty))
	}
	return decimal.NullDecimal{}
}

// nonEmpty is a plain length check; a lone space is still a value.
func nonEmpty(value *string) bool {
	return value != nil && *value != ""
}
