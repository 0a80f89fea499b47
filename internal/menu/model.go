package menu

import (
	"github.com/shopspring/decimal"
)

// Item is a catalog entry. Price is decimal to avoid rounding errors
// (NUMERIC in Postgres). Tags carry labels like HALAL/VEG/VEGAN that the
// presentation layer filters on; the core treats them as opaque.
type Item struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	Category  string          `json:"category"`
	Tags      []string        `json:"tags"`
	Available bool            `json:"available"`
}

// HasTag reports whether the item carries the given label.
func (it Item) HasTag(tag string) bool {
	for _, t := range it.Tags {
		if t == tag {
			return true
		}
	}
	return false
}
