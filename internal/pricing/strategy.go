// Package pricing converts cart contents plus a menu snapshot into a total.
// Strategies are pure: they never mutate their inputs.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
)

// Strategy computes an order total. A cart line whose id has no matching
// menu item, or whose item is unavailable, contributes zero. Adding a new
// pricing scheme means adding a new type here; callers never branch on the
// concrete strategy.
type Strategy interface {
	ComputeTotal(items []cart.Item, catalog []menu.Item) decimal.Decimal
}

// Simple sums price * quantity over matched, available items.
type Simple struct{}

func (Simple) ComputeTotal(items []cart.Item, catalog []menu.Item) decimal.Decimal {
	total, _ := accumulate(items, catalog)
	return total
}

const comboThreshold = 3

var comboDiscount = decimal.NewFromFloat(0.9)

// Combo prices like Simple, then applies a single flat 10% discount when the
// matched quantity across the whole cart reaches the threshold.
type Combo struct{}

func (Combo) ComputeTotal(items []cart.Item, catalog []menu.Item) decimal.Decimal {
	total, matched := accumulate(items, catalog)
	if matched >= comboThreshold {
		total = total.Mul(comboDiscount)
	}
	return total
}

// accumulate returns the undiscounted total and the quantity that actually
// resolved to an available menu item.
func accumulate(items []cart.Item, catalog []menu.Item) (decimal.Decimal, int) {
	byID := make(map[string]menu.Item, len(catalog))
	for _, m := range catalog {
		byID[m.ID] = m
	}

	total := decimal.Zero
	matched := 0
	for _, it := range items {
		m, ok := byID[it.MenuItemID]
		if !ok || !m.Available {
			continue
		}
		total = total.Add(m.Price.Mul(decimal.NewFromInt(int64(it.Quantity))))
		matched += it.Quantity
	}
	return total, matched
}
