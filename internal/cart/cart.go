// Package cart holds the per-session shopping cart. The cart is
// menu-agnostic: it never checks ids against the catalog, so cart mutation
// stays decoupled from catalog lookups.
package cart

import "sync"

// Item is one cart line. At most one Item per menu item id exists in a cart.
type Item struct {
	MenuItemID string `json:"menu_item_id"`
	Quantity   int    `json:"quantity"`
}

// Cart is created empty at session start, cleared after a successful
// checkout and never persisted. The mutex covers the HTTP layer serving
// requests on multiple goroutines.
type Cart struct {
	mu    sync.Mutex
	items []Item
}

func New() *Cart { return &Cart{} }

// AddItem merges by menu item id: an existing line has its quantity
// incremented, otherwise a new line is appended. qty <= 0 is a no-op.
func (c *Cart) AddItem(menuItemID string, qty int) {
	if qty <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.items {
		if c.items[i].MenuItemID == menuItemID {
			c.items[i].Quantity += qty
			return
		}
	}
	c.items = append(c.items, Item{MenuItemID: menuItemID, Quantity: qty})
}

// RemoveItem drops every line with the given id. Removing an absent id is a
// no-op, so the call is idempotent.
func (c *Cart) RemoveItem(menuItemID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	kept := c.items[:0]
	for _, it := range c.items {
		if it.MenuItemID != menuItemID {
			kept = append(kept, it)
		}
	}
	c.items = kept
}

// Items returns a snapshot copy; mutating it does not affect the cart.
func (c *Cart) Items() []Item {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Item(nil), c.items...)
}

func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}
