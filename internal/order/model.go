package order

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
	"github.com/veronosmani/CanteenOrderingSystem/internal/pricing"
)

// Status of an order. The lifecycle is strictly linear and PICKED_UP is
// terminal.
type Status string

const (
	StatusReceived  Status = "RECEIVED"
	StatusPreparing Status = "PREPARING"
	StatusReady     Status = "READY"
	StatusPickedUp  Status = "PICKED_UP"
)

var statusOrder = []Status{StatusReceived, StatusPreparing, StatusReady, StatusPickedUp}

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	for _, st := range statusOrder {
		if st == s {
			return true
		}
	}
	return false
}

// Order is the durable record of a placed purchase. Items is a snapshot
// taken at checkout; it must never alias the live cart, which is cleared
// right after placement.
type Order struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	Items      []cart.Item     `json:"items"`
	Status     Status          `json:"status"`
	PickupTime time.Time       `json:"pickup_time"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"created_at,omitempty"`
	UpdatedAt  time.Time       `json:"updated_at,omitempty"`
}

// New builds a RECEIVED order with its own copy of the cart items.
func New(id, userID string, items []cart.Item, pickup time.Time) *Order {
	return &Order{
		ID:         id,
		UserID:     userID,
		Items:      append([]cart.Item(nil), items...),
		Status:     StatusReceived,
		PickupTime: pickup,
	}
}

// AdvanceStatus moves one step along the lifecycle. In the terminal state,
// or in any state not on the lifecycle, it is a no-op: it never errors,
// never wraps around and never skips a stage.
func (o *Order) AdvanceStatus() {
	for i, st := range statusOrder {
		if st == o.Status {
			if i+1 < len(statusOrder) {
				o.Status = statusOrder[i+1]
			}
			return
		}
	}
}

// CalculateTotal delegates to the strategy, caches the result on the order
// and returns it. It is callable in any status.
func (o *Order) CalculateTotal(s pricing.Strategy, catalog []menu.Item) decimal.Decimal {
	o.Total = s.ComputeTotal(o.Items, catalog)
	return o.Total
}
