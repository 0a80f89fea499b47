// Package checkout wires a cart, a pricing strategy, the repositories and
// the status subject into the order-placement flow.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
	"github.com/veronosmani/CanteenOrderingSystem/internal/menu"
	"github.com/veronosmani/CanteenOrderingSystem/internal/notify"
	"github.com/veronosmani/CanteenOrderingSystem/internal/order"
	"github.com/veronosmani/CanteenOrderingSystem/internal/pricing"
)

var ErrEmptyCart = errors.New("cart is empty")

// DefaultPickupDelay is applied when the caller selects no pickup time.
const DefaultPickupDelay = 30 * time.Minute

type Service struct {
	menu    menu.Repository
	orders  order.Repository
	subject *notify.Subject
	now     func() time.Time
}

func NewService(m menu.Repository, o order.Repository, s *notify.Subject) *Service {
	return &Service{menu: m, orders: o, subject: s, now: time.Now}
}

// WithClock overrides the clock; tests use it to pin pickup defaults.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

// PlaceOrder snapshots the cart into a new RECEIVED order, prices it with
// the given strategy against the current menu, persists it, broadcasts the
// initial status and clears the cart. A zero pickup time defaults to
// now + DefaultPickupDelay.
func (s *Service) PlaceOrder(ctx context.Context, userID string, c *cart.Cart, strat pricing.Strategy, pickup time.Time) (*order.Order, error) {
	items := c.Items()
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}
	if pickup.IsZero() {
		pickup = s.now().Add(DefaultPickupDelay)
	}

	catalog, err := s.menu.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load menu: %w", err)
	}

	o := order.New(uuid.NewString(), userID, items, pickup)
	o.CalculateTotal(strat, catalog)

	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.subject.Notify(o.ID, o.Status)
	c.Clear()
	return o, nil
}

// AdvanceOrder moves an order one step along its lifecycle, persists the
// result and broadcasts the (possibly unchanged, when terminal) status.
func (s *Service) AdvanceOrder(ctx context.Context, id string) (*order.Order, error) {
	o, err := s.orders.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	o.AdvanceStatus()
	if err := s.orders.Save(ctx, o); err != nil {
		return nil, fmt.Errorf("save order: %w", err)
	}
	s.subject.Notify(o.ID, o.Status)
	return o, nil
}
