// Package order holds the order entity, its status lifecycle and the
// repository contract with in-memory and PostgreSQL implementations.
package order

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("order not found")

type Repository interface {
	// Save upserts by id: inserts an unseen id, replaces an existing one.
	Save(ctx context.Context, o *Order) error
	// FindByID returns the order or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Order, error)
	// FindByStatus returns a snapshot of all orders currently in the given
	// status, in insertion order.
	FindByStatus(ctx context.Context, st Status) ([]Order, error)
	// FindAll returns a snapshot of every order, in insertion order.
	FindAll(ctx context.Context) ([]Order, error)
	// UpdateStatus sets the status directly, bypassing the linear-transition
	// discipline of AdvanceStatus. Unknown id is a no-op.
	UpdateStatus(ctx context.Context, id string, st Status) error
}
