// Package menu provides the catalog entity and the repository contract with
// in-memory and PostgreSQL implementations.
package menu

import (
	"context"
	"errors"
)

var ErrNotFound = errors.New("menu item not found")

type Repository interface {
	// FindAll returns a snapshot copy of the whole catalog.
	FindAll(ctx context.Context) ([]Item, error)
	// FindByID returns the item or ErrNotFound.
	FindByID(ctx context.Context, id string) (*Item, error)
	// Save upserts by id: inserts an unseen id, replaces an existing one.
	Save(ctx context.Context, it *Item) error
	// ToggleAvailability flips the availability flag; unknown id is a no-op.
	ToggleAvailability(ctx context.Context, id string, available bool) error
}
