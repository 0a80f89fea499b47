package menu

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGRepo is the durable variant of the repository contract. It keeps the
// same upsert-by-id and snapshot-read semantics as MemoryRepo.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) FindAll(ctx context.Context) ([]Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, `
		SELECT id, name, price::text, category, tags, available
		FROM menu_items
		ORDER BY seq
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Item
	for rows.Next() {
		var it Item
		if err := rows.Scan(&it.ID, &it.Name, &it.Price, &it.Category, &it.Tags, &it.Available); err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

func (r *PGRepo) FindByID(ctx context.Context, id string) (*Item, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var it Item
	err := r.db.QueryRow(ctx, `
		SELECT id, name, price::text, category, tags, available
		FROM menu_items WHERE id=$1
	`, id).Scan(&it.ID, &it.Name, &it.Price, &it.Category, &it.Tags, &it.Available)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &it, nil
}

func (r *PGRepo) Save(ctx context.Context, it *Item) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	_, err := r.db.Exec(ctx, `
		INSERT INTO menu_items (id, name, price, category, tags, available, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,NOW(),NOW())
		ON CONFLICT (id) DO UPDATE
		SET name = EXCLUDED.name,
		    price = EXCLUDED.price,
		    category = EXCLUDED.category,
		    tags = EXCLUDED.tags,
		    available = EXCLUDED.available,
		    updated_at = NOW()
	`, it.ID, it.Name, it.Price, it.Category, it.Tags, it.Available)
	return err
}

func (r *PGRepo) ToggleAvailability(ctx context.Context, id string, available bool) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Unknown id is a deliberate no-op, so the affected-row count is ignored.
	_, err := r.db.Exec(ctx, `
		UPDATE menu_items SET available=$2, updated_at=NOW() WHERE id=$1
	`, id, available)
	return err
}
