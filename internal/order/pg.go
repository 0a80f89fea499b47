package order

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
)

// PGRepo is the durable variant of the repository contract. Orders and their
// item snapshots live in two tables; Save replaces both atomically so the
// upsert-by-id semantics of MemoryRepo carry over.
type PGRepo struct{ db *pgxpool.Pool }

func NewPGRepo(db *pgxpool.Pool) *PGRepo { return &PGRepo{db: db} }

func (r *PGRepo) Save(ctx context.Context, o *Order) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `
		INSERT INTO orders (id, user_id, status, pickup_time, total, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,NOW(),NOW())
		ON CONFLICT (id) DO UPDATE
		SET user_id = EXCLUDED.user_id,
		    status = EXCLUDED.status,
		    pickup_time = EXCLUDED.pickup_time,
		    total = EXCLUDED.total,
		    updated_at = NOW()
	`, o.ID, o.UserID, string(o.Status), o.PickupTime, o.Total); err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM order_items WHERE order_id=$1`, o.ID); err != nil {
		return err
	}
	for _, it := range o.Items {
		if _, err := tx.Exec(ctx, `
			INSERT INTO order_items (order_id, menu_item_id, quantity)
			VALUES ($1,$2,$3)
		`, o.ID, it.MenuItemID, it.Quantity); err != nil {
			return err
		}
	}
	return tx.Commit(ctx)
}

func (r *PGRepo) FindByID(ctx context.Context, id string) (*Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	var o Order
	err := r.db.QueryRow(ctx, `
		SELECT id, user_id, status, pickup_time, total::text, created_at, updated_at
		FROM orders WHERE id=$1
	`, id).Scan(&o.ID, &o.UserID, &o.Status, &o.PickupTime, &o.Total, &o.CreatedAt, &o.UpdatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	items, err := r.loadItems(ctx, id)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *PGRepo) FindByStatus(ctx context.Context, st Status) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, status, pickup_time, total::text, created_at, updated_at
		FROM orders WHERE status=$1 ORDER BY seq
	`, string(st))
}

func (r *PGRepo) FindAll(ctx context.Context) ([]Order, error) {
	return r.list(ctx, `
		SELECT id, user_id, status, pickup_time, total::text, created_at, updated_at
		FROM orders ORDER BY seq
	`)
}

func (r *PGRepo) UpdateStatus(ctx context.Context, id string, st Status) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	// Unknown id is a deliberate no-op, so the affected-row count is ignored.
	_, err := r.db.Exec(ctx, `
		UPDATE orders SET status=$2, updated_at=NOW() WHERE id=$1
	`, id, string(st))
	return err
}

func (r *PGRepo) list(ctx context.Context, query string, args ...any) ([]Order, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		var o Order
		if err := rows.Scan(&o.ID, &o.UserID, &o.Status, &o.PickupTime, &o.Total, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range out {
		items, err := r.loadItems(ctx, out[i].ID)
		if err != nil {
			return nil, err
		}
		out[i].Items = items
	}
	return out, nil
}

func (r *PGRepo) loadItems(ctx context.Context, orderID string) ([]cart.Item, error) {
	rows, err := r.db.Query(ctx, `
		SELECT menu_item_id, quantity
		FROM order_items WHERE order_id=$1 ORDER BY seq
	`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []cart.Item
	for rows.Next() {
		var it cart.Item
		if err := rows.Scan(&it.MenuItemID, &it.Quantity); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}
