package order

import (
	"context"
	"sync"

	"github.com/veronosmani/CanteenOrderingSystem/internal/cart"
)

// MemoryRepo is the volatile reference implementation. Insertion order is
// preserved so listings stay deterministic.
type MemoryRepo struct {
	mu     sync.Mutex
	orders []Order
	index  map[string]int // id -> position in orders
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[string]int)}
}

func (r *MemoryRepo) Save(ctx context.Context, o *Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyOrder(*o)
	if i, ok := r.index[o.ID]; ok {
		r.orders[i] = cp
		return nil
	}
	r.index[o.ID] = len(r.orders)
	r.orders = append(r.orders, cp)
	return nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	o := copyOrder(r.orders[i])
	return &o, nil
}

func (r *MemoryRepo) FindByStatus(ctx context.Context, st Status) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Order{}
	for _, o := range r.orders {
		if o.Status == st {
			out = append(out, copyOrder(o))
		}
	}
	return out, nil
}

func (r *MemoryRepo) FindAll(ctx context.Context) ([]Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Order, len(r.orders))
	for i, o := range r.orders {
		out[i] = copyOrder(o)
	}
	return out, nil
}

func (r *MemoryRepo) UpdateStatus(ctx context.Context, id string, st Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[id]; ok {
		r.orders[i].Status = st
	}
	return nil
}

func copyOrder(o Order) Order {
	o.Items = append([]cart.Item(nil), o.Items...)
	return o
}
