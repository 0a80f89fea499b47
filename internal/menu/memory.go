package menu

import (
	"context"
	"sync"
)

// MemoryRepo is the volatile reference implementation. It preserves
// insertion order and hands out defensive copies only.
type MemoryRepo struct {
	mu    sync.Mutex
	items []Item
	index map[string]int // id -> position in items
}

func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{index: make(map[string]int)}
}

func (r *MemoryRepo) FindAll(ctx context.Context) ([]Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Item, len(r.items))
	for i, it := range r.items {
		out[i] = copyItem(it)
	}
	return out, nil
}

func (r *MemoryRepo) FindByID(ctx context.Context, id string) (*Item, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i, ok := r.index[id]
	if !ok {
		return nil, ErrNotFound
	}
	it := copyItem(r.items[i])
	return &it, nil
}

func (r *MemoryRepo) Save(ctx context.Context, it *Item) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cp := copyItem(*it)
	if i, ok := r.index[it.ID]; ok {
		r.items[i] = cp
		return nil
	}
	r.index[it.ID] = len(r.items)
	r.items = append(r.items, cp)
	return nil
}

func (r *MemoryRepo) ToggleAvailability(ctx context.Context, id string, available bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if i, ok := r.index[id]; ok {
		r.items[i].Available = available
	}
	return nil
}

func copyItem(it Item) Item {
	it.Tags = append([]string(nil), it.Tags...)
	return it
}
