package storage

import (
	"context"
	"sync"

	"tableside/internal/domain"
)

// MemoryCartRepository is the in-memory cart backing store, used in tests
// and single-node deployments without Redis.
type MemoryCartRepository struct {
	mu    sync.Mutex
	carts map[[2]int][]domain.CartLine
}

func NewMemoryCartRepository() *MemoryCartRepository {
	return &MemoryCartRepository{carts: make(map[[2]int][]domain.CartLine)}
}

func (r *MemoryCartRepository) Get(ctx context.Context, restaurantID, tableNo int) ([]domain.CartLine, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	lines := r.carts[[2]int{restaurantID, tableNo}]
	out := make([]domain.CartLine, len(lines))
	copy(out, lines)
	return out, nil
}

func (r *MemoryCartRepository) Save(ctx context.Context, restaurantID, tableNo int, lines []domain.CartLine) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(lines) == 0 {
		delete(r.carts, [2]int{restaurantID, tableNo})
		return nil
	}
	stored := make([]domain.CartLine, len(lines))
	copy(stored, lines)
	r.carts[[2]int{restaurantID, tableNo}] = stored
	return nil
}

func (r *MemoryCartRepository) Clear(ctx context.Context, restaurantID, tableNo int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, [2]int{restaurantID, tableNo})
	return nil
}
