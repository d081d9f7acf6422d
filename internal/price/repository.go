package price

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrNotFound = errors.New("price not found")
)

type Repository interface {
	// GetPrice returns the price of the first product named name, ErrNotFound
	// when there is none, or another error when the lookup itself failed.
	GetPrice(ctx context.Context, name string) (Price, error)
	// ListByNames returns the priced rows for every name that has one, in the
	// order the names were given, each name once.
	ListByNames(ctx context.Context, names []string) ([]PricedItem, error)
}

// InMemoryRepository is a simple in-memory implementation useful for tests and
// running the page without a database.
type InMemoryRepository struct {
	mu     sync.RWMutex
	prices map[string]Price

	// Err, when set, is returned from every lookup to simulate an outage.
	Err error
}

func NewInMemoryRepository(seed map[string]Price) *InMemoryRepository {
	r := &InMemoryRepository{prices: make(map[string]Price, len(seed))}
	for name, p := range seed {
		r.prices[name] = p
	}
	return r
}

func (r *InMemoryRepository) GetPrice(_ context.Context, name string) (Price, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return "", r.Err
	}
	p, ok := r.prices[name]
	if !ok {
		return "", ErrNotFound
	}
	return p, nil
}

func (r *InMemoryRepository) ListByNames(_ context.Context, names []string) ([]PricedItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.Err != nil {
		return nil, r.Err
	}
	out := make([]PricedItem, 0, len(names))
	seen := map[string]bool{}
	for _, name := range names {
		if seen[name] {
			continue
		}
		seen[name] = true
		if p, ok := r.prices[name]; ok {
			out = append(out, PricedItem{Product: name, Price: p})
		}
	}
	return out, nil
}

// Set stores or replaces the price for name.
func (r *InMemoryRepository) Set(name string, p Price) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prices[name] = p
}
