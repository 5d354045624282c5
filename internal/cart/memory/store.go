package memory

import (
	"context"
	"sync"

	"github.com/commercekit/storefront/internal/cart"
)

// Store is an in-memory cart store for local development and tests.
type Store struct {
	mu    sync.RWMutex
	carts map[string]cart.Cart
}

// NewStore creates an empty in-memory cart store.
func NewStore() *Store {
	return &Store{carts: make(map[string]cart.Cart)}
}

// Get fetches the owner's cart.
func (s *Store) Get(_ context.Context, owner string) (*cart.Cart, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.carts[owner]
	if !ok {
		return nil, cart.ErrNotFound
	}
	copy := c
	return &copy, nil
}

// Upsert replaces the owner's cart.
func (s *Store) Upsert(_ context.Context, c cart.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.carts[c.Owner] = c
	return nil
}

// Delete removes the owner's cart; absent carts are ignored.
func (s *Store) Delete(_ context.Context, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, owner)
	return nil
}
