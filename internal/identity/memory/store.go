package memory

import (
	"context"
	"sync"

	"github.com/commercekit/storefront/internal/identity"
)

// Store is an in-memory token store for local development and tests.
type Store struct {
	mu     sync.RWMutex
	tokens map[string]identity.Principal
}

// NewStore creates an empty in-memory token store.
func NewStore() *Store {
	return &Store{tokens: make(map[string]identity.Principal)}
}

// Register maps a fixed token to a principal.
func (s *Store) Register(token string, principal identity.Principal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token] = principal
}

// Verify resolves a previously registered token.
func (s *Store) Verify(_ context.Context, token string) (*identity.Principal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	principal, ok := s.tokens[token]
	if !ok {
		return nil, identity.ErrUnauthenticated
	}
	copy := principal
	return &copy, nil
}
