package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/commercekit/storefront/internal/identity"
)

const keyPrefix = "storefront:session:"

// Store keeps issued session tokens in Redis. Each token maps to the
// serialized principal and expires after the configured TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore constructs a Redis-backed token store.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	return &Store{client: client, ttl: ttl}
}

// Issue creates a fresh opaque token for the principal.
func (s *Store) Issue(ctx context.Context, principal identity.Principal) (string, error) {
	token := uuid.NewString()

	payload, err := json.Marshal(principal)
	if err != nil {
		return "", fmt.Errorf("marshal principal: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session token: %w", err)
	}

	return token, nil
}

// Verify resolves a token back to its principal. Unknown and expired tokens
// both surface as ErrUnauthenticated.
func (s *Store) Verify(ctx context.Context, token string) (*identity.Principal, error) {
	data, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, identity.ErrUnauthenticated
	}
	if err != nil {
		return nil, fmt.Errorf("load session token: %w", err)
	}

	var principal identity.Principal
	if err := json.Unmarshal(data, &principal); err != nil {
		return nil, fmt.Errorf("unmarshal principal: %w", err)
	}

	return &principal, nil
}

// Revoke drops a token, logging the session out everywhere.
func (s *Store) Revoke(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("revoke session token: %w", err)
	}
	return nil
}
