package identity

import (
	"context"
	"errors"
)

// Principal is the authenticated identity behind a request.
type Principal struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

var (
	// ErrUnauthenticated is returned for a missing, unknown, or expired credential.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrForbidden is returned when the principal lacks the required role.
	ErrForbidden = errors.New("forbidden")
)

// Verifier resolves an opaque bearer token into a Principal.
type Verifier interface {
	Verify(ctx context.Context, token string) (*Principal, error)
}

type contextKey struct{}

// WithPrincipal stores the principal on the request context.
func WithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, contextKey{}, p)
}

// FromContext returns the principal placed by the authentication middleware.
func FromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(contextKey{}).(Principal)
	return p, ok
}
