package cart

import (
	"context"
	"log/slog"
	"time"

	"github.com/commercekit/storefront/internal/orders/domain"
)

// Service wraps the cart store with logging and timestamp maintenance.
// It doubles as the CartClearer collaborator the order engine consumes.
type Service struct {
	store  Store
	logger *slog.Logger
}

// NewService wires the cart store.
func NewService(store Store, logger *slog.Logger) *Service {
	return &Service{store: store, logger: logger}
}

// Get returns the caller's cart.
func (s *Service) Get(ctx context.Context, owner string) (*Cart, error) {
	return s.store.Get(ctx, owner)
}

// Put replaces the caller's cart contents.
func (s *Service) Put(ctx context.Context, owner string, items []domain.OrderItem) (*Cart, error) {
	cart := Cart{
		Owner:     owner,
		Items:     items,
		UpdatedAt: time.Now().UTC(),
	}
	if err := s.store.Upsert(ctx, cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Clear drops the owner's cart. Clearing an absent cart succeeds, so
// repeated clears (pay then deliver a COD order) never error.
func (s *Service) Clear(ctx context.Context, owner string) error {
	if err := s.store.Delete(ctx, owner); err != nil {
		return err
	}
	s.logger.DebugContext(ctx, "cart cleared", "owner", owner)
	return nil
}
