package cart

import (
	"context"
	"errors"
	"time"

	"github.com/commercekit/storefront/internal/orders/domain"
)

// Cart is the per-user staging area of selected items prior to checkout.
// The owner is the document key; a user has at most one cart.
type Cart struct {
	Owner     string             `json:"owner" bson:"owner"`
	Items     []domain.OrderItem `json:"items" bson:"items"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updated_at"`
}

// ErrNotFound is returned when the user has no cart document.
var ErrNotFound = errors.New("cart not found")

// Store persists cart documents keyed by owner. Delete on an absent owner
// is a no-op, which makes the order engine's cart clearing idempotent.
type Store interface {
	Get(ctx context.Context, owner string) (*Cart, error)
	Upsert(ctx context.Context, cart Cart) error
	Delete(ctx context.Context, owner string) error
}
