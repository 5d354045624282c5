package ports

import "context"

// CartClearer is the slice of the cart collaborator the order lifecycle
// consumes: payment confirmation and COD delivery empty the owner's cart.
// Clear must be idempotent; clearing an absent cart is not an error.
type CartClearer interface {
	Clear(ctx context.Context, owner string) error
}
