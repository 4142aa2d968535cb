package cart

import (
	"context"

	"storefront/internal/domain"
)

// DefaultKey is the storage entry holding the shopper's cart.
const DefaultKey = "carrito"

// Repository persists the whole cart as one unit.
type Repository interface {
	// Load returns the persisted items, nil when nothing is stored. Text that
	// does not decode into line items yields an error wrapping
	// domain.ErrCorruptCart.
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
	Clear(ctx context.Context) error
}
