package seed

import (
	"context"
	"fmt"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type CartWriter interface {
	Add(ctx context.Context, in cartsvc.AddInput) error
}

var demoItems = []cartsvc.AddInput{
	{ID: domain.NumericID(1), Name: "Polera Básica", UnitPrice: domain.NewAmount(9990), ImageRef: "/img/polera.jpg", Quantity: 2},
	{ID: domain.NumericID(2), Name: "Jeans Slim", UnitPrice: domain.NewAmount(24990), ImageRef: "/img/jeans.jpg", Quantity: 1},
	{ID: domain.NumericID(7), Name: "Cap", UnitPrice: domain.NewAmount(5000), ImageRef: "/img/cap.jpg", Quantity: 1},
}

// Apply adds demo line items for manual testing. Running it again increases
// their quantities, as repeated adds do.
func Apply(ctx context.Context, cart CartWriter) (int, error) {
	for i, item := range demoItems {
		if err := cart.Add(ctx, item); err != nil {
			return i, fmt.Errorf("add demo item %s: %w", item.ID, err)
		}
	}
	return len(demoItems), nil
}
