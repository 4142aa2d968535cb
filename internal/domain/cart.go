package domain

import "github.com/shopspring/decimal"

// DefaultItemName labels line items whose product had no name.
const DefaultItemName = "Producto"

// LineItem is one product-and-quantity entry of the cart. JSON names match
// carts already persisted by the storefront.
type LineItem struct {
	ID        ID     `json:"id"`
	Name      string `json:"nombre"`
	UnitPrice Amount `json:"precio"`
	ImageRef  string `json:"imagen"`
	Quantity  int    `json:"cantidad"`
}

// Subtotal is unit price times quantity; zero when the price is unknown.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.UnitPrice.Decimal().Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// FindLine returns the index of the line for id, or -1.
func FindLine(items []LineItem, id ID) int {
	for i, item := range items {
		if item.ID.Equal(id) {
			return i
		}
	}
	return -1
}

// MaxQuantity bounds the quantity of a single line.
const MaxQuantity = int(^uint32(0) >> 1)

// AddQuantity adds delta to current, saturating at MaxQuantity.
func AddQuantity(current, delta int) int {
	if delta > 0 && current > MaxQuantity-delta {
		return MaxQuantity
	}
	return current + delta
}
