package cart

import (
	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

// taxRate is the IVA included in every displayed price.
var taxRate = decimal.RequireFromString("1.19")

// Summary is what the cart page and the checkout confirmation show.
type Summary struct {
	Items []domain.LineItem `json:"items"`
	Count int               `json:"count"`
	Total domain.Amount     `json:"total"`
	Net   domain.Amount     `json:"neto"`
	Tax   domain.Amount     `json:"iva"`
}

// Summarize totals items. Lines with an unknown price count toward Count but
// not toward Total.
func Summarize(items []domain.LineItem) Summary {
	if items == nil {
		items = []domain.LineItem{}
	}
	total := decimal.Zero
	count := 0
	for _, item := range items {
		count += item.Quantity
		if item.UnitPrice.Valid() {
			total = total.Add(item.Subtotal())
		}
	}
	net := total.Div(taxRate).Round(0)
	return Summary{
		Items: items,
		Count: count,
		Total: domain.AmountFromDecimal(total),
		Net:   domain.AmountFromDecimal(net),
		Tax:   domain.AmountFromDecimal(total.Sub(net)),
	}
}
