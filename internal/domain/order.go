package domain

// Order is a past purchase as listed by the order history API.
type Order struct {
	ID            ID            `json:"id"`
	Date          string        `json:"fecha"`
	Total         Amount        `json:"total"`
	Net           Amount        `json:"neto"`
	Tax           Amount        `json:"iva"`
	CustomerName  string        `json:"nombreCliente,omitempty"`
	CustomerEmail string        `json:"emailCliente,omitempty"`
	Details       []OrderDetail `json:"detalles"`
}

type OrderDetail struct {
	Product   *Product `json:"producto"`
	Quantity  int      `json:"cantidad"`
	UnitPrice Amount   `json:"precioUnitario"`
}

// ProductName falls back to a removed-product label when the catalog no longer has the product.
func (d OrderDetail) ProductName() string {
	if d.Product == nil || d.Product.Name == "" {
		return "Producto eliminado"
	}
	return d.Product.Name
}
