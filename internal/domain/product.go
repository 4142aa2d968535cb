package domain

// Product is the catalog DTO served by the storefront API. Every field may be
// absent; consumers treat zero values as "unknown".
type Product struct {
	ID          ID         `json:"id"`
	Name        string     `json:"nombre"`
	Description string     `json:"descripcion,omitempty"`
	Price       Amount     `json:"precio"`
	Stock       *int       `json:"stock,omitempty"`
	Genre       string     `json:"genero"`
	Images      string     `json:"imagenes"`
	Active      *bool      `json:"activo,omitempty"`
	Categories  []Category `json:"categorias"`
}
