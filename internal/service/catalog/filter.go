package catalog

import (
	"strings"

	"github.com/shopspring/decimal"

	"storefront/internal/domain"
)

const (
	// DefaultOfferMaxPrice is the exclusive price ceiling of the offers page.
	DefaultOfferMaxPrice = 17000
	// DefaultRelatedLimit caps the "you may also like" row of the detail page.
	DefaultRelatedLimit = 4
)

// Criteria narrows a product list. Empty fields do not filter.
type Criteria struct {
	CategoryID string
	SearchTerm string
	Genre      string
}

func (c Criteria) normalized() Criteria {
	return Criteria{
		CategoryID: domain.ParseID(c.CategoryID).String(),
		SearchTerm: strings.ToLower(strings.TrimSpace(c.SearchTerm)),
		Genre:      strings.TrimSpace(c.Genre),
	}
}

// Filter returns the products matching every active criterion, in their
// original order. It never modifies products.
func Filter(products []domain.Product, c Criteria) []domain.Product {
	c = c.normalized()
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if matches(p, c) {
			out = append(out, p)
		}
	}
	return out
}

func matches(p domain.Product, c Criteria) bool {
	if c.CategoryID != "" && !inCategory(p, c.CategoryID) {
		return false
	}
	if c.SearchTerm != "" {
		if p.Name == "" || !strings.Contains(strings.ToLower(p.Name), c.SearchTerm) {
			return false
		}
	}
	if c.Genre != "" {
		if p.Genre == "" || !strings.EqualFold(p.Genre, c.Genre) {
			return false
		}
	}
	return true
}

func inCategory(p domain.Product, id string) bool {
	for _, cat := range p.Categories {
		if !cat.ID.IsZero() && cat.ID.String() == id {
			return true
		}
	}
	return false
}

// Offers keeps products with a known price strictly below maxPrice.
func Offers(products []domain.Product, maxPrice decimal.Decimal) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.Price.Valid() && p.Price.Decimal().LessThan(maxPrice) {
			out = append(out, p)
		}
	}
	return out
}

// Related returns up to limit products from sameGenre, skipping p itself.
func Related(sameGenre []domain.Product, p domain.Product, limit int) []domain.Product {
	out := make([]domain.Product, 0, limit)
	for _, other := range sameGenre {
		if len(out) == limit {
			break
		}
		if other.ID.IsZero() || other.ID.Equal(p.ID) {
			continue
		}
		out = append(out, other)
	}
	return out
}

// FindCategory looks a category up by id.
func FindCategory(categories []domain.Category, id string) (domain.Category, bool) {
	want := domain.ParseID(id)
	if want.IsZero() {
		return domain.Category{}, false
	}
	for _, c := range categories {
		if c.ID.Equal(want) {
			return c, true
		}
	}
	return domain.Category{}, false
}

// Title is the heading of a filtered listing.
func Title(c Criteria, category *domain.Category) string {
	title := "Catálogo Completo"
	if g := strings.TrimSpace(c.Genre); g != "" {
		title = "Colección " + strings.ToUpper(g)
	}
	if category != nil && category.Name != "" {
		title += " / " + strings.ToUpper(category.Name)
	}
	return title
}
