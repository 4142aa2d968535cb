package catalog

import (
	"context"

	"storefront/internal/domain"
)

// Repository is the read-only catalog backend the storefront consumes.
type Repository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error)
	ListByGenre(ctx context.Context, genre string) ([]domain.Product, error)
	ListCategories(ctx context.Context) ([]domain.Category, error)
	ListOrdersByUser(ctx context.Context, userID domain.ID) ([]domain.Order, error)
}
