package catalog

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"storefront/internal/domain"
	catalogrepo "storefront/internal/repository/catalog"
)

type Service struct {
	repo          catalogrepo.Repository
	offerMaxPrice decimal.Decimal
	logger        *zap.Logger
}

func New(repo catalogrepo.Repository, offerMaxPrice decimal.Decimal, logger *zap.Logger) *Service {
	if !offerMaxPrice.IsPositive() {
		offerMaxPrice = decimal.NewFromInt(DefaultOfferMaxPrice)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, offerMaxPrice: offerMaxPrice, logger: logger}
}

// Listing is one page of the product catalog.
type Listing struct {
	Title      string            `json:"titulo"`
	Products   []domain.Product  `json:"productos"`
	Categories []domain.Category `json:"categorias"`
	Category   *domain.Category  `json:"categoria,omitempty"`
}

// Detail is a product with a few others of the same genre.
type Detail struct {
	Product domain.Product   `json:"producto"`
	Related []domain.Product `json:"relacionados"`
}

// Browse loads products and categories together and applies c.
func (s *Service) Browse(ctx context.Context, c Criteria) (*Listing, error) {
	var (
		products   []domain.Product
		categories []domain.Category
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		products, err = s.repo.ListProducts(gctx)
		if err != nil {
			return fmt.Errorf("list products: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		categories, err = s.repo.ListCategories(gctx)
		if err != nil {
			return fmt.Errorf("list categories: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	listing := &Listing{
		Products:   Filter(products, c),
		Categories: categories,
	}
	if cat, ok := FindCategory(categories, c.CategoryID); ok {
		listing.Category = &cat
	}
	listing.Title = Title(c, listing.Category)
	return listing, nil
}

func (s *Service) Offers(ctx context.Context) ([]domain.Product, error) {
	products, err := s.repo.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return Offers(products, s.offerMaxPrice), nil
}

// Detail returns the product and up to DefaultRelatedLimit related products.
// A failing related lookup leaves the related list empty.
func (s *Service) Detail(ctx context.Context, id domain.ID) (*Detail, error) {
	p, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	d := &Detail{Product: *p, Related: []domain.Product{}}
	if p.Genre == "" {
		return d, nil
	}
	sameGenre, err := s.repo.ListByGenre(ctx, p.Genre)
	if err != nil {
		s.logger.Warn("load related products", zap.String("genre", p.Genre), zap.Error(err))
		return d, nil
	}
	d.Related = Related(sameGenre, *p, DefaultRelatedLimit)
	return d, nil
}

func (s *Service) Product(ctx context.Context, id domain.ID) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

func (s *Service) Orders(ctx context.Context, userID domain.ID) ([]domain.Order, error) {
	if userID.IsZero() {
		return nil, domain.ErrNotFound
	}
	return s.repo.ListOrdersByUser(ctx, userID)
}
