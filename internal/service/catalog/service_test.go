package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/internal/domain"
)

type stubRepo struct {
	products      []domain.Product
	productsErr   error
	categories    []domain.Category
	categoriesErr error
	product       *domain.Product
	productErr    error
	genre         []domain.Product
	genreErr      error
	orders        []domain.Order
	lastGenre     string
	lastUserID    domain.ID
}

func (s *stubRepo) ListProducts(context.Context) ([]domain.Product, error) {
	return s.products, s.productsErr
}

func (s *stubRepo) GetProduct(_ context.Context, _ domain.ID) (*domain.Product, error) {
	return s.product, s.productErr
}

func (s *stubRepo) ListByGenre(_ context.Context, genre string) ([]domain.Product, error) {
	s.lastGenre = genre
	return s.genre, s.genreErr
}

func (s *stubRepo) ListCategories(context.Context) ([]domain.Category, error) {
	return s.categories, s.categoriesErr
}

func (s *stubRepo) ListOrdersByUser(_ context.Context, userID domain.ID) ([]domain.Order, error) {
	s.lastUserID = userID
	return s.orders, nil
}

func TestServiceBrowse(t *testing.T) {
	repo := &stubRepo{
		products:   sampleProducts(t),
		categories: []domain.Category{{ID: domain.NumericID(3), Name: "Poleras"}},
	}
	svc := New(repo, decimal.Zero, nil)

	listing, err := svc.Browse(context.Background(), Criteria{CategoryID: "3"})
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "3", "5"}, ids(listing.Products))
	require.NotNil(t, listing.Category)
	assert.Equal(t, "Catálogo Completo / POLERAS", listing.Title)
}

func TestServiceBrowseFailsWhenEitherSourceFails(t *testing.T) {
	svc := New(&stubRepo{products: sampleProducts(t), categoriesErr: errors.New("down")}, decimal.Zero, nil)
	_, err := svc.Browse(context.Background(), Criteria{})
	assert.ErrorContains(t, err, "list categories")
}

func TestServiceOffersUsesConfiguredCeiling(t *testing.T) {
	svc := New(&stubRepo{products: sampleProducts(t)}, decimal.NewFromInt(10000), nil)
	got, err := svc.Offers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids(got))
}

func TestServiceDetail(t *testing.T) {
	products := sampleProducts(t)
	repo := &stubRepo{product: &products[0], genre: products}
	svc := New(repo, decimal.Zero, nil)

	d, err := svc.Detail(context.Background(), domain.NumericID(1))
	require.NoError(t, err)
	assert.Equal(t, "Hombre", repo.lastGenre)
	assert.Equal(t, []string{"2", "3", "4", "5"}, ids(d.Related))

	repo.genreErr = errors.New("timeout")
	d, err = svc.Detail(context.Background(), domain.NumericID(1))
	require.NoError(t, err)
	assert.Empty(t, d.Related)

	repo.productErr = domain.ErrNotFound
	repo.product = nil
	_, err = svc.Detail(context.Background(), domain.NumericID(1))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestServiceOrders(t *testing.T) {
	repo := &stubRepo{orders: []domain.Order{{ID: domain.NumericID(10)}}}
	svc := New(repo, decimal.Zero, nil)

	orders, err := svc.Orders(context.Background(), domain.ParseID("5"))
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, "5", repo.lastUserID.String())

	_, err = svc.Orders(context.Background(), domain.ID{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
