package httpserver

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/format"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
	catalogrepo "storefront/internal/repository/catalog"
	"storefront/internal/repository/kv"
	cartsvc "storefront/internal/service/cart"
	catalogsvc "storefront/internal/service/catalog"
)

type stubCatalogService struct {
	product    *domain.Product
	productErr error
	listing    *catalogsvc.Listing
	lastCrit   catalogsvc.Criteria
	offersErr  error
}

func (s *stubCatalogService) Browse(_ context.Context, c catalogsvc.Criteria) (*catalogsvc.Listing, error) {
	s.lastCrit = c
	return s.listing, nil
}

func (s *stubCatalogService) Offers(context.Context) ([]domain.Product, error) {
	return []domain.Product{}, s.offersErr
}

func (s *stubCatalogService) Detail(_ context.Context, _ domain.ID) (*catalogsvc.Detail, error) {
	if s.productErr != nil {
		return nil, s.productErr
	}
	return &catalogsvc.Detail{Product: *s.product, Related: []domain.Product{}}, nil
}

func (s *stubCatalogService) Product(_ context.Context, _ domain.ID) (*domain.Product, error) {
	return s.product, s.productErr
}

func (s *stubCatalogService) Orders(_ context.Context, _ domain.ID) ([]domain.Order, error) {
	return []domain.Order{}, nil
}

type testEnv struct {
	router  *gin.Engine
	store   kv.Store
	bus     *notify.Notifier
	catalog *stubCatalogService
}

func newTestEnv(t *testing.T, quota int) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := kv.NewMemory(quota)
	bus := notify.New(nil)
	catalog := &stubCatalogService{
		product: &domain.Product{
			ID:     domain.NumericID(7),
			Name:   "Cap",
			Price:  domain.NewAmount(5000),
			Images: "/api/archivos/cap.jpg, cap2.jpg",
		},
		listing: &catalogsvc.Listing{Title: "Catálogo Completo"},
	}
	router, err := buildRouter(zap.NewNop(), Deps{
		CartSvc:    cartsvc.New(cartrepo.NewKV(store, ""), bus, nil),
		CatalogSvc: catalog,
		Events:     bus,
		Prices:     format.NewPriceFormatter("en"),
		Images:     format.NewImageResolver("http://backend.test", ""),
		Storage:    store.(kv.Pinger),
	})
	require.NoError(t, err)
	return &testEnv{router: router, store: store, bus: bus, catalog: catalog}
}

func (e *testEnv) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeSummary(t *testing.T, rec *httptest.ResponseRecorder) cartsvc.Summary {
	t.Helper()
	var s cartsvc.Summary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &s))
	return s
}

func TestBuildRouterRequiresServices(t *testing.T) {
	_, err := buildRouter(zap.NewNop(), Deps{})
	assert.Error(t, err)
}

func TestHealthAndReady(t *testing.T) {
	env := newTestEnv(t, 0)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/healthz", "").Code)
	assert.Equal(t, http.StatusOK, env.do(http.MethodGet, "/readyz", "").Code)
}

func TestCartLifecycle(t *testing.T) {
	env := newTestEnv(t, 0)

	rec := env.do(http.MethodPost, "/cart/items", `{"id":7,"nombre":"Cap","precio":5000,"imagen":"/img/cap.jpg","cantidad":2}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s := decodeSummary(t, rec)
	require.Len(t, s.Items, 1)
	assert.Equal(t, 2, s.Items[0].Quantity)

	rec = env.do(http.MethodPost, "/cart/items", `{"id":"7","nombre":"Cap","precio":5000,"cantidad":"x"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	s = decodeSummary(t, rec)
	assert.Equal(t, 3, s.Items[0].Quantity)
	assert.Equal(t, 3, s.Count)
	assert.Equal(t, "15000", s.Total.String())

	rec = env.do(http.MethodPut, "/cart/items/7", `{"cantidad":5}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, decodeSummary(t, rec).Items[0].Quantity)

	rec = env.do(http.MethodDelete, "/cart/items/7", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSummary(t, rec).Items)
}

func TestAddItemWithoutIDIsIgnored(t *testing.T) {
	env := newTestEnv(t, 0)
	rec := env.do(http.MethodPost, "/cart/items", `{"nombre":"incompleto"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, decodeSummary(t, rec).Items)
}

func TestAddItemBadJSON(t *testing.T) {
	env := newTestEnv(t, 0)
	rec := env.do(http.MethodPost, "/cart/items", `{"id":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSetQuantityErrors(t *testing.T) {
	env := newTestEnv(t, 0)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPut, "/cart/items/99", `{"cantidad":1}`).Code)
	assert.Equal(t, http.StatusBadRequest, env.do(http.MethodPut, "/cart/items/99", `{"cantidad":"muchos"}`).Code)
}

func TestAddProductResolvesImage(t *testing.T) {
	env := newTestEnv(t, 0)

	rec := env.do(http.MethodPost, "/cart/products/7", `{"cantidad":1,"imageIndex":0}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	s := decodeSummary(t, rec)
	require.Len(t, s.Items, 1)
	assert.Equal(t, "http://backend.test/api/archivos/cap.jpg", s.Items[0].ImageRef)
	assert.Equal(t, "Cap", s.Items[0].Name)

	env.catalog.productErr = domain.ErrNotFound
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodPost, "/cart/products/8", "").Code)
}

func TestStorageFailureReturns503(t *testing.T) {
	env := newTestEnv(t, 8)
	rec := env.do(http.MethodPost, "/cart/items", `{"id":1,"nombre":"Chaqueta","cantidad":1}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t, 0)
	env.do(http.MethodPost, "/cart/items", `{"id":1}`)

	assert.Equal(t, http.StatusNoContent, env.do(http.MethodDelete, "/cart", "").Code)
	assert.Empty(t, decodeSummary(t, env.do(http.MethodGet, "/cart", "")).Items)
}

func TestBrowsePassesQuery(t *testing.T) {
	env := newTestEnv(t, 0)
	rec := env.do(http.MethodGet, "/products?categoriaId=3&buscar=shi&genero=mujer", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, catalogsvc.Criteria{CategoryID: "3", SearchTerm: "shi", Genre: "mujer"}, env.catalog.lastCrit)
}

func TestCatalogErrors(t *testing.T) {
	env := newTestEnv(t, 0)
	env.catalog.offersErr = errors.New("catalog down")
	assert.Equal(t, http.StatusInternalServerError, env.do(http.MethodGet, "/offers", "").Code)

	env.catalog.productErr = domain.ErrNotFound
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/products/1", "").Code)

	env.catalog.productErr = fmt.Errorf("load product: %w", &catalogrepo.StatusError{Path: "/api/productos/1", Status: http.StatusInternalServerError})
	assert.Equal(t, http.StatusBadGateway, env.do(http.MethodGet, "/products/1", "").Code)
}

func TestFormatEndpoints(t *testing.T) {
	env := newTestEnv(t, 0)

	var body map[string]string
	rec := env.do(http.MethodGet, "/format/price?value=1000", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "1,000", body["text"])

	rec = env.do(http.MethodGet, "/format/price?value=abc", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, format.PriceUnknown, body["text"])

	rec = env.do(http.MethodGet, "/format/images/remove?raw=a.jpg,b.jpg,c.jpg&url=b.jpg", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a.jpg,c.jpg", body["raw"])

	rec = env.do(http.MethodGet, "/format/images/append?raw=a.jpg&url=/api/n.jpg", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "a.jpg,/api/n.jpg", body["raw"])
}

func TestFormatImageCarousel(t *testing.T) {
	env := newTestEnv(t, 0)

	tests := []struct {
		query string
		url   string
		index float64
	}{
		{query: "raw=a.jpg,b.jpg&index=1", url: "/b.jpg", index: 1},
		{query: "raw=a.jpg,b.jpg,c.jpg&index=2&step=next", url: "/a.jpg", index: 0},
		{query: "raw=a.jpg,b.jpg,c.jpg&index=0&step=prev", url: "/c.jpg", index: 2},
		{query: "raw=a.jpg&index=5", url: "/a.jpg", index: 0},
		{query: "step=next", url: format.DefaultPlaceholder, index: 0},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := env.do(http.MethodGet, "/format/image?"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			var body map[string]any
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.url, body["url"])
			assert.Equal(t, tt.index, body["index"])
		})
	}
}

func TestProductDetailGallery(t *testing.T) {
	env := newTestEnv(t, 0)
	rec := env.do(http.MethodGet, "/products/7", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Product domain.Product `json:"producto"`
		Gallery []string       `json:"galeria"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Cap", body.Product.Name)
	assert.Equal(t, []string{"http://backend.test/api/archivos/cap.jpg", "/cap2.jpg"}, body.Gallery)

	env.catalog.product.Images = ""
	rec = env.do(http.MethodGet, "/products/7", "")
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, []string{format.DefaultPlaceholder}, body.Gallery)
}

func TestCartEventsStreamsAndUnsubscribes(t *testing.T) {
	env := newTestEnv(t, 0)
	srv := httptest.NewServer(env.router)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/cart/events", nil)
	require.NoError(t, err)
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/event-stream")

	require.Eventually(t, func() bool { return env.bus.Len() == 1 }, time.Second, 10*time.Millisecond)

	rec := env.do(http.MethodPost, "/cart/items", `{"id":1}`)
	require.Equal(t, http.StatusOK, rec.Code)

	lines := make(chan string, 16)
	go func() {
		scanner := bufio.NewScanner(resp.Body)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
		close(lines)
	}()

	deadline := time.After(2 * time.Second)
	for found := false; !found; {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed before cartUpdated")
			found = strings.HasPrefix(line, "event:") && strings.Contains(line, "cartUpdated")
		case <-deadline:
			t.Fatal("no cartUpdated event received")
		}
	}

	cancel()
	assert.Eventually(t, func() bool { return env.bus.Len() == 0 }, 2*time.Second, 10*time.Millisecond)
}
