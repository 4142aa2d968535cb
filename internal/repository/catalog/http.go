package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.uber.org/zap"

	"storefront/internal/domain"
)

// maxResponseSize bounds how much of a catalog response is read.
const maxResponseSize = 10 * 1024 * 1024

// StatusError is returned for non-2xx catalog responses other than 404.
type StatusError struct {
	Path   string
	Status int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s: HTTP %d", e.Path, e.Status)
}

type httpRepo struct {
	baseURL string
	client  *http.Client
	logger  *zap.Logger
}

// NewHTTP talks to the catalog API rooted at baseURL (for example
// http://localhost:8080).
func NewHTTP(baseURL string, timeout time.Duration, logger *zap.Logger) Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &httpRepo{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger,
	}
}

func (r *httpRepo) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return listOf[domain.Product](ctx, r, "/api/productos")
}

func (r *httpRepo) GetProduct(ctx context.Context, id domain.ID) (*domain.Product, error) {
	if id.IsZero() {
		return nil, domain.ErrNotFound
	}
	body, err := r.get(ctx, "/api/productos/"+url.PathEscape(id.String()))
	if err != nil {
		return nil, err
	}
	var p domain.Product
	if err := json.Unmarshal(body, &p); err != nil {
		return nil, fmt.Errorf("decode product %s: %w", id, err)
	}
	if p.ID.IsZero() {
		return nil, domain.ErrNotFound
	}
	return &p, nil
}

func (r *httpRepo) ListByGenre(ctx context.Context, genre string) ([]domain.Product, error) {
	return listOf[domain.Product](ctx, r, "/api/productos/genero/"+url.PathEscape(genre))
}

func (r *httpRepo) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return listOf[domain.Category](ctx, r, "/api/categorias")
}

func (r *httpRepo) ListOrdersByUser(ctx context.Context, userID domain.ID) ([]domain.Order, error) {
	return listOf[domain.Order](ctx, r, "/api/pedidos/usuario/"+url.PathEscape(userID.String()))
}

// listOf decodes a JSON array element by element. Null or malformed elements
// are skipped so one bad record never hides the rest of the list.
func listOf[T any](ctx context.Context, r *httpRepo, path string) ([]T, error) {
	body, err := r.get(ctx, path)
	if err != nil {
		return nil, err
	}
	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	out := make([]T, 0, len(raw))
	for i, elem := range raw {
		if string(elem) == "null" {
			continue
		}
		var v T
		if err := json.Unmarshal(elem, &v); err != nil {
			r.logger.Warn("skipping catalog element", zap.String("path", path), zap.Int("index", i), zap.Error(err))
			continue
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *httpRepo) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, fmt.Errorf("catalog %s: read body: %w", path, err)
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("catalog %s: %w", path, domain.ErrNotFound)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &StatusError{Path: path, Status: resp.StatusCode}
	}
	return body, nil
}
