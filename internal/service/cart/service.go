package cart

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"storefront/internal/domain"
	"storefront/internal/notify"
	cartrepo "storefront/internal/repository/cart"
)

// Service owns the shopper's cart. Every mutation is a read-modify-write of
// the whole persisted cart followed, once the write succeeded, by exactly one
// change notification.
type Service struct {
	mu        sync.Mutex
	repo      cartrepo.Repository
	publisher notify.Publisher
	logger    *zap.Logger
}

func New(repo cartrepo.Repository, publisher notify.Publisher, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, publisher: publisher, logger: logger}
}

// AddInput describes the product being added. Quantity is the delta to add.
type AddInput struct {
	ID        domain.ID     `json:"id"`
	Name      string        `json:"nombre"`
	UnitPrice domain.Amount `json:"precio"`
	ImageRef  string        `json:"imagen"`
	Quantity  int           `json:"cantidad"`
}

// Load returns the current cart. Missing, unreadable or corrupt state reads
// as an empty cart. Mutations never start from an unreadable cart.
func (s *Service) Load(ctx context.Context) []domain.LineItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(ctx)
}

// Add merges in into the cart. An input without an id is ignored.
func (s *Service) Add(ctx context.Context, in AddInput) error {
	if in.ID.IsZero() {
		s.logger.Debug("ignoring cart add", zap.Error(domain.ErrInvalidItem), zap.String("name", in.Name))
		return nil
	}
	qty := QuantityOf(in.Quantity)
	return s.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, error) {
		if i := domain.FindLine(items, in.ID); i >= 0 {
			items[i].Quantity = domain.AddQuantity(items[i].Quantity, qty)
			return items, nil
		}
		name := strings.TrimSpace(in.Name)
		if name == "" {
			name = domain.DefaultItemName
		}
		return append(items, domain.LineItem{
			ID:        in.ID,
			Name:      name,
			UnitPrice: in.UnitPrice,
			ImageRef:  in.ImageRef,
			Quantity:  qty,
		}), nil
	})
}

// RemoveWhere drops every line matching pred and persists the rest.
func (s *Service) RemoveWhere(ctx context.Context, pred func(domain.LineItem) bool) error {
	return s.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, error) {
		kept := items[:0]
		for _, item := range items {
			if !pred(item) {
				kept = append(kept, item)
			}
		}
		return kept, nil
	})
}

func (s *Service) Remove(ctx context.Context, id domain.ID) error {
	return s.RemoveWhere(ctx, func(item domain.LineItem) bool { return item.ID.Equal(id) })
}

// SetQuantity replaces the quantity of the line for id. A quantity below one
// removes the line. Unknown ids return domain.ErrNotFound.
func (s *Service) SetQuantity(ctx context.Context, id domain.ID, qty int) error {
	return s.mutate(ctx, func(items []domain.LineItem) ([]domain.LineItem, error) {
		i := domain.FindLine(items, id)
		if i < 0 {
			return nil, domain.ErrNotFound
		}
		if qty < 1 {
			return append(items[:i], items[i+1:]...), nil
		}
		items[i].Quantity = qty
		return items, nil
	})
}

// Clear empties the cart, as done once an order is placed.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	err := s.repo.Clear(ctx)
	s.mu.Unlock()
	if err != nil {
		return s.storageFailure("clear", err)
	}
	s.publish(ctx)
	return nil
}

// Summary loads the cart and computes its totals.
func (s *Service) Summary(ctx context.Context) Summary {
	return Summarize(s.Load(ctx))
}

func (s *Service) mutate(ctx context.Context, fn func([]domain.LineItem) ([]domain.LineItem, error)) error {
	s.mu.Lock()
	current, err := s.repo.Load(ctx)
	switch {
	case errors.Is(err, domain.ErrCorruptCart):
		s.logger.Warn("discarding corrupt cart", zap.Error(err))
		current = []domain.LineItem{}
	case err != nil:
		s.mu.Unlock()
		return s.storageFailure("load", err)
	case current == nil:
		current = []domain.LineItem{}
	}
	items, err := fn(current)
	if err != nil {
		s.mu.Unlock()
		return err
	}
	err = s.repo.Save(ctx, items)
	s.mu.Unlock()
	if err != nil {
		return s.storageFailure("save", err)
	}
	s.publish(ctx)
	return nil
}

func (s *Service) load(ctx context.Context) []domain.LineItem {
	items, err := s.repo.Load(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrCorruptCart) {
			s.logger.Warn("discarding corrupt cart", zap.Error(err))
		} else {
			s.logger.Error("read cart", zap.Error(err))
		}
		return []domain.LineItem{}
	}
	if items == nil {
		return []domain.LineItem{}
	}
	return items
}

func (s *Service) storageFailure(op string, err error) error {
	s.logger.Error("cart storage", zap.String("op", op), zap.Error(err))
	return fmt.Errorf("%s cart: %w: %w", op, domain.ErrStorageUnavailable, err)
}

func (s *Service) publish(ctx context.Context) {
	if s.publisher != nil {
		s.publisher.Publish(ctx)
	}
}

// QuantityOf reads a loosely typed quantity. Anything that is not a positive
// whole number becomes 1.
func QuantityOf(v any) int {
	var n int64
	switch x := v.(type) {
	case int:
		n = int64(x)
	case int64:
		n = x
	case float64:
		if x != float64(int64(x)) {
			return 1
		}
		n = int64(x)
	case string:
		parsed, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		if err != nil {
			return 1
		}
		n = parsed
	default:
		return 1
	}
	if n < 1 || n > int64(domain.MaxQuantity) {
		return 1
	}
	return int(n)
}
