package cart

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"storefront/internal/domain"
	"storefront/internal/repository/kv"
)

type kvRepo struct {
	store kv.Store
	key   string
}

// NewKV stores the cart as a JSON array under key. Field names match carts
// written by the browser storefront.
func NewKV(store kv.Store, key string) Repository {
	if key == "" {
		key = DefaultKey
	}
	return &kvRepo{store: store, key: key}
}

func (r *kvRepo) Load(ctx context.Context) ([]domain.LineItem, error) {
	raw, err := r.store.Get(ctx, r.key)
	if err != nil {
		if kv.IsNotFound(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read cart %q: %w", r.key, err)
	}
	items, err := decode([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode cart %q: %w: %v", r.key, domain.ErrCorruptCart, err)
	}
	return items, nil
}

func (r *kvRepo) Save(ctx context.Context, items []domain.LineItem) error {
	if items == nil {
		items = []domain.LineItem{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode cart: %w", err)
	}
	if err := r.store.Set(ctx, r.key, string(data)); err != nil {
		return fmt.Errorf("write cart %q: %w", r.key, err)
	}
	return nil
}

func (r *kvRepo) Clear(ctx context.Context) error {
	if err := r.store.Delete(ctx, r.key); err != nil {
		return fmt.Errorf("delete cart %q: %w", r.key, err)
	}
	return nil
}

// decode accepts a JSON array of line item objects. A literal null counts as
// an empty cart. Entries without an id are dropped and quantities below one
// become one. Entries whose id matches an earlier one, such as 7 and "7",
// fold their quantity into the earlier line.
func decode(data []byte) ([]domain.LineItem, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	items := make([]domain.LineItem, 0, len(entries))
	for i, entry := range entries {
		var item domain.LineItem
		if err := json.Unmarshal(entry, &item); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		if item.ID.IsZero() {
			continue
		}
		if item.Quantity < 1 {
			item.Quantity = 1
		}
		if item.Quantity > domain.MaxQuantity {
			item.Quantity = domain.MaxQuantity
		}
		if j := domain.FindLine(items, item.ID); j >= 0 {
			items[j].Quantity = domain.AddQuantity(items[j].Quantity, item.Quantity)
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
