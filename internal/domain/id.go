package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// ID identifies a catalog entity (product, category, order). The catalog API emits numbers, older
// persisted carts and URL parameters carry strings; both normalize to the same text.
type ID struct {
	value   string
	numeric bool
}

// NumericID builds an id from an integer.
func NumericID(n int64) ID {
	return ID{value: strconv.FormatInt(n, 10), numeric: true}
}

// ParseID reads an id from text. Integer text becomes a numeric id.
func ParseID(s string) ID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ID{}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return NumericID(n)
	}
	return ID{value: s}
}

func (id ID) IsZero() bool { return id.value == "" }

func (id ID) String() string { return id.value }

// Equal reports whether both ids name the same entity.
func (id ID) Equal(other ID) bool {
	return id.value == other.value
}

func (id ID) MarshalJSON() ([]byte, error) {
	if id.value == "" {
		return []byte("null"), nil
	}
	if id.numeric {
		return []byte(id.value), nil
	}
	return json.Marshal(id.value)
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ID{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID{value: strings.TrimSpace(s)}
		return nil
	default:
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return fmt.Errorf("product id: %w", err)
		}
		if i, err := n.Int64(); err == nil {
			*id = NumericID(i)
			return nil
		}
		*id = ID{value: n.String(), numeric: true}
		return nil
	}
}
