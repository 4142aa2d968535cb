package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount is a price as received from the catalog. An invalid Amount stands for
// a missing or non-numeric price and must never be rendered as a number.
type Amount struct {
	value decimal.Decimal
	valid bool
}

func NewAmount(n int64) Amount {
	return Amount{value: decimal.NewFromInt(n), valid: true}
}

func AmountFromDecimal(d decimal.Decimal) Amount {
	return Amount{value: d, valid: true}
}

// AmountOf converts loosely typed input. Unsupported or non-numeric input yields an invalid Amount.
func AmountOf(v any) Amount {
	switch x := v.(type) {
	case Amount:
		return x
	case *Amount:
		if x == nil {
			return Amount{}
		}
		return *x
	case decimal.Decimal:
		return AmountFromDecimal(x)
	case int:
		return NewAmount(int64(x))
	case int32:
		return NewAmount(int64(x))
	case int64:
		return NewAmount(x)
	case float32:
		return amountFromFloat(float64(x))
	case float64:
		return amountFromFloat(x)
	case json.Number:
		return parseAmount(x.String())
	case string:
		return parseAmount(x)
	default:
		return Amount{}
	}
}

func amountFromFloat(f float64) Amount {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Amount{}
	}
	return AmountFromDecimal(decimal.NewFromFloat(f))
}

func parseAmount(s string) Amount {
	s = strings.TrimSpace(s)
	if s == "" {
		return Amount{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Amount{}
	}
	return AmountFromDecimal(d)
}

func (a Amount) Valid() bool { return a.valid }

// Decimal returns the value, or zero for an invalid Amount.
func (a Amount) Decimal() decimal.Decimal {
	if !a.valid {
		return decimal.Zero
	}
	return a.value
}

func (a Amount) String() string {
	if !a.valid {
		return ""
	}
	return a.value.String()
}

func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.valid {
		return []byte("null"), nil
	}
	return []byte(a.value.String()), nil
}

func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*a = parseAmount(s)
		return nil
	}
	if data[0] == '{' || data[0] == '[' || data[0] == 't' || data[0] == 'f' {
		*a = Amount{}
		return nil
	}
	*a = parseAmount(string(data))
	return nil
}
