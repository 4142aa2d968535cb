package format

import (
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"storefront/internal/domain"
)

const (
	// DefaultLocale matches the storefront's Chilean peso display.
	DefaultLocale = "es-CL"
	// PriceUnknown is shown whenever a price is missing or not a number.
	PriceUnknown = "$?"

	maxFractionDigits = 3
)

// PriceFormatter renders amounts with the grouping rules of a locale.
type PriceFormatter struct {
	printer *message.Printer
	point   string
}

// NewPriceFormatter falls back to DefaultLocale when locale does not parse.
func NewPriceFormatter(locale string) *PriceFormatter {
	tag, err := language.Parse(strings.TrimSpace(locale))
	if err != nil {
		tag = language.MustParse(DefaultLocale)
	}
	p := message.NewPrinter(tag)
	return &PriceFormatter{printer: p, point: strings.Trim(p.Sprintf("%.1f", 1.5), "15")}
}

var maxInt = decimal.NewFromInt(math.MaxInt64)

var defaultFormatter = NewPriceFormatter(DefaultLocale)

// FormatPrice formats v with DefaultLocale.
func FormatPrice(v any) string {
	return defaultFormatter.Format(v)
}

// Format accepts anything domain.AmountOf understands and never fails.
func (f *PriceFormatter) Format(v any) string {
	a := domain.AmountOf(v)
	if !a.Valid() {
		return PriceUnknown
	}
	d := a.Decimal().Round(maxFractionDigits)
	abs := d.Abs()
	if abs.GreaterThan(maxInt) {
		return PriceUnknown
	}
	out := f.printer.Sprintf("%d", abs.IntPart())
	if !abs.IsInteger() {
		fixed := abs.String()
		out += f.point + fixed[strings.IndexByte(fixed, '.')+1:]
	}
	if d.IsNegative() {
		out = "-" + out
	}
	return out
}
