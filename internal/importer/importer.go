package importer

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"storefront/internal/domain"
	cartsvc "storefront/internal/service/cart"
)

type CartWriter interface {
	Add(ctx context.Context, in cartsvc.AddInput) error
}

// CSVImporter reads cart exports (id,nombre,precio,imagen,cantidad) and adds
// each row to the cart, so rows sharing an id merge into one line item.
type CSVImporter struct {
	reader *csv.Reader
	cart   CartWriter
}

func NewCSVImporter(r io.Reader, cart CartWriter) *CSVImporter {
	csvr := csv.NewReader(r)
	csvr.FieldsPerRecord = -1 // rows may have trailing commas
	csvr.TrimLeadingSpace = true
	return &CSVImporter{reader: csvr, cart: cart}
}

// Result counts what Run did with the rows of the file.
type Result struct {
	Imported int
	Skipped  int
}

// Run adds every row with an id. Rows without one are counted as skipped.
// The first storage failure stops the import.
func (i *CSVImporter) Run(ctx context.Context) (Result, error) {
	var res Result
	headers, err := i.reader.Read()
	if err != nil {
		return res, fmt.Errorf("read headers: %w", err)
	}
	index := headerIndex(headers)
	if _, ok := index["id"]; !ok {
		return res, errors.New("read headers: missing id column")
	}

	for {
		record, err := i.reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return res, fmt.Errorf("read row %d: %w", res.Imported+res.Skipped+1, err)
		}

		in := parseRow(record, index)
		if in.ID.IsZero() {
			res.Skipped++
			continue
		}
		if err := i.cart.Add(ctx, in); err != nil {
			return res, fmt.Errorf("add %s: %w", in.ID, err)
		}
		res.Imported++
	}
	return res, nil
}

func headerIndex(headers []string) map[string]int {
	idx := make(map[string]int, len(headers))
	for i, h := range headers {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return idx
}

func parseRow(record []string, index map[string]int) cartsvc.AddInput {
	return cartsvc.AddInput{
		ID:        domain.ParseID(pick(record, index, "id")),
		Name:      pick(record, index, "nombre"),
		UnitPrice: domain.AmountOf(pick(record, index, "precio")),
		ImageRef:  pick(record, index, "imagen"),
		Quantity:  cartsvc.QuantityOf(pick(record, index, "cantidad")),
	}
}

func pick(record []string, index map[string]int, key string) string {
	pos, ok := index[key]
	if !ok || pos >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[pos])
}
