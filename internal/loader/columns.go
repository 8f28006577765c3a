package loader

import (
	"fmt"
	"strings"
)

// Field is a canonical semantic column.
type Field string

const (
	FieldSymbol    Field = "symbol"
	FieldTimestamp Field = "timestamp"
	FieldPrice     Field = "price"
)

// columnAliases maps each canonical field to the header spellings seen
// across the supported feeds. Matching is case and whitespace
// insensitive; exact alias matches win over substring matches.
var columnAliases = map[Field][]string{
	FieldSymbol:    {"name", "stock", "stock name", "symbol", "ticker", "company", "company name", "code"},
	FieldTimestamp: {"timestamp", "time", "date", "datetime", "trade date"},
	FieldPrice:     {"price", "close", "closing price", "last", "last price", "actual price"},
}

// requiredFields must all resolve for a file to be loadable.
var requiredFields = []Field{FieldSymbol, FieldTimestamp, FieldPrice}

// ColumnMap holds the resolved column index per canonical field.
type ColumnMap map[Field]int

// ResolveColumns matches a header row against the alias table and
// returns the column index per canonical field. It fails when any of the
// three required fields cannot be located.
func ResolveColumns(header []string) (ColumnMap, error) {
	normalized := make([]string, len(header))
	for i, h := range header {
		normalized[i] = normalizeHeader(h)
	}

	columns := make(ColumnMap)

	// Exact alias matches first so e.g. "price" beats "prev price".
	for _, field := range requiredFields {
		for i, h := range normalized {
			if h == "" || columnTaken(columns, i) {
				continue
			}
			for _, alias := range columnAliases[field] {
				if h == alias {
					columns[field] = i
					break
				}
			}
			if _, ok := columns[field]; ok {
				break
			}
		}
	}

	// Substring fallback for decorated headers like "Price (USD)".
	for _, field := range requiredFields {
		if _, ok := columns[field]; ok {
			continue
		}
		for i, h := range normalized {
			if h == "" || columnTaken(columns, i) {
				continue
			}
			for _, alias := range columnAliases[field] {
				if strings.Contains(h, alias) {
					columns[field] = i
					break
				}
			}
			if _, ok := columns[field]; ok {
				break
			}
		}
	}

	var missing []string
	for _, field := range requiredFields {
		if _, ok := columns[field]; !ok {
			missing = append(missing, string(field))
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("could not locate required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}

func columnTaken(columns ColumnMap, idx int) bool {
	for _, i := range columns {
		if i == idx {
			return true
		}
	}
	return false
}

func normalizeHeader(h string) string {
	return strings.Join(strings.Fields(strings.ToLower(h)), " ")
}
