// Package loader reads tabular price files (CSV and XLSX) into
// domain.PriceTable values. Header names vary between feeds, so the
// three semantic columns (symbol, timestamp, price) are located through
// a declarative alias table resolved once per file. Malformed rows are
// excluded with a warning rather than failing the file.
package loader
