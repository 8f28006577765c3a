package loader

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	apperrors "pricescan/internal/errors"
	"pricescan/pkg/contracts/domain"
)

// Loader reads price files into domain.PriceTable values.
type Loader struct {
	logger *slog.Logger
}

// New creates a loader.
func New(logger *slog.Logger) *Loader {
	return &Loader{logger: logger.With(slog.String("component", "loader"))}
}

// Load reads the file at path, dispatching on extension. It returns a
// FormatError when the file cannot be parsed as tabular data or its
// required columns cannot be located.
func (l *Loader) Load(path string) (*domain.PriceTable, error) {
	var (
		rows [][]string
		err  error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		rows, err = l.readCSV(path)
	case ".xlsx":
		rows, err = l.readXLSX(path)
	default:
		return nil, apperrors.FormatErrorf(path, "unsupported file extension %q", filepath.Ext(path))
	}
	if err != nil {
		return nil, err
	}

	return l.buildTable(path, rows)
}

// readCSV reads the raw cell grid from a CSV file.
func (l *Loader) readCSV(path string) ([][]string, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, apperrors.NewFormatError(path, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, apperrors.NewFormatError(path, err)
	}

	// Strip a UTF-8 BOM left by Excel exports.
	if len(rows) > 0 && len(rows[0]) > 0 {
		rows[0][0] = strings.TrimPrefix(rows[0][0], "\ufeff")
	}

	return rows, nil
}

// readXLSX reads the raw cell grid from the first sheet of an XLSX file
// that contains any rows.
func (l *Loader) readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewFormatError(path, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		rows, err := f.GetRows(sheet)
		if err != nil {
			continue
		}
		if len(rows) > 0 {
			l.logger.Debug("reading sheet",
				slog.String("file", path),
				slog.String("sheet", sheet),
				slog.Int("rows", len(rows)))
			return rows, nil
		}
	}

	// A workbook with only empty sheets is an empty table, not an error.
	return nil, nil
}

// buildTable resolves columns and converts the cell grid into a
// PriceTable. Rows with an unusable symbol, timestamp or price become
// warnings and are excluded.
func (l *Loader) buildTable(path string, rows [][]string) (*domain.PriceTable, error) {
	table := &domain.PriceTable{Source: path}

	rows = dropEmptyRows(rows)
	if len(rows) == 0 {
		return table, nil
	}

	columns, dataStart, err := resolveLayout(path, rows)
	if err != nil {
		return nil, err
	}

	for i := dataStart; i < len(rows); i++ {
		row := rows[i]
		rowNum := i + 1

		rec, rowErr := parseRow(path, rowNum, row, columns)
		if rowErr != nil {
			l.logger.Warn("row excluded",
				slog.String("file", path),
				slog.Int("row", rowNum),
				slog.String("reason", rowErr.Error()))
			table.Warnings = append(table.Warnings, rowErr.Error())
			continue
		}

		table.Records = append(table.Records, rec)
	}

	return table, nil
}

// resolveLayout locates the semantic columns. Files may carry a header
// row or, like the original three-column feed, no header at all; a
// headerless file is accepted when its first row already parses as a
// (symbol, timestamp, numeric price) triple.
func resolveLayout(path string, rows [][]string) (ColumnMap, int, error) {
	columns, err := ResolveColumns(rows[0])
	if err == nil {
		return columns, 1, nil
	}

	if len(rows[0]) == 3 {
		if _, priceErr := parsePrice(rows[0][2]); priceErr == nil {
			return ColumnMap{FieldSymbol: 0, FieldTimestamp: 1, FieldPrice: 2}, 0, nil
		}
	}

	return nil, 0, apperrors.NewFormatError(path, err)
}

// parseRow converts one data row. The returned error is a DataError
// describing why the row was excluded.
func parseRow(path string, rowNum int, row []string, columns ColumnMap) (domain.PriceRecord, error) {
	cell := func(field Field) string {
		idx := columns[field]
		if idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	symbol := cell(FieldSymbol)
	if symbol == "" {
		return domain.PriceRecord{}, apperrors.NewDataError(path, rowNum, errMissing("symbol"))
	}

	timestamp := cell(FieldTimestamp)
	if timestamp == "" {
		return domain.PriceRecord{}, apperrors.NewDataError(path, rowNum, errMissing("timestamp"))
	}

	raw := cell(FieldPrice)
	if raw == "" {
		return domain.PriceRecord{}, apperrors.NewDataError(path, rowNum, errMissing("price"))
	}
	price, err := parsePrice(raw)
	if err != nil {
		return domain.PriceRecord{}, apperrors.NewDataError(path, rowNum, err)
	}

	return domain.PriceRecord{Symbol: symbol, Timestamp: timestamp, Price: price}, nil
}

// parsePrice parses a price cell, tolerating thousands separators.
func parsePrice(raw string) (float64, error) {
	cleaned := strings.ReplaceAll(strings.TrimSpace(raw), ",", "")
	price, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0, &fieldError{field: "price", value: raw}
	}
	return price, nil
}

// dropEmptyRows removes rows whose cells are all blank.
func dropEmptyRows(rows [][]string) [][]string {
	var out [][]string
	for _, row := range rows {
		empty := true
		for _, cell := range row {
			if strings.TrimSpace(cell) != "" {
				empty = false
				break
			}
		}
		if !empty {
			out = append(out, row)
		}
	}
	return out
}

type fieldError struct {
	field string
	value string
}

func (e *fieldError) Error() string {
	if e.value == "" {
		return "missing " + e.field
	}
	return "invalid " + e.field + " value " + strconv.Quote(e.value)
}

func errMissing(field string) error {
	return &fieldError{field: field}
}
