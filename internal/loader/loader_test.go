package loader

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apperrors "pricescan/internal/errors"
	"pricescan/pkg/contracts/domain"
)

func newTestLoader() *Loader {
	return New(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func writeCSV(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_CSVWithHeaders(t *testing.T) {
	path := writeCSV(t, "prices.csv", "Name,Timestamp,Price\nAAPL,2024-01-02,185.5\nAAPL,2024-01-03,187.2\nMSFT,2024-01-02,390\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 3)
	assert.Empty(t, table.Warnings)
	assert.Equal(t, domain.PriceRecord{Symbol: "AAPL", Timestamp: "2024-01-02", Price: 185.5}, table.Records[0])
	assert.Equal(t, domain.PriceRecord{Symbol: "MSFT", Timestamp: "2024-01-02", Price: 390}, table.Records[2])
}

func TestLoad_HeaderlessThreeColumnCSV(t *testing.T) {
	// The original feed format: no header row, columns are positional.
	path := writeCSV(t, "feed.csv", "AAPL,2024-01-02,185.5\nAAPL,2024-01-03,187.2\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "AAPL", table.Records[0].Symbol)
	assert.Equal(t, 185.5, table.Records[0].Price)
}

func TestLoad_AliasedHeaders(t *testing.T) {
	path := writeCSV(t, "feed.csv", "Ticker,Trade Date,Closing Price\nGOOG,2024-02-01,\"1,505.25\"\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 1)
	assert.Equal(t, domain.PriceRecord{Symbol: "GOOG", Timestamp: "2024-02-01", Price: 1505.25}, table.Records[0])
}

func TestLoad_MalformedRowsExcludedWithWarning(t *testing.T) {
	path := writeCSV(t, "feed.csv",
		"Name,Timestamp,Price\nAAPL,2024-01-02,185.5\nAAPL,2024-01-03,N/A\n,2024-01-04,190\nAAPL,,191\nAAPL,2024-01-05,192\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, 185.5, table.Records[0].Price)
	assert.Equal(t, 192.0, table.Records[1].Price)

	require.Len(t, table.Warnings, 3)
	assert.Contains(t, table.Warnings[0], `invalid price value "N/A"`)
	assert.Contains(t, table.Warnings[1], "missing symbol")
	assert.Contains(t, table.Warnings[2], "missing timestamp")
}

func TestLoad_UnrecognizedHeadersIsFormatError(t *testing.T) {
	path := writeCSV(t, "feed.csv", "alpha,beta,gamma,delta\na,b,c,d\n")

	_, err := newTestLoader().Load(path)

	require.Error(t, err)
	assert.True(t, apperrors.IsFormatError(err))
}

func TestLoad_EmptyFile(t *testing.T) {
	path := writeCSV(t, "empty.csv", "")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	assert.Empty(t, table.Records)
	assert.Empty(t, table.Warnings)
}

func TestLoad_HeaderOnlyFile(t *testing.T) {
	path := writeCSV(t, "header.csv", "Name,Timestamp,Price\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	assert.Empty(t, table.Records)
}

func TestLoad_BOMPrefixedCSV(t *testing.T) {
	path := writeCSV(t, "bom.csv", "\ufeffName,Timestamp,Price\nAAPL,2024-01-02,185.5\n")

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 1)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeCSV(t, "feed.txt", "whatever")

	_, err := newTestLoader().Load(path)

	require.Error(t, err)
	assert.True(t, apperrors.IsFormatError(err))
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := newTestLoader().Load(filepath.Join(t.TempDir(), "nope.csv"))

	require.Error(t, err)
	assert.True(t, apperrors.IsFormatError(err))
}

func TestLoad_XLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prices.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Timestamp", "Price"},
		{"AAPL", "2024-01-02", 185.5},
		{"AAPL", "2024-01-03", "bad"},
		{"MSFT", "2024-01-02", 390},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	table, err := newTestLoader().Load(path)

	require.NoError(t, err)
	require.Len(t, table.Records, 2)
	assert.Equal(t, "AAPL", table.Records[0].Symbol)
	assert.Equal(t, 185.5, table.Records[0].Price)
	assert.Equal(t, 390.0, table.Records[1].Price)
	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0], "invalid price")
}

func TestGroupBySymbol(t *testing.T) {
	table := &domain.PriceTable{
		Records: []domain.PriceRecord{
			{Symbol: "A", Timestamp: "1", Price: 1},
			{Symbol: "B", Timestamp: "1", Price: 2},
			{Symbol: "A", Timestamp: "2", Price: 3},
		},
	}

	groups := table.GroupBySymbol()

	require.Len(t, groups, 2)
	assert.Equal(t, "A", groups[0].Symbol)
	require.Len(t, groups[0].Records, 2)
	assert.Equal(t, "2", groups[0].Records[1].Timestamp)
	assert.Equal(t, "B", groups[1].Symbol)
}
