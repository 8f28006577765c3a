package exporter

import (
	"encoding/csv"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"pricescan/pkg/contracts/domain"
)

var sampleOutliers = []domain.OutlierRecord{
	{
		Symbol:           "TSLA",
		Timestamp:        "2024-01-30",
		ActualPrice:      1000,
		SampleMean:       130,
		PriceMinusMean:   870,
		PercentDeviation: 669.2307692307693,
	},
	{
		Symbol:           "ZERO",
		Timestamp:        "2024-01-31",
		ActualPrice:      5,
		SampleMean:       0,
		PriceMinusMean:   5,
		PercentDeviation: math.NaN(),
	},
}

func TestWrite_CSVReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nyse_outliers.csv")

	require.NoError(t, NewReportWriter(30).Write(path, sampleOutliers))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "\xef\xbb\xbf"), "report should start with a UTF-8 BOM")

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xef\xbb\xbf")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)

	require.Len(t, rows, 3)
	assert.Equal(t, []string{
		"Name", "Timestamp", "Actual Price",
		"Mean of 30 Selected Datapoints", "Price-Mean", "% Deviation",
	}, rows[0])
	assert.Equal(t, []string{"TSLA", "2024-01-30", "1000", "130", "870", "669.2307692307693"}, rows[1])
	assert.Equal(t, "NaN", rows[2][5], "undefined percent deviation must be an explicit marker")
}

func TestWrite_HeaderOnlyWhenNoOutliers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty_outliers.csv")

	require.NoError(t, NewReportWriter(30).Write(path, nil))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	reader := csv.NewReader(strings.NewReader(strings.TrimPrefix(string(raw), "\xef\xbb\xbf")))
	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
}

func TestWrite_XLSXReport(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lse_outliers.xlsx")

	require.NoError(t, NewReportWriter(30).Write(path, sampleOutliers))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Outliers")
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "Mean of 30 Selected Datapoints", rows[0][3])
	assert.Equal(t, "TSLA", rows[1][0])
	assert.Equal(t, "1000", rows[1][2])
	assert.Equal(t, "NaN", rows[2][5])
}

func TestHeader_SampleSizeInMeanColumn(t *testing.T) {
	assert.Equal(t, "Mean of 15 Selected Datapoints", NewReportWriter(15).Header()[3])
}

func TestFormatFloat(t *testing.T) {
	assert.Equal(t, "1000", formatFloat(1000))
	assert.Equal(t, "130.5", formatFloat(130.5))
	assert.Equal(t, "NaN", formatFloat(math.NaN()))
	assert.Equal(t, "-0.25", formatFloat(-0.25))
}
