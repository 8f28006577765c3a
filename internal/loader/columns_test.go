package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveColumns(t *testing.T) {
	tests := []struct {
		name    string
		header  []string
		want    ColumnMap
		wantErr bool
	}{
		{
			name:   "canonical headers",
			header: []string{"Name", "Timestamp", "Price"},
			want:   ColumnMap{FieldSymbol: 0, FieldTimestamp: 1, FieldPrice: 2},
		},
		{
			name:   "aliased headers",
			header: []string{"Ticker", "Trade Date", "Closing Price"},
			want:   ColumnMap{FieldSymbol: 0, FieldTimestamp: 1, FieldPrice: 2},
		},
		{
			name:   "case and spacing ignored",
			header: []string{"  STOCK  NAME ", "DATE", "last  price"},
			want:   ColumnMap{FieldSymbol: 0, FieldTimestamp: 1, FieldPrice: 2},
		},
		{
			name:   "decorated price header via substring",
			header: []string{"Symbol", "Date", "Price (USD)"},
			want:   ColumnMap{FieldSymbol: 0, FieldTimestamp: 1, FieldPrice: 2},
		},
		{
			name:   "shuffled column order",
			header: []string{"Close", "Company", "Datetime"},
			want:   ColumnMap{FieldSymbol: 1, FieldTimestamp: 2, FieldPrice: 0},
		},
		{
			name:   "extra columns ignored",
			header: []string{"Volume", "Name", "Open", "Timestamp", "Price"},
			want:   ColumnMap{FieldSymbol: 1, FieldTimestamp: 3, FieldPrice: 4},
		},
		{
			name:    "no price column",
			header:  []string{"Name", "Timestamp", "Volume"},
			wantErr: true,
		},
		{
			name:    "unrecognized headers",
			header:  []string{"alpha", "beta", "gamma"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveColumns(tt.header)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolveColumns_ExactMatchBeatsSubstring(t *testing.T) {
	// "Prev Price" contains the alias "price" but the exact "Price"
	// column must win.
	got, err := ResolveColumns([]string{"Name", "Date", "Prev Price", "Price"})

	require.NoError(t, err)
	assert.Equal(t, 3, got[FieldPrice])
}
