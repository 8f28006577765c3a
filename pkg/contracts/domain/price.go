package domain

// PriceRecord is a single price observation loaded from an input file.
// The timestamp is kept as the raw string from the source file: input
// feeds mix date formats and the scanner never needs calendar math, only
// faithful round-tripping into the report.
type PriceRecord struct {
	Symbol    string  `json:"symbol"`
	Timestamp string  `json:"timestamp"`
	Price     float64 `json:"price"`
}

// StockGroup holds all records for one stock symbol within one input
// file, in input row order.
type StockGroup struct {
	Symbol  string        `json:"symbol"`
	Records []PriceRecord `json:"records"`
}

// PriceTable is the in-memory form of one input file: the usable records
// in input order plus warnings for rows that were excluded during load.
type PriceTable struct {
	Source   string        `json:"source"`
	Records  []PriceRecord `json:"records"`
	Warnings []string      `json:"warnings,omitempty"`
}

// GroupBySymbol splits the table into per-symbol groups. Group order
// follows first appearance in the file; record order within a group is
// input row order.
func (t *PriceTable) GroupBySymbol() []StockGroup {
	index := make(map[string]int)
	var groups []StockGroup

	for _, rec := range t.Records {
		i, ok := index[rec.Symbol]
		if !ok {
			i = len(groups)
			index[rec.Symbol] = i
			groups = append(groups, StockGroup{Symbol: rec.Symbol})
		}
		groups[i].Records = append(groups[i].Records, rec)
	}

	return groups
}
