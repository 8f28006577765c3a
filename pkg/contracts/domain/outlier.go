package domain

import "math"

// OutlierRecord is one flagged price point. ActualPrice always equals
// the originating PriceRecord's price exactly.
//
// PercentDeviation is NaN when SampleMean is zero: the percentage is
// undefined and the report carries an explicit NaN marker instead of a
// guessed fallback.
type OutlierRecord struct {
	Symbol           string  `json:"symbol"`
	Timestamp        string  `json:"timestamp"`
	ActualPrice      float64 `json:"actual_price"`
	SampleMean       float64 `json:"sample_mean"`
	PriceMinusMean   float64 `json:"price_minus_mean"`
	PercentDeviation float64 `json:"percent_deviation"`
}

// PercentDefined reports whether PercentDeviation carries a usable value.
func (o OutlierRecord) PercentDefined() bool {
	return !math.IsNaN(o.PercentDeviation)
}
