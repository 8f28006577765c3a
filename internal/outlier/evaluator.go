package outlier

import (
	"math"
	"math/rand"
	"time"

	"gonum.org/v1/gonum/stat"

	"pricescan/pkg/contracts/domain"
)

// Params are the two knobs of the detection rule.
type Params struct {
	// SampleSize is the number of peer records drawn per evaluated row.
	SampleSize int
	// Threshold is the outlier boundary in sample standard deviations.
	Threshold float64
}

// DefaultParams returns the classic 30-point / 2-sigma rule.
func DefaultParams() Params {
	return Params{SampleSize: 30, Threshold: 2}
}

// Evaluator classifies price points within one stock group. It holds an
// instance-local rng, so give each concurrent worker its own Evaluator.
type Evaluator struct {
	params Params
	rng    *rand.Rand
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithRandSource fixes the sampling source, making Evaluate
// deterministic. Used by tests and by callers that need reproducibility.
func WithRandSource(src rand.Source) Option {
	return func(e *Evaluator) {
		e.rng = rand.New(src)
	}
}

// NewEvaluator creates an evaluator. Zero or negative Params fields fall
// back to the defaults.
func NewEvaluator(params Params, opts ...Option) *Evaluator {
	if params.SampleSize <= 0 {
		params.SampleSize = DefaultParams().SampleSize
	}
	if params.Threshold <= 0 {
		params.Threshold = DefaultParams().Threshold
	}

	e := &Evaluator{
		params: params,
		rng:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Params returns the evaluator's configured parameters.
func (e *Evaluator) Params() Params {
	return e.params
}

// Evaluate classifies every record in the group and returns the flagged
// ones in input row order. For each record a fresh sample of up to
// SampleSize prices is drawn from the whole group without replacement; a
// group at or below SampleSize is used in full, so small groups never
// fail. An empty group yields an empty result.
func (e *Evaluator) Evaluate(group domain.StockGroup) []domain.OutlierRecord {
	var outliers []domain.OutlierRecord

	for _, rec := range group.Records {
		sample := e.samplePrices(group.Records)
		if out, flagged := Classify(rec, sample, e.params.Threshold); flagged {
			outliers = append(outliers, out)
		}
	}

	return outliers
}

// Classify judges a single record against a fixed sample of prices.
// Given the same sample it is fully deterministic; only the sampling in
// Evaluate is stochastic.
//
// The standard deviation is the population standard deviation, not the
// Bessel-corrected sample form. When the sample has zero variance any
// nonzero deviation is flagged. PercentDeviation is NaN when the sample
// mean is zero.
func Classify(rec domain.PriceRecord, sample []float64, threshold float64) (domain.OutlierRecord, bool) {
	if len(sample) == 0 {
		return domain.OutlierRecord{}, false
	}

	mean := stat.Mean(sample, nil)
	std := stat.PopStdDev(sample, nil)

	diff := rec.Price - mean
	deviation := math.Abs(diff)

	flagged := deviation > threshold*std
	if std == 0 {
		flagged = deviation > 0
	}
	if !flagged {
		return domain.OutlierRecord{}, false
	}

	percent := math.NaN()
	if mean != 0 {
		percent = diff / mean * 100
	}

	return domain.OutlierRecord{
		Symbol:           rec.Symbol,
		Timestamp:        rec.Timestamp,
		ActualPrice:      rec.Price,
		SampleMean:       mean,
		PriceMinusMean:   diff,
		PercentDeviation: percent,
	}, true
}

// samplePrices draws up to SampleSize prices from records without
// replacement via a partial Fisher-Yates shuffle over an index slice.
func (e *Evaluator) samplePrices(records []domain.PriceRecord) []float64 {
	n := len(records)
	if n <= e.params.SampleSize {
		prices := make([]float64, n)
		for i, rec := range records {
			prices[i] = rec.Price
		}
		return prices
	}

	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}

	prices := make([]float64, e.params.SampleSize)
	for i := 0; i < e.params.SampleSize; i++ {
		j := i + e.rng.Intn(n-i)
		idx[i], idx[j] = idx[j], idx[i]
		prices[i] = records[idx[i]].Price
	}
	return prices
}
