// Package outlier implements the sampled z-score rule at the heart of
// the scanner. Each price point is judged against a random
// without-replacement sample of its own stock's records: the point is an
// outlier when its absolute deviation from the sample mean exceeds a
// fixed multiple of the sample's population standard deviation.
//
// The randomness source is injected so tests (and parallel callers) can
// control it; re-running with the default source legitimately produces
// different samples and therefore potentially different outlier sets.
package outlier
