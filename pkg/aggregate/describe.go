package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Stats holds count, mean, standard deviation, extremes and quartiles of a
// sample.
type Stats struct {
	Count  int
	Mean   float64
	StdDev float64
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
}

// Describe summarises values. Quartiles interpolate linearly between the
// closest ranks. An empty sample has NaN statistics.
func Describe(values []float64) Stats {
	if len(values) == 0 {
		nan := math.NaN()
		return Stats{Mean: nan, StdDev: nan, Min: nan, Q1: nan, Median: nan, Q3: nan, Max: nan}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return Stats{
		Count:  len(sorted),
		Mean:   stat.Mean(sorted, nil),
		StdDev: sampleStdDev(sorted),
		Min:    sorted[0],
		Q1:     Quantile(sorted, 0.25),
		Median: Quantile(sorted, 0.5),
		Q3:     Quantile(sorted, 0.75),
		Max:    sorted[len(sorted)-1],
	}
}

// Quantile returns the p-quantile of sorted values using linear
// interpolation between order statistics at position p·(n-1).
func Quantile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return math.NaN()
	}
	pos := p * float64(n-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	frac := pos - float64(lo)
	return sorted[lo] + (sorted[hi]-sorted[lo])*frac
}
