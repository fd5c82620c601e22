package aggregate

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"

	"github.com/yurifrl/spendcast/pkg/models"
)

// TrendWindow is the number of trailing months in the rolling statistics.
const TrendWindow = 3

// TrendRow is one month of the trend analysis.
type TrendRow struct {
	Bucket
	RollingMean   float64
	RollingMedian float64
	// Volatility is the sample standard deviation of the individual
	// transaction amounts recorded in the month, not of the monthly totals.
	Volatility float64
	MoMChange  float64
}

// Trend computes rolling mean and median over the monthly totals, the
// per-month volatility of transaction amounts and the month-over-month
// percentage change (zero for the first month).
func Trend(t models.Table) []TrendRow {
	monthly := Monthly(t)
	values := monthly.Floats()
	means := RollingMean(values, TrendWindow)
	medians := RollingMedian(values, TrendWindow)
	changes := PercentChange(values)

	amounts := map[string][]float64{}
	t.Each(func(tx models.Transaction) {
		label := tx.Month().Format(monthLabel)
		amounts[label] = append(amounts[label], tx.AmountFloat())
	})

	out := make([]TrendRow, len(monthly))
	for i, b := range monthly {
		out[i] = TrendRow{
			Bucket:        b,
			RollingMean:   means[i],
			RollingMedian: medians[i],
			Volatility:    sampleStdDev(amounts[b.Label]),
			MoMChange:     changes[i],
		}
	}
	return out
}

// RollingMean is the trailing mean over window values; positions before the
// first full window are NaN.
func RollingMean(values []float64, window int) []float64 {
	return rolling(values, window, func(w []float64) float64 { return stat.Mean(w, nil) })
}

// RollingMedian is the trailing median over window values; positions before
// the first full window are NaN.
func RollingMedian(values []float64, window int) []float64 {
	return rolling(values, window, median)
}

// PercentChange returns 100·(v[i]-v[i-1])/v[i-1], with the first entry
// defined as zero.
func PercentChange(values []float64) []float64 {
	out := make([]float64, len(values))
	for i := 1; i < len(values); i++ {
		out[i] = (values[i] - values[i-1]) / values[i-1] * 100
	}
	return out
}

func rolling(values []float64, window int, fn func([]float64) float64) []float64 {
	out := make([]float64, len(values))
	for i := range values {
		if window <= 0 || i+1 < window {
			out[i] = math.NaN()
			continue
		}
		out[i] = fn(values[i+1-window : i+1])
	}
	return out
}

func median(values []float64) float64 {
	if len(values) == 0 {
		return math.NaN()
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return sorted[mid]
	}
	return (sorted[mid-1] + sorted[mid]) / 2
}

func sampleStdDev(values []float64) float64 {
	if len(values) < 2 {
		return math.NaN()
	}
	return stat.StdDev(values, nil)
}
