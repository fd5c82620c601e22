package forecast

import (
	"math"
	"time"
)

// DefaultLagDepth is the number of preceding months used as features.
const DefaultLagDepth = 12

// LaggedRow is one supervised-learning example built from a monthly series.
// Lags[i] holds the value i+1 periods before Date.
type LaggedRow struct {
	Index  int
	Date   time.Time
	Target float64
	Lags   []float64
}

// BuildLagged turns a series into rows whose features are the lag preceding
// values. The first lag periods have an incomplete window and are dropped,
// leaving len(values)-lag rows.
func BuildLagged(dates []time.Time, values []float64, lag int) ([]LaggedRow, error) {
	if lag < 1 {
		lag = DefaultLagDepth
	}
	if len(values) < lag+1 {
		return nil, &InsufficientHistoryError{What: "lagged features", Have: len(values), Need: lag + 1}
	}
	rows := make([]LaggedRow, 0, len(values)-lag)
	for t := lag; t < len(values); t++ {
		lags := make([]float64, lag)
		for i := range lags {
			lags[i] = values[t-1-i]
		}
		var date time.Time
		if t < len(dates) {
			date = dates[t]
		}
		rows = append(rows, LaggedRow{Index: t, Date: date, Target: values[t], Lags: lags})
	}
	return rows, nil
}

// Split is a chronological train/test partition of lagged rows.
type Split struct {
	Train []LaggedRow
	Test  []LaggedRow
}

// SplitChronological keeps the leading rows for training and the trailing
// ceil(testFraction·n) rows for evaluation. Rows are never reordered.
func SplitChronological(rows []LaggedRow, testFraction float64) (Split, error) {
	n := len(rows)
	nTest := int(math.Ceil(testFraction * float64(n)))
	if nTest < 1 {
		nTest = 1
	}
	if n-nTest < 1 {
		return Split{}, &InsufficientHistoryError{What: "train/test split", Have: n, Need: nTest + 1}
	}
	return Split{Train: rows[:n-nTest], Test: rows[n-nTest:]}, nil
}

// Matrix returns the features and targets of rows.
func Matrix(rows []LaggedRow) (x [][]float64, y []float64) {
	x = make([][]float64, len(rows))
	y = make([]float64, len(rows))
	for i, r := range rows {
		x[i] = r.Lags
		y[i] = r.Target
	}
	return x, y
}

// LatestWindow returns the lag most recent values, newest first, which is
// the feature vector for predicting the period after the series ends.
func LatestWindow(values []float64, lag int) ([]float64, error) {
	if len(values) < lag {
		return nil, &InsufficientHistoryError{What: "forecast window", Have: len(values), Need: lag}
	}
	window := make([]float64, lag)
	for i := range window {
		window[i] = values[len(values)-1-i]
	}
	return window, nil
}
