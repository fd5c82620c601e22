// Package aggregate derives summary tables from a transaction table: sums by
// day, ISO week and month, category breakdowns and pivots, weekday means,
// rolling trend statistics and descriptive statistics. Every function takes
// the table by value and returns a freshly built result.
package aggregate

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Bucket is one time bucket of an aggregate series.
type Bucket struct {
	Start  time.Time
	Label  string
	Amount decimal.Decimal
}

// Series is a chronologically ordered list of buckets.
type Series []Bucket

func (s Series) Floats() []float64 {
	out := make([]float64, len(s))
	for i, b := range s {
		out[i] = b.Amount.InexactFloat64()
	}
	return out
}

func (s Series) Dates() []time.Time {
	out := make([]time.Time, len(s))
	for i, b := range s {
		out[i] = b.Start
	}
	return out
}

func (s Series) Total() decimal.Decimal {
	total := decimal.Zero
	for _, b := range s {
		total = total.Add(b.Amount)
	}
	return total
}

// Labeled is a named amount such as a category total.
type Labeled struct {
	Label  string
	Amount decimal.Decimal
}

// sumBy groups amounts by key and returns the buckets sorted by start time.
func sumBy(keys map[string]*Bucket) Series {
	out := make(Series, 0, len(keys))
	for _, b := range keys {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Start.Before(out[j].Start) })
	return out
}
