package aggregate

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

const monthLabel = "2006-01"

// Daily sums amounts per calendar day. Days without transactions are absent.
func Daily(t models.Table) Series {
	return group(t, func(tx models.Transaction) (time.Time, string) {
		return tx.Date, tx.Date.Format(models.DateLayout)
	})
}

// Weekly sums amounts per ISO week (Monday to Sunday). Buckets start on the
// Monday and are labelled YYYY-Www with the ISO year.
func Weekly(t models.Table) Series {
	return group(t, func(tx models.Transaction) (time.Time, string) {
		year, week := tx.Date.ISOWeek()
		return weekStart(tx.Date), fmt.Sprintf("%04d-W%02d", year, week)
	})
}

// Monthly sums amounts per calendar month. Months without transactions are absent.
func Monthly(t models.Table) Series {
	return group(t, func(tx models.Transaction) (time.Time, string) {
		m := tx.Month()
		return m, m.Format(monthLabel)
	})
}

// MonthlyContinuous is Monthly with every month between the first and last
// transaction present, empty months holding zero. Buckets are dated at the
// last day of their month, the convention forecasts are reported in.
func MonthlyContinuous(t models.Table) Series {
	sparse := Monthly(t)
	if len(sparse) == 0 {
		return Series{}
	}
	byMonth := make(map[string]decimal.Decimal, len(sparse))
	for _, b := range sparse {
		byMonth[b.Label] = b.Amount
	}

	first, last := sparse[0].Start, sparse[len(sparse)-1].Start
	var out Series
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		label := m.Format(monthLabel)
		amount, ok := byMonth[label]
		if !ok {
			amount = decimal.Zero
		}
		out = append(out, Bucket{Start: MonthEnd(m), Label: label, Amount: amount})
	}
	return out
}

// ByCategory sums amounts per category, sorted by category name.
func ByCategory(t models.Table) []Labeled {
	sums := map[string]decimal.Decimal{}
	t.Each(func(tx models.Transaction) {
		sums[tx.Category] = sums[tx.Category].Add(tx.Amount)
	})
	out := make([]Labeled, 0, len(sums))
	for k, v := range sums {
		out = append(out, Labeled{Label: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Label < out[j].Label })
	return out
}

// MonthEnd returns the last calendar day of the month containing d.
func MonthEnd(d time.Time) time.Time {
	return time.Date(d.Year(), d.Month()+1, 0, 0, 0, 0, 0, time.UTC)
}

func weekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	return time.Date(d.Year(), d.Month(), d.Day()-offset, 0, 0, 0, 0, time.UTC)
}

func group(t models.Table, key func(models.Transaction) (time.Time, string)) Series {
	buckets := map[string]*Bucket{}
	t.Each(func(tx models.Transaction) {
		start, label := key(tx)
		b, ok := buckets[label]
		if !ok {
			b = &Bucket{Start: start, Label: label, Amount: decimal.Zero}
			buckets[label] = b
		}
		b.Amount = b.Amount.Add(tx.Amount)
	})
	return sumBy(buckets)
}
