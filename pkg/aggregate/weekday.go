package aggregate

import (
	"math"

	"github.com/shopspring/decimal"
	"gonum.org/v1/gonum/stat"

	"github.com/yurifrl/spendcast/pkg/models"
)

// WeekdayValue is one row of a Monday-to-Sunday table.
type WeekdayValue struct {
	Day   string
	Value float64
	Count int
}

// DayOfWeekMean returns the mean amount per weekday, always seven rows from
// Monday to Sunday. A weekday with no transactions has a NaN mean.
func DayOfWeekMean(t models.Table) []WeekdayValue {
	amounts := byWeekday(t)
	out := make([]WeekdayValue, len(models.Weekdays))
	for i, day := range models.Weekdays {
		v := math.NaN()
		if len(amounts[day]) > 0 {
			v = stat.Mean(amounts[day], nil)
		}
		out[i] = WeekdayValue{Day: day, Value: v, Count: len(amounts[day])}
	}
	return out
}

// DayOfWeekTotal returns the summed amount per weekday, Monday to Sunday.
// Unlike the mean, an empty weekday totals zero.
func DayOfWeekTotal(t models.Table) []WeekdayValue {
	sums := map[string]decimal.Decimal{}
	counts := map[string]int{}
	t.Each(func(tx models.Transaction) {
		day := tx.DayOfWeek()
		sums[day] = sums[day].Add(tx.Amount)
		counts[day]++
	})
	out := make([]WeekdayValue, len(models.Weekdays))
	for i, day := range models.Weekdays {
		out[i] = WeekdayValue{Day: day, Value: sums[day].InexactFloat64(), Count: counts[day]}
	}
	return out
}

func byWeekday(t models.Table) map[string][]float64 {
	amounts := map[string][]float64{}
	t.Each(func(tx models.Transaction) {
		day := tx.DayOfWeek()
		amounts[day] = append(amounts[day], tx.AmountFloat())
	})
	return amounts
}
