package executors

import (
	"strconv"

	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/csv"
	"github.com/yurifrl/spendcast/pkg/models"
)

// Summary prints the overall totals, spending per category, per weekday and
// the category by payment method cross table.
func (e *Executor) Summary(t models.Table) error {
	e.logger.Info("running summary", "transactions", t.Len())

	s := aggregate.Summarize(t)
	overview := csv.Table{
		Name:   "summary",
		Header: []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total Spending", s.Total.StringFixed(2)},
			{"Days", strconv.Itoa(s.Days)},
			{"Average per Day", s.AveragePerDay.StringFixed(2)},
			{"Transactions", strconv.Itoa(s.Transactions)},
		},
	}

	steps := []struct {
		title string
		table csv.Table
	}{
		{"Summary", overview},
		{"Spending by Category", csv.Labeled("by-category", "Category", aggregate.ByCategory(t))},
		{"Mean Amount by Day of Week", csv.Weekdays("weekday-mean", aggregate.DayOfWeekMean(t))},
		{"Total Amount by Day of Week", csv.Weekdays("weekday-total", aggregate.DayOfWeekTotal(t))},
		{"Category by Payment Method", csv.Pivot("category-payment", "Category", aggregate.CategoryPayment(t))},
	}
	for _, s := range steps {
		if err := e.emit(s.title, s.table); err != nil {
			return err
		}
	}
	return nil
}
