package executors

import (
	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/csv"
	"github.com/yurifrl/spendcast/pkg/models"
)

// Trends prints the monthly trend statistics and the month by category
// table. Daily and weekly series are only written to the output directory.
func (e *Executor) Trends(t models.Table) error {
	e.logger.Info("running trends", "transactions", t.Len())

	if err := e.emit("Monthly Trend", csv.Trend("monthly-trend", aggregate.Trend(t))); err != nil {
		return err
	}
	if err := e.emit("Monthly Spending by Category", csv.Pivot("month-category", "Month", aggregate.MonthCategory(t))); err != nil {
		return err
	}
	if err := e.save(csv.Series("daily", "Date", aggregate.Daily(t))); err != nil {
		return err
	}
	return e.save(csv.Series("weekly", "Week", aggregate.Weekly(t)))
}
