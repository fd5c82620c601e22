package csv

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/forecast"
	"github.com/yurifrl/spendcast/pkg/models"
)

func money(d decimal.Decimal) string { return d.StringFixed(2) }

// Float formats a float64 with two decimals; NaN is written as an empty cell.
func Float(v float64) string {
	if v != v {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 2, 64)
}

var transactionHeader = []string{
	"Transaction ID", "Date", "Amount", "Category", "Payment Method",
	"Location", "Merchant", "Description", "Transaction Type", "Day of Week",
}

// Transactions writes the table in the input column layout, with the
// derived columns recomputed.
func Transactions(name string, t models.Table, filter FilterFunc[models.Transaction]) Table {
	return Create(name, transactionHeader, t.Rows(), func(tx models.Transaction) []string {
		return []string{
			strconv.Itoa(tx.ID),
			tx.Date.Format(models.DateLayout),
			money(tx.Amount),
			tx.Category,
			tx.PaymentMethod,
			tx.Location,
			tx.Merchant,
			tx.Description,
			string(tx.Type()),
			tx.DayOfWeek(),
		}
	}, filter)
}

func Series(name, period string, s aggregate.Series) Table {
	return Create(name, []string{period, "Amount"}, s, func(b aggregate.Bucket) []string {
		return []string{b.Label, money(b.Amount)}
	}, nil)
}

func Labeled(name, label string, rows []aggregate.Labeled) Table {
	return Create(name, []string{label, "Amount"}, rows, func(l aggregate.Labeled) []string {
		return []string{l.Label, money(l.Amount)}
	}, nil)
}

// Pivot writes one row per row label, one column per column label and a
// trailing Total column.
func Pivot(name, corner string, p aggregate.Pivot) Table {
	header := append(append([]string{corner}, p.ColLabels...), "Total")
	t := Table{Name: name, Header: header, Rows: make([][]string, len(p.RowLabels))}
	for r, label := range p.RowLabels {
		row := make([]string, 0, len(header))
		row = append(row, label)
		for _, c := range p.Cells[r] {
			row = append(row, money(c))
		}
		row = append(row, money(p.RowTotal(r)))
		t.Rows[r] = row
	}
	return t
}

func Weekdays(name string, rows []aggregate.WeekdayValue) Table {
	return Create(name, []string{"Day of Week", "Value", "Transactions"}, rows, func(w aggregate.WeekdayValue) []string {
		return []string{w.Day, Float(w.Value), strconv.Itoa(w.Count)}
	}, nil)
}

func Trend(name string, rows []aggregate.TrendRow) Table {
	header := []string{"Month", "Amount", "Rolling Mean", "Rolling Median", "Volatility", "MoM Change %"}
	return Create(name, header, rows, func(r aggregate.TrendRow) []string {
		return []string{
			r.Label,
			money(r.Amount),
			Float(r.RollingMean),
			Float(r.RollingMedian),
			Float(r.Volatility),
			Float(r.MoMChange),
		}
	}, nil)
}

func Stats(name, label string, rows []aggregate.LabeledStats) Table {
	header := []string{label, "Count", "Mean", "Std", "Min", "25%", "50%", "75%", "Max"}
	return Create(name, header, rows, func(r aggregate.LabeledStats) []string {
		s := r.Stats
		return []string{
			r.Label, strconv.Itoa(s.Count), Float(s.Mean), Float(s.StdDev),
			Float(s.Min), Float(s.Q1), Float(s.Median), Float(s.Q3), Float(s.Max),
		}
	}, nil)
}

func Counts(name, label string, rows []aggregate.Count) Table {
	return Create(name, []string{label, "Count"}, rows, func(c aggregate.Count) []string {
		return []string{c.Label, strconv.Itoa(c.Count)}
	}, nil)
}

// Forecast writes the future month-end dates with their point forecasts.
func Forecast(name string, r forecast.Result) Table {
	t := Table{Name: name, Header: []string{"Date", "Forecast"}, Rows: make([][]string, len(r.Values))}
	for i, v := range r.Values {
		t.Rows[i] = []string{r.Dates[i].Format(models.DateLayout), Float(v)}
	}
	return t
}

// Holdout writes actual against predicted values on the evaluation months.
func Holdout(name string, h forecast.Holdout) Table {
	t := Table{Name: name, Header: []string{"Date", "Actual", "Predicted"}, Rows: make([][]string, len(h.Actual))}
	for i := range h.Actual {
		t.Rows[i] = []string{h.Dates[i].Format(models.DateLayout), Float(h.Actual[i]), Float(h.Predicted[i])}
	}
	return t
}
