package aggregate

import (
	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Summary is the single-row overview of a table.
type Summary struct {
	Total         decimal.Decimal
	Days          int
	AveragePerDay decimal.Decimal
	Transactions  int
}

// Summarize totals the table and spreads the total over the inclusive span
// between the first and last transaction date. An empty table yields zeros.
func Summarize(t models.Table) Summary {
	total := decimal.Zero
	t.Each(func(tx models.Transaction) { total = total.Add(tx.Amount) })

	s := Summary{Total: total, AveragePerDay: decimal.Zero, Transactions: t.Len()}
	first, last, ok := t.DateRange()
	if !ok {
		return s
	}
	s.Days = int(last.Sub(first).Hours()/24) + 1
	s.AveragePerDay = total.Div(decimal.NewFromInt(int64(s.Days)))
	return s
}
