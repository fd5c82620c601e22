package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Pivot is a dense two-way table of summed amounts. Every (row, col) pair
// has a cell; combinations absent from the data hold zero.
type Pivot struct {
	RowLabels []string
	ColLabels []string
	Cells     [][]decimal.Decimal
}

// Cell returns the amount at (row, col) and whether both labels exist.
func (p Pivot) Cell(row, col string) (decimal.Decimal, bool) {
	r, c := indexOf(p.RowLabels, row), indexOf(p.ColLabels, col)
	if r < 0 || c < 0 {
		return decimal.Zero, false
	}
	return p.Cells[r][c], true
}

// RowTotal sums a row of the pivot.
func (p Pivot) RowTotal(r int) decimal.Decimal {
	total := decimal.Zero
	for _, v := range p.Cells[r] {
		total = total.Add(v)
	}
	return total
}

// MonthCategory pivots monthly sums by category. Rows are the months that
// have transactions, in order; columns are categories sorted by name.
func MonthCategory(t models.Table) Pivot {
	return pivot(t,
		func(tx models.Transaction) string { return tx.Month().Format(monthLabel) },
		func(tx models.Transaction) string { return tx.Category },
	)
}

// CategoryPayment pivots category sums by payment method.
func CategoryPayment(t models.Table) Pivot {
	return pivot(t,
		func(tx models.Transaction) string { return tx.Category },
		func(tx models.Transaction) string { return tx.PaymentMethod },
	)
}

func pivot(t models.Table, rowKey, colKey func(models.Transaction) string) Pivot {
	type cell struct{ row, col string }
	sums := map[cell]decimal.Decimal{}
	rows, cols := map[string]bool{}, map[string]bool{}
	t.Each(func(tx models.Transaction) {
		c := cell{rowKey(tx), colKey(tx)}
		rows[c.row], cols[c.col] = true, true
		sums[c] = sums[c].Add(tx.Amount)
	})

	p := Pivot{RowLabels: sortedKeys(rows), ColLabels: sortedKeys(cols)}
	p.Cells = make([][]decimal.Decimal, len(p.RowLabels))
	for i, r := range p.RowLabels {
		p.Cells[i] = make([]decimal.Decimal, len(p.ColLabels))
		for j, c := range p.ColLabels {
			if v, ok := sums[cell{r, c}]; ok {
				p.Cells[i][j] = v
			} else {
				p.Cells[i][j] = decimal.Zero
			}
		}
	}
	return p
}

func sortedKeys(m map[string]bool) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func indexOf(labels []string, v string) int {
	for i, l := range labels {
		if l == v {
			return i
		}
	}
	return -1
}
