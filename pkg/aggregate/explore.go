package aggregate

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
)

// Field selects a categorical column of the table.
type Field string

const (
	FieldCategory      Field = "Category"
	FieldPaymentMethod Field = "Payment Method"
	FieldLocation      Field = "Location"
	FieldMerchant      Field = "Merchant"
)

func (f Field) value(tx models.Transaction) string {
	switch f {
	case FieldPaymentMethod:
		return tx.PaymentMethod
	case FieldLocation:
		return tx.Location
	case FieldMerchant:
		return tx.Merchant
	}
	return tx.Category
}

// Count is the number of transactions carrying a field value.
type Count struct {
	Label string
	Count int
}

// CountBy counts transactions per value of field, most frequent first and
// ties broken by label.
func CountBy(t models.Table, field Field) []Count {
	counts := map[string]int{}
	t.Each(func(tx models.Transaction) { counts[field.value(tx)]++ })
	out := make([]Count, 0, len(counts))
	for k, v := range counts {
		out = append(out, Count{Label: k, Count: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// TopMerchants returns up to n merchants ranked by total spend.
func TopMerchants(t models.Table, n int) []Labeled {
	sums := map[string]decimal.Decimal{}
	t.Each(func(tx models.Transaction) { sums[tx.Merchant] = sums[tx.Merchant].Add(tx.Amount) })
	out := make([]Labeled, 0, len(sums))
	for k, v := range sums {
		out = append(out, Labeled{Label: k, Amount: v})
	}
	sort.Slice(out, func(i, j int) bool {
		if c := out[i].Amount.Cmp(out[j].Amount); c != 0 {
			return c > 0
		}
		return out[i].Label < out[j].Label
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// LabeledStats pairs a label with the statistics of its amounts.
type LabeledStats struct {
	Label string
	Stats Stats
}

// CategoryDistribution describes the amount distribution of each category,
// sorted by category name.
func CategoryDistribution(t models.Table) []LabeledStats {
	amounts := map[string][]float64{}
	t.Each(func(tx models.Transaction) {
		amounts[tx.Category] = append(amounts[tx.Category], tx.AmountFloat())
	})
	labels := make([]string, 0, len(amounts))
	for k := range amounts {
		labels = append(labels, k)
	}
	sort.Strings(labels)
	out := make([]LabeledStats, len(labels))
	for i, l := range labels {
		out[i] = LabeledStats{Label: l, Stats: Describe(amounts[l])}
	}
	return out
}

// Amounts returns every transaction amount as float64 in table order.
func Amounts(t models.Table) []float64 {
	out := make([]float64, 0, t.Len())
	t.Each(func(tx models.Transaction) { out = append(out, tx.AmountFloat()) })
	return out
}
