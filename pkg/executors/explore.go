package executors

import (
	"strconv"

	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/clean"
	"github.com/yurifrl/spendcast/pkg/csv"
	"github.com/yurifrl/spendcast/pkg/models"
)

const topMerchants = 10

// Explore prints data-quality checks and, on the deduplicated table, the
// distribution of amounts and categorical fields. records are the raw cells of the input file, header
// first; they may be nil when the table did not come from a file.
func (e *Executor) Explore(t models.Table, records [][]string) error {
	e.logger.Info("running explore", "transactions", t.Len())

	if records != nil {
		missing := clean.MissingValues(records)
		table := csv.Create("missing-values", []string{"Column", "Missing"}, missing, func(c clean.ColumnCount) []string {
			return []string{c.Column, strconv.Itoa(c.Missing)}
		}, nil)
		if err := e.emit("Missing Values", table); err != nil {
			return err
		}
	}

	report := clean.Build(t)
	e.logger.Info("checked duplicates", "unique", report.UniqueCount(), "duplicates", report.DuplicateCount())
	if dups := report.Duplicates(); len(dups) > 0 {
		table := csv.Create("duplicates", []string{"Transaction ID", "Duplicate Of", "Date", "Amount", "Category"}, dups,
			func(en clean.Entry) []string {
				return []string{
					strconv.Itoa(en.Transaction.ID),
					strconv.Itoa(en.FirstID),
					en.Transaction.Date.Format(models.DateLayout),
					en.Transaction.Amount.StringFixed(2),
					en.Transaction.Category,
				}
			}, nil)
		if err := e.emit("Duplicate Transactions", table); err != nil {
			return err
		}
	}
	t = report.Deduplicated()
	if err := e.save(csv.Transactions("transactions-clean", t, nil)); err != nil {
		return err
	}

	if unknown := clean.UnknownValues(t); len(unknown) > 0 {
		e.logger.Warn("found values outside the known sets", "distinct", len(unknown))
		table := csv.Create("unknown-values", []string{"Column", "Value", "Count"}, unknown, func(u clean.UnknownValue) []string {
			return []string{u.Column, u.Value, strconv.Itoa(u.Count)}
		}, nil)
		if err := e.emit("Unknown Values", table); err != nil {
			return err
		}
	}

	overall := []aggregate.LabeledStats{{Label: "Amount", Stats: aggregate.Describe(aggregate.Amounts(t))}}
	steps := []struct {
		title string
		table csv.Table
	}{
		{"Amount Statistics", csv.Stats("amount-stats", "Field", overall)},
		{"Amount Distribution by Category", csv.Stats("category-distribution", "Category", aggregate.CategoryDistribution(t))},
		{"Transactions by Category", csv.Counts("category-counts", "Category", aggregate.CountBy(t, aggregate.FieldCategory))},
		{"Transactions by Payment Method", csv.Counts("payment-counts", "Payment Method", aggregate.CountBy(t, aggregate.FieldPaymentMethod))},
		{"Transactions by Location", csv.Counts("location-counts", "Location", aggregate.CountBy(t, aggregate.FieldLocation))},
		{"Transactions by Merchant", csv.Counts("merchant-counts", "Merchant", aggregate.CountBy(t, aggregate.FieldMerchant))},
		{"Top Merchants", csv.Labeled("top-merchants", "Merchant", aggregate.TopMerchants(t, topMerchants))},
	}
	for _, s := range steps {
		if err := e.emit(s.title, s.table); err != nil {
			return err
		}
	}
	return nil
}
