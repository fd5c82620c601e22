package aggregate

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/yurifrl/spendcast/pkg/models"
	"github.com/yurifrl/spendcast/pkg/models/modelstest"
)

func fixture() models.Table {
	return models.NewTable([]models.Transaction{
		modelstest.Tx(1, "2024-01-01", "10.00", models.CategoryBills),     // Monday, 2024-W01
		modelstest.Tx(2, "2024-01-01", "5.25", models.CategoryGroceries),  // same day
		modelstest.Tx(3, "2024-01-07", "4.75", models.CategoryGroceries),  // Sunday, still 2024-W01
		modelstest.Tx(4, "2024-01-08", "20.00", models.CategoryTransport), // Monday, 2024-W02
		modelstest.Tx(5, "2024-03-15", "30.00", models.CategoryBills),     // February is empty
	})
}

func TestConservationUnderRegrouping(t *testing.T) {
	for seed := int64(1); seed <= 5; seed++ {
		table := modelstest.RandomTable(seed, 1000)
		total := Summarize(table).Total

		groupings := map[string]decimal.Decimal{
			"daily":      Daily(table).Total(),
			"weekly":     Weekly(table).Total(),
			"monthly":    Monthly(table).Total(),
			"continuous": MonthlyContinuous(table).Total(),
		}
		for name, sum := range groupings {
			if !sum.Equal(total) {
				t.Errorf("seed %d: %s sum %s != grand total %s", seed, name, sum, total)
			}
		}

		byCategory := decimal.Zero
		for _, c := range ByCategory(table) {
			byCategory = byCategory.Add(c.Amount)
		}
		if !byCategory.Equal(total) {
			t.Errorf("seed %d: category sum %s != grand total %s", seed, byCategory, total)
		}
	}
}

func TestGroupingKeys(t *testing.T) {
	table := fixture()

	daily := Daily(table)
	if len(daily) != 4 || daily[0].Label != "2024-01-01" || daily[0].Amount.StringFixed(2) != "15.25" {
		t.Errorf("unexpected daily series: %+v", daily)
	}

	weekly := Weekly(table)
	wantWeeks := []struct{ label, start, amount string }{
		{"2024-W01", "2024-01-01", "20.00"},
		{"2024-W02", "2024-01-08", "20.00"},
		{"2024-W11", "2024-03-11", "30.00"},
	}
	if len(weekly) != len(wantWeeks) {
		t.Fatalf("expected %d weeks, got %d: %+v", len(wantWeeks), len(weekly), weekly)
	}
	for i, w := range wantWeeks {
		got := weekly[i]
		if got.Label != w.label || got.Start.Format(models.DateLayout) != w.start || got.Amount.StringFixed(2) != w.amount {
			t.Errorf("week %d: expected %+v, got %s %s %s", i, w, got.Label, got.Start.Format(models.DateLayout), got.Amount.StringFixed(2))
		}
	}

	monthly := Monthly(table)
	if len(monthly) != 2 || monthly[0].Label != "2024-01" || monthly[1].Label != "2024-03" {
		t.Errorf("expected sparse months 2024-01, 2024-03, got %+v", monthly)
	}
}

func TestMonthlyContinuousFillsGaps(t *testing.T) {
	series := MonthlyContinuous(fixture())
	want := []struct{ label, end, amount string }{
		{"2024-01", "2024-01-31", "40.00"},
		{"2024-02", "2024-02-29", "0.00"},
		{"2024-03", "2024-03-31", "30.00"},
	}
	if len(series) != len(want) {
		t.Fatalf("expected %d months, got %d", len(want), len(series))
	}
	for i, w := range want {
		b := series[i]
		if b.Label != w.label || b.Start.Format(models.DateLayout) != w.end || b.Amount.StringFixed(2) != w.amount {
			t.Errorf("month %d: expected %+v, got %s %s %s", i, w, b.Label, b.Start.Format(models.DateLayout), b.Amount.StringFixed(2))
		}
	}
}

func TestDayOfWeekAlwaysMondayToSunday(t *testing.T) {
	tables := []models.Table{fixture(), modelstest.RandomTable(7, 300), models.NewTable(nil)}
	for _, table := range tables {
		means := DayOfWeekMean(table)
		totals := DayOfWeekTotal(table)
		if len(means) != 7 || len(totals) != 7 {
			t.Fatalf("expected 7 rows, got %d and %d", len(means), len(totals))
		}
		for i, day := range models.Weekdays {
			if means[i].Day != day || totals[i].Day != day {
				t.Errorf("row %d: expected %s, got %s / %s", i, day, means[i].Day, totals[i].Day)
			}
		}
	}

	means := DayOfWeekMean(fixture())
	if got := means[0].Value; math.Abs(got-35.25/3) > 1e-9 {
		t.Errorf("expected Monday mean %.4f, got %.4f", 35.25/3, got)
	}
	if !math.IsNaN(means[1].Value) {
		t.Errorf("expected NaN for Tuesday with no data, got %v", means[1].Value)
	}
	totals := DayOfWeekTotal(fixture())
	if totals[1].Value != 0 {
		t.Errorf("expected zero total for Tuesday, got %v", totals[1].Value)
	}
}

func TestPivotsAreDense(t *testing.T) {
	table := modelstest.RandomTable(3, 200)
	for name, p := range map[string]Pivot{"month×category": MonthCategory(table), "category×payment": CategoryPayment(table)} {
		if len(p.Cells) != len(p.RowLabels) {
			t.Fatalf("%s: %d rows of cells for %d labels", name, len(p.Cells), len(p.RowLabels))
		}
		total := decimal.Zero
		for i := range p.RowLabels {
			if len(p.Cells[i]) != len(p.ColLabels) {
				t.Errorf("%s: row %d has %d cells, want %d", name, i, len(p.Cells[i]), len(p.ColLabels))
			}
			total = total.Add(p.RowTotal(i))
		}
		if !total.Equal(Summarize(table).Total) {
			t.Errorf("%s: cells sum to %s, want %s", name, total, Summarize(table).Total)
		}
	}

	p := MonthCategory(fixture())
	v, ok := p.Cell("2024-03", models.CategoryGroceries)
	if !ok || !v.IsZero() {
		t.Errorf("expected explicit zero for (2024-03, Groceries), got %s (ok=%v)", v, ok)
	}
	v, ok = p.Cell("2024-01", models.CategoryGroceries)
	if !ok || v.StringFixed(2) != "10.00" {
		t.Errorf("expected 10.00 for (2024-01, Groceries), got %s", v)
	}
	if _, ok := p.Cell("2024-02", models.CategoryGroceries); ok {
		t.Errorf("expected no row for a month without transactions")
	}
}

func TestSummarize(t *testing.T) {
	s := Summarize(fixture())
	if s.Total.StringFixed(2) != "70.00" {
		t.Errorf("expected total 70.00, got %s", s.Total.StringFixed(2))
	}
	// 2024-01-01 .. 2024-03-15 inclusive
	if s.Days != 75 {
		t.Errorf("expected 75 days, got %d", s.Days)
	}
	if got := s.AveragePerDay.InexactFloat64(); math.Abs(got-70.0/75) > 1e-9 {
		t.Errorf("expected average %.6f, got %.6f", 70.0/75, got)
	}

	empty := Summarize(models.NewTable(nil))
	if !empty.Total.IsZero() || !empty.AveragePerDay.IsZero() || empty.Days != 0 {
		t.Errorf("expected zero summary, got %+v", empty)
	}
}

func TestRollingStatistics(t *testing.T) {
	values := []float64{100, 120, 90, 150, 110}
	means := RollingMean(values, 3)
	medians := RollingMedian(values, 3)
	for i := 0; i < 2; i++ {
		if !math.IsNaN(means[i]) || !math.IsNaN(medians[i]) {
			t.Errorf("period %d: expected NaN, got mean=%v median=%v", i, means[i], medians[i])
		}
	}
	for i := 2; i < len(values); i++ {
		want := (values[i-2] + values[i-1] + values[i]) / 3
		if math.Abs(means[i]-want) > 1e-9 {
			t.Errorf("period %d: expected mean %v, got %v", i, want, means[i])
		}
	}
	wantMedians := []float64{100, 120, 110}
	for i, want := range wantMedians {
		if medians[i+2] != want {
			t.Errorf("period %d: expected median %v, got %v", i+2, want, medians[i+2])
		}
	}

	changes := PercentChange(values)
	if changes[0] != 0 || math.Abs(changes[1]-20) > 1e-9 || math.Abs(changes[2]+25) > 1e-9 {
		t.Errorf("unexpected percent changes %v", changes)
	}
}

func TestTrendVolatilityUsesTransactionAmounts(t *testing.T) {
	rows := Trend(fixture())
	if len(rows) != 2 {
		t.Fatalf("expected 2 months, got %d", len(rows))
	}

	// January holds 10, 5.25, 4.75 and 20: sample std of the amounts
	jan := []float64{10, 5.25, 4.75, 20}
	mean := (10 + 5.25 + 4.75 + 20) / 4
	ss := 0.0
	for _, v := range jan {
		ss += (v - mean) * (v - mean)
	}
	want := math.Sqrt(ss / 3)
	if math.Abs(rows[0].Volatility-want) > 1e-9 {
		t.Errorf("expected January volatility %v, got %v", want, rows[0].Volatility)
	}
	// a single March transaction has no spread
	if !math.IsNaN(rows[1].Volatility) {
		t.Errorf("expected NaN volatility for a one-transaction month, got %v", rows[1].Volatility)
	}
	if rows[0].MoMChange != 0 || math.Abs(rows[1].MoMChange-(-25)) > 1e-9 {
		t.Errorf("unexpected MoM changes %v, %v", rows[0].MoMChange, rows[1].MoMChange)
	}
	if !math.IsNaN(rows[1].RollingMean) {
		t.Errorf("expected NaN rolling mean before the third month, got %v", rows[1].RollingMean)
	}
}

func TestDescribeMatchesLinearQuantiles(t *testing.T) {
	s := Describe([]float64{4, 1, 3, 2})
	if s.Count != 4 || s.Min != 1 || s.Max != 4 || s.Mean != 2.5 {
		t.Errorf("unexpected stats %+v", s)
	}
	if s.Q1 != 1.75 || s.Median != 2.5 || s.Q3 != 3.25 {
		t.Errorf("expected quartiles 1.75/2.5/3.25, got %v/%v/%v", s.Q1, s.Median, s.Q3)
	}
	if math.Abs(s.StdDev-math.Sqrt(5.0/3)) > 1e-9 {
		t.Errorf("expected sample std %v, got %v", math.Sqrt(5.0/3), s.StdDev)
	}
	if empty := Describe(nil); empty.Count != 0 || !math.IsNaN(empty.Mean) {
		t.Errorf("expected NaN stats for empty sample, got %+v", empty)
	}
}

func TestExploreHelpers(t *testing.T) {
	table := fixture()

	counts := CountBy(table, FieldCategory)
	if counts[0].Label != models.CategoryBills || counts[0].Count != 2 {
		t.Errorf("expected Bills first with 2 rows (tie with Groceries broken by label), got %+v", counts)
	}

	top := TopMerchants(modelstest.RandomTable(11, 500), 3)
	if len(top) != 3 {
		t.Fatalf("expected 3 merchants, got %d", len(top))
	}
	for i := 1; i < len(top); i++ {
		if top[i].Amount.GreaterThan(top[i-1].Amount) {
			t.Errorf("merchants not sorted by spend: %+v", top)
		}
	}

	dist := CategoryDistribution(table)
	if len(dist) != 3 || dist[0].Label != models.CategoryBills || dist[0].Stats.Count != 2 {
		t.Errorf("unexpected distribution %+v", dist)
	}
}
