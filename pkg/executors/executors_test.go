package executors

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/yurifrl/spendcast/pkg/config"
	"github.com/yurifrl/spendcast/pkg/forecast"
	"github.com/yurifrl/spendcast/pkg/models"
	"github.com/yurifrl/spendcast/pkg/models/modelstest"
	"github.com/yurifrl/spendcast/pkg/plan"
)

func newExecutor(t *testing.T) (*Executor, *bytes.Buffer, string) {
	t.Helper()
	cfg := config.Default()
	cfg.OutputDir = t.TempDir()
	var out bytes.Buffer
	return New(log.New(io.Discard), cfg, &out), &out, cfg.OutputDir
}

func assertFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, n := range names {
		if _, err := os.Stat(filepath.Join(dir, n+".csv")); err != nil {
			t.Errorf("expected %s.csv to be written: %v", n, err)
		}
	}
}

func TestSummary(t *testing.T) {
	e, out, dir := newExecutor(t)
	if err := e.Summary(modelstest.RandomTable(1, 300)); err != nil {
		t.Fatalf("Summary failed: %v", err)
	}
	for _, s := range []string{"Total Spending", "Spending by Category", "Mean Amount by Day of Week", "Category by Payment Method"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("expected output to contain %q", s)
		}
	}
	assertFiles(t, dir, "summary", "by-category", "weekday-mean", "weekday-total", "category-payment")
}

func TestTrendsWritesLongSeries(t *testing.T) {
	e, out, dir := newExecutor(t)
	if err := e.Trends(modelstest.RandomTable(2, 300)); err != nil {
		t.Fatalf("Trends failed: %v", err)
	}
	if !strings.Contains(out.String(), "Monthly Trend") {
		t.Errorf("expected trend table in output")
	}
	if strings.Contains(out.String(), "2022-W") {
		t.Errorf("weekly series should not be printed")
	}
	assertFiles(t, dir, "monthly-trend", "month-category", "daily", "weekly")
}

func TestExplore(t *testing.T) {
	e, out, dir := newExecutor(t)
	dup := modelstest.Tx(3, "2024-01-02", "10.00", models.CategoryGroceries)
	table := models.NewTable([]models.Transaction{
		modelstest.Tx(1, "2024-01-02", "10.00", models.CategoryGroceries),
		modelstest.Tx(2, "2024-01-05", "99.00", models.CategoryBills),
		dup,
	})
	records := [][]string{{"Date", "Amount"}, {"2024-01-02", ""}}

	if err := e.Explore(table, records); err != nil {
		t.Fatalf("Explore failed: %v", err)
	}
	for _, s := range []string{"Missing Values", "Duplicate Transactions", "Top Merchants", "Amount Distribution by Category"} {
		if !strings.Contains(out.String(), s) {
			t.Errorf("expected output to contain %q", s)
		}
	}
	assertFiles(t, dir, "missing-values", "duplicates", "transactions-clean", "amount-stats", "top-merchants")

	data, err := os.ReadFile(filepath.Join(dir, "transactions-clean.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if lines := strings.Count(string(data), "\n"); lines != 3 {
		t.Errorf("expected header plus 2 unique rows, got %d lines", lines)
	}

	for name, want := range map[string]string{
		"category-counts": "Groceries,1\n",
		"amount-stats":    "Amount,2,54.50,",
		"merchant-counts": "Amazon,2\n",
	} {
		data, err := os.ReadFile(filepath.Join(dir, name+".csv"))
		if err != nil {
			t.Fatal(err)
		}
		if !strings.Contains(string(data), want) {
			t.Errorf("expected %s.csv to contain %q, got:\n%s", name, want, data)
		}
	}
	if strings.Contains(out.String(), "Unknown Values") {
		t.Errorf("expected no unknown values section for known categories")
	}
}

func TestExploreReportsUnknownValues(t *testing.T) {
	e, out, dir := newExecutor(t)
	table := models.NewTable([]models.Transaction{
		modelstest.Tx(1, "2024-01-02", "10.00", models.CategoryGroceries),
		modelstest.Tx(2, "2024-01-05", "20.00", "Uncategorized"),
	})

	if err := e.Explore(table, nil); err != nil {
		t.Fatalf("Explore failed: %v", err)
	}
	if !strings.Contains(out.String(), "Unknown Values") {
		t.Errorf("expected output to contain the unknown values table")
	}
	data, err := os.ReadFile(filepath.Join(dir, "unknown-values.csv"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Category,Uncategorized,1\n") {
		t.Errorf("unexpected unknown-values.csv:\n%s", data)
	}
}

func TestForecasts(t *testing.T) {
	e, out, dir := newExecutor(t)
	table := modelstest.RandomTable(3, 1500)

	arima, err := e.ARIMA(table)
	if err != nil {
		t.Fatalf("ARIMA failed: %v", err)
	}
	if len(arima.Forecast.Values) != 12 {
		t.Errorf("expected 12 arima steps, got %d", len(arima.Forecast.Values))
	}

	boost, err := e.Boost(table)
	if err != nil {
		t.Fatalf("Boost failed: %v", err)
	}
	if len(boost.Forecast.Values) != 12 || boost.TrainRows == 0 {
		t.Errorf("unexpected boost report: %d steps, %d training rows", len(boost.Forecast.Values), boost.TrainRows)
	}
	_, last, _ := table.DateRange()
	want := time.Date(last.Year(), last.Month()+2, 0, 0, 0, 0, 0, time.UTC)
	for _, got := range []time.Time{arima.Forecast.Dates[0], boost.Forecast.Dates[0]} {
		if !got.Equal(want) {
			t.Errorf("expected forecast to start %s, got %s", want.Format(models.DateLayout), got.Format(models.DateLayout))
		}
	}
	if !strings.Contains(out.String(), "ARIMA(1,1,1)") || !strings.Contains(out.String(), "Root Mean Squared Error") {
		t.Errorf("expected model summaries in output")
	}
	assertFiles(t, dir, "arima-model", "arima-residuals", "arima-forecast", "boost-holdout", "boost-forecast")
}

func TestDebugDump(t *testing.T) {
	e, out, _ := newExecutor(t)
	e.config.Debug = true
	if _, err := e.Boost(modelstest.RandomTable(4, 800)); err != nil {
		t.Fatalf("Boost failed: %v", err)
	}
	if !strings.Contains(out.String(), "NEstimators") {
		t.Errorf("expected parameters dump in debug output")
	}
}

func TestApply(t *testing.T) {
	e, out, _ := newExecutor(t)
	p := &plan.Plan{Input: "x.csv", Analyses: []string{plan.Summary, plan.Boost}}

	if err := e.Apply(p, modelstest.RandomTable(5, 600), nil); err != nil {
		t.Fatalf("Apply failed: %v", err)
	}
	summaryAt := strings.Index(out.String(), "Summary")
	boostAt := strings.Index(out.String(), "Boost Forecast")
	if summaryAt < 0 || boostAt < 0 || summaryAt > boostAt {
		t.Errorf("expected analyses in plan order")
	}

	short := models.NewTable([]models.Transaction{
		modelstest.Tx(1, "2024-01-02", "10.00", models.CategoryGroceries),
		modelstest.Tx(2, "2024-06-02", "10.00", models.CategoryGroceries),
	})
	err := e.Apply(p, short, nil)
	var histErr *forecast.InsufficientHistoryError
	if !errors.As(err, &histErr) {
		t.Fatalf("expected InsufficientHistoryError, got %v", err)
	}
	if !strings.HasPrefix(err.Error(), "boost:") {
		t.Errorf("expected error to name the analysis, got %v", err)
	}
}
