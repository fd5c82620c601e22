package executors

import (
	"fmt"
	"strconv"

	"github.com/yurifrl/spendcast/pkg/aggregate"
	"github.com/yurifrl/spendcast/pkg/csv"
	"github.com/yurifrl/spendcast/pkg/forecast"
	"github.com/yurifrl/spendcast/pkg/models"
)

// monthly is the zero-filled month-end series both models are fitted on.
func monthly(t models.Table) aggregate.Series {
	return aggregate.MonthlyContinuous(t)
}

// ARIMA fits the configured order to the monthly totals and prints the
// fitted coefficients and the forecast.
func (e *Executor) ARIMA(t models.Table) (*forecast.ARIMAReport, error) {
	series := monthly(t)
	e.logger.Info("fitting arima", "order", e.config.ARIMA.String(), "months", len(series))

	report, err := forecast.RunARIMA(series.Dates(), series.Floats(), e.config.ARIMA, e.config.Forecast.Horizon)
	if err != nil {
		return nil, err
	}
	m := report.Model
	e.logger.Debug("arima fitted", "sigma2", m.Sigma2, "aic", m.AIC)
	e.dump("arima model", m)

	rows := [][]string{{"observations", strconv.Itoa(m.NObs)}}
	for _, term := range m.Summary() {
		rows = append(rows, []string{term.Name, coef(term.Value)})
	}

	fit := csv.Table{Name: "arima-model", Header: []string{m.Order.String(), "Value"}, Rows: rows}
	if err := e.emit("ARIMA Model", fit); err != nil {
		return nil, err
	}
	resid := []aggregate.LabeledStats{{Label: "Residual", Stats: aggregate.Describe(m.Residuals())}}
	if err := e.emit("ARIMA Residuals", csv.Stats("arima-residuals", "Field", resid)); err != nil {
		return nil, err
	}
	if err := e.emit("ARIMA Forecast", csv.Forecast("arima-forecast", report.Forecast)); err != nil {
		return nil, err
	}
	return report, nil
}

// Boost trains the lagged-feature regressor, prints its hold-out error and
// the recursive forecast.
func (e *Executor) Boost(t models.Table) (*forecast.BoostReport, error) {
	series := monthly(t)
	cfg := e.config.BoostConfig()
	e.logger.Info("training boost", "lag_depth", cfg.LagDepth, "months", len(series), "trees", cfg.Params.NEstimators)

	report, err := forecast.RunBoost(series.Dates(), series.Floats(), cfg)
	if err != nil {
		return nil, err
	}
	e.logger.Debug("boost trained", "train_rows", report.TrainRows, "test_rows", len(report.Holdout.Actual), "rmse", report.Holdout.RMSE)
	e.dump("boost parameters", report.Model.Params)

	if err := e.emit("Boost Hold-out", csv.Holdout("boost-holdout", report.Holdout)); err != nil {
		return nil, err
	}
	fmt.Fprintf(e.out, "Root Mean Squared Error: %s\n\n", csv.Float(report.Holdout.RMSE))
	if err := e.emit("Boost Forecast", csv.Forecast("boost-forecast", report.Forecast)); err != nil {
		return nil, err
	}
	return report, nil
}

func coef(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}
