package forecast

import (
	"fmt"
	"time"
)

// DefaultHorizon is the number of months forecast ahead.
const DefaultHorizon = 12

// ARIMAReport is the outcome of fitting and forecasting with ARIMA.
type ARIMAReport struct {
	Model    *ARIMA
	Forecast Result
}

// RunARIMA fits order over the full monthly series and forecasts horizon
// months past its last date.
func RunARIMA(dates []time.Time, values []float64, order Order, horizon int) (*ARIMAReport, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%d dates for %d values", len(dates), len(values))
	}
	model, err := FitARIMA(values, order)
	if err != nil {
		return nil, err
	}
	return &ARIMAReport{
		Model: model,
		Forecast: Result{
			Model:  order.String(),
			Dates:  ForecastDates(dates[len(dates)-1], horizon),
			Values: model.Forecast(horizon),
		},
	}, nil
}

// BoostConfig drives RunBoost.
type BoostConfig struct {
	LagDepth     int
	TestFraction float64
	Horizon      int
	Params       BoostParams
}

func DefaultBoostConfig() BoostConfig {
	return BoostConfig{LagDepth: DefaultLagDepth, TestFraction: 0.2, Horizon: DefaultHorizon, Params: DefaultBoostParams()}
}

// Holdout compares predictions with actual values on the evaluation rows.
type Holdout struct {
	Dates     []time.Time
	Actual    []float64
	Predicted []float64
	RMSE      float64
}

// BoostReport is the outcome of the lagged-feature regression.
type BoostReport struct {
	Model     *Boost
	TrainRows int
	Holdout   Holdout
	Forecast  Result
}

// RunBoost builds lagged rows, trains on the leading partition, scores the
// trailing partition and forecasts recursively from the latest window.
func RunBoost(dates []time.Time, values []float64, cfg BoostConfig) (*BoostReport, error) {
	if len(dates) != len(values) {
		return nil, fmt.Errorf("%d dates for %d values", len(dates), len(values))
	}
	rows, err := BuildLagged(dates, values, cfg.LagDepth)
	if err != nil {
		return nil, err
	}
	split, err := SplitChronological(rows, cfg.TestFraction)
	if err != nil {
		return nil, err
	}

	xTrain, yTrain := Matrix(split.Train)
	model, err := FitBoost(xTrain, yTrain, cfg.Params)
	if err != nil {
		return nil, err
	}

	xTest, yTest := Matrix(split.Test)
	predicted := model.PredictAll(xTest)
	rmse, err := RMSE(yTest, predicted)
	if err != nil {
		return nil, err
	}
	testDates := make([]time.Time, len(split.Test))
	for i, r := range split.Test {
		testDates[i] = r.Date
	}

	window, err := LatestWindow(values, len(rows[0].Lags))
	if err != nil {
		return nil, err
	}
	return &BoostReport{
		Model:     model,
		TrainRows: len(split.Train),
		Holdout:   Holdout{Dates: testDates, Actual: yTest, Predicted: predicted, RMSE: rmse},
		Forecast: Result{
			Model:  "boost",
			Dates:  ForecastDates(dates[len(dates)-1], cfg.Horizon),
			Values: Recursive(model, window, cfg.Horizon),
		},
	}, nil
}
