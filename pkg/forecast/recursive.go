package forecast

// Regressor predicts the next value from a lag window ordered newest first.
type Regressor interface {
	Predict(features []float64) float64
}

// Recursive forecasts horizon steps ahead by feeding every prediction back
// as the newest lag: the oldest lag falls off, the others shift one slot and
// the prediction takes slot 0. Errors compound across steps.
func Recursive(model Regressor, window []float64, horizon int) []float64 {
	lags := append([]float64(nil), window...)
	out := make([]float64, 0, horizon)
	for step := 0; step < horizon; step++ {
		next := model.Predict(lags)
		out = append(out, next)
		if len(lags) == 0 {
			continue
		}
		copy(lags[1:], lags[:len(lags)-1])
		lags[0] = next
	}
	return out
}
