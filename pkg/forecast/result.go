package forecast

import (
	"time"
)

// Result is an ordered sequence of future dates with their point forecasts.
// Dates and Values have the same length.
type Result struct {
	Model  string      `json:"model"`
	Dates  []time.Time `json:"time"`
	Values []float64   `json:"forecast"`
}

// ForecastDates returns horizon month-end dates following last.
func ForecastDates(last time.Time, horizon int) []time.Time {
	out := make([]time.Time, horizon)
	for i := range out {
		// day 0 of month m+2 is the last day of month m+1
		out[i] = time.Date(last.Year(), last.Month()+time.Month(i)+2, 0, 0, 0, 0, 0, time.UTC)
	}
	return out
}
