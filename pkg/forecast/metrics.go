package forecast

import (
	"fmt"
	"math"
)

// RMSE is the root mean squared error between actual and predicted values.
func RMSE(actual, predicted []float64) (float64, error) {
	if len(actual) != len(predicted) {
		return 0, fmt.Errorf("rmse: %d actual values but %d predictions", len(actual), len(predicted))
	}
	if len(actual) == 0 {
		return 0, fmt.Errorf("rmse: no values")
	}
	ss := 0.0
	for i := range actual {
		d := actual[i] - predicted[i]
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(actual))), nil
}
