package forecast

import "fmt"

// InsufficientHistoryError means the series is too short for the requested
// lag depth, model order or split.
type InsufficientHistoryError struct {
	What string
	Have int
	Need int
}

func (e *InsufficientHistoryError) Error() string {
	return fmt.Sprintf("insufficient history for %s: have %d observations, need at least %d", e.What, e.Have, e.Need)
}

// ModelFitError means parameter estimation did not converge to usable values.
type ModelFitError struct {
	Model  string
	Reason string
	Err    error
}

func (e *ModelFitError) Error() string {
	msg := fmt.Sprintf("%s fit failed: %s", e.Model, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ModelFitError) Unwrap() error { return e.Err }
