package parser

import "fmt"

// IngestionError reports a missing, unreadable or malformed input table.
// Line is 1-based and zero when the problem is not tied to a row.
type IngestionError struct {
	File   string
	Line   int
	Reason string
	Err    error
}

func (e *IngestionError) Error() string {
	msg := e.File
	if e.Line > 0 {
		msg = fmt.Sprintf("%s:%d", msg, e.Line)
	}
	msg = fmt.Sprintf("ingestion failed: %s: %s", msg, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IngestionError) Unwrap() error { return e.Err }
