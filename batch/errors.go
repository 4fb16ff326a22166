package batch

import (
	"fmt"

	"go.uber.org/multierr"
)

// RowError reports a failed extraction for one cell.
type RowError struct {
	Column    string
	Extractor string
	Row       int
	Err       error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("column %q row %d (%s): %v", e.Column, e.Row, e.Extractor, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// RowErrors collects the row failures tolerated by SkipRow and
// FillSentinel.
type RowErrors struct {
	err error
}

func (e *RowErrors) Error() string {
	return fmt.Sprintf("batch: %d rows failed: %v", len(e.Errors()), e.err)
}

// Errors returns the individual *RowError values in column then row order.
func (e *RowErrors) Errors() []error {
	return multierr.Errors(e.err)
}

// Unwrap exposes the row errors to errors.Is and errors.As.
func (e *RowErrors) Unwrap() []error {
	return e.Errors()
}
