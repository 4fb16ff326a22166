package window

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWindow is returned by Parse for unsupported window names.
	ErrUnknownWindow = errors.New("unknown window")

	errMismatchedLength = errors.New("samples and coefficients must have same length")
)

func validateLength(size int) error {
	if size <= 0 {
		return fmt.Errorf("window size must be > 0: %d", size)
	}
	return nil
}

func unknownWindow(name string) error {
	return fmt.Errorf("%w: %q", ErrUnknownWindow, name)
}
