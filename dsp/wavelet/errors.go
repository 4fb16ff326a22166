package wavelet

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownWavelet is returned by Lookup for unsupported basis names.
	ErrUnknownWavelet = errors.New("wavelet: unknown wavelet")
	// ErrInvalidLevel is returned for negative decomposition levels.
	ErrInvalidLevel = errors.New("wavelet: invalid decomposition level")
	// ErrSignalTooShort is wrapped by LengthError.
	ErrSignalTooShort = errors.New("wavelet: signal too short")
)

// LengthError reports a decomposition stage whose input is shorter than the
// filter support allows.
type LengthError struct {
	Wavelet string
	Level   int
	Length  int
	Min     int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("wavelet %s: level %d input has %d samples, need at least %d",
		e.Wavelet, e.Level, e.Length, e.Min)
}

// Unwrap makes LengthError match ErrSignalTooShort.
func (e *LengthError) Unwrap() error {
	return ErrSignalTooShort
}
