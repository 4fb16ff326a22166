package stft

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-flowfeat/dsp/window"
)

var (
	// ErrInvalidConfig is returned for inconsistent framing parameters.
	ErrInvalidConfig = errors.New("stft: invalid config")
	// ErrEmptySignal is returned when Transform receives no samples.
	ErrEmptySignal = errors.New("stft: empty signal")
)

// Config describes the framing of a short-time Fourier transform.
type Config struct {
	// SampleRate in Hz, used for the frequency axis only.
	SampleRate float64
	// WindowLength is the segment length (nperseg).
	WindowLength int
	// Overlap is the number of samples shared by adjacent segments (noverlap).
	Overlap int
	// NFFT is the FFT length; segments shorter than NFFT are zero padded.
	NFFT int
	// Window is generated in periodic form.
	Window window.Type
}

// DefaultConfig returns the framing used for flow feature extraction:
// 1 kHz, periodic Hann of 256 samples, 50% overlap, nfft 256.
func DefaultConfig() Config {
	return Config{
		SampleRate:   1000,
		WindowLength: 256,
		Overlap:      128,
		NFFT:         256,
		Window:       window.TypeHann,
	}
}

// Hop returns the frame advance in samples.
func (c Config) Hop() int {
	return c.WindowLength - c.Overlap
}

// Bins returns the number of one-sided frequency bins.
func (c Config) Bins() int {
	return c.NFFT/2 + 1
}

// Frames returns the number of frames produced for a signal of n samples.
func (c Config) Frames(n int) int {
	if n <= 0 {
		return 0
	}

	hop := c.Hop()
	return (n+hop-1)/hop + 1
}

// Validate checks the framing parameters.
func (c Config) Validate() error {
	switch {
	case c.SampleRate <= 0:
		return fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidConfig, c.SampleRate)
	case c.WindowLength <= 0:
		return fmt.Errorf("%w: window length must be > 0: %d", ErrInvalidConfig, c.WindowLength)
	case c.Overlap < 0 || c.Overlap >= c.WindowLength:
		return fmt.Errorf("%w: overlap must be in [0, %d): %d", ErrInvalidConfig, c.WindowLength, c.Overlap)
	case c.NFFT < c.WindowLength:
		return fmt.Errorf("%w: nfft %d shorter than window %d", ErrInvalidConfig, c.NFFT, c.WindowLength)
	}

	if window.Info(c.Window).Name == "" {
		return fmt.Errorf("%w: unknown window type %d", ErrInvalidConfig, int(c.Window))
	}

	return nil
}
