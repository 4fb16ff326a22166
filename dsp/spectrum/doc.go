// Package spectrum provides helpers for one-sided FFT spectra.
//
// The package does not implement the FFT itself. It converts complex bins
// produced by an FFT backend into magnitude or power and describes the
// frequency axis of a real-input transform.
package spectrum
