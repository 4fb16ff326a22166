// Package stft computes magnitude spectrograms with the framing conventions
// of scipy.signal.stft: zero boundary extension of half a window on both
// sides, zero padding of the tail to a whole hop, and "spectrum" scaling by
// the reciprocal window sum.
package stft
