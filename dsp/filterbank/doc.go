// Package filterbank builds mel and chroma projection matrices for one-sided
// FFT spectra. Matrices are shaped filters × bins and are cached by their
// parameters; callers must treat returned matrices as read-only.
package filterbank
