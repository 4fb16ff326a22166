package features

// Extractor computes a feature vector from a signal.
type Extractor interface {
	// Name is a short identifier used to prefix output columns.
	Name() string
	// Extract computes the statistics of spec in order. A nil spec selects
	// the extractor's default. Statistics the extractor does not support
	// are skipped.
	Extract(signal []float64, spec Spec) ([]float64, error)
	// Length returns the vector length Extract produces for a signal of n
	// samples.
	Length(n int, spec Spec) int
}

var (
	_ Extractor = (*SpectrogramExtractor)(nil)
	_ Extractor = (*WaveletExtractor)(nil)
)
