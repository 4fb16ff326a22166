package features

import "errors"

// ErrEmptySignal is returned when an extractor receives no samples.
var ErrEmptySignal = errors.New("features: empty signal")

// Number is the set of element types accepted by Signal.
type Number interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~float32 | ~float64
}

// Signal converts a sequence to float64 samples. The input is not retained.
func Signal[T Number](xs []T) []float64 {
	out := make([]float64, len(xs))
	for i, x := range xs {
		out[i] = float64(x)
	}

	return out
}
