// Package time computes summary statistics of sample sequences such as
// wavelet coefficient arrays.
package time

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Epsilon guards the crest and shape factor denominators so silent inputs
// yield finite values.
const Epsilon = 1e-10

// Stats holds summary statistics of a sequence.
type Stats struct {
	Length      int
	Mean        float64
	Std         float64 // population standard deviation
	Median      float64
	Max         float64
	MaxPos      int
	Min         float64
	MinPos      int
	Range       float64 // max - min
	Peak        float64 // max |x|
	Energy      float64 // sum of squares
	RMS         float64
	MeanAbs     float64
	CrestFactor float64 // peak / (rms + Epsilon)
	ShapeFactor float64 // rms / (mean|x| + Epsilon)
}

// Calculate computes all statistics of x. An empty input yields zero Stats.
// x is not modified.
func Calculate(x []float64) Stats {
	n := len(x)
	if n == 0 {
		return Stats{}
	}

	mean, std := stat.PopMeanStdDev(x, nil)
	maxPos := floats.MaxIdx(x)
	minPos := floats.MinIdx(x)
	energy := floats.Dot(x, x)
	rms := math.Sqrt(energy / float64(n))
	peak := floats.Norm(x, math.Inf(1))
	meanAbs := floats.Norm(x, 1) / float64(n)

	return Stats{
		Length:      n,
		Mean:        mean,
		Std:         std,
		Median:      Median(x),
		Max:         x[maxPos],
		MaxPos:      maxPos,
		Min:         x[minPos],
		MinPos:      minPos,
		Range:       x[maxPos] - x[minPos],
		Peak:        peak,
		Energy:      energy,
		RMS:         rms,
		MeanAbs:     meanAbs,
		CrestFactor: peak / (rms + Epsilon),
		ShapeFactor: rms / (meanAbs + Epsilon),
	}
}

// Mean returns the arithmetic mean, or 0 for an empty input.
func Mean(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.Mean(x, nil)
}

// Std returns the population standard deviation, or 0 for an empty input.
func Std(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return stat.PopStdDev(x, nil)
}

// Median returns the middle value of x, averaging the two central values for
// even lengths. x is not modified.
func Median(x []float64) float64 {
	n := len(x)
	if n == 0 {
		return 0
	}

	s := append([]float64(nil), x...)
	sort.Float64s(s)

	if n%2 == 1 {
		return s[n/2]
	}

	return (s[n/2-1] + s[n/2]) / 2
}

// Energy returns the sum of squares.
func Energy(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Dot(x, x)
}

// RMS returns the root mean square, or 0 for an empty input.
func RMS(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return math.Sqrt(floats.Dot(x, x) / float64(len(x)))
}

// CrestFactor returns max|x| / (rms + Epsilon).
func CrestFactor(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return floats.Norm(x, math.Inf(1)) / (RMS(x) + Epsilon)
}

// ShapeFactor returns rms / (mean|x| + Epsilon).
func ShapeFactor(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	return RMS(x) / (floats.Norm(x, 1)/float64(len(x)) + Epsilon)
}
