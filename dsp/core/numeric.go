package core

import "math"

const defaultEpsilon = 1e-12

// Tiny is the smallest positive normal float64. Normalisations skip vectors
// whose norm falls below it.
const Tiny = 0x1p-1022

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// FloorMod returns x modulo m with the sign of m (floored division).
func FloorMod(x, m float64) float64 {
	r := math.Mod(x, m)
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}

	return r
}

// FloorModInt is the integer form of FloorMod.
func FloorModInt(i, m int) int {
	r := i % m
	if r != 0 && (r < 0) != (m < 0) {
		r += m
	}

	return r
}

// Linspace returns n evenly spaced values from start to stop. With endpoint
// false, stop is excluded and the step is (stop-start)/n.
func Linspace(start, stop float64, n int, endpoint bool) []float64 {
	if n <= 0 {
		return nil
	}

	out := make([]float64, n)
	if n == 1 {
		out[0] = start
		return out
	}

	div := float64(n)
	if endpoint {
		div = float64(n - 1)
	}

	step := (stop - start) / div
	for i := range out {
		out[i] = start + float64(i)*step
	}

	if endpoint {
		out[n-1] = stop
	}

	return out
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * math.Log10(power)
}

// PowerToDB converts power to dB relative to ref, flooring both at amin.
func PowerToDB(power, ref, amin float64) float64 {
	return LinearPowerToDB(math.Max(amin, power)) - LinearPowerToDB(math.Max(amin, math.Abs(ref)))
}
