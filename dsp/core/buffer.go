package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Reused elements keep their previous values.
func EnsureLen[T any](buf []T, n int) []T {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]T, n)
}

// Zero sets all values in buf to their zero value.
func Zero[T any](buf []T) {
	clear(buf)
}

// ZeroPad returns a new slice holding left zeros, src, then right zeros.
// src is not modified.
func ZeroPad(src []float64, left, right int) []float64 {
	left = max(left, 0)
	right = max(right, 0)

	out := make([]float64, left+len(src)+right)
	copy(out[left:], src)

	return out
}
