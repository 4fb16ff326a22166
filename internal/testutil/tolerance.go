package testutil

import (
	"fmt"
	"math"
	"testing"

	"gonum.org/v1/gonum/mat"
)

// MaxAbsDiff returns the largest element-wise distance between a and b and
// its index. NaN in either slice counts as an infinite distance.
func MaxAbsDiff(a, b []float64) (float64, int, error) {
	if len(a) != len(b) {
		return 0, -1, fmt.Errorf("length mismatch: %d vs %d", len(a), len(b))
	}

	worst, at := 0.0, -1
	for i := range a {
		d := math.Abs(a[i] - b[i])
		if math.IsNaN(d) {
			d = math.Inf(1)
		}
		if d > worst {
			worst, at = d, i
		}
	}

	return worst, at, nil
}

// RequireSliceNearlyEqual fails t when got and want differ in length or any
// pair is further apart than eps.
func RequireSliceNearlyEqual(t testing.TB, got, want []float64, eps float64) {
	t.Helper()

	d, i, err := MaxAbsDiff(got, want)
	if err != nil {
		t.Fatal(err)
	}
	if d > eps {
		t.Fatalf("index %d: got %v, want %v (diff %v > eps %v)", i, got[i], want[i], d, eps)
	}
}

// RequireRowsNearlyEqual compares a matrix against reference rows, reporting
// the first row whose worst element exceeds eps.
func RequireRowsNearlyEqual(t testing.TB, got mat.Matrix, want [][]float64, eps float64) {
	t.Helper()

	r, c := got.Dims()
	if r != len(want) {
		t.Fatalf("rows: got %d, want %d", r, len(want))
	}

	row := make([]float64, c)
	for i, w := range want {
		mat.Row(row, i, got)

		d, j, err := MaxAbsDiff(row, w)
		if err != nil {
			t.Fatalf("row %d: %v", i, err)
		}
		if d > eps {
			t.Fatalf("row %d col %d: got %v, want %v (diff %v > eps %v)", i, j, row[j], w[j], d, eps)
		}
	}
}

// RequireFinite fails t if any element is NaN or Inf.
func RequireFinite(t testing.TB, data []float64) {
	t.Helper()

	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Fatalf("index %d: non-finite value %v", i, v)
		}
	}
}
