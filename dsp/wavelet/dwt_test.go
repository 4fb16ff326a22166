package wavelet

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-flowfeat/internal/testutil"
)

func mustLookup(t testing.TB, name string) *Wavelet {
	t.Helper()
	w, err := Lookup(name)
	if err != nil {
		t.Fatal(err)
	}
	return w
}

func TestHaarDWT(t *testing.T) {
	a, d, err := DWT([]float64{1, 2, 3, 4}, mustLookup(t, "haar"), ModeSymmetric)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, a, []float64{3 / math.Sqrt2, 7 / math.Sqrt2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, d, []float64{-1 / math.Sqrt2, -1 / math.Sqrt2}, 1e-12)
}

func TestDWTSymmetricEdges(t *testing.T) {
	// db2 on five samples touches the mirrored edge on both sides.
	w := mustLookup(t, "db2")
	x := []float64{1, 2, 3, 4, 5}

	a, _, err := DWT(x, w, ModeSymmetric)
	if err != nil {
		t.Fatal(err)
	}

	ext := []float64{3, 2, 1, 1, 2, 3, 4, 5, 5, 4, 3}
	want := make([]float64, OutputLength(len(x), w.Len()))
	for k := range want {
		for j, c := range w.DecLo {
			want[k] += c * ext[2*k+1-j+3]
		}
	}

	testutil.RequireSliceNearlyEqual(t, a, want, 1e-12)
}

func TestModes(t *testing.T) {
	x := []float64{1, 2, 3}
	tests := []struct {
		mode Mode
		at   map[int]float64
	}{
		{ModeSymmetric, map[int]float64{-1: 1, -2: 2, 3: 3, 4: 2}},
		{ModeReflect, map[int]float64{-1: 2, -2: 3, 3: 2, 4: 1}},
		{ModeZero, map[int]float64{-1: 0, 3: 0}},
		{ModePeriodic, map[int]float64{-1: 3, 3: 1, 4: 2}},
	}

	for _, tc := range tests {
		for i, want := range tc.at {
			if got := tc.mode.sample(x, i); got != want {
				t.Fatalf("%v: x[%d]=%v, want %v", tc.mode, i, got, want)
			}
		}
	}
}

func TestWaveDecLengths(t *testing.T) {
	x := testutil.Floats(testutil.PacketSizes(1, 300))

	coeffs, err := WaveDec(x, mustLookup(t, "coif6"), 4, ModeSymmetric)
	if err != nil {
		t.Fatal(err)
	}

	want := []int{51, 51, 68, 101, 167}
	if len(coeffs) != len(want) {
		t.Fatalf("levels=%d, want %d", len(coeffs), len(want))
	}

	for i, c := range coeffs {
		if len(c) != want[i] {
			t.Fatalf("coeffs[%d] len=%d, want %d", i, len(c), want[i])
		}
	}
}

func TestWaveDecHaarOrder(t *testing.T) {
	x := []float64{1, 1, 1, 1, 5, 5, 5, 5}

	coeffs, err := WaveDec(x, mustLookup(t, "haar"), 3, ModeSymmetric)
	if err != nil {
		t.Fatal(err)
	}

	// cA3, cD3, cD2, cD1
	testutil.RequireSliceNearlyEqual(t, coeffs[0], []float64{12 / math.Sqrt2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, coeffs[1], []float64{-8 / math.Sqrt2}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, coeffs[2], []float64{0, 0}, 1e-12)
	testutil.RequireSliceNearlyEqual(t, coeffs[3], []float64{0, 0, 0, 0}, 1e-12)
}

func TestWaveDecLevelZero(t *testing.T) {
	x := []float64{1, 2, 3}

	coeffs, err := WaveDec(x, mustLookup(t, "db2"), 0, ModeSymmetric)
	if err != nil {
		t.Fatal(err)
	}

	if len(coeffs) != 1 {
		t.Fatalf("levels=%d, want 1", len(coeffs))
	}

	coeffs[0][0] = 99
	if x[0] != 1 {
		t.Fatal("level 0 must return a copy")
	}
}

func TestWaveDecErrors(t *testing.T) {
	w := mustLookup(t, "coif6")

	if _, err := WaveDec(make([]float64, 100), w, -1, ModeSymmetric); !errors.Is(err, ErrInvalidLevel) {
		t.Fatalf("expected ErrInvalidLevel, got %v", err)
	}

	_, err := WaveDec(make([]float64, 30), w, 4, ModeSymmetric)
	if !errors.Is(err, ErrSignalTooShort) {
		t.Fatalf("expected ErrSignalTooShort, got %v", err)
	}

	var lerr *LengthError
	if !errors.As(err, &lerr) {
		t.Fatalf("expected *LengthError, got %T", err)
	}
	if lerr.Level != 1 || lerr.Min != 35 || lerr.Length != 30 {
		t.Fatalf("unexpected length error: %+v", lerr)
	}

	// 60 samples survive four coif6 stages: 60 -> 47 -> 41 -> 38 -> 36.
	if _, err := WaveDec(make([]float64, 60), w, 4, ModeSymmetric); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Zero padding has no minimum beyond one sample.
	if _, err := WaveDec(make([]float64, 30), w, 4, ModeZero); err != nil {
		t.Fatalf("zero mode: %v", err)
	}
}

func TestWaveDecDoesNotMutate(t *testing.T) {
	x := testutil.DeterministicNoise(2, 10, 128)
	orig := append([]float64(nil), x...)

	if _, err := WaveDec(x, mustLookup(t, "db4"), 3, ModeSymmetric); err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, x, orig, 0)
}

func TestPerfectReconstruction(t *testing.T) {
	tests := []struct {
		name  string
		level int
	}{
		{"haar", 5},
		{"db2", 3},
		{"db10", 2},
		{"coif2", 3},
		{"coif6", 1},
	}

	for _, n := range []int{64, 65, 300} {
		x := testutil.DeterministicNoise(int64(n), 100, n)
		for _, tc := range tests {
			w := mustLookup(t, tc.name)

			coeffs, err := WaveDec(x, w, tc.level, ModeSymmetric)
			if err != nil {
				t.Fatalf("%s n=%d: %v", tc.name, n, err)
			}

			rec, err := WaveRec(coeffs, w)
			if err != nil {
				t.Fatalf("%s n=%d: %v", tc.name, n, err)
			}

			if len(rec) < n {
				t.Fatalf("%s n=%d: reconstructed %d samples", tc.name, n, len(rec))
			}

			testutil.RequireSliceNearlyEqual(t, rec[:n], x, 1e-8)
		}
	}
}

func TestMaxLevel(t *testing.T) {
	tests := []struct {
		n, f, want int
	}{
		{300, 36, 3},
		{1000, 2, 9},
		{10, 36, 0},
		{8, 1, 0},
		{35, 36, 0},
	}

	for _, tc := range tests {
		if got := MaxLevel(tc.n, tc.f); got != tc.want {
			t.Fatalf("MaxLevel(%d, %d)=%d, want %d", tc.n, tc.f, got, tc.want)
		}
	}
}
