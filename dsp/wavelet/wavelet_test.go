package wavelet

import (
	"errors"
	"math"
	"sync"
	"testing"

	"github.com/cwbudde/algo-flowfeat/internal/testutil"
)

func TestFilterProperties(t *testing.T) {
	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			w, err := Lookup(name)
			if err != nil {
				t.Fatal(err)
			}

			h := w.DecLo
			sum, energy := 0.0, 0.0
			for _, v := range h {
				sum += v
				energy += v * v
			}

			if math.Abs(sum-math.Sqrt2) > 1e-10 {
				t.Fatalf("sum=%v, want sqrt(2)", sum)
			}

			if math.Abs(energy-1) > 1e-10 {
				t.Fatalf("energy=%v, want 1", energy)
			}

			// Double-shift orthogonality.
			for m := 1; 2*m < len(h); m++ {
				dot := 0.0
				for k := 0; k+2*m < len(h); k++ {
					dot += h[k] * h[k+2*m]
				}
				if math.Abs(dot) > 1e-10 {
					t.Fatalf("shift %d: dot=%v, want 0", 2*m, dot)
				}
			}

			// The high-pass filter annihilates constants.
			hiSum := 0.0
			for _, v := range w.DecHi {
				hiSum += v
			}
			if math.Abs(hiSum) > 1e-10 {
				t.Fatalf("dec_hi sum=%v, want 0", hiSum)
			}

			for k := range h {
				if w.RecLo[k] != h[len(h)-1-k] {
					t.Fatalf("rec_lo is not reversed dec_lo at %d", k)
				}
			}
		})
	}
}

func TestFilterLengths(t *testing.T) {
	tests := map[string]int{
		"haar": 2, "db1": 2, "db2": 4, "db4": 8, "db10": 20,
		"coif1": 6, "coif3": 18, "coif6": 36,
	}

	for name, want := range tests {
		w, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		if w.Len() != want {
			t.Fatalf("%s: len=%d, want %d", name, w.Len(), want)
		}
	}
}

func TestDaubechiesKnownValues(t *testing.T) {
	s3 := math.Sqrt(3)
	d := 4 * math.Sqrt2

	tests := map[string][]float64{
		"haar": {1 / math.Sqrt2, 1 / math.Sqrt2},
		"db2":  {(1 - s3) / d, (3 - s3) / d, (3 + s3) / d, (1 + s3) / d},
		"db3": {
			0.03522629188570953, -0.08544127388202666, -0.13501102001025458,
			0.45987750211849154, 0.8068915093110925, 0.33267055295008263,
		},
	}

	for name, want := range tests {
		w, err := Lookup(name)
		if err != nil {
			t.Fatal(err)
		}
		testutil.RequireSliceNearlyEqual(t, w.DecLo, want, 1e-12)
	}
}

func TestCoifletKnownValues(t *testing.T) {
	w, err := Lookup("coif1")
	if err != nil {
		t.Fatal(err)
	}

	want := []float64{
		-0.01565572813546454, -0.0727326195128539, 0.38486484686420286,
		0.8525720202122554, 0.3378976624578092, -0.0727326195128539,
	}
	testutil.RequireSliceNearlyEqual(t, w.DecLo, want, 1e-9)

	wantHi := []float64{
		0.0727326195128539, 0.3378976624578092, -0.8525720202122554,
		0.38486484686420286, 0.0727326195128539, -0.01565572813546454,
	}
	testutil.RequireSliceNearlyEqual(t, w.DecHi, wantHi, 1e-9)
}

func TestLookupUnknown(t *testing.T) {
	for _, name := range []string{"db0", "db11", "coif7", "sym4", "", "dbx"} {
		if _, err := Lookup(name); !errors.Is(err, ErrUnknownWavelet) {
			t.Fatalf("%q: expected ErrUnknownWavelet, got %v", name, err)
		}
	}

	w, err := Lookup(" COIF6 ")
	if err != nil {
		t.Fatal(err)
	}
	if w.Name != "coif6" {
		t.Fatalf("name=%q", w.Name)
	}
}

func TestLookupConcurrent(t *testing.T) {
	var wg sync.WaitGroup
	got := make([]*Wavelet, 16)

	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got[i], _ = Lookup("db7")
		}()
	}
	wg.Wait()

	for i := range got {
		if got[i] == nil || got[i] != got[0] {
			t.Fatalf("lookup %d returned a different filter", i)
		}
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != 17 {
		t.Fatalf("len=%d, want 17", len(names))
	}
	if names[0] != "haar" || names[len(names)-1] != "coif6" {
		t.Fatalf("unexpected order: %v", names)
	}
}
