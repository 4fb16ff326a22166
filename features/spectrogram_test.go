package features

import (
	"errors"
	"math"
	"slices"
	"testing"

	"github.com/cwbudde/algo-flowfeat/dsp/stft"
	"github.com/cwbudde/algo-flowfeat/internal/testutil"
	"github.com/cwbudde/algo-flowfeat/stats/frequency"
)

func newSpectrogramExtractor(t testing.TB, opts ...Option) *SpectrogramExtractor {
	t.Helper()

	e, err := NewSpectrogramExtractor(opts...)
	if err != nil {
		t.Fatalf("NewSpectrogramExtractor: %v", err)
	}

	return e
}

func TestSpectrogramLengthInvariant(t *testing.T) {
	e := newSpectrogramExtractor(t)
	spec := DefaultSpectrogramSpec()

	for _, n := range []int{1, 100, 256, 300, 1000, 20000} {
		v, err := e.Extract(testutil.Floats(testutil.PacketSizes(int64(n), n)), nil)
		if err != nil {
			t.Fatalf("n=%d: %v", n, err)
		}

		if want := len(spec) * 129; len(v) != want {
			t.Fatalf("n=%d: length %d, want %d", n, len(v), want)
		}

		if got := e.Length(n, nil); got != len(v) {
			t.Fatalf("n=%d: Length=%d, Extract=%d", n, got, len(v))
		}

		testutil.RequireFinite(t, v)
	}
}

func TestSpectrogramDeterministic(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(11, 500))

	a, err := e.Extract(sig, nil)
	if err != nil {
		t.Fatal(err)
	}

	b, err := e.Extract(sig, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(a, b) {
		t.Fatal("repeated extraction differs")
	}
}

func TestSpectrogramMeanStdMatchBins(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(3, 400))

	v, err := e.Extract(sig, Spec{StatMean, StatStd})
	if err != nil {
		t.Fatal(err)
	}

	sg, err := stft.Transform(sig)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireSliceNearlyEqual(t, v[:129], frequency.BinMeans(sg.Magnitude), 0)
	testutil.RequireSliceNearlyEqual(t, v[129:], frequency.BinStds(sg.Magnitude), 0)
}

func TestSpectrogramDescriptorRates(t *testing.T) {
	e := newSpectrogramExtractor(t, WithFrameLayout(LayoutFrames))
	sig := testutil.Floats(testutil.PacketSizes(12, 500))

	v, err := e.Extract(sig, Spec{StatSpectralCentroid, StatSpectralRolloff, StatChromaSTFT, StatMFCC})
	if err != nil {
		t.Fatal(err)
	}

	sg, err := stft.Transform(sig)
	if err != nil {
		t.Fatal(err)
	}

	centroid, err := frequency.SpectralCentroid(sg.Magnitude, DefaultDescriptorRate)
	if err != nil {
		t.Fatal(err)
	}

	rolloff, err := frequency.SpectralRolloff(sg.Magnitude, DefaultDescriptorRate)
	if err != nil {
		t.Fatal(err)
	}

	chroma, err := frequency.ChromaSTFT(sg.Magnitude, DefaultSampleRate)
	if err != nil {
		t.Fatal(err)
	}

	mfcc, err := frequency.MFCC(sg.Magnitude, DefaultSampleRate, frequency.DefaultMFCCConfig())
	if err != nil {
		t.Fatal(err)
	}

	want := slices.Concat(centroid, rolloff, chroma.RawRowView(0), mfcc.RawRowView(0))
	testutil.RequireSliceNearlyEqual(t, v, want, 0)
}

func TestSpectrogramSpecOrder(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(5, 350))

	ab, err := e.Extract(sig, Spec{StatSpectralCentroid, StatMFCC})
	if err != nil {
		t.Fatal(err)
	}

	ba, err := e.Extract(sig, Spec{StatMFCC, StatSpectralCentroid})
	if err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(ab[:129], ba[129:]) || !slices.Equal(ab[129:], ba[:129]) {
		t.Fatal("segments do not follow spec order")
	}
}

func TestSpectrogramFrameSlots(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(8, 300)) // 4 frames

	v, err := e.Extract(sig, Spec{StatSpectralCentroid})
	if err != nil {
		t.Fatal(err)
	}

	for i := range 4 {
		if v[i] <= 0 {
			t.Fatalf("slot %d: centroid %v, want > 0", i, v[i])
		}
	}

	for i := 4; i < len(v); i++ {
		if v[i] != 0 {
			t.Fatalf("slot %d: %v, want 0", i, v[i])
		}
	}
}

func TestSpectrogramLayoutFrames(t *testing.T) {
	e := newSpectrogramExtractor(t, WithFrameLayout(LayoutFrames))
	sig := testutil.Floats(testutil.PacketSizes(9, 300))
	spec := Spec{StatMean, StatSpectralRolloff, StatChromaSTFT}

	v, err := e.Extract(sig, spec)
	if err != nil {
		t.Fatal(err)
	}

	if want := 129 + 4 + 4; len(v) != want {
		t.Fatalf("length %d, want %d", len(v), want)
	}

	if got := e.Length(len(sig), spec); got != len(v) {
		t.Fatalf("Length=%d, Extract=%d", got, len(v))
	}
}

func TestSpectrogramSkipsUnsupported(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(2, 300))

	v, err := e.Extract(sig, Spec{StatMedian, StatMean, StatCrestFactor})
	if err != nil {
		t.Fatal(err)
	}

	if len(v) != 129 {
		t.Fatalf("length %d, want 129", len(v))
	}

}

func TestSpectrogramEmptySpecUsesDefault(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(2, 400))

	want, err := e.Extract(sig, nil)
	if err != nil {
		t.Fatal(err)
	}

	if len(want) != 9*129 {
		t.Fatalf("default length %d, want %d", len(want), 9*129)
	}

	for name, spec := range map[string]Spec{
		"empty":       {},
		"all unknown": ParseSpec("bogus"),
	} {
		t.Run(name, func(t *testing.T) {
			if got := e.Length(len(sig), spec); got != 1161 {
				t.Fatalf("Length=%d, want 1161", got)
			}

			got, err := e.Extract(sig, spec)
			if err != nil {
				t.Fatal(err)
			}

			testutil.RequireSliceNearlyEqual(t, got, want, 0)
		})
	}
}

func TestSpectrogramZeroSignal(t *testing.T) {
	e := newSpectrogramExtractor(t)

	v, err := e.Extract(make([]float64, 512), nil)
	if err != nil {
		t.Fatal(err)
	}

	testutil.RequireFinite(t, v)
}

func TestSpectrogramDoesNotMutate(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(6, 300))
	orig := slices.Clone(sig)

	if _, err := e.Extract(sig, nil); err != nil {
		t.Fatal(err)
	}

	if !slices.Equal(sig, orig) {
		t.Fatal("input modified")
	}
}

func TestSpectrogramErrors(t *testing.T) {
	e := newSpectrogramExtractor(t)
	if _, err := e.Extract(nil, nil); !errors.Is(err, ErrEmptySignal) {
		t.Fatalf("expected ErrEmptySignal, got %v", err)
	}

	if _, err := NewSpectrogramExtractor(WithDescriptorRate(1000)); !errors.Is(err, frequency.ErrBandExceedsNyquist) {
		t.Fatalf("expected ErrBandExceedsNyquist, got %v", err)
	}

	if _, err := NewSpectrogramExtractor(WithSampleRate(0)); !errors.Is(err, stft.ErrInvalidConfig) {
		t.Fatalf("expected ErrInvalidConfig, got %v", err)
	}

	bad := [][]Option{
		{WithMFCC(10, 20)},
		{WithMFCC(128, 0)},
		{WithDescriptorRate(-1)},
		{WithFrameLayout(FrameLayout(7))},
	}
	for _, opts := range bad {
		if _, err := NewSpectrogramExtractor(opts...); err == nil {
			t.Fatal("expected constructor error")
		}
	}
}

func TestSpectrogramConcurrent(t *testing.T) {
	e := newSpectrogramExtractor(t)
	sig := testutil.Floats(testutil.PacketSizes(12, 800))

	want, err := e.Extract(sig, nil)
	if err != nil {
		t.Fatal(err)
	}

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			got, err := e.Extract(sig, nil)
			if err == nil && !slices.Equal(got, want) {
				err = errors.New("concurrent result differs")
			}
			errs <- err
		}()
	}

	for range 8 {
		if err := <-errs; err != nil {
			t.Fatal(err)
		}
	}
}

func TestSpectrogramMFCCOption(t *testing.T) {
	e := newSpectrogramExtractor(t, WithMFCC(40, 13))
	sig := testutil.DeterministicSine(100, 1000, 200, 600)

	v, err := e.Extract(sig, Spec{StatMFCC})
	if err != nil {
		t.Fatal(err)
	}

	if len(v) != 129 {
		t.Fatalf("length %d", len(v))
	}

	for _, x := range v[:e.stft.Config().Frames(len(sig))] {
		if x == 0 || math.IsNaN(x) {
			t.Fatalf("unexpected c0 %v", x)
		}
	}
}
