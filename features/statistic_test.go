package features

import (
	"slices"
	"testing"
)

func TestParseSpec(t *testing.T) {
	tests := []struct {
		name  string
		in    []string
		want  Spec
		isNil bool
	}{
		{name: "none", in: nil, isNil: true},
		{name: "known", in: []string{"mean", "std"}, want: Spec{StatMean, StatStd}},
		{name: "order kept", in: []string{"mfcc", "mean"}, want: Spec{StatMFCC, StatMean}},
		{name: "unknown dropped", in: []string{"mean", "bogus_stat"}, want: Spec{StatMean}},
		{name: "case and space", in: []string{" Crest_Factor ", "RANGE"}, want: Spec{StatCrestFactor, StatRange}},
		{name: "all unknown", in: []string{"bogus"}, isNil: true},
		{name: "blank names", in: []string{"", "  "}, isNil: true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := ParseSpec(tc.in...)
			if tc.isNil {
				if got != nil {
					t.Fatalf("expected nil spec, got %v", got)
				}
				return
			}

			if got == nil {
				t.Fatal("expected non-nil spec")
			}

			if !slices.Equal(got, tc.want) {
				t.Fatalf("ParseSpec(%q)=%v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestStatisticNamesRoundTrip(t *testing.T) {
	all := Statistics()
	if len(all) != 16 {
		t.Fatalf("expected 16 statistics, got %d", len(all))
	}

	for _, s := range all {
		got, ok := ParseStatistic(s.String())
		if !ok || got != s {
			t.Fatalf("ParseStatistic(%q)=%v,%v", s.String(), got, ok)
		}
	}

	if Statistic(-1).String() != "unknown" || Statistic(99).String() != "unknown" {
		t.Fatal("out-of-range statistics should be unknown")
	}
}

func TestDefaultSpecs(t *testing.T) {
	stftNames := []string{
		"mean", "std", "spectral_centroid", "spectral_bandwidth", "spectral_contrast",
		"spectral_flatness", "spectral_rolloff", "chroma_stft", "mfcc",
	}
	if got := DefaultSpectrogramSpec().Names(); !slices.Equal(got, stftNames) {
		t.Fatalf("stft default=%v", got)
	}

	dwtNames := []string{
		"mean", "std", "median", "max", "min", "range", "energy", "crest_factor", "shape_factor",
	}
	if got := DefaultWaveletSpec().Names(); !slices.Equal(got, dwtNames) {
		t.Fatalf("dwt default=%v", got)
	}

	if got := (Spec{StatMean, StatMFCC}).String(); got != "mean,mfcc" {
		t.Fatalf("String()=%q", got)
	}
}

func TestSignalConversion(t *testing.T) {
	got := Signal([]int{1, -2, 1500})
	if !slices.Equal(got, []float64{1, -2, 1500}) {
		t.Fatalf("Signal=%v", got)
	}

	if got := Signal([]uint16{}); len(got) != 0 {
		t.Fatalf("expected empty, got %v", got)
	}
}
