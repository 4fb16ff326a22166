package features

import (
	"strings"
)

// Statistic identifies one reduction of a spectrogram or coefficient array.
type Statistic int

const (
	StatMean Statistic = iota
	StatStd
	StatMedian
	StatMax
	StatMin
	StatRange
	StatEnergy
	StatCrestFactor
	StatShapeFactor
	StatSpectralCentroid
	StatSpectralBandwidth
	StatSpectralContrast
	StatSpectralFlatness
	StatSpectralRolloff
	StatChromaSTFT
	StatMFCC

	numStatistics
)

var statisticNames = [numStatistics]string{
	StatMean:              "mean",
	StatStd:               "std",
	StatMedian:            "median",
	StatMax:               "max",
	StatMin:               "min",
	StatRange:             "range",
	StatEnergy:            "energy",
	StatCrestFactor:       "crest_factor",
	StatShapeFactor:       "shape_factor",
	StatSpectralCentroid:  "spectral_centroid",
	StatSpectralBandwidth: "spectral_bandwidth",
	StatSpectralContrast:  "spectral_contrast",
	StatSpectralFlatness:  "spectral_flatness",
	StatSpectralRolloff:   "spectral_rolloff",
	StatChromaSTFT:        "chroma_stft",
	StatMFCC:              "mfcc",
}

// String returns the statistic's canonical name.
func (s Statistic) String() string {
	if s >= 0 && s < numStatistics {
		return statisticNames[s]
	}

	return "unknown"
}

// ParseStatistic resolves a canonical name, ignoring case and surrounding
// space.
func ParseStatistic(name string) (Statistic, bool) {
	key := strings.ToLower(strings.TrimSpace(name))
	for i, n := range statisticNames {
		if n == key {
			return Statistic(i), true
		}
	}

	return 0, false
}

// Statistics returns every known statistic in declaration order.
func Statistics() []Statistic {
	out := make([]Statistic, numStatistics)
	for i := range out {
		out[i] = Statistic(i)
	}

	return out
}

// Spec is an ordered selection of statistics. An empty Spec, nil or not,
// selects the extractor's default.
type Spec []Statistic

// ParseSpec builds a Spec from names, dropping unknown names. When no name
// is known the result is nil, which extractors treat as their default.
func ParseSpec(names ...string) Spec {
	if len(names) == 0 {
		return nil
	}

	out := make(Spec, 0, len(names))
	for _, n := range names {
		if s, ok := ParseStatistic(n); ok {
			out = append(out, s)
		}
	}

	if len(out) == 0 {
		return nil
	}

	return out
}

// Names returns the canonical names of s in order.
func (s Spec) Names() []string {
	out := make([]string, len(s))
	for i, st := range s {
		out[i] = st.String()
	}

	return out
}

func (s Spec) String() string {
	return strings.Join(s.Names(), ",")
}

// DefaultSpectrogramSpec returns the statistics computed by
// SpectrogramExtractor when no Spec is given.
func DefaultSpectrogramSpec() Spec {
	return Spec{
		StatMean,
		StatStd,
		StatSpectralCentroid,
		StatSpectralBandwidth,
		StatSpectralContrast,
		StatSpectralFlatness,
		StatSpectralRolloff,
		StatChromaSTFT,
		StatMFCC,
	}
}

// DefaultWaveletSpec returns the statistics computed by WaveletExtractor
// when no Spec is given.
func DefaultWaveletSpec() Spec {
	return Spec{
		StatMean,
		StatStd,
		StatMedian,
		StatMax,
		StatMin,
		StatRange,
		StatEnergy,
		StatCrestFactor,
		StatShapeFactor,
	}
}

// supported returns the members of spec accepted by ok, preserving order.
func (s Spec) supported(ok func(Statistic) bool) Spec {
	out := make(Spec, 0, len(s))
	for _, st := range s {
		if ok(st) {
			out = append(out, st)
		}
	}

	return out
}
