// Package pitch tracks spectral peaks and estimates tuning offsets from
// magnitude spectrograms.
package pitch

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
	"github.com/cwbudde/algo-flowfeat/dsp/filterbank"
)

// ErrInvalidConfig is returned for an unusable tracking configuration.
var ErrInvalidConfig = errors.New("pitch: invalid config")

// Config controls peak picking.
type Config struct {
	SampleRate float64
	// FMin and FMax bound the search band [FMin, FMax). FMax is clipped to
	// Nyquist.
	FMin float64
	FMax float64
	// Threshold is the fraction of each frame's maximum a peak must exceed.
	Threshold float64
}

// DefaultConfig searches 150 Hz to 4 kHz with a 10% threshold.
func DefaultConfig(sampleRate float64) Config {
	return Config{SampleRate: sampleRate, FMin: 150, FMax: 4000, Threshold: 0.1}
}

// Track is the result of Piptrack: per bin and frame, the interpolated peak
// frequency (0 where no peak) and its magnitude.
type Track struct {
	Pitches *mat.Dense
	Mags    *mat.Dense
}

// Piptrack finds local maxima along the frequency axis of a magnitude
// spectrogram (bins × frames) and refines them by parabolic interpolation.
// The FFT size is inferred as 2*(bins-1).
func Piptrack(s mat.Matrix, cfg Config) (Track, error) {
	bins, frames := s.Dims()
	if bins < 2 || frames == 0 {
		return Track{}, fmt.Errorf("%w: spectrogram %dx%d", ErrInvalidConfig, bins, frames)
	}
	if cfg.SampleRate <= 0 {
		return Track{}, fmt.Errorf("%w: sample rate must be > 0: %f", ErrInvalidConfig, cfg.SampleRate)
	}

	nfft := 2 * (bins - 1)
	binHz := cfg.SampleRate / float64(nfft)
	fmax := math.Min(cfg.FMax, cfg.SampleRate/2)

	pitches := mat.NewDense(bins, frames, nil)
	mags := mat.NewDense(bins, frames, nil)

	col := make([]float64, bins)
	gated := make([]float64, bins)

	for j := range frames {
		mat.Col(col, j, s)

		ref := cfg.Threshold * maxOf(col)
		for i, v := range col {
			gated[i] = 0
			if v > ref {
				gated[i] = v
			}
		}

		for i := 1; i < bins; i++ {
			f := float64(i) * binHz
			if f < cfg.FMin || f >= fmax || !isLocalMax(gated, i) {
				continue
			}

			shift := parabolicShift(col, i)
			pitches.Set(i, j, (float64(i)+shift)*binHz)
			mags.Set(i, j, col[i]+0.5*gradient(col, i)*shift)
		}
	}

	return Track{Pitches: pitches, Mags: mags}, nil
}

// isLocalMax reports x[i] > x[i-1] && x[i] >= x[i+1] with edge replication.
func isLocalMax(x []float64, i int) bool {
	prev := x[max(i-1, 0)]
	next := x[min(i+1, len(x)-1)]
	return x[i] > prev && x[i] >= next
}

// parabolicShift returns the vertex offset of the parabola through
// x[i-1], x[i], x[i+1]; zero at the edges and for flat or skewed triples.
func parabolicShift(x []float64, i int) float64 {
	if i <= 0 || i >= len(x)-1 {
		return 0
	}

	a := x[i+1] + x[i-1] - 2*x[i]
	b := (x[i+1] - x[i-1]) / 2
	if math.Abs(b) >= math.Abs(a) {
		return 0
	}

	return -b / a
}

// gradient is the second-order central difference with one-sided edges.
func gradient(x []float64, i int) float64 {
	switch {
	case len(x) < 2:
		return 0
	case i == 0:
		return x[1] - x[0]
	case i == len(x)-1:
		return x[i] - x[i-1]
	default:
		return (x[i+1] - x[i-1]) / 2
	}
}

func maxOf(x []float64) float64 {
	m := math.Inf(-1)
	for _, v := range x {
		m = math.Max(m, v)
	}
	return m
}

// EstimateTuning estimates the tuning offset, in fractions of a bin, of the
// peaks in a magnitude spectrogram. Peaks weaker than the median peak
// magnitude are ignored.
func EstimateTuning(s mat.Matrix, cfg Config, resolution float64, binsPerOctave int) (float64, error) {
	track, err := Piptrack(s, cfg)
	if err != nil {
		return 0, err
	}

	bins, frames := track.Pitches.Dims()

	var peakMags []float64
	for i := range bins {
		for j := range frames {
			if track.Pitches.At(i, j) > 0 {
				peakMags = append(peakMags, track.Mags.At(i, j))
			}
		}
	}

	if len(peakMags) == 0 {
		return 0, nil
	}

	threshold := median(peakMags)

	var freqs []float64
	for i := range bins {
		for j := range frames {
			if p := track.Pitches.At(i, j); p > 0 && track.Mags.At(i, j) >= threshold {
				freqs = append(freqs, p)
			}
		}
	}

	return PitchTuning(freqs, resolution, binsPerOctave), nil
}

// PitchTuning returns the most common deviation, in fractions of a bin, of
// freqs from the equal-tempered grid at A440. The deviation is histogrammed
// over [-0.5, 0.5] with the given resolution and the left edge of the
// fullest bin is returned. Non-positive frequencies are ignored; with none
// left the result is 0.
func PitchTuning(freqs []float64, resolution float64, binsPerOctave int) float64 {
	nbins := int(math.Ceil(1 / resolution))
	edges := core.Linspace(-0.5, 0.5, nbins+1, true)
	counts := make([]int, nbins)

	found := false
	for _, f := range freqs {
		if f <= 0 {
			continue
		}
		found = true

		residual := core.FloorMod(float64(binsPerOctave)*filterbank.HzToOcts(f, 0, binsPerOctave), 1)
		if residual >= 0.5 {
			residual--
		}

		idx := sort.Search(len(edges), func(k int) bool { return edges[k] > residual }) - 1
		switch {
		case residual == edges[nbins]:
			idx = nbins - 1
		case idx < 0 || idx >= nbins:
			continue
		}
		counts[idx]++
	}

	if !found {
		return 0
	}

	best := 0
	for i, c := range counts {
		if c > counts[best] {
			best = i
		}
	}

	return edges[best]
}

// median averages the two central values for even lengths. x is reordered.
func median(x []float64) float64 {
	sort.Float64s(x)

	n := len(x)
	if n%2 == 1 {
		return x[n/2]
	}

	return (x[n/2-1] + x[n/2]) / 2
}
