// Package frequency computes spectral descriptors of magnitude spectrograms.
//
// Spectrograms are gonum matrices laid out bins × frames, with bin 0 at DC
// and the last bin at Nyquist. Frame-level descriptors return one value per
// frame; band descriptors return one row per band.
package frequency

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
)

var (
	// ErrBandExceedsNyquist is returned when a contrast band starts at or
	// above half the sample rate.
	ErrBandExceedsNyquist = errors.New("frequency: band exceeds Nyquist")
	// ErrEmptyBand is returned when a contrast band contains no FFT bins.
	ErrEmptyBand = errors.New("frequency: band contains no bins")
	// ErrInvalidSpectrogram is returned for spectrograms with fewer than two
	// bins or no frames.
	ErrInvalidSpectrogram = errors.New("frequency: invalid spectrogram")
)

// binFreq returns the frequency in Hz of a given bin index.
// fftSize = 2 * (binCount - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}

// Frequencies returns the centre frequency of each of binCount one-sided bins.
func Frequencies(sampleRate float64, binCount int) []float64 {
	out := make([]float64, binCount)
	for i := range out {
		out[i] = binFreq(i, sampleRate, binCount)
	}
	return out
}

func checkSpectrogram(s mat.Matrix) (bins, frames int, err error) {
	bins, frames = s.Dims()
	if bins < 2 || frames == 0 {
		return 0, 0, fmt.Errorf("%w: %dx%d", ErrInvalidSpectrogram, bins, frames)
	}
	return bins, frames, nil
}

// normalizeL1 returns frame / sum|frame|, or the frame unchanged when its
// norm is below core.Tiny.
func normalizeL1(frame []float64) []float64 {
	out := append([]float64(nil), frame...)
	norm := floats.Norm(out, 1)
	if norm < core.Tiny {
		return out
	}
	floats.Scale(1/norm, out)
	return out
}

// Centroid returns the spectral centroid of one magnitude frame in Hz:
// the mean of freqs weighted by the L1-normalised magnitudes.
func Centroid(frame, freqs []float64) float64 {
	if len(frame) == 0 {
		return 0
	}
	return floats.Dot(freqs, normalizeL1(frame))
}

// Bandwidth returns the order-p spectral bandwidth of one magnitude frame
// around centroid: (sum S_norm * |f - centroid|^p)^(1/p).
func Bandwidth(frame, freqs []float64, centroid, p float64) float64 {
	if len(frame) == 0 {
		return 0
	}

	w := normalizeL1(frame)

	sum := 0.0
	for i, f := range freqs {
		sum += w[i] * math.Pow(math.Abs(f-centroid), p)
	}

	return math.Pow(sum, 1/p)
}

// Flatness returns the ratio of geometric to arithmetic mean of the power
// frame^2, each value floored at amin. The result lies in (0, 1]; silence
// is perfectly flat.
func Flatness(frame []float64, amin float64) float64 {
	if len(frame) == 0 {
		return 0
	}

	p := make([]float64, len(frame))
	for i, v := range frame {
		p[i] = math.Max(amin, v*v)
	}

	logMean := 0.0
	for _, v := range p {
		logMean += math.Log(v)
	}
	logMean /= float64(len(p))

	return math.Exp(logMean) / stat.Mean(p, nil)
}

// Rolloff returns the lowest frequency at which the cumulative magnitude
// reaches rollPercent of the frame total. Silence rolls off at freqs[0].
func Rolloff(frame, freqs []float64, rollPercent float64) float64 {
	if len(frame) == 0 {
		return 0
	}

	cum := make([]float64, len(frame))
	floats.CumSum(cum, frame)
	threshold := rollPercent * cum[len(cum)-1]

	for i, c := range cum {
		if c >= threshold {
			return freqs[i]
		}
	}

	return freqs[len(freqs)-1]
}

// perFrame applies fn to every column of s.
func perFrame(s mat.Matrix, fn func(frame []float64) float64) []float64 {
	bins, frames := s.Dims()
	out := make([]float64, frames)
	col := make([]float64, bins)
	for j := range frames {
		mat.Col(col, j, s)
		out[j] = fn(col)
	}
	return out
}

// SpectralCentroid returns the centroid of every frame of s at sampleRate.
func SpectralCentroid(s mat.Matrix, sampleRate float64) ([]float64, error) {
	bins, _, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	freqs := Frequencies(sampleRate, bins)
	return perFrame(s, func(f []float64) float64 { return Centroid(f, freqs) }), nil
}

// SpectralBandwidth returns the second-order bandwidth of every frame of s
// around its own centroid.
func SpectralBandwidth(s mat.Matrix, sampleRate float64) ([]float64, error) {
	bins, _, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	freqs := Frequencies(sampleRate, bins)
	return perFrame(s, func(f []float64) float64 {
		return Bandwidth(f, freqs, Centroid(f, freqs), 2)
	}), nil
}

// SpectralFlatness returns the flatness of every frame of s with amin 1e-10.
func SpectralFlatness(s mat.Matrix) ([]float64, error) {
	if _, _, err := checkSpectrogram(s); err != nil {
		return nil, err
	}

	return perFrame(s, func(f []float64) float64 { return Flatness(f, 1e-10) }), nil
}

// SpectralRolloff returns the 85% rolloff frequency of every frame of s.
func SpectralRolloff(s mat.Matrix, sampleRate float64) ([]float64, error) {
	bins, _, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	freqs := Frequencies(sampleRate, bins)
	return perFrame(s, func(f []float64) float64 { return Rolloff(f, freqs, 0.85) }), nil
}

// BinMeans returns the mean of every bin of s across frames.
func BinMeans(s mat.Matrix) []float64 {
	bins, frames := s.Dims()
	out := make([]float64, bins)
	row := make([]float64, frames)
	for i := range bins {
		mat.Row(row, i, s)
		out[i] = stat.Mean(row, nil)
	}
	return out
}

// BinStds returns the population standard deviation of every bin of s
// across frames.
func BinStds(s mat.Matrix) []float64 {
	bins, frames := s.Dims()
	out := make([]float64, bins)
	row := make([]float64, frames)
	for i := range bins {
		mat.Row(row, i, s)
		out[i] = stat.PopStdDev(row, nil)
	}
	return out
}

// PowerToDB converts a power matrix to decibels, 10*log10(max(amin, x))
// relative to ref, and clips every value to at most topDB below the overall
// maximum. topDB <= 0 disables the clipping. p is not modified.
func PowerToDB(p mat.Matrix, ref, amin, topDB float64) *mat.Dense {
	r, c := p.Dims()
	out := mat.NewDense(r, c, nil)
	out.Apply(func(_, _ int, v float64) float64 {
		return core.PowerToDB(v, ref, amin)
	}, p)

	if topDB > 0 {
		floor := mat.Max(out) - topDB
		out.Apply(func(_, _ int, v float64) float64 {
			return math.Max(v, floor)
		}, out)
	}

	return out
}
