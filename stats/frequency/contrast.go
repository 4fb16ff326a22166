package frequency

import (
	"fmt"
	"math"
	"slices"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

// ContrastConfig controls SpectralContrast.
type ContrastConfig struct {
	// FMin is the upper edge of the first band; later bands are octaves.
	FMin float64
	// NBands is the number of octave bands above the first.
	NBands int
	// Quantile selects the fraction of each band averaged for peak and valley.
	Quantile float64
	// Linear returns peak-valley differences instead of dB ratios.
	Linear bool
}

// DefaultContrastConfig returns six octave bands above 200 Hz with a 2%
// quantile.
func DefaultContrastConfig() ContrastConfig {
	return ContrastConfig{FMin: 200, NBands: 6, Quantile: 0.02}
}

// bandEdges returns [0, fmin, 2fmin, ..., 2^nBands fmin].
func (c ContrastConfig) bandEdges() []float64 {
	edges := make([]float64, c.NBands+2)
	for k := 1; k < len(edges); k++ {
		edges[k] = c.FMin * math.Pow(2, float64(k-1))
	}
	return edges
}

// Validate checks the configuration against a sample rate.
func (c ContrastConfig) Validate(sampleRate float64) error {
	if c.FMin <= 0 || c.NBands < 1 || c.Quantile <= 0 || c.Quantile >= 1 {
		return fmt.Errorf("frequency: invalid contrast config %+v", c)
	}

	edges := c.bandEdges()
	for _, e := range edges[:len(edges)-1] {
		if e >= sampleRate/2 {
			return fmt.Errorf("%w: band edge %g Hz at sample rate %g Hz", ErrBandExceedsNyquist, e, sampleRate)
		}
	}

	return nil
}

// SpectralContrast returns, for each of NBands+1 bands and every frame, the
// difference between the mean of the loudest and the quietest Quantile of
// the band's bins. In dB mode peaks and valleys are converted with
// PowerToDB(ref 1, amin 1e-10, top 80 dB) before subtracting.
//
// Each band spans [f_low, f_high] plus the bin just below f_low; the last
// band extends to Nyquist. The topmost bin of every band but the last is
// left out of the ranking.
func SpectralContrast(s mat.Matrix, sampleRate float64, cfg ContrastConfig) (*mat.Dense, error) {
	bins, frames, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	if err := cfg.Validate(sampleRate); err != nil {
		return nil, err
	}

	freqs := Frequencies(sampleRate, bins)
	edges := cfg.bandEdges()
	nRows := cfg.NBands + 1

	valley := mat.NewDense(nRows, frames, nil)
	peak := mat.NewDense(nRows, frames, nil)

	col := make([]float64, bins)

	for k := range nRows {
		lo, hi := -1, -1
		for i, f := range freqs {
			if f >= edges[k] && f <= edges[k+1] {
				if lo < 0 {
					lo = i
				}
				hi = i
			}
		}

		if lo < 0 {
			return nil, fmt.Errorf("%w: [%g, %g] Hz", ErrEmptyBand, edges[k], edges[k+1])
		}

		if k > 0 && lo > 0 {
			lo--
		}
		if k == cfg.NBands {
			hi = bins - 1
		}

		count := hi - lo + 1
		subHi := hi
		if k < cfg.NBands {
			subHi--
		}

		n := max(int(math.RoundToEven(cfg.Quantile*float64(count))), 1)

		for j := range frames {
			mat.Col(col, j, s)

			sub := slices.Clone(col[lo : subHi+1])
			if len(sub) == 0 {
				// Single-bin band: rank the bin itself.
				sub = slices.Clone(col[lo : hi+1])
			}
			slices.Sort(sub)

			m := min(n, len(sub))
			valley.Set(k, j, stat.Mean(sub[:m], nil))
			peak.Set(k, j, stat.Mean(sub[len(sub)-m:], nil))
		}
	}

	var out mat.Dense
	if cfg.Linear {
		out.Sub(peak, valley)
		return &out, nil
	}

	out.Sub(PowerToDB(peak, 1, 1e-10, 80), PowerToDB(valley, 1, 1e-10, 80))

	return &out, nil
}
