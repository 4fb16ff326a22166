package filterbank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
)

// HzToOcts converts a frequency to octaves relative to C0 (A440/16), with
// A440 shifted by tuning fractions of a bin.
func HzToOcts(f, tuning float64, binsPerOctave int) float64 {
	a440 := 440 * math.Pow(2, tuning/float64(binsPerOctave))
	return math.Log2(f / (a440 / 16))
}

// ChromaConfig parameterises a chroma filter bank.
type ChromaConfig struct {
	SampleRate float64
	NFFT       int
	NChroma    int
	// Tuning deviation from A440 in fractions of a chroma bin.
	Tuning float64
	// CtrOct and OctWidth define the Gaussian octave weighting. OctWidth <= 0
	// disables it.
	CtrOct   float64
	OctWidth float64
	// BaseC rolls the bank so row 0 is pitch class C instead of A.
	BaseC bool
}

// DefaultChromaConfig returns 12 chroma bins centred on octave 5 with a
// two-octave Gaussian weighting, starting at C.
func DefaultChromaConfig(sampleRate float64, nfft int) ChromaConfig {
	return ChromaConfig{
		SampleRate: sampleRate,
		NFFT:       nfft,
		NChroma:    12,
		CtrOct:     5,
		OctWidth:   2,
		BaseC:      true,
	}
}

// Chroma returns the chroma filter bank (NChroma × NFFT/2+1). Each FFT bin
// contributes a Gaussian bump around its pitch class; columns are
// L2-normalised before the octave weighting is applied.
func Chroma(cfg ChromaConfig) (*mat.Dense, error) {
	switch {
	case cfg.SampleRate <= 0:
		return nil, fmt.Errorf("chroma: sample rate must be > 0: %f", cfg.SampleRate)
	case cfg.NFFT < 2:
		return nil, fmt.Errorf("chroma: nfft must be >= 2: %d", cfg.NFFT)
	case cfg.NChroma <= 0:
		return nil, fmt.Errorf("chroma: n_chroma must be > 0: %d", cfg.NChroma)
	}

	key := cacheKey{
		kind: kindChroma, sampleRate: cfg.SampleRate, nfft: cfg.NFFT, n: cfg.NChroma,
		tuning: cfg.Tuning, fmin: cfg.CtrOct, fmax: cfg.OctWidth, htk: cfg.BaseC,
	}

	return cached(key, func() (*mat.Dense, error) { return buildChroma(cfg), nil })
}

func buildChroma(cfg ChromaConfig) *mat.Dense {
	nChroma := float64(cfg.NChroma)
	nfft := cfg.NFFT

	// Pitch of every FFT bin except DC, in chroma bins; DC is placed 1.5
	// octaves below bin 1.
	freqs := core.Linspace(0, cfg.SampleRate, nfft, false)[1:]
	frqbins := make([]float64, nfft)
	for i, f := range freqs {
		frqbins[i+1] = nChroma * HzToOcts(f, cfg.Tuning, cfg.NChroma)
	}
	frqbins[0] = frqbins[1] - 1.5*nChroma

	binwidth := make([]float64, nfft)
	for i := range nfft - 1 {
		binwidth[i] = math.Max(frqbins[i+1]-frqbins[i], 1)
	}
	binwidth[nfft-1] = 1

	half := math.Round(nChroma / 2)
	wts := make([][]float64, cfg.NChroma)
	for c := range wts {
		wts[c] = make([]float64, nfft)
		for k := range nfft {
			d := core.FloorMod(frqbins[k]-float64(c)+half+10*nChroma, nChroma) - half
			x := 2 * d / binwidth[k]
			wts[c][k] = math.Exp(-0.5 * x * x)
		}
	}

	col := make([]float64, cfg.NChroma)
	for k := range nfft {
		for c := range col {
			col[c] = wts[c][k]
		}

		norm := floats.Norm(col, 2)
		if norm < core.Tiny {
			continue
		}

		for c := range col {
			wts[c][k] /= norm
		}
	}

	if cfg.OctWidth > 0 {
		for k := range nfft {
			x := (frqbins[k]/nChroma - cfg.CtrOct) / cfg.OctWidth
			g := math.Exp(-0.5 * x * x)
			for c := range wts {
				wts[c][k] *= g
			}
		}
	}

	roll := 0
	if cfg.BaseC {
		roll = 3 * (cfg.NChroma / 12)
	}

	bins := nfft/2 + 1
	out := mat.NewDense(cfg.NChroma, bins, nil)
	for c := range cfg.NChroma {
		src := wts[core.FloorModInt(c+roll, cfg.NChroma)]
		out.SetRow(c, src[:bins])
	}

	return out
}
