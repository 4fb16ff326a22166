package filterbank

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
	"github.com/cwbudde/algo-flowfeat/dsp/spectrum"
)

// Slaney mel scale: linear below 1 kHz, logarithmic above.
const (
	melFSP       = 200.0 / 3
	melMinLogHz  = 1000.0
	melMinLogMel = melMinLogHz / melFSP
)

var melLogStep = math.Log(6.4) / 27

// HzToMel converts a frequency in Hz to mels. htk selects the HTK formula
// 2595*log10(1+f/700) instead of the Slaney scale.
func HzToMel(f float64, htk bool) float64 {
	if htk {
		return 2595 * math.Log10(1+f/700)
	}

	if f >= melMinLogHz {
		return melMinLogMel + math.Log(f/melMinLogHz)/melLogStep
	}

	return f / melFSP
}

// MelToHz is the inverse of HzToMel.
func MelToHz(m float64, htk bool) float64 {
	if htk {
		return 700 * (math.Pow(10, m/2595) - 1)
	}

	if m >= melMinLogMel {
		return melMinLogHz * math.Exp(melLogStep*(m-melMinLogMel))
	}

	return melFSP * m
}

// MelFrequencies returns n frequencies evenly spaced on the mel scale
// between fmin and fmax inclusive.
func MelFrequencies(n int, fmin, fmax float64, htk bool) []float64 {
	mels := core.Linspace(HzToMel(fmin, htk), HzToMel(fmax, htk), n, true)
	for i, m := range mels {
		mels[i] = MelToHz(m, htk)
	}

	return mels
}

// MelConfig parameterises a mel filter bank.
type MelConfig struct {
	SampleRate float64
	NFFT       int
	NMels      int
	FMin       float64
	// FMax defaults to SampleRate/2 when <= 0.
	FMax float64
	HTK  bool
}

// DefaultMelConfig returns 128 Slaney mels spanning 0 Hz to Nyquist.
func DefaultMelConfig(sampleRate float64, nfft int) MelConfig {
	return MelConfig{SampleRate: sampleRate, NFFT: nfft, NMels: 128}
}

func (c MelConfig) normalized() (MelConfig, error) {
	if c.FMax <= 0 {
		c.FMax = c.SampleRate / 2
	}

	switch {
	case c.SampleRate <= 0:
		return c, fmt.Errorf("mel: sample rate must be > 0: %f", c.SampleRate)
	case c.NFFT <= 0:
		return c, fmt.Errorf("mel: nfft must be > 0: %d", c.NFFT)
	case c.NMels <= 0:
		return c, fmt.Errorf("mel: n_mels must be > 0: %d", c.NMels)
	case c.FMin < 0 || c.FMin >= c.FMax:
		return c, fmt.Errorf("mel: invalid band [%f, %f]", c.FMin, c.FMax)
	}

	return c, nil
}

// Mel returns the Slaney-normalised triangular mel filter bank
// (NMels × NFFT/2+1). Each triangle is scaled by 2/(upper-lower) so filters
// have approximately constant energy per Hz.
func Mel(cfg MelConfig) (*mat.Dense, error) {
	cfg, err := cfg.normalized()
	if err != nil {
		return nil, err
	}

	key := cacheKey{
		kind: kindMel, sampleRate: cfg.SampleRate, nfft: cfg.NFFT, n: cfg.NMels,
		fmin: cfg.FMin, fmax: cfg.FMax, htk: cfg.HTK,
	}

	return cached(key, func() (*mat.Dense, error) { return buildMel(cfg) })
}

func buildMel(cfg MelConfig) (*mat.Dense, error) {
	fftFreqs, err := spectrum.FFTFrequencies(cfg.SampleRate, cfg.NFFT)
	if err != nil {
		return nil, err
	}

	melF := MelFrequencies(cfg.NMels+2, cfg.FMin, cfg.FMax, cfg.HTK)
	bins := len(fftFreqs)
	w := mat.NewDense(cfg.NMels, bins, nil)

	for i := range cfg.NMels {
		lowerW := melF[i+1] - melF[i]
		upperW := melF[i+2] - melF[i+1]
		enorm := 2 / (melF[i+2] - melF[i])

		for k, f := range fftFreqs {
			lower := (f - melF[i]) / lowerW
			upper := (melF[i+2] - f) / upperW
			if v := math.Min(lower, upper); v > 0 {
				w.Set(i, k, v*enorm)
			}
		}
	}

	return w, nil
}
