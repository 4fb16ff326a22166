package frequency

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/filterbank"
)

// MFCCConfig controls MFCC.
type MFCCConfig struct {
	NMels int
	NMFCC int
	// TopDB clips the log-mel spectrogram; <= 0 disables clipping.
	TopDB float64
}

// DefaultMFCCConfig returns 20 coefficients over 128 mel bands.
func DefaultMFCCConfig() MFCCConfig {
	return MFCCConfig{NMels: 128, NMFCC: 20, TopDB: 80}
}

// MFCC returns mel-frequency cepstral coefficients (NMFCC × frames) of a
// magnitude spectrogram: the squared magnitudes are projected onto a Slaney
// mel filter bank spanning 0 Hz to Nyquist, converted to dB and decorrelated
// with an orthonormal DCT-II along the mel axis.
func MFCC(s mat.Matrix, sampleRate float64, cfg MFCCConfig) (*mat.Dense, error) {
	bins, _, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	if cfg.NMFCC <= 0 || cfg.NMFCC > cfg.NMels {
		return nil, fmt.Errorf("frequency: n_mfcc %d must be in [1, n_mels=%d]", cfg.NMFCC, cfg.NMels)
	}

	melCfg := filterbank.DefaultMelConfig(sampleRate, 2*(bins-1))
	melCfg.NMels = cfg.NMels

	bank, err := filterbank.Mel(melCfg)
	if err != nil {
		return nil, err
	}

	var power, mel mat.Dense
	power.MulElem(s, s)
	mel.Mul(bank, &power)

	logMel := PowerToDB(&mel, 1, 1e-10, cfg.TopDB)

	var out mat.Dense
	out.Mul(DCTBasis(cfg.NMFCC, cfg.NMels), logMel)

	return &out, nil
}

// DCTBasis returns the first k rows of the orthonormal DCT-II matrix of
// size n: D[i][j] = s_i * cos(pi*i*(2j+1)/(2n)) with s_0 = sqrt(1/n) and
// s_i = sqrt(2/n) otherwise.
func DCTBasis(k, n int) *mat.Dense {
	d := mat.NewDense(k, n, nil)
	s0 := math.Sqrt(1 / float64(n))
	si := math.Sqrt(2 / float64(n))

	for i := range k {
		scale := si
		if i == 0 {
			scale = s0
		}

		for j := range n {
			d.Set(i, j, scale*math.Cos(math.Pi*float64(i)*float64(2*j+1)/float64(2*n)))
		}
	}

	return d
}

// DCT2Ortho returns the orthonormal DCT-II of x.
func DCT2Ortho(x []float64) []float64 {
	n := len(x)
	if n == 0 {
		return nil
	}

	out := mat.NewVecDense(n, nil)
	out.MulVec(DCTBasis(n, n), mat.NewVecDense(n, append([]float64(nil), x...)))

	return out.RawVector().Data
}
