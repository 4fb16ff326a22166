package frequency

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
	"github.com/cwbudde/algo-flowfeat/dsp/filterbank"
	"github.com/cwbudde/algo-flowfeat/dsp/pitch"
)

// TuningResolution is the bin fraction used when estimating tuning.
const TuningResolution = 0.01

// ChromaSTFT projects a magnitude spectrogram onto 12 pitch classes (row 0
// is C). The tuning offset is estimated from the spectrogram's own peaks.
// Every frame is scaled so its largest class is 1; silent frames stay zero.
func ChromaSTFT(s mat.Matrix, sampleRate float64) (*mat.Dense, error) {
	bins, frames, err := checkSpectrogram(s)
	if err != nil {
		return nil, err
	}

	nChroma := 12
	tuning, err := pitch.EstimateTuning(s, pitch.DefaultConfig(sampleRate), TuningResolution, nChroma)
	if err != nil {
		return nil, fmt.Errorf("chroma tuning: %w", err)
	}

	cfg := filterbank.DefaultChromaConfig(sampleRate, 2*(bins-1))
	cfg.NChroma = nChroma
	cfg.Tuning = tuning

	bank, err := filterbank.Chroma(cfg)
	if err != nil {
		return nil, err
	}

	var out mat.Dense
	out.Mul(bank, s)

	col := make([]float64, nChroma)
	for j := range frames {
		mat.Col(col, j, &out)

		norm := floats.Norm(col, math.Inf(1))
		if norm < core.Tiny {
			continue
		}

		floats.Scale(1/norm, col)
		out.SetCol(j, col)
	}

	return &out, nil
}
