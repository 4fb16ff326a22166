package features

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/cwbudde/algo-flowfeat/dsp/wavelet"
	timestats "github.com/cwbudde/algo-flowfeat/stats/time"
)

// WaveletExtractor summarises every level of a discrete wavelet
// decomposition. The vector is level-major: the statistics of cA_L come
// first, then cD_L down to cD_1, each in Spec order.
//
// Signals need at least F-1 samples for a filter of length F at any level
// above zero. A deeper decomposition does not raise that minimum, since a
// stage fed F-1 samples hands F-1 coefficients to the next.
//
// A WaveletExtractor is safe for concurrent use.
type WaveletExtractor struct {
	cfg     config
	wavelet *wavelet.Wavelet
}

// NewWaveletExtractor builds an extractor for the configured basis and
// level (coif6 at level 4 by default).
func NewWaveletExtractor(opts ...Option) (*WaveletExtractor, error) {
	cfg := applyOptions(opts)

	if cfg.level < 0 {
		return nil, fmt.Errorf("wavelet extractor: %w: %d", wavelet.ErrInvalidLevel, cfg.level)
	}

	w, err := wavelet.Lookup(cfg.wavelet)
	if err != nil {
		return nil, fmt.Errorf("wavelet extractor: %w", err)
	}

	return &WaveletExtractor{cfg: cfg, wavelet: w}, nil
}

// Name returns "dwt".
func (e *WaveletExtractor) Name() string { return "dwt" }

// Wavelet returns the decomposition basis.
func (e *WaveletExtractor) Wavelet() *wavelet.Wavelet { return e.wavelet }

// Level returns the decomposition depth.
func (e *WaveletExtractor) Level() int { return e.cfg.level }

// Supports reports whether s is a scalar coefficient statistic.
func (e *WaveletExtractor) Supports(s Statistic) bool {
	switch s {
	case StatMean, StatStd, StatMedian, StatMax, StatMin, StatRange,
		StatEnergy, StatCrestFactor, StatShapeFactor:
		return true
	default:
		return false
	}
}

// Length returns (level+1) times the number of supported statistics.
func (e *WaveletExtractor) Length(_ int, spec Spec) int {
	if len(spec) == 0 {
		spec = DefaultWaveletSpec()
	}

	return (e.cfg.level + 1) * len(spec.supported(e.Supports))
}

// MinLength returns the shortest signal the extractor accepts, F-1 for a
// filter of length F whatever the level. A stage input of F-1 samples
// yields F-1 coefficients, so the first stage bounds every later one.
func (e *WaveletExtractor) MinLength() int {
	if e.cfg.level == 0 {
		return 1
	}

	return max(e.wavelet.Len()-1, 1)
}

// Extract decomposes signal with symmetric extension and reduces every
// coefficient array to the statistics of spec. Signals too short for the
// configured depth fail with an error wrapping wavelet.ErrSignalTooShort.
func (e *WaveletExtractor) Extract(signal []float64, spec Spec) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if len(spec) == 0 {
		spec = DefaultWaveletSpec()
	}

	stats := spec.supported(e.Supports)
	if len(stats) != len(spec) {
		e.cfg.logger.Debug("statistics not supported by extractor",
			zap.String("extractor", e.Name()),
			zap.Int("dropped", len(spec)-len(stats)))
	}

	coeffs, err := wavelet.WaveDec(signal, e.wavelet, e.cfg.level, wavelet.ModeSymmetric)
	if err != nil {
		return nil, fmt.Errorf("dwt: %w", err)
	}

	out := make([]float64, 0, len(coeffs)*len(stats))
	for _, c := range coeffs {
		st := timestats.Calculate(c)
		for _, s := range stats {
			out = append(out, scalar(s, st))
		}
	}

	return out, nil
}

func scalar(s Statistic, st timestats.Stats) float64 {
	switch s {
	case StatMean:
		return st.Mean
	case StatStd:
		return st.Std
	case StatMedian:
		return st.Median
	case StatMax:
		return st.Max
	case StatMin:
		return st.Min
	case StatRange:
		return st.Range
	case StatEnergy:
		return st.Energy
	case StatCrestFactor:
		return st.CrestFactor
	case StatShapeFactor:
		return st.ShapeFactor
	default:
		return 0
	}
}
