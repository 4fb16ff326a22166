package features

import (
	"fmt"

	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/stft"
	"github.com/cwbudde/algo-flowfeat/stats/frequency"
)

// SpectrogramExtractor summarises the STFT magnitude of a signal.
//
// mean and std reduce every frequency bin across frames. The frame-level
// descriptors (spectral_*, chroma_stft, mfcc) contribute only the first row
// of their descriptor matrix: the single row of centroid, bandwidth,
// flatness and rolloff, the lowest contrast band, pitch class C, and the
// zeroth cepstral coefficient. Those rows are placed according to the
// configured FrameLayout.
//
// A SpectrogramExtractor is safe for concurrent use.
type SpectrogramExtractor struct {
	cfg  config
	stft *stft.Transformer
	bins int
}

// NewSpectrogramExtractor builds an extractor with a 256-sample periodic
// Hann window, hop 128 and nfft 256 at the configured sample rate.
func NewSpectrogramExtractor(opts ...Option) (*SpectrogramExtractor, error) {
	cfg := applyOptions(opts)

	sc := stft.DefaultConfig()
	sc.SampleRate = cfg.sampleRate
	sc.Window = cfg.window

	t, err := stft.New(sc)
	if err != nil {
		return nil, fmt.Errorf("spectrogram extractor: %w", err)
	}

	if cfg.descriptorRate <= 0 {
		return nil, fmt.Errorf("spectrogram extractor: descriptor rate must be > 0: %g", cfg.descriptorRate)
	}

	if err := cfg.contrast.Validate(cfg.descriptorRate); err != nil {
		return nil, fmt.Errorf("spectrogram extractor: %w", err)
	}

	if cfg.mfcc.NMFCC <= 0 || cfg.mfcc.NMFCC > cfg.mfcc.NMels {
		return nil, fmt.Errorf("spectrogram extractor: n_mfcc %d must be in [1, n_mels=%d]",
			cfg.mfcc.NMFCC, cfg.mfcc.NMels)
	}

	if cfg.layout != LayoutBins && cfg.layout != LayoutFrames {
		return nil, fmt.Errorf("spectrogram extractor: unknown frame layout %d", cfg.layout)
	}

	return &SpectrogramExtractor{cfg: cfg, stft: t, bins: sc.Bins()}, nil
}

// Name returns "stft".
func (e *SpectrogramExtractor) Name() string { return "stft" }

// Bins returns the number of frequency bins of the spectrogram.
func (e *SpectrogramExtractor) Bins() int { return e.bins }

// Supports reports whether s can be computed from a spectrogram.
func (e *SpectrogramExtractor) Supports(s Statistic) bool {
	switch s {
	case StatMean, StatStd,
		StatSpectralCentroid, StatSpectralBandwidth, StatSpectralContrast,
		StatSpectralFlatness, StatSpectralRolloff,
		StatChromaSTFT, StatMFCC:
		return true
	default:
		return false
	}
}

// Length returns the vector length produced for a signal of n samples.
// With LayoutBins it is the number of supported statistics times Bins.
func (e *SpectrogramExtractor) Length(n int, spec Spec) int {
	if len(spec) == 0 {
		spec = DefaultSpectrogramSpec()
	}

	frames := e.stft.Config().Frames(n)

	total := 0
	for _, s := range spec.supported(e.Supports) {
		switch {
		case s == StatMean || s == StatStd || e.cfg.layout == LayoutBins:
			total += e.bins
		default:
			total += frames
		}
	}

	return total
}

// Extract computes the statistics of spec from the magnitude spectrogram of
// signal. The signal is not modified.
func (e *SpectrogramExtractor) Extract(signal []float64, spec Spec) ([]float64, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	if len(spec) == 0 {
		spec = DefaultSpectrogramSpec()
	}

	sg, err := e.stft.Transform(signal)
	if err != nil {
		return nil, fmt.Errorf("stft: %w", err)
	}

	out := make([]float64, 0, len(spec)*e.bins)

	for _, s := range spec {
		if !e.Supports(s) {
			e.cfg.logger.Debug("statistic not supported by extractor",
				zap.String("extractor", e.Name()), zap.Stringer("statistic", s))
			continue
		}

		seg, err := e.compute(s, sg.Magnitude)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s, err)
		}

		out = append(out, seg...)
	}

	return out, nil
}

func (e *SpectrogramExtractor) compute(s Statistic, mag *mat.Dense) ([]float64, error) {
	var (
		row []float64
		m   *mat.Dense
		err error
	)

	switch s {
	case StatMean:
		return frequency.BinMeans(mag), nil
	case StatStd:
		return frequency.BinStds(mag), nil
	case StatSpectralCentroid:
		row, err = frequency.SpectralCentroid(mag, e.cfg.descriptorRate)
	case StatSpectralBandwidth:
		row, err = frequency.SpectralBandwidth(mag, e.cfg.descriptorRate)
	case StatSpectralFlatness:
		row, err = frequency.SpectralFlatness(mag)
	case StatSpectralRolloff:
		row, err = frequency.SpectralRolloff(mag, e.cfg.descriptorRate)
	case StatSpectralContrast:
		m, err = frequency.SpectralContrast(mag, e.cfg.descriptorRate, e.cfg.contrast)
	case StatChromaSTFT:
		m, err = frequency.ChromaSTFT(mag, e.cfg.sampleRate)
	case StatMFCC:
		m, err = frequency.MFCC(mag, e.cfg.sampleRate, e.cfg.mfcc)
	default:
		return nil, fmt.Errorf("unsupported statistic %d", int(s))
	}

	if err != nil {
		return nil, err
	}

	if m != nil {
		row = mat.Row(nil, 0, m)
	}

	return e.layout(row), nil
}

// layout places a frame row according to the configured FrameLayout.
func (e *SpectrogramExtractor) layout(row []float64) []float64 {
	if e.cfg.layout == LayoutFrames {
		return row
	}

	out := make([]float64, e.bins)
	copy(out, row)

	return out
}
