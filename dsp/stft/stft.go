package stft

import (
	"fmt"
	"sync"

	algofft "github.com/cwbudde/algo-fft"
	"github.com/cwbudde/algo-vecmath"
	"gonum.org/v1/gonum/mat"

	"github.com/cwbudde/algo-flowfeat/dsp/core"
	"github.com/cwbudde/algo-flowfeat/dsp/spectrum"
	"github.com/cwbudde/algo-flowfeat/dsp/window"
)

// Transformer computes magnitude spectrograms for a fixed Config.
// It is safe for concurrent use.
type Transformer struct {
	cfg   Config
	win   []float64
	scale float64
	freqs []float64

	scratch sync.Pool
}

// frameScratch carries an FFT plan and its buffers. Plans hold internal
// state and are never shared between goroutines.
type frameScratch struct {
	plan   *algofft.Plan[complex128]
	in     []complex128
	out    []complex128
	frame  []float64
	column []float64
}

// New validates cfg and prepares the window and frequency axis.
func New(cfg Config) (*Transformer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	win := window.Generate(cfg.Window, cfg.WindowLength, window.WithPeriodic())

	sum := window.Sum(win)
	if sum == 0 {
		return nil, fmt.Errorf("%w: window sums to zero", ErrInvalidConfig)
	}

	freqs, err := spectrum.FFTFrequencies(cfg.SampleRate, cfg.NFFT)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	t := &Transformer{
		cfg:   cfg,
		win:   win,
		scale: 1 / sum,
		freqs: freqs,
	}

	first, err := t.newScratch()
	if err != nil {
		return nil, fmt.Errorf("stft init fft plan: %w", err)
	}

	t.scratch.Put(first)

	return t, nil
}

// Config returns the framing parameters.
func (t *Transformer) Config() Config {
	return t.cfg
}

func (t *Transformer) newScratch() (*frameScratch, error) {
	plan, err := algofft.NewPlan64(t.cfg.NFFT)
	if err != nil {
		return nil, err
	}

	return &frameScratch{
		plan:   plan,
		in:     make([]complex128, t.cfg.NFFT),
		out:    make([]complex128, t.cfg.NFFT),
		frame:  make([]float64, t.cfg.WindowLength),
		column: make([]float64, t.cfg.Bins()),
	}, nil
}

func (t *Transformer) getScratch() (*frameScratch, error) {
	if s, ok := t.scratch.Get().(*frameScratch); ok && s != nil {
		return s, nil
	}

	return t.newScratch()
}

// Transform returns the magnitude spectrogram of signal. The signal is not
// modified.
func (t *Transformer) Transform(signal []float64) (*Spectrogram, error) {
	if len(signal) == 0 {
		return nil, ErrEmptySignal
	}

	cfg := t.cfg
	hop := cfg.Hop()
	half := cfg.WindowLength / 2
	frames := cfg.Frames(len(signal))

	// Boundary extension plus tail padding to a whole hop.
	padded := (frames-1)*hop + cfg.WindowLength
	ext := core.ZeroPad(signal, half, padded-half-len(signal))

	s, err := t.getScratch()
	if err != nil {
		return nil, fmt.Errorf("stft fft plan: %w", err)
	}
	defer t.scratch.Put(s)

	bins := cfg.Bins()
	mag := mat.NewDense(bins, frames, nil)

	for j := range frames {
		start := j * hop
		vecmath.MulBlock(s.frame, ext[start:start+cfg.WindowLength], t.win)

		core.Zero(s.in)
		for i, v := range s.frame {
			s.in[i] = complex(v, 0)
		}

		if err := s.plan.Forward(s.out, s.in); err != nil {
			return nil, fmt.Errorf("stft frame %d: %w", j, err)
		}

		spectrum.MagnitudeInto(s.column, s.out[:bins])
		vecmath.ScaleBlockInPlace(s.column, t.scale)
		mag.SetCol(j, s.column)
	}

	return &Spectrogram{
		Magnitude:   mag,
		Frequencies: append([]float64(nil), t.freqs...),
		SampleRate:  cfg.SampleRate,
		NFFT:        cfg.NFFT,
	}, nil
}

// Transform computes a spectrogram with DefaultConfig.
func Transform(signal []float64) (*Spectrogram, error) {
	t, err := defaultTransformer()
	if err != nil {
		return nil, err
	}

	return t.Transform(signal)
}

var defaultTransformer = sync.OnceValues(func() (*Transformer, error) {
	return New(DefaultConfig())
})
