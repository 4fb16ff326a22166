package features

import (
	"go.uber.org/zap"

	"github.com/cwbudde/algo-flowfeat/dsp/window"
	"github.com/cwbudde/algo-flowfeat/stats/frequency"
)

// FrameLayout selects how frame-level descriptors are placed in the
// spectrogram feature vector.
type FrameLayout int

const (
	// LayoutBins places frame i of the descriptor row in slot i of a block
	// as wide as the bin count. Unused slots are zero and frames past the
	// last slot are dropped, so the vector length does not depend on the
	// signal length.
	LayoutBins FrameLayout = iota
	// LayoutFrames appends the descriptor row as is; its length is the
	// frame count.
	LayoutFrames
)

const (
	// DefaultSampleRate is the nominal rate of flow sequences in Hz.
	DefaultSampleRate = 1000
	// DefaultDescriptorRate is the rate assumed by the frame-level spectral
	// descriptors (centroid, bandwidth, contrast, flatness, rolloff).
	DefaultDescriptorRate = 22050
	// DefaultWavelet is the wavelet basis used by WaveletExtractor.
	DefaultWavelet = "coif6"
	// DefaultLevel is the decomposition depth used by WaveletExtractor.
	DefaultLevel = 4
)

// Option configures an extractor. Options that do not apply to an
// extractor are ignored by it.
type Option func(*config)

type config struct {
	sampleRate     float64
	descriptorRate float64
	window         window.Type
	layout         FrameLayout
	mfcc           frequency.MFCCConfig
	contrast       frequency.ContrastConfig
	wavelet        string
	level          int
	logger         *zap.Logger
}

func defaultConfig() config {
	return config{
		sampleRate:     DefaultSampleRate,
		descriptorRate: DefaultDescriptorRate,
		window:         window.TypeHann,
		layout:         LayoutBins,
		mfcc:           frequency.DefaultMFCCConfig(),
		contrast:       frequency.DefaultContrastConfig(),
		wavelet:        DefaultWavelet,
		level:          DefaultLevel,
		logger:         zap.NewNop(),
	}
}

func applyOptions(opts []Option) config {
	cfg := defaultConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}

// WithSampleRate sets the rate used for the STFT frequency axis and the
// chroma and MFCC projections.
func WithSampleRate(hz float64) Option {
	return func(c *config) {
		c.sampleRate = hz
	}
}

// WithDescriptorRate sets the rate used by the frame-level spectral
// descriptors.
func WithDescriptorRate(hz float64) Option {
	return func(c *config) {
		c.descriptorRate = hz
	}
}

// WithWindow sets the STFT analysis window.
func WithWindow(t window.Type) Option {
	return func(c *config) {
		c.window = t
	}
}

// WithFrameLayout sets the layout of frame-level descriptor rows.
func WithFrameLayout(l FrameLayout) Option {
	return func(c *config) {
		c.layout = l
	}
}

// WithMFCC sets the number of mel bands and cepstral coefficients.
func WithMFCC(nMels, nMFCC int) Option {
	return func(c *config) {
		c.mfcc.NMels = nMels
		c.mfcc.NMFCC = nMFCC
	}
}

// WithContrast replaces the spectral contrast band configuration.
func WithContrast(cc frequency.ContrastConfig) Option {
	return func(c *config) {
		c.contrast = cc
	}
}

// WithWavelet sets the wavelet basis by name ("coif6", "db4", "haar", ...).
func WithWavelet(name string) Option {
	return func(c *config) {
		c.wavelet = name
	}
}

// WithLevel sets the wavelet decomposition depth.
func WithLevel(level int) Option {
	return func(c *config) {
		c.level = level
	}
}

// WithLogger sets the logger; nil keeps the no-op default.
func WithLogger(l *zap.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
