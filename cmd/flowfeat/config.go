package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/cwbudde/algo-flowfeat/batch"
	"github.com/cwbudde/algo-flowfeat/features"
)

// Config is the YAML configuration file layout.
type Config struct {
	STFT  STFTConfig  `yaml:"stft"`
	DWT   DWTConfig   `yaml:"dwt"`
	Batch BatchConfig `yaml:"batch"`
	Log   LogConfig   `yaml:"log"`
}

// STFTConfig configures the spectrogram extractor.
type STFTConfig struct {
	Features []string `yaml:"features"`
	// Layout is "bins" (fixed length) or "frames".
	Layout string `yaml:"layout"`
}

// DWTConfig configures the wavelet extractor.
type DWTConfig struct {
	Features []string `yaml:"features"`
	Wavelet  string   `yaml:"wavelet"`
	Level    int      `yaml:"level"`
}

// BatchConfig configures the table applier.
type BatchConfig struct {
	Workers  int     `yaml:"workers"`
	Policy   string  `yaml:"policy"`
	Sentinel float64 `yaml:"sentinel"`
}

// LogConfig configures logging. An empty File logs to stderr.
type LogConfig struct {
	Level      string `yaml:"level"`
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
	Compress   bool   `yaml:"compress"`
}

func defaultConfig() Config {
	return Config{
		STFT: STFTConfig{Layout: "bins"},
		DWT: DWTConfig{
			Wavelet: features.DefaultWavelet,
			Level:   features.DefaultLevel,
		},
		Batch: BatchConfig{Policy: batch.FailBatch.String()},
		Log: LogConfig{
			Level:      "warn",
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
	}
}

// loadConfig decodes path over the defaults. An empty path returns the
// defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return cfg, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	if err := yaml.NewDecoder(file).Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return cfg, fmt.Errorf("decode config %s: %w", path, err)
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	if c.DWT.Level < 0 {
		return fmt.Errorf("dwt.level must be >= 0: %d", c.DWT.Level)
	}

	if _, err := batch.ParsePolicy(c.Batch.Policy); err != nil {
		return err
	}

	if _, err := parseLayout(c.STFT.Layout); err != nil {
		return err
	}

	return nil
}

func parseLayout(name string) (features.FrameLayout, error) {
	switch name {
	case "", "bins":
		return features.LayoutBins, nil
	case "frames":
		return features.LayoutFrames, nil
	default:
		return 0, errors.New("stft.layout must be \"bins\" or \"frames\"")
	}
}

func (c Config) spectrogramExtractor() (*features.SpectrogramExtractor, error) {
	layout, err := parseLayout(c.STFT.Layout)
	if err != nil {
		return nil, err
	}

	return features.NewSpectrogramExtractor(features.WithFrameLayout(layout))
}

func (c Config) waveletExtractor() (*features.WaveletExtractor, error) {
	return features.NewWaveletExtractor(
		features.WithWavelet(c.DWT.Wavelet),
		features.WithLevel(c.DWT.Level),
	)
}
