package main

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cwbudde/algo-flowfeat/features"
)

type extractFlags struct {
	method   string
	features []string
	wavelet  string
	level    int
}

func newExtractCmd(a *app) *cobra.Command {
	var f extractFlags

	cmd := &cobra.Command{
		Use:   "extract",
		Short: "extract one feature vector per input line",
		Long: `Read one whitespace-separated sequence per line from stdin and print
its feature vector on one line. Blank lines are ignored.`,
		Example: `  $ printf "60 1500 52\n" | flowfeat extract --method dwt --wavelet haar --level 1
  $ flowfeat extract --features mean,spectral_centroid < sequences.txt`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			flags := cmd.Flags()
			if flags.Changed("wavelet") {
				a.cfg.DWT.Wavelet = f.wavelet
			}
			if flags.Changed("level") {
				a.cfg.DWT.Level = f.level
			}

			ex, names, err := a.extractor(f.method)
			if err != nil {
				return err
			}

			if flags.Changed("features") {
				names = f.features
			}

			return runExtract(cmd.InOrStdin(), cmd.OutOrStdout(), ex, features.ParseSpec(names...), a.logger)
		},
	}

	cmd.Flags().StringVarP(&f.method, "method", "m", "stft", "extractor: stft or dwt")
	cmd.Flags().StringSliceVarP(&f.features, "features", "f", nil, "comma-separated statistics (default: the method's default set)")
	cmd.Flags().StringVar(&f.wavelet, "wavelet", features.DefaultWavelet, "wavelet basis for --method dwt")
	cmd.Flags().IntVar(&f.level, "level", features.DefaultLevel, "decomposition level for --method dwt")

	return cmd
}

// extractor returns the configured extractor for method and the statistic
// names configured for it.
func (a *app) extractor(method string) (features.Extractor, []string, error) {
	switch strings.ToLower(method) {
	case "stft":
		ex, err := a.cfg.spectrogramExtractor()
		return ex, a.cfg.STFT.Features, err
	case "dwt":
		ex, err := a.cfg.waveletExtractor()
		return ex, a.cfg.DWT.Features, err
	default:
		return nil, nil, fmt.Errorf("unknown method %q (want stft or dwt)", method)
	}
}

func runExtract(r io.Reader, w io.Writer, ex features.Extractor, spec features.Spec, logger *zap.Logger) error {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	out := bufio.NewWriter(w)

	line := 0
	for sc.Scan() {
		line++

		text := strings.TrimSpace(sc.Text())
		if text == "" {
			continue
		}

		sig, err := parseSequence(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		v, err := ex.Extract(sig, spec)
		if err != nil {
			return fmt.Errorf("line %d: %w", line, err)
		}

		logger.Debug("extracted", zap.Int("line", line), zap.Int("samples", len(sig)), zap.Int("features", len(v)))

		if _, err := out.WriteString(formatVector(v) + "\n"); err != nil {
			return err
		}
	}

	if err := sc.Err(); err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	return out.Flush()
}

// parseSequence parses whitespace-separated numbers.
func parseSequence(s string) ([]float64, error) {
	fields := strings.Fields(s)
	out := make([]float64, len(fields))

	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("value %d: %w", i, err)
		}
		out[i] = v
	}

	return out, nil
}

func formatVector(v []float64) string {
	parts := make([]string, len(v))
	for i, x := range v {
		parts[i] = strconv.FormatFloat(x, 'g', -1, 64)
	}

	return strings.Join(parts, " ")
}
