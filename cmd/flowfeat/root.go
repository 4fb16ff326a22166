package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const version = "0.1.0"

// app carries state shared by the subcommands once the root command has
// loaded the configuration.
type app struct {
	configPath string
	logLevel   string
	logFile    string

	cfg      Config
	logger   *zap.Logger
	closeLog func() error
}

func newRootCmd() *cobra.Command {
	a := &app{logger: zap.NewNop(), closeLog: func() error { return nil }}

	root := &cobra.Command{
		Use:     "flowfeat",
		Short:   "Flow sequence feature extraction",
		Version: version,
		Long: `Extract fixed-length feature vectors from network flow sequences
(packet sizes, byte counts) using a short-time Fourier transform and a
discrete wavelet decomposition.`,
		Example: `  # Wavelet features of one sequence
  $ echo "60 1500 1500 52 60" | flowfeat extract --method dwt --wavelet haar --level 2

  # Add stft_sizes and dwt_sizes columns to a CSV table
  $ flowfeat apply --columns sizes flows.csv

  # List wavelet bases
  $ flowfeat wavelets`,
		SilenceUsage:      true,
		PersistentPreRunE: a.setup,
		PersistentPostRunE: func(*cobra.Command, []string) error {
			_ = a.logger.Sync()
			return a.closeLog()
		},
	}

	root.CompletionOptions.DisableDefaultCmd = true

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "YAML configuration file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&a.logFile, "log-file", "", "write logs to a rotated file instead of stderr")

	root.AddCommand(newExtractCmd(a))
	root.AddCommand(newApplyCmd(a))
	root.AddCommand(newWaveletsCmd(a))

	return root
}

// setup loads the configuration, applies the global flag overrides and
// builds the logger.
func (a *app) setup(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(a.configPath)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = a.logLevel
	}
	if flags.Changed("log-file") {
		cfg.Log.File = a.logFile
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}

	a.cfg = cfg
	a.logger = logger
	a.closeLog = closeLog

	logger.Debug("configuration loaded",
		zap.String("config", a.configPath),
		zap.String("wavelet", cfg.DWT.Wavelet),
		zap.Int("level", cfg.DWT.Level),
		zap.String("policy", cfg.Batch.Policy))

	return nil
}
