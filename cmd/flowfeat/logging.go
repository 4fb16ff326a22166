package main

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// newLogger builds a production JSON logger at cfg.Level. With cfg.File set
// the output goes to a size-rotated file instead of stderr. The returned
// function releases the file.
func newLogger(cfg LogConfig) (*zap.Logger, func() error, error) {
	level, err := zap.ParseAtomicLevel(cfg.Level)
	if err != nil {
		return nil, nil, fmt.Errorf("log level: %w", err)
	}

	pc := zap.NewProductionConfig()
	pc.Level = level

	if cfg.File == "" {
		logger, err := pc.Build()
		if err != nil {
			return nil, nil, err
		}

		return logger, func() error { return nil }, nil
	}

	rotator := &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   cfg.Compress,
	}

	core := zapcore.NewCore(zapcore.NewJSONEncoder(pc.EncoderConfig), zapcore.AddSync(rotator), level)

	return zap.New(core), rotator.Close, nil
}
