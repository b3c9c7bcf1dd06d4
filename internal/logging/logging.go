// Package logging builds the zap logger used by the command line tools.
package logging

import (
	"os"

	"github.com/rickchristie/trajwatch/config"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// New builds a logger that writes to stderr and, when cfg.File is set, also
// writes JSON lines to a size-rotated file.
func New(cfg config.LoggingConfig) *zap.Logger {
	return NewWithWriter(cfg, zapcore.Lock(os.Stderr))
}

// NewWithWriter is like New but writes console output to w.
func NewWithWriter(cfg config.LoggingConfig, w zapcore.WriteSyncer) *zap.Logger {
	level := zap.NewAtomicLevel()
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level.SetLevel(zap.InfoLevel)
	}

	cores := []zapcore.Core{
		zapcore.NewCore(encoder(cfg.Format), w, level),
	}
	if cfg.File != "" {
		// lumberjack handles rotation and is safe for concurrent writes.
		fileWriter := zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
		})
		cores = append(cores, zapcore.NewCore(encoder("json"), fileWriter, level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddStacktrace(zap.ErrorLevel)).
		Named("trajwatch")
}

func encoder(format string) zapcore.Encoder {
	if format == "json" {
		cfg := zap.NewProductionEncoderConfig()
		cfg.EncodeTime = zapcore.ISO8601TimeEncoder
		return zapcore.NewJSONEncoder(cfg)
	}
	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	cfg.EncodeLevel = zapcore.CapitalLevelEncoder
	return zapcore.NewConsoleEncoder(cfg)
}
