// Package logging builds the zap logger used across the application.
package logging

import (
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/javiermolinar/timetable/internal/config"
)

// Log bundles the logger with its adjustable level.
type Log struct {
	Base   *zap.Logger
	Level  zap.AtomicLevel
	Closer func()
}

// Init builds a logger writing to stderr. format "prod" selects JSON output,
// anything else the console development encoder. An unparsable level falls
// back to warn.
func Init(cfg config.LogConfig) (*Log, error) {
	lvl := zap.NewAtomicLevel()
	if err := lvl.UnmarshalText([]byte(strings.ToLower(cfg.Level))); err != nil {
		lvl = zap.NewAtomicLevelAt(zap.WarnLevel)
	}

	var zc zap.Config
	if strings.ToLower(cfg.Format) == "prod" {
		zc = zap.NewProductionConfig()
	} else {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = lvl
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	base, err := zc.Build(zap.AddStacktrace(zap.ErrorLevel))
	if err != nil {
		return nil, err
	}
	return &Log{
		Base:   base.Named("timetable"),
		Level:  lvl,
		Closer: func() { _ = base.Sync() },
	}, nil
}

// Nop returns a Log that discards everything.
func Nop() *Log {
	return &Log{
		Base:   zap.NewNop(),
		Level:  zap.NewAtomicLevelAt(zap.FatalLevel),
		Closer: func() {},
	}
}
