package logging

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"portfolio/app/config"
)

// New builds the application logger from the logging section.
func New(cfg config.LoggingConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	zc := zap.NewProductionConfig()
	if cfg.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	return logger, nil
}

// BadgerLogger adapts a zap logger to badger.Logger.
type BadgerLogger struct {
	sugar *zap.SugaredLogger
}

// NewBadgerLogger returns a badger logger writing through l under the
// "badger" name.
func NewBadgerLogger(l *zap.Logger) *BadgerLogger {
	return &BadgerLogger{sugar: l.Named("badger").Sugar()}
}

func (b *BadgerLogger) Errorf(format string, args ...interface{}) {
	b.sugar.Errorf(trim(format), args...)
}

func (b *BadgerLogger) Warningf(format string, args ...interface{}) {
	b.sugar.Warnf(trim(format), args...)
}

func (b *BadgerLogger) Infof(format string, args ...interface{}) {
	b.sugar.Infof(trim(format), args...)
}

func (b *BadgerLogger) Debugf(format string, args ...interface{}) {
	b.sugar.Debugf(trim(format), args...)
}

// badger terminates its messages with a newline
func trim(format string) string {
	return strings.TrimSuffix(format, "\n")
}
