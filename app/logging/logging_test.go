package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"portfolio/app/config"
)

func TestNew(t *testing.T) {
	t.Run("production", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "warn"})
		assert.NoError(t, err)
		assert.NotNil(t, logger)
		assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
		assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))
	})

	t.Run("development", func(t *testing.T) {
		logger, err := New(config.LoggingConfig{Level: "debug", Development: true})
		assert.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
	})

	t.Run("invalid level", func(t *testing.T) {
		_, err := New(config.LoggingConfig{Level: "loud"})
		assert.Error(t, err)
	})
}

func TestBadgerLogger(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	bl := NewBadgerLogger(zap.New(core))

	bl.Infof("Replaying file id: %d\n", 3)
	bl.Warningf("compaction %s\n", "slow")
	bl.Errorf("failed: %v", "disk")
	bl.Debugf("debug")

	entries := logs.All()
	assert.Len(t, entries, 4)
	assert.Equal(t, "Replaying file id: 3", entries[0].Message)
	assert.Equal(t, "badger", entries[0].LoggerName)
	assert.Equal(t, zapcore.WarnLevel, entries[1].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[2].Level)
}
