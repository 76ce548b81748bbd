package logger_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/atarasenko/shortlink/internal/logger"
)

func TestNew(t *testing.T) {
	l := logger.New()
	require.NotNil(t, l)
	require.NotNil(t, l.Log)
	require.NotNil(t, l.Log.Core())
}

func TestInit_ValidLevels(t *testing.T) {
	validLevels := []string{"debug", "info", "warn", "error", "dpanic", "panic", "fatal"}

	for _, level := range validLevels {
		t.Run(level, func(t *testing.T) {
			l := logger.New()
			err := l.Init(level)
			require.NoError(t, err)
			require.NotNil(t, l.Log)

			lvl, err := zapcore.ParseLevel(level)
			require.NoError(t, err)
			require.True(t, l.Log.Core().Enabled(lvl))
		})
	}
}

func TestInit_InvalidLevel(t *testing.T) {
	l := logger.New()
	err := l.Init("invalid_level")
	require.Error(t, err)
}
