package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConfigure(t *testing.T) {
	cfg := configure(zapcore.WarnLevel)
	assert.Equal(t, "json", cfg.Encoding)
	assert.Equal(t, "timestamp", cfg.EncoderConfig.TimeKey)
	assert.False(t, cfg.Level.Enabled(zapcore.InfoLevel))
	assert.True(t, cfg.Level.Enabled(zapcore.ErrorLevel))
}

func TestInitOnce(t *testing.T) {
	first, err := Init("debug", zap.String("service", "visiventur"))
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := Init("error")
	require.NoError(t, err)
	assert.Same(t, first, second)
}
