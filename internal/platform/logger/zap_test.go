package logger

import (
	"testing"

	"torslanda_locals_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, ParseLevel("warning"))
	assert.Equal(t, zapcore.ErrorLevel, ParseLevel(" error "))
	assert.Equal(t, zapcore.InfoLevel, ParseLevel("verbose"))
}

func TestNew_RespectsLevel(t *testing.T) {
	l, err := New(&config.Config{GinMode: "release", LogLevel: "warn", LogFormat: "json"})
	require.NoError(t, err)

	assert.False(t, l.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, l.Core().Enabled(zapcore.WarnLevel))
}

func TestNewZapConfig_EncodingFollowsGinMode(t *testing.T) {
	assert.Equal(t, "json", newZapConfig(&config.Config{GinMode: "release"}).Encoding)
	assert.Equal(t, "console", newZapConfig(&config.Config{GinMode: "debug"}).Encoding)
	assert.Equal(t, "console", newZapConfig(&config.Config{GinMode: "release", LogFormat: "console"}).Encoding)
	assert.Equal(t, "json", newZapConfig(&config.Config{GinMode: "debug", LogFormat: "JSON"}).Encoding)
}

func TestNew_ReleaseWithoutLogFormat(t *testing.T) {
	l, err := New(&config.Config{GinMode: "release"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
}
