package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestNew_Levels(t *testing.T) {
	tests := map[string]zapcore.Level{
		"debug": zapcore.DebugLevel,
		"info":  zapcore.InfoLevel,
		"warn":  zapcore.WarnLevel,
		"error": zapcore.ErrorLevel,
		"":      zapcore.WarnLevel,
		"loud":  zapcore.WarnLevel,
	}
	for in, want := range tests {
		l, err := New(in, "json")
		require.NoError(t, err)
		assert.True(t, l.Core().Enabled(want), in)
		if want > zapcore.DebugLevel {
			assert.False(t, l.Core().Enabled(want-1), in)
		}
	}
}

func TestZapAdapter_Fields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := NewZapAdapter(zap.New(core))

	log.WithFields(map[string]interface{}{"time_of_day": "Night"}).
		WithError(errors.New("boom")).
		Warn("selection rejected", map[string]interface{}{"token": "x"})

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "selection rejected", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "Night", fields["time_of_day"])
	assert.Equal(t, "x", fields["token"])
	assert.Equal(t, "boom", fields["error"])
}

func TestNewNoOpLogger(t *testing.T) {
	log := NewNoOpLogger()
	log.Error("ignored", nil)
	assert.NoError(t, log.Sync())
}
