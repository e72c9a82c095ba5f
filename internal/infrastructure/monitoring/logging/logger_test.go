package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldConstructors(t *testing.T) {
	assert.Equal(t, Field{Key: "k", Value: "v"}, String("k", "v"))
	assert.Equal(t, Field{Key: "n", Value: 7}, Int("n", 7))
	assert.Equal(t, Field{Key: "f", Value: 0.5}, Float64("f", 0.5))
	assert.Equal(t, Field{Key: "b", Value: true}, Bool("b", true))
	assert.Equal(t, Field{Key: "error", Value: "<nil>"}, Err(nil))
}

func TestNewLoggerDefaults(t *testing.T) {
	l, err := NewLogger(LogConfig{})
	require.NoError(t, err)
	require.NotNil(t, l)
	// Must not panic on a plain entry.
	l.Info("engine ready", String("component", "test"))
}

func TestObservedFields(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core)

	l.With(String("stage", "mining")).Info("extracted factors", Int("count", 12))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "extracted factors", entries[0].Message)

	fields := entries[0].ContextMap()
	assert.Equal(t, "mining", fields["stage"])
	assert.EqualValues(t, 12, fields["count"])
}

func TestNamed(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := NewLoggerFromCore(core).Named("engine").Named("miner")
	l.Warn("section missing, using defaults")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "engine.miner", entries[0].LoggerName)
}

func TestNopLogger(t *testing.T) {
	l := NewNopLogger()
	// All methods are no-ops and must not panic.
	l.Debug("a")
	l.Info("b")
	l.Warn("c")
	l.Error("d", Err(assert.AnError))
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("x"))
}

func TestSetDefault(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	core, logs := observer.New(zapcore.InfoLevel)
	SetDefault(NewLoggerFromCore(core))
	Default().Info("via default")
	assert.Equal(t, 1, logs.Len())

	// nil must be ignored.
	SetDefault(nil)
	assert.NotNil(t, Default())
}
