package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
)

func TestMockLogger_RecordsEntries(t *testing.T) {
	l := NewMockLogger()
	l.Info("analysis started", logging.String("id", "a1"))
	l.Warn("degraded")

	msgs := l.GetMessages()
	assert.Len(t, msgs, 2)
	assert.Equal(t, "info", msgs[0].Level)
	assert.Equal(t, "analysis started", msgs[0].Message)
	assert.True(t, l.HasMessage("warn", "degraded"))
	assert.False(t, l.HasMessage("error", "degraded"))
}

func TestMockLogger_NamedSharesBuffer(t *testing.T) {
	l := NewMockLogger()
	child := l.Named("miner").Named("sections")
	child.Debug("parsed")

	msgs := l.GetMessages()
	assert.Len(t, msgs, 1)
	assert.Equal(t, "miner.sections", msgs[0].Logger)
}

func TestMockLogger_Clear(t *testing.T) {
	l := NewMockLogger()
	l.Info("one")
	l.Clear()
	assert.Empty(t, l.GetMessages())
}
