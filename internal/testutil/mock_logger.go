// Package testutil provides common test utilities for StratFit-Intelligence.
package testutil

import (
	"strings"
	"sync"

	"github.com/turtacn/StratFit-Intelligence/internal/infrastructure/monitoring/logging"
)

// MockLogger implements logging.Logger and records every entry so tests can
// verify logging behavior.
type MockLogger struct {
	mu       sync.Mutex
	name     string
	messages []LogMessage
}

// LogMessage is a single entry captured by MockLogger.
type LogMessage struct {
	Level   string
	Logger  string
	Message string
	Fields  []logging.Field
}

var _ logging.Logger = (*MockLogger)(nil)

// NewMockLogger creates a new MockLogger.
func NewMockLogger() *MockLogger {
	return &MockLogger{}
}

func (m *MockLogger) log(level, msg string, fields []logging.Field) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, LogMessage{
		Level:   level,
		Logger:  m.name,
		Message: msg,
		Fields:  fields,
	})
}

func (m *MockLogger) Debug(msg string, fields ...logging.Field) { m.log("debug", msg, fields) }
func (m *MockLogger) Info(msg string, fields ...logging.Field)  { m.log("info", msg, fields) }
func (m *MockLogger) Warn(msg string, fields ...logging.Field)  { m.log("warn", msg, fields) }
func (m *MockLogger) Error(msg string, fields ...logging.Field) { m.log("error", msg, fields) }

// With returns the same recorder; captured entries keep their own fields and
// the permanent fields are not merged in.  Good enough for assertions on
// message flow.
func (m *MockLogger) With(fields ...logging.Field) logging.Logger { return m }

// Named records entries under the child name while sharing the same buffer.
func (m *MockLogger) Named(name string) logging.Logger {
	m.mu.Lock()
	defer m.mu.Unlock()
	child := m.name
	if child == "" {
		child = name
	} else {
		child = child + "." + name
	}
	return &namedMockLogger{parent: m, name: child}
}

// GetMessages returns a copy of all logged messages.
func (m *MockLogger) GetMessages() []LogMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]LogMessage, len(m.messages))
	copy(out, m.messages)
	return out
}

// Clear removes all logged messages.
func (m *MockLogger) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = m.messages[:0]
}

// HasMessage reports whether an entry with the given level and message
// substring was logged.
func (m *MockLogger) HasMessage(level, msg string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, logged := range m.messages {
		if logged.Level == level && strings.Contains(logged.Message, msg) {
			return true
		}
	}
	return false
}

// namedMockLogger forwards to the parent buffer under a child name.
type namedMockLogger struct {
	parent *MockLogger
	name   string
}

var _ logging.Logger = (*namedMockLogger)(nil)

func (l *namedMockLogger) log(level, msg string, fields []logging.Field) {
	l.parent.mu.Lock()
	defer l.parent.mu.Unlock()
	l.parent.messages = append(l.parent.messages, LogMessage{
		Level:   level,
		Logger:  l.name,
		Message: msg,
		Fields:  fields,
	})
}

func (l *namedMockLogger) Debug(msg string, fields ...logging.Field) { l.log("debug", msg, fields) }
func (l *namedMockLogger) Info(msg string, fields ...logging.Field)  { l.log("info", msg, fields) }
func (l *namedMockLogger) Warn(msg string, fields ...logging.Field)  { l.log("warn", msg, fields) }
func (l *namedMockLogger) Error(msg string, fields ...logging.Field) { l.log("error", msg, fields) }

func (l *namedMockLogger) With(fields ...logging.Field) logging.Logger { return l }

func (l *namedMockLogger) Named(name string) logging.Logger {
	return &namedMockLogger{parent: l.parent, name: l.name + "." + name}
}
