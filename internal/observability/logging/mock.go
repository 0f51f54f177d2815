package logging

import (
	"context"
	"slices"
	"sync"
)

// LogEntry is one record captured by MockLogger.
type LogEntry struct {
	Level         LogLevel
	Message       string
	KeysAndValues []any
	Context       context.Context
}

// recorder is shared by a MockLogger and every logger derived from it.
type recorder struct {
	mu      sync.RWMutex
	entries []LogEntry
}

// MockLogger records log calls in memory for assertions in tests.
type MockLogger struct {
	rec     *recorder
	enabled bool
	fields  []any
	ctx     context.Context
}

// NewMockLogger creates an enabled mock logger.
func NewMockLogger() *MockLogger {
	return &MockLogger{
		rec:     &recorder{},
		enabled: true,
		ctx:     context.Background(),
	}
}

func (m *MockLogger) record(ctx context.Context, level LogLevel, msg string, keysAndValues []any) {
	if !m.enabled {
		return
	}
	kv := make([]any, 0, len(m.fields)+len(keysAndValues))
	kv = append(kv, m.fields...)
	kv = append(kv, keysAndValues...)

	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = append(m.rec.entries, LogEntry{
		Level:         level,
		Message:       msg,
		KeysAndValues: kv,
		Context:       ctx,
	})
}

func (m *MockLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	m.record(ctx, LevelDebug, msg, keysAndValues)
}

func (m *MockLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	m.record(ctx, LevelInfo, msg, keysAndValues)
}

func (m *MockLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	m.record(ctx, LevelWarn, msg, keysAndValues)
}

func (m *MockLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	m.record(ctx, LevelError, msg, keysAndValues)
}

// With returns a logger sharing this logger's records with extra fields.
func (m *MockLogger) With(keysAndValues ...any) Logger {
	clone := *m
	clone.fields = append(slices.Clone(m.fields), keysAndValues...)
	return &clone
}

// WithContext returns a logger sharing this logger's records bound to ctx.
func (m *MockLogger) WithContext(ctx context.Context) Logger {
	clone := *m
	clone.ctx = ctx
	return &clone
}

func (m *MockLogger) IsEnabled(level LogLevel) bool {
	return m.enabled
}

// SetEnabled turns recording on or off for this logger only.
func (m *MockLogger) SetEnabled(enabled bool) {
	m.enabled = enabled
}

// GetLogs returns a copy of all recorded entries.
func (m *MockLogger) GetLogs() []LogEntry {
	m.rec.mu.RLock()
	defer m.rec.mu.RUnlock()
	return slices.Clone(m.rec.entries)
}

// GetLogsByLevel returns the recorded entries at level.
func (m *MockLogger) GetLogsByLevel(level LogLevel) []LogEntry {
	var filtered []LogEntry
	for _, entry := range m.GetLogs() {
		if entry.Level == level {
			filtered = append(filtered, entry)
		}
	}
	return filtered
}

// HasLogWithMessage reports whether any entry has exactly this message.
func (m *MockLogger) HasLogWithMessage(message string) bool {
	return slices.ContainsFunc(m.GetLogs(), func(e LogEntry) bool { return e.Message == message })
}

// HasLogWithLevel reports whether any entry was recorded at level.
func (m *MockLogger) HasLogWithLevel(level LogLevel) bool {
	return len(m.GetLogsByLevel(level)) > 0
}

// Reset clears all recorded entries.
func (m *MockLogger) Reset() {
	m.rec.mu.Lock()
	defer m.rec.mu.Unlock()
	m.rec.entries = nil
}
