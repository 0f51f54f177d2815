package ui

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// OutputMessage is one call recorded by MockUserOutput.
type OutputMessage struct {
	Level   string
	Message string
	Args    []any
	Context context.Context
}

// Text returns the message with its arguments applied.
func (m OutputMessage) Text() string {
	if m.Level == "RAW" {
		return m.Message
	}
	return fmt.Sprintf(m.Message, m.Args...)
}

// MockUserOutput records user output for assertions in tests.
type MockUserOutput struct {
	mu       sync.RWMutex
	messages []OutputMessage
	level    OutputLevel
}

// NewMockUserOutput creates a mock at OutputNormal.
func NewMockUserOutput() *MockUserOutput {
	return &MockUserOutput{level: OutputNormal}
}

func (m *MockUserOutput) record(ctx context.Context, level, msg string, args []any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, OutputMessage{
		Level:   level,
		Message: msg,
		Args:    args,
		Context: ctx,
	})
}

func (m *MockUserOutput) Info(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "INFO", msg, args)
}

func (m *MockUserOutput) Success(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "SUCCESS", msg, args)
}

func (m *MockUserOutput) Warning(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "WARNING", msg, args)
}

func (m *MockUserOutput) Error(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "ERROR", msg, args)
}

func (m *MockUserOutput) Result(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "RESULT", msg, args)
}

func (m *MockUserOutput) Progress(ctx context.Context, msg string, args ...any) {
	m.record(ctx, "PROGRESS", msg, args)
}

func (m *MockUserOutput) Raw(ctx context.Context, content string) {
	m.record(ctx, "RAW", content, nil)
}

func (m *MockUserOutput) SetLevel(level OutputLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.level = level
}

func (m *MockUserOutput) IsLevelEnabled(level OutputLevel) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return level <= m.level
}

// GetMessages returns a copy of every recorded message.
func (m *MockUserOutput) GetMessages() []OutputMessage {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]OutputMessage(nil), m.messages...)
}

// GetMessagesOfLevel returns the messages recorded at level, such as "WARNING".
func (m *MockUserOutput) GetMessagesOfLevel(level string) []OutputMessage {
	var filtered []OutputMessage
	for _, msg := range m.GetMessages() {
		if msg.Level == level {
			filtered = append(filtered, msg)
		}
	}
	return filtered
}

// Output concatenates everything written through Raw and Result.
func (m *MockUserOutput) Output() string {
	var b strings.Builder
	for _, msg := range m.GetMessages() {
		switch msg.Level {
		case "RAW":
			b.WriteString(msg.Message)
		case "RESULT":
			b.WriteString(msg.Text())
			b.WriteString("\n")
		}
	}
	return b.String()
}

// CountLevel returns how many messages were recorded at level.
func (m *MockUserOutput) CountLevel(level string) int {
	return len(m.GetMessagesOfLevel(level))
}

// Clear drops all recorded messages.
func (m *MockUserOutput) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = nil
}
