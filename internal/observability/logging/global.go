package logging

import (
	"context"
	"sync"
)

var (
	globalLogger Logger
	globalMutex  sync.RWMutex
)

// GetGlobalLogger returns the global logger, or a silent logger when none
// has been initialized.
func GetGlobalLogger() Logger {
	globalMutex.RLock()
	defer globalMutex.RUnlock()

	if globalLogger == nil {
		return newNoOpLogger()
	}
	return globalLogger
}

// SetGlobalLogger sets the global logger instance. Mostly used by tests.
func SetGlobalLogger(logger Logger) {
	globalMutex.Lock()
	globalLogger = logger
	globalMutex.Unlock()
}

// Debug logs through the global logger.
func Debug(ctx context.Context, msg string, keysAndValues ...any) {
	GetGlobalLogger().Debug(ctx, msg, keysAndValues...)
}

// Info logs through the global logger.
func Info(ctx context.Context, msg string, keysAndValues ...any) {
	GetGlobalLogger().Info(ctx, msg, keysAndValues...)
}

// Warn logs through the global logger.
func Warn(ctx context.Context, msg string, keysAndValues ...any) {
	GetGlobalLogger().Warn(ctx, msg, keysAndValues...)
}

// Error logs through the global logger.
func Error(ctx context.Context, msg string, keysAndValues ...any) {
	GetGlobalLogger().Error(ctx, msg, keysAndValues...)
}

func With(keysAndValues ...any) Logger {
	return GetGlobalLogger().With(keysAndValues...)
}

func WithContext(ctx context.Context) Logger {
	return GetGlobalLogger().WithContext(ctx)
}

func IsEnabled(level LogLevel) bool {
	return GetGlobalLogger().IsEnabled(level)
}
