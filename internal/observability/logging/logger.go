// Package logging provides structured, OpenTelemetry-aware logging for emojify.
package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"go.opentelemetry.io/otel/exporters/stdout/stdoutlog"
	otellog "go.opentelemetry.io/otel/log"
	"go.opentelemetry.io/otel/log/global"
	sdklog "go.opentelemetry.io/otel/sdk/log"
)

// LogLevel represents the available log levels.
type LogLevel string

const (
	// LevelSilent disables all logging (default)
	LevelSilent LogLevel = "silent"
	LevelDebug  LogLevel = "debug"
	LevelInfo   LogLevel = "info"
	LevelWarn   LogLevel = "warn"
	LevelError  LogLevel = "error"
)

// levelRank orders the emitting levels; silent is absent.
var levelRank = map[LogLevel]int{
	LevelDebug: 0,
	LevelInfo:  1,
	LevelWarn:  2,
	LevelError: 3,
}

var slogLevels = map[LogLevel]slog.Level{
	LevelDebug: slog.LevelDebug,
	LevelInfo:  slog.LevelInfo,
	LevelWarn:  slog.LevelWarn,
	LevelError: slog.LevelError,
}

// ParseLevel converts a flag or config value into a LogLevel.
func ParseLevel(s string) (LogLevel, error) {
	level := LogLevel(strings.ToLower(strings.TrimSpace(s)))
	if level == "" {
		return LevelSilent, nil
	}
	if _, ok := levelRank[level]; ok || level == LevelSilent {
		return level, nil
	}
	return "", fmt.Errorf("invalid log level %q (expected silent, debug, info, warn or error)", s)
}

// LogFormat represents the available log output formats.
type LogFormat string

const (
	// FormatJSON outputs structured JSON logs (OTEL compliant)
	FormatJSON LogFormat = "json"
	// FormatText outputs human-readable key=value logs
	FormatText LogFormat = "text"
	// FormatOTel emits OpenTelemetry log records through the stdout exporter
	FormatOTel LogFormat = "otel"
)

// ParseFormat converts a flag or config value into a LogFormat.
func ParseFormat(s string) (LogFormat, error) {
	switch format := LogFormat(strings.ToLower(strings.TrimSpace(s))); format {
	case "":
		return FormatJSON, nil
	case FormatJSON, FormatText, FormatOTel:
		return format, nil
	default:
		return "", fmt.Errorf("invalid log format %q (expected json, text or otel)", s)
	}
}

// Logger provides a structured logging interface with OTEL compliance.
type Logger interface {
	Debug(ctx context.Context, msg string, keysAndValues ...any)
	Info(ctx context.Context, msg string, keysAndValues ...any)
	Warn(ctx context.Context, msg string, keysAndValues ...any)
	Error(ctx context.Context, msg string, keysAndValues ...any)
	// With returns a logger that adds the given key-value pairs to every entry
	With(keysAndValues ...any) Logger
	// WithContext returns a logger bound to ctx
	WithContext(ctx context.Context) Logger
	// IsEnabled reports whether a record at level would be emitted
	IsEnabled(level LogLevel) bool
}

// Config holds the logging configuration.
type Config struct {
	Level  LogLevel
	Format LogFormat
	// Output defaults to os.Stderr so that rendered markup on stdout stays clean
	Output         io.Writer
	ServiceName    string
	ServiceVersion string
}

// DefaultConfig returns a silent JSON configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:          LevelSilent,
		Format:         FormatJSON,
		Output:         os.Stderr,
		ServiceName:    "emojify",
		ServiceVersion: "unknown",
	}
}

var otelSeverities = map[LogLevel]otellog.Severity{
	LevelDebug: otellog.SeverityDebug,
	LevelInfo:  otellog.SeverityInfo,
	LevelWarn:  otellog.SeverityWarn,
	LevelError: otellog.SeverityError,
}

// otelLogger writes through slog, or through an OpenTelemetry log provider
// when the format is FormatOTel. Exactly one of slogger and emitter is set.
type otelLogger struct {
	slogger  *slog.Logger
	emitter  otellog.Logger
	fields   []any
	level    LogLevel
	ctx      context.Context
	provider *sdklog.LoggerProvider
}

// NewLogger creates a logger for config. A silent level yields a no-op logger.
// Only FormatOTel installs an OpenTelemetry log provider.
func NewLogger(config *Config) (Logger, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Level == LevelSilent {
		return newNoOpLogger(), nil
	}
	if config.Output == nil {
		config.Output = os.Stderr
	}

	serviceFields := []any{
		"service.name", config.ServiceName,
		"service.version", config.ServiceVersion,
	}

	if config.Format == FormatOTel {
		provider, err := setupOTELLogProvider(config.Output)
		if err != nil {
			return nil, fmt.Errorf("failed to set up log provider: %w", err)
		}
		return &otelLogger{
			emitter:  provider.Logger(config.ServiceName),
			fields:   serviceFields,
			level:    config.Level,
			ctx:      context.Background(),
			provider: provider,
		}, nil
	}

	slogLevel, ok := slogLevels[config.Level]
	if !ok {
		slogLevel = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: slogLevel}

	var handler slog.Handler
	if config.Format == FormatText {
		handler = slog.NewTextHandler(config.Output, opts)
	} else {
		handler = slog.NewJSONHandler(config.Output, opts)
	}

	return &otelLogger{
		slogger: slog.New(handler).With(serviceFields...),
		level:   config.Level,
		ctx:     context.Background(),
	}, nil
}

// setupOTELLogProvider registers a batching stdout provider as the global
// OpenTelemetry log provider.
func setupOTELLogProvider(w io.Writer) (*sdklog.LoggerProvider, error) {
	exporter, err := stdoutlog.New(stdoutlog.WithWriter(w))
	if err != nil {
		return nil, err
	}

	provider := sdklog.NewLoggerProvider(
		sdklog.WithProcessor(sdklog.NewBatchProcessor(exporter)),
	)
	global.SetLoggerProvider(provider)

	return provider, nil
}

func (l *otelLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, LevelDebug, msg, keysAndValues)
}

func (l *otelLogger) Info(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, LevelInfo, msg, keysAndValues)
}

func (l *otelLogger) Warn(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, LevelWarn, msg, keysAndValues)
}

func (l *otelLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {
	l.log(ctx, LevelError, msg, keysAndValues)
}

func (l *otelLogger) log(ctx context.Context, level LogLevel, msg string, keysAndValues []any) {
	if !l.IsEnabled(level) {
		return
	}
	if ctx == nil {
		ctx = l.ctx
	}
	if l.emitter == nil {
		l.slogger.Log(ctx, slogLevels[level], msg, keysAndValues...)
		return
	}

	var record otellog.Record
	record.SetTimestamp(time.Now())
	record.SetSeverity(otelSeverities[level])
	record.SetSeverityText(strings.ToUpper(string(level)))
	record.SetBody(otellog.StringValue(msg))
	record.AddAttributes(attributes(l.fields)...)
	record.AddAttributes(attributes(keysAndValues)...)
	l.emitter.Emit(ctx, record)
}

// attributes converts alternating keys and values into log attributes. A
// trailing key without a value is kept under "!BADKEY" as slog does.
func attributes(keysAndValues []any) []otellog.KeyValue {
	attrs := make([]otellog.KeyValue, 0, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 == len(keysAndValues) {
			attrs = append(attrs, otellog.KeyValue{Key: "!BADKEY", Value: attributeValue(keysAndValues[i])})
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		attrs = append(attrs, otellog.KeyValue{Key: key, Value: attributeValue(keysAndValues[i+1])})
	}
	return attrs
}

func attributeValue(v any) otellog.Value {
	switch v := v.(type) {
	case string:
		return otellog.StringValue(v)
	case bool:
		return otellog.BoolValue(v)
	case int:
		return otellog.IntValue(v)
	case int64:
		return otellog.Int64Value(v)
	case float64:
		return otellog.Float64Value(v)
	case error:
		return otellog.StringValue(v.Error())
	case fmt.Stringer:
		return otellog.StringValue(v.String())
	default:
		return otellog.StringValue(fmt.Sprint(v))
	}
}

func (l *otelLogger) With(keysAndValues ...any) Logger {
	clone := *l
	if l.slogger != nil {
		clone.slogger = l.slogger.With(keysAndValues...)
	} else {
		clone.fields = append(slices.Clone(l.fields), keysAndValues...)
	}
	return &clone
}

func (l *otelLogger) WithContext(ctx context.Context) Logger {
	clone := *l
	clone.ctx = ctx
	return &clone
}

func (l *otelLogger) IsEnabled(level LogLevel) bool {
	configured, ok := levelRank[l.level]
	if !ok {
		return false
	}
	requested, ok := levelRank[level]
	return ok && requested >= configured
}

// Shutdown flushes and stops the log provider.
func (l *otelLogger) Shutdown(ctx context.Context) error {
	if l.provider == nil {
		return nil
	}
	return l.provider.Shutdown(ctx)
}

// noOpLogger discards everything (silent mode).
type noOpLogger struct{}

func newNoOpLogger() Logger {
	return &noOpLogger{}
}

func (n *noOpLogger) Debug(ctx context.Context, msg string, keysAndValues ...any) {}
func (n *noOpLogger) Info(ctx context.Context, msg string, keysAndValues ...any)  {}
func (n *noOpLogger) Warn(ctx context.Context, msg string, keysAndValues ...any)  {}
func (n *noOpLogger) Error(ctx context.Context, msg string, keysAndValues ...any) {}
func (n *noOpLogger) With(keysAndValues ...any) Logger                            { return n }
func (n *noOpLogger) WithContext(ctx context.Context) Logger                      { return n }
func (n *noOpLogger) IsEnabled(level LogLevel) bool                               { return false }
