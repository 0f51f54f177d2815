// Package ui separates what the user sees from diagnostic logging.
//
// Rendered markup and JSON documents go to Writer untouched. Status messages
// go to ErrorWriter so that piping the output of a command stays safe.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/antimoji/emojify/internal/observability/logging"
)

// OutputLevel determines what type of output should be shown to users.
type OutputLevel int

const (
	// OutputSilent shows errors and command output only
	OutputSilent OutputLevel = iota
	OutputNormal
	OutputVerbose
	OutputDebug
)

// UserOutput handles all user-facing output.
type UserOutput interface {
	Info(ctx context.Context, msg string, args ...any)
	Success(ctx context.Context, msg string, args ...any)
	Warning(ctx context.Context, msg string, args ...any)
	// Error is shown at every level
	Error(ctx context.Context, msg string, args ...any)
	// Result prints a formatted line of command output
	Result(ctx context.Context, msg string, args ...any)
	// Progress is only shown at OutputVerbose and above
	Progress(ctx context.Context, msg string, args ...any)
	// Raw writes content to the output stream exactly as given
	Raw(ctx context.Context, content string)
	SetLevel(level OutputLevel)
	IsLevelEnabled(level OutputLevel) bool
}

// Config holds the user output configuration.
type Config struct {
	Level        OutputLevel
	Writer       io.Writer
	ErrorWriter  io.Writer
	EnableColors bool
}

// DefaultConfig returns a default user output configuration.
func DefaultConfig() *Config {
	return &Config{
		Level:        OutputNormal,
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		EnableColors: true,
	}
}

// style describes how one kind of status message is presented.
type style struct {
	label    string
	color    string
	minLevel OutputLevel
}

var (
	infoStyle     = style{label: "INFO", color: "\033[36m", minLevel: OutputNormal}
	successStyle  = style{label: "OK", color: "\033[32m", minLevel: OutputNormal}
	warningStyle  = style{label: "WARNING", color: "\033[33m", minLevel: OutputNormal}
	errorStyle    = style{label: "ERROR", color: "\033[31m", minLevel: OutputSilent}
	progressStyle = style{label: "", color: "\033[90m", minLevel: OutputVerbose}
)

const colorReset = "\033[0m"

type userOutput struct {
	mu     sync.Mutex
	config Config
}

// NewUserOutput creates a new user output handler.
func NewUserOutput(config *Config) UserOutput {
	if config == nil {
		config = DefaultConfig()
	}
	c := *config
	if c.Writer == nil {
		c.Writer = os.Stdout
	}
	if c.ErrorWriter == nil {
		c.ErrorWriter = os.Stderr
	}
	return &userOutput{config: c}
}

func (u *userOutput) status(s style, msg string, args []any) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if s.minLevel > u.config.Level {
		return
	}

	formatted := fmt.Sprintf(msg, args...)
	switch {
	case u.config.EnableColors && s.label != "":
		_, _ = fmt.Fprintf(u.config.ErrorWriter, "%s%s:%s %s\n", s.color, s.label, colorReset, formatted)
	case u.config.EnableColors:
		_, _ = fmt.Fprintf(u.config.ErrorWriter, "%s%s%s\n", s.color, formatted, colorReset)
	case s.label != "":
		_, _ = fmt.Fprintf(u.config.ErrorWriter, "%s: %s\n", s.label, formatted)
	default:
		_, _ = fmt.Fprintln(u.config.ErrorWriter, formatted)
	}
}

func (u *userOutput) Info(ctx context.Context, msg string, args ...any) {
	logging.Debug(ctx, "user info displayed", "message", fmt.Sprintf(msg, args...))
	u.status(infoStyle, msg, args)
}

func (u *userOutput) Success(ctx context.Context, msg string, args ...any) {
	logging.Info(ctx, "user success displayed", "message", fmt.Sprintf(msg, args...))
	u.status(successStyle, msg, args)
}

func (u *userOutput) Warning(ctx context.Context, msg string, args ...any) {
	logging.Warn(ctx, "user warning displayed", "message", fmt.Sprintf(msg, args...))
	u.status(warningStyle, msg, args)
}

func (u *userOutput) Error(ctx context.Context, msg string, args ...any) {
	logging.Error(ctx, "user error displayed", "message", fmt.Sprintf(msg, args...))
	u.status(errorStyle, msg, args)
}

func (u *userOutput) Progress(ctx context.Context, msg string, args ...any) {
	u.status(progressStyle, msg, args)
}

func (u *userOutput) Result(ctx context.Context, msg string, args ...any) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = fmt.Fprintf(u.config.Writer, msg, args...)
	_, _ = fmt.Fprintln(u.config.Writer)
}

func (u *userOutput) Raw(ctx context.Context, content string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	_, _ = io.WriteString(u.config.Writer, content)
}

func (u *userOutput) SetLevel(level OutputLevel) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.config.Level = level
}

func (u *userOutput) IsLevelEnabled(level OutputLevel) bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return level <= u.config.Level
}
