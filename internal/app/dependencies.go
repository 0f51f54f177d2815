// Package app provides application-level dependency management and bootstrap logic.
package app

import (
	"context"
	"fmt"
	"io"

	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/ui"
)

// BuildInfo identifies the running binary.
type BuildInfo struct {
	Version   string
	BuildTime string
	GitCommit string
}

// Dependencies holds all application dependencies.
type Dependencies struct {
	Logger logging.Logger
	UI     ui.UserOutput
	Build  BuildInfo
}

// Config holds configuration for creating dependencies.
type Config struct {
	// Logging configuration
	LogLevel  logging.LogLevel
	LogFormat logging.LogFormat
	LogOutput io.Writer

	// UI configuration
	UILevel        ui.OutputLevel
	UIWriter       io.Writer
	UIErrorWriter  io.Writer
	UIEnableColors bool

	// Application metadata
	ServiceName string
	Build       BuildInfo
}

// NewDependencies creates a new Dependencies instance with the given configuration.
func NewDependencies(config *Config) (*Dependencies, error) {
	if config == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}

	logger, err := logging.NewLogger(&logging.Config{
		Level:          config.LogLevel,
		Format:         config.LogFormat,
		Output:         config.LogOutput,
		ServiceName:    config.ServiceName,
		ServiceVersion: config.Build.Version,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	userOutput := ui.NewUserOutput(&ui.Config{
		Level:        config.UILevel,
		Writer:       config.UIWriter,
		ErrorWriter:  config.UIErrorWriter,
		EnableColors: config.UIEnableColors,
	})

	build := config.Build
	if build.Version == "" {
		build.Version = "dev"
	}

	return &Dependencies{
		Logger: logger,
		UI:     userOutput,
		Build:  build,
	}, nil
}

// NewTestDependencies creates dependencies suitable for testing.
func NewTestDependencies() *Dependencies {
	return &Dependencies{
		Logger: logging.NewMockLogger(),
		UI:     ui.NewMockUserOutput(),
		Build:  BuildInfo{Version: "dev", BuildTime: "unknown", GitCommit: "unknown"},
	}
}

// Validate ensures all dependencies are properly initialized.
func (d *Dependencies) Validate() error {
	if d.Logger == nil {
		return fmt.Errorf("logger dependency is nil")
	}
	if d.UI == nil {
		return fmt.Errorf("UI dependency is nil")
	}
	return nil
}

// Close flushes the logger's exporter when it has one.
func (d *Dependencies) Close(ctx context.Context) error {
	if s, ok := d.Logger.(interface{ Shutdown(context.Context) error }); ok {
		if err := s.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shut down logger: %w", err)
		}
	}
	return nil
}
