// Package main provides the entry point for the emojify CLI and service.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/antimoji/emojify/internal/app"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/ui"
)

// Build information (set by ldflags during build)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	level, format, err := logFlags(args)
	if err != nil {
		return err
	}

	deps, err := app.NewDependencies(&app.Config{
		LogLevel:       level,
		LogFormat:      format,
		LogOutput:      os.Stderr,
		UILevel:        ui.OutputNormal,
		UIWriter:       os.Stdout,
		UIErrorWriter:  os.Stderr,
		UIEnableColors: true,
		ServiceName:    "emojify",
		Build: app.BuildInfo{
			Version:   version,
			BuildTime: buildTime,
			GitCommit: gitCommit,
		},
	})
	if err != nil {
		return err
	}
	logging.SetGlobalLogger(deps.Logger)

	application, err := app.New(deps)
	if err != nil {
		_ = deps.Close(context.Background())
		return err
	}
	defer func() {
		_ = application.Shutdown()
	}()
	return application.Run(args)
}

// logFlags picks --log-level and --log-format out of args ahead of cobra,
// which only parses them after the logger is needed.
func logFlags(args []string) (logging.LogLevel, logging.LogFormat, error) {
	fs := pflag.NewFlagSet("emojify", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.Usage = func() {}
	levelName := fs.String("log-level", "silent", "")
	formatName := fs.String("log-format", "json", "")
	// help and other parse problems are reported by cobra
	_ = fs.Parse(args)

	level, err := logging.ParseLevel(*levelName)
	if err != nil {
		return "", "", err
	}
	format, err := logging.ParseFormat(*formatName)
	if err != nil {
		return "", "", err
	}
	return level, format, nil
}
