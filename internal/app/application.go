// Package app provides the main application structure and lifecycle management.
package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/antimoji/emojify/internal/app/commands"
)

// Application represents the main application with its dependencies.
type Application struct {
	deps    *Dependencies
	rootCmd *cobra.Command
	ctx     context.Context
	cancel  context.CancelFunc
}

// New creates a new Application instance with the given dependencies.
func New(deps *Dependencies) (*Application, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies cannot be nil")
	}

	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())

	app := &Application{
		deps:   deps,
		ctx:    ctx,
		cancel: cancel,
	}
	app.rootCmd = app.createRootCommand()

	return app, nil
}

// Run executes the command line in args. SIGINT and SIGTERM cancel the
// command's context, which stops a running service gracefully.
func (a *Application) Run(args []string) error {
	go a.handleSignals()

	a.rootCmd.SetArgs(args)
	if err := a.rootCmd.ExecuteContext(a.ctx); err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (a *Application) Shutdown() error {
	a.cancel()
	return a.deps.Close(context.Background())
}

// GetDependencies returns the application dependencies (useful for testing).
func (a *Application) GetDependencies() *Dependencies {
	return a.deps
}

// GetRootCommand returns the root cobra command (useful for testing).
func (a *Application) GetRootCommand() *cobra.Command {
	return a.rootCmd
}

func (a *Application) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	select {
	case sig := <-sigChan:
		a.deps.Logger.Info(a.ctx, "received shutdown signal", "signal", sig.String())
		a.cancel()
	case <-a.ctx.Done():
	}
}

func (a *Application) createRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emojify",
		Short: "Render emoji in HTML as image markup",
		Long: `Emojify replaces Unicode emoji and :shortcode: custom emoji in HTML
fragments with <img> markup pointing at emoji image assets, choosing
bordered image variants for the active color theme.

It runs as a one-shot renderer over files or standard input, or as an HTTP
service exposing the same rendering plus emoji picker data.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       a.deps.Build.Version,
	}

	// --log-level and --log-format are read before the command tree is built
	// so the logger exists for every command; they are declared here so that
	// cobra accepts them and lists them in help.
	cmd.PersistentFlags().String("config", "", "config file path")
	cmd.PersistentFlags().String("profile", "default", "configuration profile")
	cmd.PersistentFlags().String("log-level", "silent", "log level (silent, debug, info, warn, error)")
	cmd.PersistentFlags().String("log-format", "json", "log format (json, text, otel)")

	cmd.AddCommand(commands.NewRenderHandler(a.deps.Logger, a.deps.UI).CreateCommand())
	cmd.AddCommand(commands.NewPickerHandler(a.deps.Logger, a.deps.UI).CreateCommand())
	cmd.AddCommand(commands.NewServeHandler(a.deps.Logger, a.deps.UI).CreateCommand())
	cmd.AddCommand(a.createVersionCommand())

	return cmd
}

func (a *Application) createVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			build := a.deps.Build
			a.deps.UI.Result(a.ctx, "emojify %s (commit %s, built %s)", build.Version, build.GitCommit, build.BuildTime)
			a.deps.Logger.Debug(a.ctx, "version command executed", "version", build.Version)
			return nil
		},
	}
}
