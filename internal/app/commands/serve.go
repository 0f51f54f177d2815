package commands

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	ctxutil "github.com/antimoji/emojify/internal/observability/context"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/server"
	"github.com/antimoji/emojify/internal/types"
	"github.com/antimoji/emojify/internal/ui"
)

// ServeOptions holds the options for the serve command.
type ServeOptions struct {
	Listen string
}

// ServeHandler handles the serve command.
type ServeHandler struct {
	logger logging.Logger
	ui     ui.UserOutput
}

// NewServeHandler creates a new serve command handler.
func NewServeHandler(logger logging.Logger, ui ui.UserOutput) *ServeHandler {
	return &ServeHandler{
		logger: logger,
		ui:     ui,
	}
}

// CreateCommand creates the serve cobra command.
func (h *ServeHandler) CreateCommand() *cobra.Command {
	opts := &ServeOptions{}

	cmd := &cobra.Command{
		Use:   "serve [flags]",
		Short: "Run the emojify HTTP service",
		Long: `Serve the emojify API:

  POST /api/v1/emojify               render a fragment
  POST /api/v1/custom_emojis/picker  build picker data
  GET  /healthz                      liveness probe
  GET  /metrics                      Prometheus metrics

Rendering settings, the listen address, rate limiting and the request body
cap come from the active profile.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return h.Execute(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Listen, "listen", "", "listen address (overrides listen_addr)")

	return cmd
}

// Execute runs the service until the context is cancelled.
func (h *ServeHandler) Execute(parentCtx context.Context, cmd *cobra.Command, opts *ServeOptions) error {
	ctx := parentCtx
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = ctxutil.WithOperation(ctx, "serve")

	profile, err := resolveProfile(cmd)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("listen") {
		profile.ListenAddr = opts.Listen
	}
	if err := validateProfile(profile); err != nil {
		return err
	}

	theme, err := types.ParseTheme(profile.Theme)
	if err != nil {
		return err
	}
	cat, policy, err := catalogFor(profile)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	srv := server.New(server.Config{
		ListenAddr:   profile.ListenAddr,
		AssetHost:    profile.AssetHost,
		Theme:        theme,
		Autoplay:     profile.Autoplay,
		RateLimit:    profile.RateLimit,
		RateBurst:    profile.RateBurst,
		MaxBodyBytes: profile.MaxBodyBytes,
	}, server.Dependencies{
		Catalog:  cat,
		Policy:   policy,
		Logger:   h.logger,
		Registry: registry,
	})

	h.ui.Info(ctx, "serving emojify on %s", profile.ListenAddr)
	return srv.Run(ctx)
}
