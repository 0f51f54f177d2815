// Package server exposes the emojify engine over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/antimoji/emojify/internal/core/scanner"
	"github.com/antimoji/emojify/internal/observability/logging"
	"github.com/antimoji/emojify/internal/types"
)

const shutdownTimeout = 10 * time.Second

// Config holds the service settings resolved from the active profile.
type Config struct {
	ListenAddr   string
	AssetHost    string
	Theme        types.Theme
	Autoplay     bool
	RateLimit    float64 // requests per second, 0 disables limiting
	RateBurst    int
	MaxBodyBytes int64
}

// Dependencies are the shared collaborators of the service.
type Dependencies struct {
	Catalog  scanner.Catalog
	Policy   scanner.VariantPolicy
	Logger   logging.Logger
	Registry *prometheus.Registry
}

// Server serves the emojify API.
type Server struct {
	config   Config
	catalog  scanner.Catalog
	policy   scanner.VariantPolicy
	logger   logging.Logger
	registry *prometheus.Registry
	metrics  *Metrics
	limiter  *rate.Limiter
	router   chi.Router
}

// New builds a server and its routes. A nil registry gets a fresh one.
func New(config Config, deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = logging.GetGlobalLogger()
	}
	if deps.Registry == nil {
		deps.Registry = prometheus.NewRegistry()
	}
	if config.Theme == "" {
		config.Theme = types.ThemeSystem
	}

	s := &Server{
		config:   config,
		catalog:  deps.Catalog,
		policy:   deps.Policy,
		logger:   deps.Logger.With("component", "server"),
		registry: deps.Registry,
		metrics:  NewMetrics(deps.Registry),
	}
	if config.RateLimit > 0 {
		s.limiter = rate.NewLimiter(rate.Limit(config.RateLimit), max(config.RateBurst, 1))
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(s.requestContext)
	r.Use(middleware.Recoverer)
	r.Use(s.instrument)

	r.Get("/healthz", s.handleHealth)
	r.Handle("/metrics", promhttp.HandlerFor(s.registry, promhttp.HandlerOpts{}))

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(s.rateLimit)
		r.Post("/emojify", s.handleEmojify)
		r.Post("/custom_emojis/picker", s.handlePicker)
	})

	return r
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on the configured address until ctx is done, then shuts down
// gracefully.
func (s *Server) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", s.config.ListenAddr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.config.ListenAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	httpServer := &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "emojify service listening", "addr", listener.Addr().String())
		errCh <- httpServer.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	s.logger.Info(shutdownCtx, "shutting down emojify service")
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
