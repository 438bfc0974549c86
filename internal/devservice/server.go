// Package devservice serves canned analysis service responses so the client
// can be driven end to end without the real analyzer.
package devservice

import (
	"fmt"
	"net/http"
	"safesurf/internal/config"
	"safesurf/pkg/controller"
	"safesurf/pkg/logger"
	"safesurf/pkg/metrics"
	"time"
)

// Options holds configuration for the stub server.
// It is typically created from a config.Config via NewOptions.
type Options struct {
	// Addr is the TCP address the server listens on, e.g. ":5000".
	Addr string
	// FixturesPath is the JSON fixtures file; empty uses the embedded set.
	FixturesPath string
	// Latency delays every analysis and source response.
	Latency time.Duration
	// ReadTimeout is the maximum duration for reading the entire request, including the body.
	ReadTimeout time.Duration
	// ReadHeaderTimeout is the amount of time allowed to read request headers.
	ReadHeaderTimeout time.Duration
	// WriteTimeout is the maximum duration before timing out writes of the response.
	WriteTimeout time.Duration
	// IdleTimeout is the maximum amount of time to wait for the next request when keep-alives are enabled.
	IdleTimeout time.Duration
	// MetricsPath is the HTTP path at which Prometheus metrics are served.
	MetricsPath string
	// Pprof mounts the profiling endpoints.
	Pprof bool
}

// NewOptions constructs an Options value from the provided application configuration.
func NewOptions(cfg *config.Config) Options {
	return Options{
		Addr:              cfg.DevService.Addr,
		FixturesPath:      cfg.DevService.FixturesPath,
		Latency:           cfg.DevService.Latency,
		ReadTimeout:       cfg.DevService.ReadTimeout,
		ReadHeaderTimeout: cfg.DevService.ReadHeaderTimeout,
		WriteTimeout:      cfg.DevService.WriteTimeout,
		IdleTimeout:       cfg.DevService.IdleTimeout,
		MetricsPath:       cfg.Metrics.Path,
		Pprof:             cfg.Environment == logger.DevelopmentEnvironment,
	}
}

// Deps are the collaborators of the stub server.
type Deps struct {
	// Metrics receives the HTTP instruments and serves MetricsPath.
	Metrics *metrics.Provider
	// Handler overrides the route handler; nil builds one from the fixtures.
	Handler *Handler
}

// NewServer wires up and returns a configured *http.Server using the provided Options.
// It sets up:
// - the analysis, source-code and update-db routes
// - Prometheus metrics endpoint (MetricsPath)
// - pprof endpoints when enabled
// It also wraps the mux with metrics, logging and CORS middlewares.
func NewServer(deps Deps, opts Options) (*http.Server, error) {
	h := deps.Handler
	if h == nil {
		fixtures, err := LoadFixtures(opts.FixturesPath)
		if err != nil {
			return nil, err
		}
		h = NewHandler(fixtures, opts.Latency, nil)
	}

	mux := http.NewServeMux()
	h.Register(mux)

	meter := metrics.Noop()
	if deps.Metrics != nil {
		meter = deps.Metrics.Meter()
		if opts.MetricsPath != "" {
			mux.Handle("GET "+opts.MetricsPath, deps.Metrics.Handler())
		}
	}

	if opts.Pprof {
		mux.Handle(controller.PprofPath, controller.PprofHandler())
	}

	m, err := controller.NewMetrics(meter)
	if err != nil {
		return nil, fmt.Errorf("could not create http metrics: %w", err)
	}

	handler := m.Wrap(mux)
	handler = controller.WithLogger(handler)
	handler = controller.WithCORS(handler)

	return &http.Server{
		Addr:              opts.Addr,
		Handler:           handler,
		ReadTimeout:       opts.ReadTimeout,
		ReadHeaderTimeout: opts.ReadHeaderTimeout,
		WriteTimeout:      opts.WriteTimeout,
		IdleTimeout:       opts.IdleTimeout,
	}, nil
}
