// Package metrics wires OpenTelemetry instruments to a Prometheus registry.
package metrics

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// MeterName is the instrumentation scope of every SafeSurf instrument.
const MeterName = "safesurf"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Provider bundles a meter provider with the registry its exporter writes to.
type Provider struct {
	mp       *sdkmetric.MeterProvider
	registry *prometheus.Registry
}

// NewProvider creates an otel meter provider exporting into a fresh
// Prometheus registry.
func NewProvider() (*Provider, error) {
	reg := prometheus.NewRegistry()
	exp, err := otelprom.New(otelprom.WithRegisterer(reg))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return &Provider{
		mp:       sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)),
		registry: reg,
	}, nil
}

// Meter returns the SafeSurf meter.
func (p *Provider) Meter() metric.Meter { return p.mp.Meter(MeterName) }

// Gatherer exposes the underlying registry.
func (p *Provider) Gatherer() prometheus.Gatherer { return p.registry }

// Handler serves the registry in the Prometheus text format.
func (p *Provider) Handler() http.Handler {
	return promhttp.HandlerFor(p.registry, promhttp.HandlerOpts{})
}

// Shutdown flushes and stops the meter provider.
func (p *Provider) Shutdown(ctx context.Context) error {
	if err := p.mp.Shutdown(ctx); err != nil {
		return fmt.Errorf("could not shutdown meter provider: %w", err)
	}

	return nil
}

// Noop returns a meter that records nothing.
func Noop() metric.Meter { return noop.NewMeterProvider().Meter(MeterName) }
