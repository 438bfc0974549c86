package controller

import (
	"fmt"
	"net/http"
	"safesurf/pkg/metrics"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metrics records one counter increment and one latency sample per request.
type Metrics struct {
	requests metric.Int64Counter
	duration metric.Float64Histogram
}

// NewMetrics registers the HTTP instruments on meter. A nil meter records nothing.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		meter = metrics.Noop()
	}

	requests, err := meter.Int64Counter("safesurf.http.requests",
		metric.WithDescription("HTTP requests served by route and status"))
	if err != nil {
		return nil, fmt.Errorf("could not create request counter: %w", err)
	}
	duration, err := meter.Float64Histogram("safesurf.http.duration",
		metric.WithDescription("HTTP request latency"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create latency histogram: %w", err)
	}

	return &Metrics{requests: requests, duration: duration}, nil
}

// Wrap instruments next. The route attribute is the matched ServeMux pattern
// when there is one, so raw paths never explode the label set.
func (m *Metrics) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		route := r.Pattern
		if route == "" {
			route = "unmatched"
		}
		attrs := metric.WithAttributes(
			attribute.String("method", r.Method),
			attribute.String("route", route),
			attribute.String("status", strconv.Itoa(rec.status)),
		)
		m.requests.Add(r.Context(), 1, attrs)
		m.duration.Record(r.Context(), time.Since(start).Seconds(), attrs)
	})
}
