// Package orchestrator issues analysis requests and folds every outcome into
// the closed domain.AnalysisResult union.
//
// Each orchestrator keeps one pass in flight. Starting a new pass cancels the
// previous one and bumps a generation counter; a pass that finishes after it
// was superseded reports a transport failure tagged with its old generation so
// consumers can drop it.
package orchestrator

import (
	"context"
	"errors"
	"safesurf/internal/config"
	"safesurf/internal/host"
	"safesurf/pkg/analysisclient"
	"safesurf/pkg/domain"
	"safesurf/pkg/logger"
	"safesurf/pkg/metrics"
	"safesurf/pkg/serrors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

// DefaultRequestTimeout bounds a call when Options leaves it unset.
const DefaultRequestTimeout = 15 * time.Second

const (
	msgTimeout      = "analysis service did not answer in time"
	msgSuperseded   = "analysis superseded by a newer request"
	msgNoActiveTab  = "no active tab to analyse"
	msgEmptySignals = "analysis service returned no signals"
)

// Options configure the orchestrator.
type Options struct {
	// RequestTimeout is the bounded wait for one analysis or source call. A
	// call that has not answered by then is a transport failure.
	RequestTimeout time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		RequestTimeout: cfg.Service.RequestTimeout,
	}
}

type orchestrator struct {
	client  analysisclient.Client
	options Options

	requests metric.Int64Counter
	duration metric.Float64Histogram

	mu         sync.Mutex
	generation uint64
	cancel     context.CancelFunc
}

// New creates an Orchestrator calling client. A nil meter disables metrics.
func New(client analysisclient.Client, options Options, meter metric.Meter) (Orchestrator, error) {
	if options.RequestTimeout <= 0 {
		options.RequestTimeout = DefaultRequestTimeout
	}
	if meter == nil {
		meter = metrics.Noop()
	}

	requests, err := meter.Int64Counter("safesurf.analysis.requests",
		metric.WithDescription("Analysis passes by outcome"))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not create requests counter")
	}
	duration, err := meter.Float64Histogram("safesurf.analysis.duration",
		metric.WithDescription("Duration of analysis passes"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrInternal, err, "could not create duration histogram")
	}

	return &orchestrator{
		client:   client,
		options:  options,
		requests: requests,
		duration: duration,
	}, nil
}

// begin starts a new pass: the previous one is canceled and the generation
// bumped. The returned func releases the pass context. A parent that is
// already done starts nothing and reports ok=false, so a caller canceled by a
// newer pass can never cancel that pass in turn.
func (o *orchestrator) begin(parent context.Context) (gen uint64, ctx context.Context, done func(), ok bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if parent.Err() != nil {
		return 0, parent, func() {}, false
	}

	if o.cancel != nil {
		o.cancel()
	}
	o.generation++
	gen = o.generation

	ctx, cancel := context.WithTimeout(parent, o.options.RequestTimeout)
	o.cancel = cancel

	return gen, ctx, func() {
		cancel()

		o.mu.Lock()
		if o.generation == gen {
			o.cancel = nil
		}
		o.mu.Unlock()
	}, true
}

// IsCurrent reports whether generation is the latest pass. Generation 0 is
// never issued.
func (o *orchestrator) IsCurrent(generation uint64) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	return generation != 0 && o.generation == generation
}

// Analyze runs one analysis pass for URL.
func (o *orchestrator) Analyze(ctx context.Context, URL string) domain.AnalysisResult {
	gen, passCtx, done, ok := o.begin(ctx)
	defer done()
	if !ok {
		return o.abandoned(ctx)
	}

	passCtx = logger.WithFields(logger.Named(passCtx, "orchestrator"),
		zap.String("passID", uuid.NewString()),
		zap.Uint64("generation", gen),
		zap.String("URL", URL))

	return o.run(passCtx, gen, URL)
}

// AnalyzeActiveTab analyses the URL the host reports. A host failure is a
// transport failure and never reaches the network.
func (o *orchestrator) AnalyzeActiveTab(ctx context.Context, tabs host.TabSource) domain.AnalysisResult {
	URL, err := tabs.ActiveURL(ctx)
	if err != nil || URL == "" {
		// a host failure still counts as a pass: it supersedes whatever
		// was in flight, as a successful lookup would have.
		gen, _, done, ok := o.begin(ctx)
		done()
		if !ok {
			return o.abandoned(ctx)
		}

		if err == nil {
			err = host.ErrNoActiveTab
		}
		logger.Warn(ctx, "could not resolve active tab", zap.Error(err))
		o.record(ctx, time.Now(), string(domain.ResultTransportFailure))

		return domain.TransportFailure(gen, msgNoActiveTab)
	}

	return o.Analyze(ctx, URL)
}

// abandoned is the result of a pass whose context was already done before it
// started. It carries generation 0, which is never current.
func (o *orchestrator) abandoned(ctx context.Context) domain.AnalysisResult {
	superseded := serrors.Wrap(serrors.ErrSuperseded, ctx.Err(), msgSuperseded)
	logger.Debug(ctx, "analysis canceled before it started", zap.Error(superseded))
	o.record(ctx, time.Now(), serrors.ErrSuperseded.Error())

	return domain.TransportFailure(0, superseded.Message())
}

func (o *orchestrator) run(ctx context.Context, gen uint64, URL string) domain.AnalysisResult {
	start := time.Now()

	normalized, err := NormalizeURL(URL)
	if err != nil {
		logger.Info(ctx, "refusing to analyse URL", zap.Error(err))
		o.record(ctx, start, string(domain.ResultServiceFailure))

		return domain.ServiceFailure(gen, serrors.MessageOf(err))
	}

	logger.Debug(ctx, "analysis started")
	s, err := o.client.Analyze(ctx, normalized)

	if !o.IsCurrent(gen) {
		superseded := serrors.Wrap(serrors.ErrSuperseded, err, msgSuperseded)
		logger.Debug(ctx, "discarding analysis", zap.Error(superseded))
		o.record(ctx, start, serrors.ErrSuperseded.Error())

		return domain.TransportFailure(gen, superseded.Message())
	}

	res := toResult(ctx, gen, s, err)
	if res.OK() {
		logger.Info(ctx, "analysis finished", zap.Strings("missing", res.Signals.Missing()))
	} else {
		logger.Warn(ctx, "analysis failed",
			zap.String("status", string(res.Status)),
			zap.String("message", res.Message),
			zap.Error(err))
	}
	o.record(ctx, start, string(res.Status))

	return res
}

// toResult folds a client outcome into the closed union.
func toResult(ctx context.Context, gen uint64, s *domain.SignalSet, err error) domain.AnalysisResult {
	switch {
	case err == nil && s != nil:
		return domain.Success(gen, *s)
	case err == nil:
		return domain.TransportFailure(gen, msgEmptySignals)
	case errors.Is(err, serrors.ErrService):
		return domain.ServiceFailure(gen, serrors.MessageOf(err))
	case isTimeout(ctx, err):
		return domain.TransportFailure(gen, msgTimeout)
	default:
		return domain.TransportFailure(gen, serrors.MessageOf(err))
	}
}

func isTimeout(ctx context.Context, err error) bool {
	return errors.Is(err, serrors.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(ctx.Err(), context.DeadlineExceeded)
}

// Source retrieves the page source of URL. It is independent of analysis
// generations and never cancels an analysis pass.
func (o *orchestrator) Source(ctx context.Context, URL string) domain.SourceResult {
	ctx, cancel := context.WithTimeout(ctx, o.options.RequestTimeout)
	defer cancel()
	ctx = logger.WithFields(ctx, zap.String("URL", URL))

	normalized, err := NormalizeURL(URL)
	if err != nil {
		return domain.SourceResult{Status: domain.ResultServiceFailure, Message: serrors.MessageOf(err)}
	}

	html, err := o.client.SourceCode(ctx, normalized)
	switch {
	case err == nil:
		return domain.SourceResult{Status: domain.ResultSuccess, HTML: html}
	case errors.Is(err, serrors.ErrService):
		logger.Warn(ctx, "source retrieval failed", zap.Error(err))

		return domain.SourceResult{Status: domain.ResultServiceFailure, Message: serrors.MessageOf(err)}
	case isTimeout(ctx, err):
		logger.Warn(ctx, "source retrieval timed out", zap.Error(err))

		return domain.SourceResult{Status: domain.ResultTransportFailure, Message: msgTimeout}
	default:
		logger.Warn(ctx, "source retrieval failed", zap.Error(err))

		return domain.SourceResult{Status: domain.ResultTransportFailure, Message: serrors.MessageOf(err)}
	}
}

// ReportPhishing files site as phishing with the service.
func (o *orchestrator) ReportPhishing(ctx context.Context, site string) error {
	ctx, cancel := context.WithTimeout(ctx, o.options.RequestTimeout)
	defer cancel()
	ctx = logger.WithFields(ctx, zap.String("site", site))

	if err := o.client.ReportPhishing(ctx, site); err != nil {
		logger.Warn(ctx, "phishing report failed", zap.Error(err))

		return err
	}
	logger.Info(ctx, "phishing report submitted")

	return nil
}

func (o *orchestrator) record(ctx context.Context, start time.Time, status string) {
	attrs := metric.WithAttributes(attribute.String("status", status))
	o.requests.Add(ctx, 1, attrs)
	o.duration.Record(ctx, time.Since(start).Seconds(), attrs)
}

var _ Orchestrator = (*orchestrator)(nil)
