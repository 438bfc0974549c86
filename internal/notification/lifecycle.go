// Package notification drives the single transient banner shown while a page
// is analysed.
//
// A Lifecycle owns exactly one banner at a time. Every pass gets a new epoch;
// responses and timers carry the epoch they were created for and do nothing
// once a newer pass has started, so a late answer or a stale dismissal timer
// can never touch a newer banner.
package notification

import (
	"context"
	"safesurf/internal/classifier"
	"safesurf/internal/config"
	"safesurf/pkg/domain"
	"safesurf/pkg/logger"
	"safesurf/pkg/serrors"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

const (
	MinDisplayDuration     = 5 * time.Second
	MaxDisplayDuration     = 7 * time.Second
	DefaultDisplayDuration = 7 * time.Second
	DefaultExitDuration    = 500 * time.Millisecond
)

// Analyzer runs one analysis pass.
type Analyzer interface {
	Analyze(ctx context.Context, URL string) domain.AnalysisResult
}

// Options configure banner timing.
type Options struct {
	// DisplayDuration is how long a settled banner stays before its exit
	// transition starts.
	DisplayDuration time.Duration
	// ExitDuration is the length of the exit transition.
	ExitDuration time.Duration
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		DisplayDuration: cfg.Banner.DisplayDuration,
		ExitDuration:    cfg.Banner.ExitDuration,
	}
}

// Validate checks the timing bounds. Zero values are replaced with defaults
// by New before validation.
func (o Options) Validate() error {
	if o.DisplayDuration < MinDisplayDuration || o.DisplayDuration > MaxDisplayDuration {
		return serrors.With(serrors.ErrBadRequest,
			"display duration %s is outside [%s, %s]", o.DisplayDuration, MinDisplayDuration, MaxDisplayDuration)
	}
	if o.ExitDuration < 0 {
		return serrors.With(serrors.ErrBadRequest, "exit duration %s is negative", o.ExitDuration)
	}

	return nil
}

// Lifecycle is the banner state machine of one page.
type Lifecycle struct {
	analyzer Analyzer
	surface  Surface
	clock    clockwork.Clock
	options  Options

	mu     sync.Mutex
	epoch  uint64
	state  State
	banner *Banner
	timer  clockwork.Timer
	cancel context.CancelFunc
}

// New creates a Lifecycle rendering onto surface. A nil clock uses the real one.
func New(analyzer Analyzer, surface Surface, clock clockwork.Clock, options Options) (*Lifecycle, error) {
	if options.DisplayDuration == 0 {
		options.DisplayDuration = DefaultDisplayDuration
	}
	if options.ExitDuration == 0 {
		options.ExitDuration = DefaultExitDuration
	}
	if err := options.Validate(); err != nil {
		return nil, err
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Lifecycle{
		analyzer: analyzer,
		surface:  surface,
		clock:    clock,
		options:  options,
		state:    StateIdle,
	}, nil
}

// Start begins a new pass for URL. Any banner of a previous pass is removed
// and its timer stopped before the Analyzing banner is mounted. The returned
// channel is closed once the pass has settled, whether its result was applied
// or discarded.
func (l *Lifecycle) Start(ctx context.Context, URL string) <-chan struct{} {
	l.mu.Lock()
	l.teardownLocked()
	l.epoch++
	epoch := l.epoch

	passCtx, cancel := context.WithCancel(ctx)
	l.cancel = cancel

	b := analyzingBanner(epoch, URL)
	l.banner = &b
	l.state = StateAnalyzing
	l.surface.Mount(b)
	l.mu.Unlock()

	passCtx = logger.WithFields(logger.Named(passCtx, "notification"), zap.Uint64("epoch", epoch))
	done := make(chan struct{})
	go func() {
		defer close(done)
		defer cancel()

		l.settle(passCtx, epoch, l.analyzer.Analyze(passCtx, URL))
	}()

	return done
}

// settle applies res if epoch is still current.
func (l *Lifecycle) settle(ctx context.Context, epoch uint64, res domain.AnalysisResult) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch || l.banner == nil {
		logger.Debug(ctx, "ignoring late analysis result", zap.String("status", string(res.Status)))

		return
	}

	var b Banner
	if res.OK() {
		b = resolvedBanner(*l.banner, classifier.Classify(*res.Signals))
	} else {
		b = failedBanner(*l.banner, res.Message)
		logger.Info(ctx, "analysis failed", zap.String("status", string(res.Status)), zap.String("reason", res.Message))
	}
	l.banner = &b
	l.state = b.State
	l.surface.Update(b)

	l.timer = l.clock.AfterFunc(l.options.DisplayDuration, func() { l.beginExit(epoch) })
}

func (l *Lifecycle) beginExit(epoch uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch || l.banner == nil || l.banner.Exiting {
		return
	}
	l.banner.Exiting = true
	l.surface.BeginExit(l.banner.ID)

	l.timer = l.clock.AfterFunc(l.options.ExitDuration, func() { l.remove(epoch) })
}

func (l *Lifecycle) remove(epoch uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if epoch != l.epoch || l.banner == nil {
		return
	}
	l.surface.Remove(l.banner.ID)
	l.banner = nil
	l.timer = nil
	l.state = StateDismissed
}

// teardownLocked stops the current timer, cancels the in-flight fetch and
// removes the banner. l.mu must be held.
func (l *Lifecycle) teardownLocked() {
	if l.timer != nil {
		l.timer.Stop()
		l.timer = nil
	}
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	if l.banner != nil {
		l.surface.Remove(l.banner.ID)
		l.banner = nil
	}
}

// Stop cancels the current pass and removes its banner. Pending results and
// timers are ignored afterwards.
func (l *Lifecycle) Stop() {
	l.mu.Lock()
	defer l.mu.Unlock()

	l.teardownLocked()
	l.epoch++
	l.state = StateIdle
}

// State returns the current state.
func (l *Lifecycle) State() State {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.state
}

// Current returns a copy of the live banner, if any.
func (l *Lifecycle) Current() (Banner, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.banner == nil {
		return Banner{}, false
	}

	return *l.banner, true
}

// Epoch returns the epoch of the latest pass.
func (l *Lifecycle) Epoch() uint64 {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.epoch
}
