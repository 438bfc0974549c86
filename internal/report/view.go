// Package report holds the read model behind the tabbed report: one fetch per
// view, a tab selector independent of the data, and per-row indicators.
package report

import (
	"context"
	"safesurf/internal/classifier"
	"safesurf/internal/host"
	"safesurf/pkg/domain"
	"safesurf/pkg/logger"
	"safesurf/pkg/serrors"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// Status gates what every tab shows.
type Status string

const (
	StatusLoading Status = "loading"
	StatusError   Status = "error"
	StatusReady   Status = "ready"
)

// Tab selects a section of the report.
type Tab string

const (
	TabOverview  Tab = "overview"
	TabGeneral   Tab = "general"
	TabSecurity  Tab = "security"
	TabTechnical Tab = "technical"
	TabWhois     Tab = "whois"
)

// Tabs lists every tab in display order.
var Tabs = []Tab{TabOverview, TabGeneral, TabSecurity, TabTechnical, TabWhois} //nolint: gochecknoglobals

// ParseTab validates a tab name.
func ParseTab(s string) (Tab, error) {
	t := Tab(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Tabs {
		if t == known {
			return t, nil
		}
	}

	return "", serrors.With(serrors.ErrBadRequest, "unknown tab %q", s)
}

const (
	// MsgLoading is the placeholder shown by every tab while loading.
	MsgLoading = "Analyzing the current page..."
	// MsgTransportFailure is the generic error for an unreachable service.
	MsgTransportFailure = "Unable to analyze the URL."
)

// Fetcher runs the analysis of the active tab.
type Fetcher interface {
	AnalyzeActiveTab(ctx context.Context, tabs host.TabSource) domain.AnalysisResult
}

// State is a snapshot of the view. Data and Verdict are set only when ready;
// Error only on error.
type State struct {
	Status  Status
	Tab     Tab
	Data    *domain.SignalSet
	Verdict *domain.Verdict
	Error   string
}

// View is the report of one popup opening.
type View struct {
	fetcher Fetcher
	tabs    host.TabSource
	clock   clockwork.Clock

	once  sync.Once
	mu    sync.RWMutex
	state State
}

// New creates a view in the loading state on the overview tab. A nil clock
// uses the real one.
func New(fetcher Fetcher, tabs host.TabSource, clock clockwork.Clock) *View {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &View{
		fetcher: fetcher,
		tabs:    tabs,
		clock:   clock,
		state:   State{Status: StatusLoading, Tab: TabOverview},
	}
}

// Load fetches the analysis once. Later calls return the settled state
// without any network activity.
func (v *View) Load(ctx context.Context) State {
	v.once.Do(func() {
		res := v.fetcher.AnalyzeActiveTab(ctx, v.tabs)

		v.mu.Lock()
		defer v.mu.Unlock()

		switch {
		case res.OK():
			data := res.Signals.Clone()
			verdict := classifier.Classify(data)
			v.state.Status = StatusReady
			v.state.Data = &data
			v.state.Verdict = &verdict
		case res.Status == domain.ResultServiceFailure:
			v.state.Status = StatusError
			v.state.Error = "Error: " + res.Message
		default:
			v.state.Status = StatusError
			v.state.Error = MsgTransportFailure
		}
		logger.Debug(ctx, "report loaded",
			zap.String("status", string(v.state.Status)),
			zap.String("result", string(res.Status)))
	})

	return v.Snapshot()
}

// SelectTab switches the visible tab. It never fetches.
func (v *View) SelectTab(tab Tab) error {
	if _, err := ParseTab(string(tab)); err != nil {
		return err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	v.state.Tab = tab

	return nil
}

// Snapshot returns a copy of the state that callers may keep.
func (v *View) Snapshot() State {
	v.mu.RLock()
	defer v.mu.RUnlock()

	s := v.state
	if s.Data != nil {
		data := s.Data.Clone()
		s.Data = &data
	}
	if s.Verdict != nil {
		verdict := *s.Verdict
		s.Verdict = &verdict
	}

	return s
}

// Rows returns the rows of tab for the current state.
func (v *View) Rows(tab Tab) []Row {
	return v.Snapshot().Rows(tab, v.clock.Now())
}

// Now is the view's notion of the current time.
func (v *View) Now() time.Time { return v.clock.Now() }
