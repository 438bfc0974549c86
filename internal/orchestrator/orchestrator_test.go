package orchestrator_test

import (
	"context"
	"errors"
	"safesurf/internal/host"
	"safesurf/internal/orchestrator"
	mockanalysisclient "safesurf/pkg/analysisclient/mock"
	"safesurf/pkg/domain"
	"safesurf/pkg/logger"
	"safesurf/pkg/metrics"
	"safesurf/pkg/serrors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	_ = logger.Setup(logger.DevelopmentEnvironment, "error")
	m.Run()
}

func newTestOrchestrator(t *testing.T, timeout time.Duration) (*mockanalysisclient.MockClient, orchestrator.Orchestrator) {
	t.Helper()

	ctrl := gomock.NewController(t)
	client := mockanalysisclient.NewMockClient(ctrl)
	o, err := orchestrator.New(client, orchestrator.Options{RequestTimeout: timeout}, nil)
	require.NoError(t, err)

	return client, o
}

func TestOrchestrator_Analyze_Success(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	score := 82
	client.EXPECT().Analyze(gomock.Any(), "https://example.com/").
		Return(&domain.SignalSet{TrustScore: &score, Present: domain.FieldTrustScore}, nil)

	res := o.Analyze(context.Background(), "Example.com")
	require.Equal(t, domain.ResultSuccess, res.Status)
	require.True(t, res.OK())
	require.Equal(t, 82, *res.Signals.TrustScore)
	require.Equal(t, uint64(1), res.Generation)
	require.True(t, o.IsCurrent(res.Generation))
}

func TestOrchestrator_Analyze_ServiceFailure(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		Return(nil, serrors.With(serrors.ErrService, "unreachable host"))

	res := o.Analyze(context.Background(), "https://nope.invalid")
	require.Equal(t, domain.ResultServiceFailure, res.Status)
	require.Equal(t, "unreachable host", res.Message)
	require.Nil(t, res.Signals)
}

func TestOrchestrator_Analyze_TransportFailure(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		Return(nil, serrors.Wrap(serrors.ErrTransport, errors.New("connection refused"), "could not send request"))

	res := o.Analyze(context.Background(), "https://example.com")
	require.Equal(t, domain.ResultTransportFailure, res.Status)
	require.Contains(t, res.Message, "could not send request")
}

func TestOrchestrator_Analyze_NilSignals(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, nil)

	res := o.Analyze(context.Background(), "https://example.com")
	require.Equal(t, domain.ResultTransportFailure, res.Status)
}

func TestOrchestrator_Analyze_TimeoutIsTransportFailure(t *testing.T) {
	client, o := newTestOrchestrator(t, 20*time.Millisecond)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) (*domain.SignalSet, error) {
			<-ctx.Done()

			return nil, ctx.Err()
		})

	start := time.Now()
	res := o.Analyze(context.Background(), "https://slow.example")
	require.Equal(t, domain.ResultTransportFailure, res.Status)
	require.Contains(t, res.Message, "in time")
	require.Less(t, time.Since(start), 2*time.Second)
}

func TestOrchestrator_Analyze_InvalidURLNeverFetches(t *testing.T) {
	_, o := newTestOrchestrator(t, time.Second)

	res := o.Analyze(context.Background(), "")
	require.Equal(t, domain.ResultServiceFailure, res.Status)
	require.Equal(t, "No URL provided", res.Message)

	res = o.Analyze(context.Background(), "chrome://newtab")
	require.Equal(t, domain.ResultServiceFailure, res.Status)
}

func TestOrchestrator_Analyze_SupersededPassIsDiscarded(t *testing.T) {
	client, o := newTestOrchestrator(t, 5*time.Second)

	started := make(chan struct{})
	client.EXPECT().Analyze(gomock.Any(), "https://a.example/").
		DoAndReturn(func(ctx context.Context, _ string) (*domain.SignalSet, error) {
			close(started)
			<-ctx.Done()

			return nil, ctx.Err()
		})
	score := 90
	client.EXPECT().Analyze(gomock.Any(), "https://b.example/").
		Return(&domain.SignalSet{TrustScore: &score, Present: domain.FieldTrustScore}, nil)

	first := make(chan domain.AnalysisResult, 1)
	go func() { first <- o.Analyze(context.Background(), "https://a.example") }()
	<-started

	second := o.Analyze(context.Background(), "https://b.example")
	require.Equal(t, domain.ResultSuccess, second.Status)
	require.Equal(t, uint64(2), second.Generation)

	var a domain.AnalysisResult
	select {
	case a = <-first:
	case <-time.After(2 * time.Second):
		t.Fatal("superseded pass was not canceled")
	}
	require.Equal(t, domain.ResultTransportFailure, a.Status)
	require.Equal(t, uint64(1), a.Generation)
	require.False(t, o.IsCurrent(a.Generation))
	require.True(t, o.IsCurrent(second.Generation))
}

func TestOrchestrator_Analyze_CanceledPassLeavesCurrentPassAlone(t *testing.T) {
	client, o := newTestOrchestrator(t, 5*time.Second)

	started := make(chan struct{})
	release := make(chan struct{})
	score := 70
	client.EXPECT().Analyze(gomock.Any(), "https://b.example/").
		DoAndReturn(func(ctx context.Context, _ string) (*domain.SignalSet, error) {
			close(started)
			select {
			case <-release:
				return &domain.SignalSet{TrustScore: &score, Present: domain.FieldTrustScore}, nil
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		})

	current := make(chan domain.AnalysisResult, 1)
	go func() { current <- o.Analyze(context.Background(), "https://b.example") }()
	<-started

	// a pass whose caller already gave up must not start, bump the
	// generation or cancel the pass in flight
	canceled, cancel := context.WithCancel(context.Background())
	cancel()
	stale := o.Analyze(canceled, "https://a.example")
	require.Equal(t, domain.ResultTransportFailure, stale.Status)
	require.Equal(t, uint64(0), stale.Generation)
	require.False(t, o.IsCurrent(stale.Generation))

	stale = o.AnalyzeActiveTab(canceled, host.Static(""))
	require.Equal(t, uint64(0), stale.Generation)

	close(release)
	res := <-current
	require.Equal(t, domain.ResultSuccess, res.Status)
	require.Equal(t, uint64(1), res.Generation)
	require.True(t, o.IsCurrent(res.Generation))
}

func TestOrchestrator_AnalyzeActiveTab(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().Analyze(gomock.Any(), "https://example.com/").Return(&domain.SignalSet{}, nil)

	res := o.AnalyzeActiveTab(context.Background(), host.Static("https://example.com"))
	require.Equal(t, domain.ResultSuccess, res.Status)
}

func TestOrchestrator_AnalyzeActiveTab_NoTabNeverFetches(t *testing.T) {
	_, o := newTestOrchestrator(t, time.Second)

	res := o.AnalyzeActiveTab(context.Background(), host.Static(""))
	require.Equal(t, domain.ResultTransportFailure, res.Status)

	res = o.AnalyzeActiveTab(context.Background(), host.TabSourceFunc(func(context.Context) (string, error) {
		return "", errors.New("tabs api unavailable")
	}))
	require.Equal(t, domain.ResultTransportFailure, res.Status)
	require.Equal(t, uint64(2), res.Generation)
	require.True(t, o.IsCurrent(res.Generation))
}

func TestOrchestrator_Source(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().SourceCode(gomock.Any(), "https://example.com/").Return("<html></html>", nil)
	client.EXPECT().SourceCode(gomock.Any(), "https://down.example/").
		Return("", serrors.With(serrors.ErrService, "Max retries exceeded"))
	client.EXPECT().SourceCode(gomock.Any(), "https://broken.example/").
		Return("", serrors.With(serrors.ErrTransport, "response is not a JSON object"))

	res := o.Source(context.Background(), "https://example.com")
	require.Equal(t, domain.ResultSuccess, res.Status)
	require.Equal(t, "<html></html>", res.HTML)

	res = o.Source(context.Background(), "https://down.example")
	require.Equal(t, domain.ResultServiceFailure, res.Status)
	require.Equal(t, "Max retries exceeded", res.Message)

	res = o.Source(context.Background(), "https://broken.example")
	require.Equal(t, domain.ResultTransportFailure, res.Status)
}

func TestOrchestrator_SourceDoesNotSupersedeAnalysis(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(&domain.SignalSet{}, nil)
	client.EXPECT().SourceCode(gomock.Any(), gomock.Any()).Return("", nil)

	res := o.Analyze(context.Background(), "https://example.com")
	_ = o.Source(context.Background(), "https://example.com")
	require.True(t, o.IsCurrent(res.Generation))
}

func TestOrchestrator_ReportPhishing(t *testing.T) {
	client, o := newTestOrchestrator(t, time.Second)

	client.EXPECT().ReportPhishing(gomock.Any(), "evil.example").Return(nil)
	client.EXPECT().ReportPhishing(gomock.Any(), "gone.example").
		Return(serrors.With(serrors.ErrUnavailable, "report endpoint is not available"))

	require.NoError(t, o.ReportPhishing(context.Background(), "evil.example"))
	require.ErrorIs(t, o.ReportPhishing(context.Background(), "gone.example"), serrors.ErrUnavailable)
}

func TestOrchestrator_RecordsMetrics(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := mockanalysisclient.NewMockClient(ctrl)

	p, err := metrics.NewProvider()
	require.NoError(t, err)

	o, err := orchestrator.New(client, orchestrator.Options{RequestTimeout: time.Second}, p.Meter())
	require.NoError(t, err)

	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(&domain.SignalSet{}, nil)
	client.EXPECT().Analyze(gomock.Any(), gomock.Any()).Return(nil, serrors.With(serrors.ErrService, "nope"))
	o.Analyze(context.Background(), "https://ok.example")
	o.Analyze(context.Background(), "https://ko.example")

	families, err := p.Gatherer().Gather()
	require.NoError(t, err)

	statuses := map[string]float64{}
	for _, f := range families {
		if !strings.HasPrefix(f.GetName(), "safesurf_analysis_requests") {
			continue
		}
		for _, m := range f.GetMetric() {
			for _, l := range m.GetLabel() {
				if l.GetName() == "status" {
					statuses[l.GetValue()] = m.GetCounter().GetValue()
				}
			}
		}
	}
	require.Equal(t, map[string]float64{"SUCCESS": 1, "SERVICE_FAILURE": 1}, statuses)
}
