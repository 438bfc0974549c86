package orchestrator

import (
	"context"
	"safesurf/internal/host"
	"safesurf/pkg/domain"
)

// Orchestrator owns the analysis calls of one invocation context (a page, a
// popup, a CLI run). It never returns an error for an analysis: every outcome
// is folded into domain.AnalysisResult.
//
//go:generate mockgen -package mockorchestrator -source=interface.go -destination=mock/mockorchestrator.go *
type Orchestrator interface {
	Analyze(ctx context.Context, URL string) domain.AnalysisResult
	AnalyzeActiveTab(ctx context.Context, tabs host.TabSource) domain.AnalysisResult
	IsCurrent(generation uint64) bool
	Source(ctx context.Context, URL string) domain.SourceResult
	ReportPhishing(ctx context.Context, site string) error
}
