// Package analysisclient defines the client used to ask the SafeSurf analysis
// service about a URL, fetch a page's source and report phishing sites.
package analysisclient

import (
	"context"
	"safesurf/pkg/domain"
)

// Client is the abstraction over the remote analysis service.
//
//go:generate mockgen -package mockanalysisclient -source=interface.go -destination=mock/mockanalysisclient.go *
type Client interface {
	// Analyze submits URL for analysis and returns the decoded signals.
	Analyze(ctx context.Context, URL string) (*domain.SignalSet, error)
	// SourceCode returns the formatted HTML of the page at URL.
	SourceCode(ctx context.Context, URL string) (string, error)
	// ReportPhishing flags site as phishing in the service's database.
	ReportPhishing(ctx context.Context, site string) error
}
