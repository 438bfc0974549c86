// Package host abstracts the embedding environment that knows which page the
// user is looking at.
package host

import (
	"context"
	"safesurf/pkg/serrors"
	"strings"
)

// ErrNoActiveTab is returned when the host has no page to analyse.
var ErrNoActiveTab = serrors.With(serrors.ErrNotFound, "no active tab")

// TabSource yields the URL of the active tab.
type TabSource interface {
	ActiveURL(ctx context.Context) (string, error)
}

// TabSourceFunc adapts a function to TabSource.
type TabSourceFunc func(ctx context.Context) (string, error)

func (f TabSourceFunc) ActiveURL(ctx context.Context) (string, error) { return f(ctx) }

// Static is a TabSource that always reports the same URL. The CLI uses it to
// stand in for a browser.
type Static string

// ActiveURL returns the static URL, or ErrNoActiveTab when it is blank.
func (s Static) ActiveURL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	u := strings.TrimSpace(string(s))
	if u == "" {
		return "", ErrNoActiveTab
	}

	return u, nil
}

var (
	_ TabSource = Static("")
	_ TabSource = TabSourceFunc(nil)
)
