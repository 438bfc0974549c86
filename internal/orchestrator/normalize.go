package orchestrator

import (
	"fmt"
	"net"
	"net/url"
	"safesurf/pkg/serrors"
	"strings"
)

// NormalizeURL prepares a URL typed by a user or reported by the host for
// analysis:
//   - Trim surrounding whitespace and default a missing scheme to https
//   - Reject anything that is not http or https (browser internal pages, files)
//   - Lower-case the scheme and host, drop default ports
//   - Remove the fragment
//
// Path and query are left alone; the service must see the page as the user did.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", serrors.With(serrors.ErrBadRequest, "No URL provided")
	}
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", serrors.Wrap(serrors.ErrBadRequest, err, "could not parse URL")
	}

	u.Scheme = strings.ToLower(u.Scheme)
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", serrors.With(serrors.ErrBadRequest, "cannot analyse %s pages", u.Scheme)
	}
	if u.Host == "" {
		return "", serrors.With(serrors.ErrBadRequest, "URL has no host")
	}

	host := strings.ToLower(u.Host)
	if h, port, err := net.SplitHostPort(host); err == nil {
		if (u.Scheme == "http" && port == "80") || (u.Scheme == "https" && port == "443") {
			host = h
			if strings.Contains(h, ":") {
				host = "[" + h + "]"
			}
		}
	}
	u.Host = host

	if u.Path == "" {
		u.Path = "/"
	}
	u.Fragment = ""
	u.RawFragment = ""

	return u.String(), nil
}

// Site returns the host name a phishing report is filed under.
func Site(raw string) (string, error) {
	normalized, err := NormalizeURL(raw)
	if err != nil {
		return "", err
	}
	u, err := url.Parse(normalized)
	if err != nil {
		return "", fmt.Errorf("could not parse URL: %w", err)
	}

	return u.Hostname(), nil
}
