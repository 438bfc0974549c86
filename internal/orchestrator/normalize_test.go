package orchestrator_test

import (
	"safesurf/internal/orchestrator"
	"safesurf/pkg/serrors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	cases := []struct {
		name string
		in   string
		out  string
		ok   bool
	}{
		{
			name: "lowercase scheme and host; add root path",
			in:   "HTTP://Example.COM",
			out:  "http://example.com/",
			ok:   true,
		},
		{
			name: "missing scheme defaults to https",
			in:   "  example.com/login ",
			out:  "https://example.com/login",
			ok:   true,
		},
		{
			name: "remove default http port",
			in:   "http://example.com:80/path",
			out:  "http://example.com/path",
			ok:   true,
		},
		{
			name: "remove default https port",
			in:   "https://example.com:443/",
			out:  "https://example.com/",
			ok:   true,
		},
		{
			name: "keep non-default port",
			in:   "http://example.com:8080/",
			out:  "http://example.com:8080/",
			ok:   true,
		},
		{
			name: "path and query untouched",
			in:   "http://example.com/a//b/?b=2&a=1",
			out:  "http://example.com/a//b/?b=2&a=1",
			ok:   true,
		},
		{
			name: "remove fragment",
			in:   "https://example.com/path?x=1#Section-2",
			out:  "https://example.com/path?x=1",
			ok:   true,
		},
		{
			name: "ipv6 host with default port",
			in:   "https://[2001:db8::1]:443/a",
			out:  "https://[2001:db8::1]/a",
			ok:   true,
		},
		{name: "empty", in: "  ", ok: false},
		{name: "browser page", in: "chrome://extensions", ok: false},
		{name: "invalid url returns error", in: "http://exa mple.com", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := orchestrator.NormalizeURL(tc.in)
			if !tc.ok {
				require.ErrorIs(t, err, serrors.ErrBadRequest)

				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.out, got)
		})
	}
}

func TestSite(t *testing.T) {
	site, err := orchestrator.Site("HTTPS://Login.Evil.example:8443/x?y=1")
	require.NoError(t, err)
	require.Equal(t, "login.evil.example", site)

	_, err = orchestrator.Site("")
	require.Error(t, err)
}
