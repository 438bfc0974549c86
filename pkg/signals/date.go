package signals

import (
	"safesurf/pkg/domain"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// dateLayouts are tried in order. WHOIS servers mostly answer RFC 1123 or
// ISO-8601; the rest covers what python-whois and OpenSSL print.
var dateLayouts = []string{ //nolint: gochecknoglobals
	time.RFC1123,
	time.RFC1123Z,
	"Mon, 2 Jan 2006 15:04:05 MST",
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05Z0700",
	time.DateTime,
	"2006-01-02 15:04:05Z07:00",
	time.DateOnly,
	"Jan 2 15:04:05 2006 MST",
	"02-Jan-2006",
	"2006.01.02",
}

// ParseDate parses raw with the known layouts. When none matches, the raw
// value is kept and Known is false; callers must treat such dates as risk
// neutral.
func ParseDate(raw string) domain.Date {
	out := domain.Date{Raw: strings.TrimSpace(raw)}
	if out.Raw == "" {
		return out
	}

	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, out.Raw); err == nil {
			out.Time = t.UTC()
			out.Known = true

			return out
		}
	}

	return out
}

// parseLooseNumber extracts the first number from s, ignoring thousands
// separators: "1.1 year(s)" -> 1.1, "10,00,000+" -> 1000000, "-3 days" -> -3.
func parseLooseNumber(s string) (float64, bool) {
	s = strings.ReplaceAll(strings.TrimSpace(s), ",", "")

	start := strings.IndexFunc(s, func(r rune) bool { return unicode.IsDigit(r) })
	if start < 0 {
		return 0, false
	}
	if start > 0 && s[start-1] == '-' {
		start--
	}

	end := start + 1
	seenDot := false
	for end < len(s) {
		c := s[end]
		if c == '.' && !seenDot {
			seenDot = true
		} else if c < '0' || c > '9' {
			break
		}
		end++
	}

	v, err := strconv.ParseFloat(strings.TrimSuffix(s[start:end], "."), 64)
	if err != nil {
		return 0, false
	}

	return v, true
}
