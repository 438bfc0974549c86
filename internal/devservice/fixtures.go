package devservice

import (
	_ "embed"
	"fmt"
	"os"
	"safesurf/pkg/signals"
	"strings"

	"github.com/go-faster/jx"
)

// DefaultHost is the fixture key answering for hosts without their own entry.
const DefaultHost = "*"

// defaultFixtures is used when no fixtures file is configured.
//
//go:embed fixtures/default.json
var defaultFixtures []byte

// Fixtures maps lower-cased host names to canned "output" objects.
type Fixtures map[string]jx.Raw

// ParseFixtures reads a JSON object of host → output object. Every output
// must decode as a signal set.
func ParseFixtures(b []byte) (Fixtures, error) {
	f := Fixtures{}

	d := jx.DecodeBytes(b)
	if err := d.Obj(func(d *jx.Decoder, host string) error {
		raw, err := d.RawAppend(nil)
		if err != nil {
			return fmt.Errorf("could not read fixture %q: %w", host, err)
		}
		if _, err := signals.DecodeFrom(jx.DecodeBytes(raw)); err != nil {
			return fmt.Errorf("fixture %q is not a valid output object: %w", host, err)
		}
		f[strings.ToLower(host)] = raw

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not parse fixtures: %w", err)
	}

	return f, nil
}

// LoadFixtures reads fixtures from path, or the embedded set when path is empty.
func LoadFixtures(path string) (Fixtures, error) {
	if path == "" {
		return ParseFixtures(defaultFixtures)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read fixtures file: %w", err)
	}

	return ParseFixtures(b)
}

// Lookup returns the output for host, falling back to the default entry.
func (f Fixtures) Lookup(host string) (jx.Raw, bool) {
	host = strings.ToLower(host)
	if raw, ok := f[host]; ok {
		return raw, true
	}
	if raw, ok := f[strings.TrimPrefix(host, "www.")]; ok {
		return raw, true
	}
	raw, ok := f[DefaultHost]

	return raw, ok
}
