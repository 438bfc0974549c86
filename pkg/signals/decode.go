// Package signals decodes the analysis service's "output" object into a
// domain.SignalSet.
//
// The service is loosely typed: booleans arrive as true/false, 0/1 or
// "Yes"/"No", ages as "1.1 year(s)", ranks as "10,00,000+" and dates in
// whatever format the WHOIS server used. Decoding is streaming (go-faster/jx)
// and tolerant: a signal that is absent or of an unusable type is recorded as
// missing and never fails the whole payload.
package signals

import (
	"math"
	"safesurf/pkg/domain"
	"safesurf/pkg/serrors"
	"strings"

	"github.com/go-faster/jx"
)

// Decode parses the service's output object. Only a payload that is not a JSON
// object (or is syntactically broken) is an error.
func Decode(payload []byte) (domain.SignalSet, error) {
	var s domain.SignalSet

	d := jx.DecodeBytes(payload)
	if d.Next() != jx.Object {
		return s, serrors.With(serrors.ErrTransport, "signal payload is not a JSON object")
	}

	if err := d.Obj(func(d *jx.Decoder, key string) error {
		return decodeField(d, key, &s)
	}); err != nil {
		return domain.SignalSet{}, serrors.Wrap(serrors.ErrTransport, err, "could not decode signals")
	}

	s.Validate()

	return s, nil
}

// DecodeFrom decodes the output object from an already positioned decoder.
func DecodeFrom(d *jx.Decoder) (domain.SignalSet, error) {
	raw, err := d.Raw()
	if err != nil {
		return domain.SignalSet{}, serrors.Wrap(serrors.ErrTransport, err, "could not read signals")
	}

	return Decode(raw)
}

//nolint: gocyclo
func decodeField(d *jx.Decoder, key string, s *domain.SignalSet) error {
	switch key {
	case "trust_score":
		v, ok, err := readNumber(d)
		if err != nil || !ok {
			return err
		}
		score := int(math.Round(bounded(v, 0, 100)))
		s.TrustScore = &score
		s.Present |= domain.FieldTrustScore
	case "age":
		v, ok, err := readAge(d)
		if err != nil || !ok {
			return err
		}
		s.DomainAgeYears = v
		s.Present |= domain.FieldDomainAge
	case "rank":
		v, ok, err := readNumber(d)
		if err != nil || !ok {
			return err
		}
		s.GlobalRank = int64(bounded(v, 0, maxRank))
		s.Present |= domain.FieldGlobalRank
	case "response_status":
		v, ok, err := readNumber(d)
		if err != nil || !ok {
			return err
		}
		s.HTTPStatus = int(bounded(v, 0, maxHTTPStatus))
		s.Present |= domain.FieldHTTPStatus
	case "hsts_support":
		return setBool(d, &s.HSTSSupported, &s.Present, domain.FieldHSTS)
	case "is_url_shortened":
		return setBool(d, &s.IsURLShortened, &s.Present, domain.FieldURLShortened)
	case "ip_present":
		return setBool(d, &s.IPPresentInURL, &s.Present, domain.FieldIPInURL)
	case "url_redirects":
		return setBool(d, &s.HasRedirects, &s.Present, domain.FieldRedirects)
	case "too_long_url":
		return setBool(d, &s.URLTooLong, &s.Present, domain.FieldURLTooLong)
	case "too_deep_url":
		return setBool(d, &s.URLTooDeep, &s.Present, domain.FieldURLTooDeep)
	case "ip":
		v, ok, err := readString(d)
		if err != nil || !ok {
			return err
		}
		s.IP = v
		s.Present |= domain.FieldIP
	case "ssl":
		if d.Next() != jx.Object {
			return d.Skip()
		}
		var ssl domain.SSLInfo
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			return decodeSSLField(d, key, &ssl)
		}); err != nil {
			return err
		}
		s.SSL = &ssl
		s.Present |= domain.FieldSSL
	case "whois":
		if d.Next() != jx.Object {
			return d.Skip()
		}
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			return decodeWhoisField(d, key, &s.Whois)
		}); err != nil {
			return err
		}
		s.Present |= domain.FieldWhois
	default:
		return d.Skip()
	}

	return nil
}

func decodeSSLField(d *jx.Decoder, key string, ssl *domain.SSLInfo) error {
	switch key {
	case "Days to Expiry":
		v, ok, err := readNumber(d)
		if err != nil || !ok {
			return err
		}
		ssl.DaysToExpiry = int(bounded(v, -maxDays, maxDays))
	case "Is Certificate Revoked":
		v, ok, err := readBool(d)
		if err != nil || !ok {
			return err
		}
		ssl.IsRevoked = v
	case "Issued By":
		return setString(d, &ssl.Issuer)
	case "Issued To":
		return setString(d, &ssl.IssuedTo)
	case "Cipher Suite":
		return setString(d, &ssl.CipherSuite)
	case "Version":
		return setString(d, &ssl.TLSVersion)
	case "Valid From":
		return setDate(d, &ssl.ValidFrom)
	case "Valid Till":
		return setDate(d, &ssl.ValidTill)
	default:
		return d.Skip()
	}

	return nil
}

func decodeWhoisField(d *jx.Decoder, key string, w *domain.WhoisInfo) error {
	switch key {
	case "Domain Name":
		return setString(d, &w.DomainName)
	case "Registrar":
		return setString(d, &w.Registrar)
	case "Registrar Url":
		return setString(d, &w.RegistrarURL)
	case "Creation Date":
		return setDate(d, &w.CreationDate)
	case "Expiration Date":
		return setDate(d, &w.ExpirationDate)
	case "Updated Date":
		return setDate(d, &w.UpdatedDate)
	case "Registrant Country":
		return setString(d, &w.RegistrantCountry)
	case "Registrant Name":
		return setString(d, &w.RegistrantName)
	case "Name Servers":
		v, _, err := readStrings(d)
		w.NameServers = v

		return err
	case "Status":
		v, _, err := readStrings(d)
		w.Status = v

		return err
	default:
		return d.Skip()
	}
}

func setBool(d *jx.Decoder, dst *bool, present *domain.Fields, f domain.Fields) error {
	v, ok, err := readBool(d)
	if err != nil || !ok {
		return err
	}
	*dst = v
	*present |= f

	return nil
}

func setString(d *jx.Decoder, dst *string) error {
	v, _, err := readString(d)
	*dst = v

	return err
}

func setDate(d *jx.Decoder, dst *domain.Date) error {
	// python-whois reports multiple dates as a list; the first one is the
	// registry's value
	if d.Next() == jx.Array {
		values, _, err := readStrings(d)
		if err != nil {
			return err
		}
		if len(values) > 0 {
			*dst = ParseDate(values[0])
		}

		return nil
	}

	v, ok, err := readString(d)
	if err != nil || !ok {
		return err
	}
	*dst = ParseDate(v)

	return nil
}

// readBool accepts JSON booleans, numbers (non-zero is true) and the strings
// yes/no, true/false, y/n, 1/0 in any case.
func readBool(d *jx.Decoder) (bool, bool, error) {
	switch d.Next() {
	case jx.Bool:
		v, err := d.Bool()

		return v, err == nil, err
	case jx.Number:
		v, err := d.Float64()

		return v != 0, err == nil, err
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return false, false, err
		}
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "yes", "y", "true", "1":
			return true, true, nil
		case "no", "n", "false", "0":
			return false, true, nil
		default:
			return false, false, nil
		}
	default:
		return false, false, d.Skip()
	}
}

// readNumber accepts JSON numbers and strings with a leading number.
const (
	// maxRank stays well inside int64 once converted.
	maxRank       = 1 << 53
	maxHTTPStatus = 999
	maxDays       = 1 << 20
)

// bounded clamps v to [lo, hi] so the integer conversion that follows is
// always in range. NaN becomes lo.
func bounded(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}

	return math.Max(lo, math.Min(hi, v))
}

func readNumber(d *jx.Decoder) (float64, bool, error) {
	switch d.Next() {
	case jx.Number:
		v, err := d.Float64()

		return v, err == nil, err
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return 0, false, err
		}
		n, ok := parseLooseNumber(v)

		return n, ok, nil
	default:
		return 0, false, d.Skip()
	}
}

// readAge is readNumber with unit awareness for strings like "5 month(s)".
func readAge(d *jx.Decoder) (float64, bool, error) {
	if d.Next() != jx.String {
		return readNumber(d)
	}

	v, err := d.Str()
	if err != nil {
		return 0, false, err
	}
	n, ok := parseLooseNumber(v)
	if !ok {
		return 0, false, nil
	}

	lower := strings.ToLower(v)
	switch {
	case strings.Contains(lower, "month"):
		n /= 12
	case strings.Contains(lower, "week"):
		n /= 52
	case strings.Contains(lower, "day"):
		n /= 365
	}

	return n, true, nil
}

func readString(d *jx.Decoder) (string, bool, error) {
	switch d.Next() {
	case jx.String:
		v, err := d.Str()

		return strings.TrimSpace(v), err == nil, err
	case jx.Number:
		n, err := d.Num()

		return n.String(), err == nil, err
	case jx.Bool:
		v, err := d.Bool()
		if v {
			return "Yes", err == nil, err
		}

		return "No", err == nil, err
	default:
		return "", false, d.Skip()
	}
}

// readStrings accepts an array of scalars or a single comma/newline separated string.
func readStrings(d *jx.Decoder) ([]string, bool, error) {
	switch d.Next() {
	case jx.Array:
		var out []string
		err := d.Arr(func(d *jx.Decoder) error {
			v, ok, err := readString(d)
			if ok && v != "" {
				out = append(out, v)
			}

			return err
		})

		return out, err == nil, err
	case jx.String:
		v, err := d.Str()
		if err != nil {
			return nil, false, err
		}

		return splitList(v), true, nil
	default:
		return nil, false, d.Skip()
	}
}

func splitList(v string) []string {
	fields := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}

	return out
}
