package signals_test

import (
	"safesurf/internal/classifier"
	"safesurf/pkg/domain"
	"safesurf/pkg/serrors"
	"safesurf/pkg/signals"
	"testing"
	"time"

	"github.com/go-faster/jx"
	"github.com/stretchr/testify/require"
)

// fullPayload mirrors what the analysis service returns for a healthy site.
const fullPayload = `{
	"trust_score": 82,
	"age": "1.1 year(s)",
	"rank": "10,00,000+",
	"response_status": 200,
	"hsts_support": 1,
	"is_url_shortened": 0,
	"ip_present": 0,
	"url_redirects": 0,
	"too_long_url": 0,
	"too_deep_url": 0,
	"ip": "34.131.68.236",
	"unexpected": {"nested": [1, 2, 3]},
	"ssl": {
		"Cipher Suite": "TLS_AES_256_GCM_SHA384",
		"Days to Expiry": 68,
		"Is Certificate Revoked": false,
		"Issued By": "Let's Encrypt",
		"Issued To": "pecfest.org",
		"Valid From": "2024-10-15 05:09:52",
		"Valid Till": "2025-01-13 05:09:51",
		"Version": "TLSv1.3"
	},
	"whois": {
		"Domain Name": "pecfest.org",
		"Registrar": "GoDaddy.com, LLC",
		"Registrar Url": "https://www.godaddy.com",
		"Creation Date": "Mon, 18 Sep 2023 13:48:21 GMT",
		"Expiration Date": ["2025-09-18T13:48:21Z", "2025-09-18T13:48:21"],
		"Updated Date": "sometime last year",
		"Registrant Country": "IN",
		"Registrant Name": null,
		"Name Servers": ["ns-cloud-b1.googledomains.com", "ns-cloud-b2.googledomains.com"],
		"Status": "clientDeleteProhibited, clientTransferProhibited"
	}
}`

func TestDecode_FullPayload(t *testing.T) {
	s, err := signals.Decode([]byte(fullPayload))
	require.NoError(t, err)

	require.NotNil(t, s.TrustScore)
	require.Equal(t, 82, *s.TrustScore)
	require.InDelta(t, 1.1, s.DomainAgeYears, 1e-9)
	require.Equal(t, int64(1_000_000), s.GlobalRank)
	require.Equal(t, 200, s.HTTPStatus)
	require.True(t, s.HSTSSupported)
	require.False(t, s.IsURLShortened)
	require.False(t, s.IPPresentInURL)
	require.False(t, s.HasRedirects)
	require.False(t, s.URLTooLong)
	require.False(t, s.URLTooDeep)
	require.Equal(t, "34.131.68.236", s.IP)
	require.Equal(t, domain.AllFields, s.Present)
	require.Empty(t, s.Missing())

	require.NotNil(t, s.SSL)
	require.Equal(t, 68, s.SSL.DaysToExpiry)
	require.False(t, s.SSL.IsRevoked)
	require.Equal(t, "Let's Encrypt", s.SSL.Issuer)
	require.Equal(t, "TLSv1.3", s.SSL.TLSVersion)
	require.True(t, s.SSL.ValidTill.Known)
	require.Equal(t, time.Date(2025, 1, 13, 5, 9, 51, 0, time.UTC), s.SSL.ValidTill.Time)

	require.Equal(t, "GoDaddy.com, LLC", s.Whois.Registrar)
	require.True(t, s.Whois.CreationDate.Known)
	require.Equal(t, 2023, s.Whois.CreationDate.Time.Year())
	require.True(t, s.Whois.ExpirationDate.Known)
	require.Equal(t, time.Date(2025, 9, 18, 13, 48, 21, 0, time.UTC), s.Whois.ExpirationDate.Time)
	require.False(t, s.Whois.UpdatedDate.Known)
	require.Equal(t, "sometime last year", s.Whois.UpdatedDate.Raw)
	require.Empty(t, s.Whois.RegistrantName)
	require.Equal(t, []string{"ns-cloud-b1.googledomains.com", "ns-cloud-b2.googledomains.com"}, s.Whois.NameServers)
	require.Equal(t, []string{"clientDeleteProhibited", "clientTransferProhibited"}, s.Whois.Status)
}

func TestDecode_TolerantBooleans(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want bool
		ok   bool
	}{
		{name: "json true", raw: `true`, want: true, ok: true},
		{name: "json false", raw: `false`, want: false, ok: true},
		{name: "one", raw: `1`, want: true, ok: true},
		{name: "zero", raw: `0`, want: false, ok: true},
		{name: "Yes", raw: `"Yes"`, want: true, ok: true},
		{name: "no", raw: `"no"`, want: false, ok: true},
		{name: "string one", raw: `"1"`, want: true, ok: true},
		{name: "garbage string", raw: `"maybe"`, ok: false},
		{name: "null", raw: `null`, ok: false},
		{name: "object", raw: `{"a":1}`, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := signals.Decode([]byte(`{"hsts_support":` + tt.raw + `}`))
			require.NoError(t, err)
			require.Equal(t, tt.ok, s.Has(domain.FieldHSTS))
			require.Equal(t, tt.want, s.HSTSSupported)
		})
	}
}

func TestDecode_AgeUnits(t *testing.T) {
	tests := []struct {
		raw  string
		want float64
	}{
		{raw: `2`, want: 2},
		{raw: `"3 year(s)"`, want: 3},
		{raw: `"6 month(s)"`, want: 0.5},
		{raw: `"730 days"`, want: 2},
		{raw: `-4`, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			s, err := signals.Decode([]byte(`{"age":` + tt.raw + `}`))
			require.NoError(t, err)
			require.True(t, s.Has(domain.FieldDomainAge))
			require.InDelta(t, tt.want, s.DomainAgeYears, 1e-9)
		})
	}
}

func TestDecode_MissingSignals(t *testing.T) {
	s, err := signals.Decode([]byte(`{"trust_score": null, "ssl": "could not connect", "rank": "unknown"}`))
	require.NoError(t, err)

	require.Nil(t, s.TrustScore)
	require.Nil(t, s.SSL)
	require.False(t, s.Has(domain.FieldTrustScore))
	require.False(t, s.Has(domain.FieldSSL))
	require.False(t, s.Has(domain.FieldGlobalRank))
	require.Contains(t, s.Missing(), "trust_score")
	require.Contains(t, s.Missing(), "ssl")
	require.Contains(t, s.Missing(), "whois")
}

func TestDecode_ScoreIsRounded(t *testing.T) {
	s, err := signals.Decode([]byte(`{"trust_score": 74.6}`))
	require.NoError(t, err)
	require.Equal(t, 75, *s.TrustScore)
}

func TestDecode_OutOfRangeNumbersAreClamped(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		score   int
		rank    int64
		status  int
		days    int
	}{
		{
			name:    "huge numbers",
			payload: `{"trust_score": 1e20, "rank": 1e20, "response_status": 1e20, "ssl": {"Days to Expiry": 1e20}}`,
			score:   100,
			rank:    1 << 53,
			status:  999,
			days:    1 << 20,
		},
		{
			name: "long digit strings",
			payload: `{"trust_score": "99999999999999999999", "rank": "99999999999999999999",
				"response_status": "99999999999999999999", "ssl": {"Days to Expiry": "-99999999999999999999"}}`,
			score:  100,
			rank:   1 << 53,
			status: 999,
			days:   -(1 << 20),
		},
		{
			name:    "negative values",
			payload: `{"trust_score": -40, "rank": -3, "response_status": -1, "ssl": {"Days to Expiry": -5}}`,
			score:   0,
			rank:    0,
			status:  0,
			days:    -5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := signals.Decode([]byte(tt.payload))
			require.NoError(t, err)
			require.NotNil(t, s.TrustScore)
			require.Equal(t, tt.score, *s.TrustScore)
			require.Equal(t, tt.rank, s.GlobalRank)
			require.Equal(t, tt.status, s.HTTPStatus)
			require.NotNil(t, s.SSL)
			require.Equal(t, tt.days, s.SSL.DaysToExpiry)
		})
	}
}

func TestDecode_HugeScoreStaysAuthoritativeSafe(t *testing.T) {
	s, err := signals.Decode([]byte(`{"trust_score": 1e20}`))
	require.NoError(t, err)

	v := classifier.Classify(s)
	require.Equal(t, 100, v.Score)
	require.Equal(t, domain.TierSafe, v.Tier)
	require.Equal(t, domain.SourceAuthoritative, v.Source)
}

func TestDecode_NegativeExpiryKept(t *testing.T) {
	s, err := signals.Decode([]byte(`{"ssl": {"Days to Expiry": "-12 days", "Is Certificate Revoked": "No"}}`))
	require.NoError(t, err)
	require.NotNil(t, s.SSL)
	require.Equal(t, -12, s.SSL.DaysToExpiry)
	require.False(t, s.SSL.IsRevoked)
}

func TestDecode_NotAnObject(t *testing.T) {
	for _, raw := range []string{`[]`, `"text"`, `42`, ``, `{"age": `} {
		_, err := signals.Decode([]byte(raw))
		require.Error(t, err, "payload %q", raw)
		require.ErrorIs(t, err, serrors.ErrTransport)
	}
}

func TestDecodeFrom(t *testing.T) {
	d := jx.DecodeStr(`{"status":"SUCCESS","output":{"trust_score":40}}`)

	var got domain.SignalSet
	err := d.Obj(func(d *jx.Decoder, key string) error {
		if key != "output" {
			return d.Skip()
		}
		s, err := signals.DecodeFrom(d)
		got = s

		return err
	})
	require.NoError(t, err)
	require.Equal(t, 40, *got.TrustScore)
}
