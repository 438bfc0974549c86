package domain

import (
	"strings"
	"time"
)

// Fields is a bitmask recording which signals were present in a payload.
// Absent signals keep their zero value and contribute nothing to scoring.
type Fields uint32

const (
	FieldTrustScore Fields = 1 << iota
	FieldDomainAge
	FieldGlobalRank
	FieldHTTPStatus
	FieldHSTS
	FieldURLShortened
	FieldIPInURL
	FieldRedirects
	FieldURLTooLong
	FieldURLTooDeep
	FieldIP
	FieldSSL
	FieldWhois

	// AllFields has every signal bit set.
	AllFields = FieldTrustScore | FieldDomainAge | FieldGlobalRank | FieldHTTPStatus | FieldHSTS |
		FieldURLShortened | FieldIPInURL | FieldRedirects | FieldURLTooLong | FieldURLTooDeep |
		FieldIP | FieldSSL | FieldWhois
)

// Has reports whether every bit of f is set.
func (fs Fields) Has(f Fields) bool { return fs&f == f }

// Date is a best-effort parsed date. Raw is kept for display; Time is only
// meaningful when Known is true.
type Date struct {
	Raw   string
	Time  time.Time
	Known bool
}

// String returns the date as YYYY-MM-DD when known, the raw value otherwise.
func (d Date) String() string {
	if d.Known {
		return d.Time.Format(time.DateOnly)
	}
	if strings.TrimSpace(d.Raw) == "" {
		return "unknown"
	}

	return d.Raw
}

// SSLInfo describes the certificate served by the analysed host.
type SSLInfo struct {
	// DaysToExpiry is negative when the certificate already expired.
	DaysToExpiry int
	IsRevoked    bool
	Issuer       string
	IssuedTo     string
	CipherSuite  string
	TLSVersion   string
	ValidFrom    Date
	ValidTill    Date
}

// WhoisInfo holds the registration record of the analysed domain.
type WhoisInfo struct {
	DomainName        string
	Registrar         string
	RegistrarURL      string
	CreationDate      Date
	ExpirationDate    Date
	UpdatedDate       Date
	RegistrantCountry string
	RegistrantName    string
	NameServers       []string
	Status            []string
}

// SignalSet is the normalized set of facts a verdict is derived from.
type SignalSet struct {
	// TrustScore is the service supplied score; nil means the service omitted it.
	TrustScore *int
	// DomainAgeYears is never negative.
	DomainAgeYears float64
	// GlobalRank is never negative; 0 means unranked.
	GlobalRank     int64
	HTTPStatus     int
	HSTSSupported  bool
	IsURLShortened bool
	IPPresentInURL bool
	HasRedirects   bool
	URLTooLong     bool
	URLTooDeep     bool
	// IP is the resolved address of the domain, display only.
	IP string
	// SSL is nil when the service reported no certificate.
	SSL   *SSLInfo
	Whois WhoisInfo

	// Present records which of the signals above were supplied.
	Present Fields
}

// Has reports whether signal f was present in the payload.
func (s SignalSet) Has(f Fields) bool { return s.Present.Has(f) }

// Validate clamps values that the model defines as non-negative.
func (s *SignalSet) Validate() {
	if s.DomainAgeYears < 0 {
		s.DomainAgeYears = 0
	}
	if s.GlobalRank < 0 {
		s.GlobalRank = 0
	}
	if s.TrustScore == nil {
		s.Present &^= FieldTrustScore
	}
	if s.SSL == nil {
		s.Present &^= FieldSSL
	}
}

// Clone returns a deep copy so consumers can never mutate each other's data.
func (s SignalSet) Clone() SignalSet {
	out := s
	if s.TrustScore != nil {
		v := *s.TrustScore
		out.TrustScore = &v
	}
	if s.SSL != nil {
		ssl := *s.SSL
		out.SSL = &ssl
	}
	out.Whois.NameServers = append([]string(nil), s.Whois.NameServers...)
	out.Whois.Status = append([]string(nil), s.Whois.Status...)

	return out
}

// Missing lists the names of signals absent from the payload, for logging.
func (s SignalSet) Missing() []string {
	names := []struct {
		f    Fields
		name string
	}{
		{FieldTrustScore, "trust_score"},
		{FieldDomainAge, "age"},
		{FieldGlobalRank, "rank"},
		{FieldHTTPStatus, "response_status"},
		{FieldHSTS, "hsts_support"},
		{FieldURLShortened, "is_url_shortened"},
		{FieldIPInURL, "ip_present"},
		{FieldRedirects, "url_redirects"},
		{FieldURLTooLong, "too_long_url"},
		{FieldURLTooDeep, "too_deep_url"},
		{FieldIP, "ip"},
		{FieldSSL, "ssl"},
		{FieldWhois, "whois"},
	}

	var missing []string
	for _, n := range names {
		if !s.Has(n.f) {
			missing = append(missing, n.name)
		}
	}

	return missing
}
