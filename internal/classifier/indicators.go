package classifier

import (
	"safesurf/pkg/domain"
	"time"
)

// The predicates below drive the per-row check marks of the report. They are
// independent of Classify and must never feed back into the score.

const (
	// ExpiryWarningDays is the certificate/registration horizon below which a
	// row is flagged.
	ExpiryWarningDays = 30
	// RankCutoff is the global rank from which a site counts as obscure.
	RankCutoff = 1_000_000
)

// HTTPStatusGood reports whether the site answered 200.
func HTTPStatusGood(status int) bool { return status == 200 }

// ExpiryGood reports whether a certificate has more than 30 days left.
func ExpiryGood(daysToExpiry int) bool { return daysToExpiry > ExpiryWarningDays }

// RankGood reports whether the site is ranked and within the top million.
// Rank 0 means unranked, which is an untrustworthy signal.
func RankGood(rank int64) bool { return rank > 0 && rank < RankCutoff }

// DomainAgeGood reports whether the domain is older than a year.
func DomainAgeGood(years float64) bool { return years > 1 }

// HSTSGood reports whether HSTS is supported.
func HSTSGood(supported bool) bool { return supported }

// ShortenerGood reports whether the URL avoids a shortener.
func ShortenerGood(shortened bool) bool { return !shortened }

// RedirectsGood reports whether the URL resolves without redirects.
func RedirectsGood(redirects bool) bool { return !redirects }

// URLLengthGood reports whether the URL is of reasonable length.
func URLLengthGood(tooLong bool) bool { return !tooLong }

// URLDepthGood reports whether the URL path is of reasonable depth.
func URLDepthGood(tooDeep bool) bool { return !tooDeep }

// IPInURLGood reports whether the URL uses a host name rather than an IP.
func IPInURLGood(ipPresent bool) bool { return !ipPresent }

// RevocationGood reports whether the certificate is not revoked.
func RevocationGood(revoked bool) bool { return !revoked }

// CertificateGood reports whether a certificate exists, is not revoked and has not expired.
func CertificateGood(ssl *domain.SSLInfo) bool {
	return ssl != nil && !ssl.IsRevoked && ssl.DaysToExpiry > 0
}

// WhoisExpiryGood reports whether the registration expires more than 30 days
// after now. An unparsable date is risk neutral and reported as good.
func WhoisExpiryGood(expiration domain.Date, now time.Time) bool {
	if !expiration.Known {
		return true
	}

	return expiration.Time.After(now.Add(ExpiryWarningDays * 24 * time.Hour))
}
