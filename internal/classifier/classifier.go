// Package classifier maps a SignalSet to a trust score and tier.
//
// There are two strategies. When the analysis service supplies a trust score
// it is authoritative and only clamped. Otherwise a local additive model is
// used so the user never sees a blank verdict:
//
//	+20  certificate present, not revoked, not expired
//	+15  domain older than one year
//	+10  HSTS supported
//	+10  URL is not shortened
//	+10  no redirects
//	+10  URL neither too long nor too deep
//
// A signal that was absent from the payload contributes nothing. TierFor is
// the single threshold function used by every surface.
package classifier

import "safesurf/pkg/domain"

const (
	WeightSSL        = 20
	WeightDomainAge  = 15
	WeightHSTS       = 10
	WeightShortener  = 10
	WeightRedirects  = 10
	WeightURLHygiene = 10

	// SafeThreshold is the lowest Safe score.
	SafeThreshold = 75
	// CautionThreshold is the lowest Caution score.
	CautionThreshold = 50

	MinScore = 0
	MaxScore = 100
)

// Classify derives the verdict for s. It is pure: equal inputs give equal verdicts.
func Classify(s domain.SignalSet) domain.Verdict {
	if s.TrustScore != nil {
		score := Clamp(*s.TrustScore)

		return domain.Verdict{Score: score, Tier: TierFor(score), Source: domain.SourceAuthoritative}
	}

	score := Heuristic(s)

	return domain.Verdict{Score: score, Tier: TierFor(score), Source: domain.SourceHeuristic}
}

// Heuristic computes the local fallback score, ignoring any trust score in s.
func Heuristic(s domain.SignalSet) int {
	score := 0

	if s.Has(domain.FieldSSL) && s.SSL != nil && !s.SSL.IsRevoked && s.SSL.DaysToExpiry > 0 {
		score += WeightSSL
	}
	if s.Has(domain.FieldDomainAge) && s.DomainAgeYears > 1 {
		score += WeightDomainAge
	}
	if s.Has(domain.FieldHSTS) && s.HSTSSupported {
		score += WeightHSTS
	}
	if s.Has(domain.FieldURLShortened) && !s.IsURLShortened {
		score += WeightShortener
	}
	if s.Has(domain.FieldRedirects) && !s.HasRedirects {
		score += WeightRedirects
	}
	if s.Has(domain.FieldURLTooLong|domain.FieldURLTooDeep) && !s.URLTooLong && !s.URLTooDeep {
		score += WeightURLHygiene
	}

	return Clamp(score)
}

// TierFor maps a score to its tier. Scores outside [0, 100] are clamped first.
func TierFor(score int) domain.Tier {
	switch score = Clamp(score); {
	case score >= SafeThreshold:
		return domain.TierSafe
	case score >= CautionThreshold:
		return domain.TierCaution
	default:
		return domain.TierDangerous
	}
}

// Clamp limits score to [MinScore, MaxScore].
func Clamp(score int) int {
	return max(MinScore, min(MaxScore, score))
}
