package classifier_test

import (
	"safesurf/internal/classifier"
	"safesurf/pkg/domain"
	"testing"

	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

// allSignals builds a SignalSet with every signal present and no trust score.
func allSignals(mutate func(s *domain.SignalSet)) domain.SignalSet {
	s := domain.SignalSet{
		DomainAgeYears: 2,
		GlobalRank:     1200,
		HTTPStatus:     200,
		HSTSSupported:  true,
		SSL:            &domain.SSLInfo{DaysToExpiry: 10},
		Present:        domain.AllFields &^ domain.FieldTrustScore,
	}
	if mutate != nil {
		mutate(&s)
	}

	return s
}

func TestClassify_AuthoritativePassThrough(t *testing.T) {
	for score := 0; score <= 100; score++ {
		s := allSignals(func(s *domain.SignalSet) {
			s.TrustScore = intPtr(score)
			s.Present |= domain.FieldTrustScore
		})
		v := classifier.Classify(s)
		require.Equal(t, score, v.Score)
		require.Equal(t, domain.SourceAuthoritative, v.Source)
	}
}

func TestClassify_AuthoritativeClamped(t *testing.T) {
	require.Equal(t, 100, classifier.Classify(domain.SignalSet{TrustScore: intPtr(140)}).Score)
	require.Equal(t, 0, classifier.Classify(domain.SignalSet{TrustScore: intPtr(-5)}).Score)
}

func TestClassify_Scenario1(t *testing.T) {
	v := classifier.Classify(domain.SignalSet{TrustScore: intPtr(82), Present: domain.FieldTrustScore})
	require.Equal(t, domain.Verdict{Score: 82, Tier: domain.TierSafe, Source: domain.SourceAuthoritative}, v)
}

func TestClassify_Scenario2(t *testing.T) {
	s := allSignals(nil)
	v := classifier.Classify(s)
	require.Equal(t, 75, v.Score)
	require.Equal(t, domain.TierSafe, v.Tier)
	require.Equal(t, domain.SourceHeuristic, v.Source)
}

func TestHeuristic_AllCombinations(t *testing.T) {
	// bits: ssl ok, old domain, hsts, shortened, redirects, too long, too deep
	for mask := 0; mask < 1<<7; mask++ {
		bit := func(i int) bool { return mask&(1<<i) != 0 }

		s := allSignals(func(s *domain.SignalSet) {
			if !bit(0) {
				s.SSL.IsRevoked = true
			}
			s.DomainAgeYears = 0.5
			if bit(1) {
				s.DomainAgeYears = 3
			}
			s.HSTSSupported = bit(2)
			s.IsURLShortened = bit(3)
			s.HasRedirects = bit(4)
			s.URLTooLong = bit(5)
			s.URLTooDeep = bit(6)
		})

		want := 0
		if bit(0) {
			want += classifier.WeightSSL
		}
		if bit(1) {
			want += classifier.WeightDomainAge
		}
		if bit(2) {
			want += classifier.WeightHSTS
		}
		if !bit(3) {
			want += classifier.WeightShortener
		}
		if !bit(4) {
			want += classifier.WeightRedirects
		}
		if !bit(5) && !bit(6) {
			want += classifier.WeightURLHygiene
		}

		v := classifier.Classify(s)
		require.Equal(t, want, v.Score, "mask %07b", mask)
		require.GreaterOrEqual(t, v.Score, 0)
		require.LessOrEqual(t, v.Score, 100)
	}
}

func TestHeuristic_AbsentSignalsContributeNothing(t *testing.T) {
	require.Equal(t, 0, classifier.Heuristic(domain.SignalSet{}))

	// zero-valued booleans that were never sent must not earn the "not shortened" points
	s := domain.SignalSet{HSTSSupported: true, Present: domain.FieldHSTS}
	require.Equal(t, classifier.WeightHSTS, classifier.Heuristic(s))

	// hygiene needs both URL signals
	s = domain.SignalSet{Present: domain.FieldURLTooLong}
	require.Equal(t, 0, classifier.Heuristic(s))
	s.Present |= domain.FieldURLTooDeep
	require.Equal(t, classifier.WeightURLHygiene, classifier.Heuristic(s))
}

func TestHeuristic_SSLRules(t *testing.T) {
	tests := []struct {
		name string
		ssl  *domain.SSLInfo
		want int
	}{
		{name: "missing", ssl: nil, want: 0},
		{name: "valid", ssl: &domain.SSLInfo{DaysToExpiry: 1}, want: classifier.WeightSSL},
		{name: "expires today", ssl: &domain.SSLInfo{DaysToExpiry: 0}, want: 0},
		{name: "expired", ssl: &domain.SSLInfo{DaysToExpiry: -3}, want: 0},
		{name: "revoked", ssl: &domain.SSLInfo{DaysToExpiry: 90, IsRevoked: true}, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := domain.SignalSet{SSL: tt.ssl, Present: domain.FieldSSL}
			require.Equal(t, tt.want, classifier.Heuristic(s))
		})
	}
}

func TestTierFor_PartitionsRange(t *testing.T) {
	for score := 0; score <= 100; score++ {
		tier := classifier.TierFor(score)
		switch {
		case score >= 75:
			require.Equal(t, domain.TierSafe, tier, "score %d", score)
		case score >= 50:
			require.Equal(t, domain.TierCaution, tier, "score %d", score)
		default:
			require.Equal(t, domain.TierDangerous, tier, "score %d", score)
		}
	}

	require.Equal(t, domain.TierDangerous, classifier.TierFor(49))
	require.Equal(t, domain.TierCaution, classifier.TierFor(50))
	require.Equal(t, domain.TierCaution, classifier.TierFor(74))
	require.Equal(t, domain.TierSafe, classifier.TierFor(75))
	require.Equal(t, domain.TierSafe, classifier.TierFor(250))
	require.Equal(t, domain.TierDangerous, classifier.TierFor(-10))
}

func TestClassify_Idempotent(t *testing.T) {
	s := allSignals(func(s *domain.SignalSet) { s.HasRedirects = true })
	require.Equal(t, classifier.Classify(s), classifier.Classify(s))

	s.TrustScore = intPtr(61)
	require.Equal(t, classifier.Classify(s), classifier.Classify(s))
}
