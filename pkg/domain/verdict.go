package domain

// Tier is the three level trust classification shown to the user.
type Tier string

const (
	// TierSafe is assigned to scores of 75 and above.
	TierSafe Tier = "Safe"
	// TierCaution is assigned to scores from 50 up to 74.
	TierCaution Tier = "Caution"
	// TierDangerous is assigned to scores below 50.
	TierDangerous Tier = "Dangerous"
)

// ScoreSource records where a score came from. It is a debugging label only;
// tiers mean the same thing regardless of source.
type ScoreSource string

const (
	// SourceAuthoritative means the analysis service supplied the score.
	SourceAuthoritative ScoreSource = "authoritative"
	// SourceHeuristic means the score was computed locally from individual signals.
	SourceHeuristic ScoreSource = "heuristic"
)

// Verdict is the classification of one SignalSet. It is derived on every
// render and never stored.
type Verdict struct {
	// Score is within [0, 100].
	Score  int
	Tier   Tier
	Source ScoreSource
}
