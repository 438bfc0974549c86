package notification

import (
	"fmt"
	"safesurf/pkg/domain"
)

// State is a step of the banner state machine:
//
//	Idle -> Analyzing -> Resolved -> Dismissed
//	Idle -> Analyzing -> Failed   -> Dismissed
type State string

const (
	StateIdle      State = "IDLE"
	StateAnalyzing State = "ANALYZING"
	StateResolved  State = "RESOLVED"
	StateFailed    State = "FAILED"
	StateDismissed State = "DISMISSED"
)

const (
	// MsgAnalyzing is shown while a pass is in flight.
	MsgAnalyzing = "SafeSurf is analyzing..."
	// MsgUnableToAnalyze is shown for every failed pass. It never carries a score.
	MsgUnableToAnalyze = "SafeSurf: Unable to analyze the page"
)

// Banner is the value rendered by a Surface. ID is the epoch of the pass that
// owns it.
type Banner struct {
	ID    uint64
	URL   string
	State State
	// Verdict is set only when State is StateResolved.
	Verdict *domain.Verdict
	// Tier drives the colour. Failed banners use TierDangerous; an analyzing
	// banner has no tier.
	Tier domain.Tier
	// Message is the text shown to the user.
	Message string
	// Reason keeps the failure detail for logs; it is not shown.
	Reason string
	// Exiting is set once the exit transition has begun.
	Exiting bool
}

func analyzingBanner(id uint64, URL string) Banner {
	return Banner{ID: id, URL: URL, State: StateAnalyzing, Message: MsgAnalyzing}
}

func resolvedBanner(b Banner, v domain.Verdict) Banner {
	b.State = StateResolved
	b.Verdict = &v
	b.Tier = v.Tier
	b.Message = fmt.Sprintf("SafeSurf Analysis: Trust Score %d / 100", v.Score)
	b.Reason = ""

	return b
}

func failedBanner(b Banner, reason string) Banner {
	b.State = StateFailed
	b.Verdict = nil
	b.Tier = domain.TierDangerous
	b.Message = MsgUnableToAnalyze
	b.Reason = reason

	return b
}
