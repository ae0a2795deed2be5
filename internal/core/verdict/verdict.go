// Package verdict maps a phishing probability onto a human facing suspicion band
package verdict

import (
	"fmt"
	"math"
)

// Band is a suspicion level; larger values are more suspicious
type Band int

const (
	LikelySafe Band = iota
	NeedsReview
	Suspicious
	VerySuspicious
)

// lower bounds are inclusive
const (
	veryThreshold       = 0.85
	suspiciousThreshold = 0.65
	reviewThreshold     = 0.45
)

// Classify is total over float64; NaN lands in LikelySafe since every comparison fails
func Classify(p float64) Band {
	switch {
	case p >= veryThreshold:
		return VerySuspicious
	case p >= suspiciousThreshold:
		return Suspicious
	case p >= reviewThreshold:
		return NeedsReview
	default:
		return LikelySafe
	}
}

func (b Band) String() string {
	switch b {
	case VerySuspicious:
		return "Very Suspicious"
	case Suspicious:
		return "Suspicious"
	case NeedsReview:
		return "Uncertain - needs review"
	case LikelySafe:
		return "Likely Safe"
	}
	return fmt.Sprintf("Band(%d)", int(b))
}

// Key is a stable machine readable name
func (b Band) Key() string {
	switch b {
	case VerySuspicious:
		return "very_suspicious"
	case Suspicious:
		return "suspicious"
	case NeedsReview:
		return "needs_review"
	case LikelySafe:
		return "likely_safe"
	}
	return "unknown"
}

// Risky reports the two top bands
func (b Band) Risky() bool { return b >= Suspicious }

// Advice is the follow-up line shown under a verdict
func (b Band) Advice() string {
	switch {
	case b.Risky():
		return "Be careful, this email looks risky."
	case b == NeedsReview:
		return "The model is unsure. Manually review this email."
	default:
		return "This email looks mostly safe, but always double-check sensitive links."
	}
}

// Clamp bounds p into [0,1] for display; NaN becomes 0
func Clamp(p float64) float64 {
	if math.IsNaN(p) {
		return 0
	}
	return math.Min(1, math.Max(0, p))
}

// Percent renders p as a two decimal percentage, e.g. "87.35%"
func Percent(p float64) string {
	return fmt.Sprintf("%.2f%%", Clamp(p)*100)
}
