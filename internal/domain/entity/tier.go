package entity

import "math"

// Tier is the trust bracket a tutor falls into.
type Tier string

const (
	TierElite     Tier = "Elite"
	TierStandard  Tier = "Standard"
	TierProbation Tier = "Probation"
)

// Trust score thresholds.
const (
	EliteMinScore    = 100.0
	StandardMinScore = 50.0
)

// ClassifyTrustScore maps a score to its tier: >= 100 is Elite, < 50 is Probation,
// everything in between is Standard. NaN and infinities are Probation.
func ClassifyTrustScore(score float64) Tier {
	switch {
	case math.IsNaN(score), math.IsInf(score, 0):
		return TierProbation
	case score >= EliteMinScore:
		return TierElite
	case score < StandardMinScore:
		return TierProbation
	default:
		return TierStandard
	}
}

// ParseTier returns the tier with the given name.
func ParseTier(name string) (Tier, bool) {
	switch Tier(name) {
	case TierElite, TierStandard, TierProbation:
		return Tier(name), true
	default:
		return "", false
	}
}

func (t Tier) String() string {
	return string(t)
}
