package strategy

import "MarketRadar/internal/model"

// Thresholds holds the fixed classification thresholds, read once at startup.
type Thresholds struct {
	MinVolumeSurge float64
	MinMomentum15m float64
	MaxFundingHot  float64
	MinOIGrowth    float64
}

// Assessment is the raw classification outcome. Bullish and bearish are
// evaluated independently; both can be true when MinMomentum15m <= 0.
type Assessment struct {
	Bullish bool
	Bearish bool
}

// Assess applies the breakout/breakdown rules to one symbol's metrics.
//
// Bullish: volume expansion with positive short-term momentum, open interest
// confirming new positioning, and funding not yet overheated. Bearish: heavy
// volume without upward price movement, or overheated funding while open
// interest contracts.
func Assess(m model.DerivedMetrics, t Thresholds) Assessment {
	fundingCool := m.FundingRatePct == nil || *m.FundingRatePct <= t.MaxFundingHot
	bullish := m.VolumeSurgeRatio >= t.MinVolumeSurge &&
		m.Momentum15mPct >= t.MinMomentum15m &&
		fundingCool &&
		m.OpenInterestGrowthPct >= t.MinOIGrowth

	fundingHot := m.FundingRatePct != nil && *m.FundingRatePct >= t.MaxFundingHot
	bearish := (m.VolumeSurgeRatio >= t.MinVolumeSurge && m.Momentum15mPct <= 0) ||
		(fundingHot && m.OpenInterestGrowthPct <= 0)

	return Assessment{Bullish: bullish, Bearish: bearish}
}

// Resolve collapses an assessment into a single classification. When both
// fire the bullish label wins, so at most one record is emitted per symbol
// per cycle.
func Resolve(a Assessment) model.Classification {
	switch {
	case a.Bullish:
		return model.ClassificationBullish
	case a.Bearish:
		return model.ClassificationBearish
	default:
		return model.ClassificationNone
	}
}
