package model

// Classification is the outcome of assessing one symbol in one cycle.
type Classification string

const (
	ClassificationBullish Classification = "bullish"
	ClassificationBearish Classification = "bearish"
	ClassificationNone    Classification = ""
)

// DerivedMetrics holds the per-symbol metrics computed each cycle.
// FundingRatePct is nil when no derivatives instrument exists for the symbol.
type DerivedMetrics struct {
	VolumeSurgeRatio      float64
	Momentum15mPct        float64
	FundingRatePct        *float64
	OpenInterestGrowthPct float64
	LastOpenInterestUSD   float64
}

// SignalRecord is an emitted signal. Immutable once created; appended to the
// bounded log and never mutated or individually deleted.
type SignalRecord struct {
	Time                  string         `json:"time"`
	Symbol                string         `json:"symbol"`
	Classification        Classification `json:"type"`
	Price                 float64        `json:"price"`
	VolumeSurgeRatio      float64        `json:"volSurge"`
	Momentum15mPct        float64        `json:"momentum15m"`
	FundingRatePct        *float64       `json:"fundingPct"`
	OpenInterestGrowthPct float64        `json:"oiGrowthPct"`
}
