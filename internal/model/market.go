package model

import "time"

// TickerSnapshot is one row of the 24h ticker endpoint, fetched fresh every cycle.
type TickerSnapshot struct {
	Symbol             string
	LastPrice          float64
	QuoteVolume        float64
	PriceChangePercent float64
}

// Candle is a single fixed-duration aggregation window. Series are ordered
// oldest first.
type Candle struct {
	OpenTime time.Time
	Close    float64
	Volume   float64
}

// UniverseFilter selects which symbols are considered in a scan cycle.
type UniverseFilter struct {
	QuoteSuffix    string // empty disables the suffix check
	MinLastPrice   float64
	MinQuoteVolume float64
	TopN           int
}

// OpenInterestStats summarizes a short open-interest history window.
// Zero values mean neutral, not missing.
type OpenInterestStats struct {
	GrowthPct    float64
	LastValueUSD float64
}
