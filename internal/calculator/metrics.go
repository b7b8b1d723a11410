package calculator

import "MarketRadar/internal/model"

// baselineWindow is the number of candles averaged for the surge baseline,
// about one hour at 5-minute granularity.
const baselineWindow = 12

// PercentChange returns the percentage change from b to a. Returns 0 when
// the reference value is 0.
func PercentChange(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return (a - b) / b * 100
}

// VolumeSurgeRatio compares the most recent candle's volume against the mean
// volume of the 12 candles immediately preceding it. A zero baseline yields 0.
func VolumeSurgeRatio(candles []model.Candle) float64 {
	n := len(candles)
	if n < 2 {
		return 0
	}
	start := n - 1 - baselineWindow
	if start < 0 {
		start = 0
	}
	baseline := candles[start : n-1]

	sum := 0.0
	for _, c := range baseline {
		sum += c.Volume
	}
	mean := sum / float64(len(baseline))
	if mean <= 0 {
		return 0
	}
	return candles[n-1].Volume / mean
}

// Momentum returns the percentage change between the latest close and the
// close `offset` positions from the end (offset 4 compares against the close
// three candles back, a ~15-20 minute window at 5-minute granularity).
// Returns 0 when the series is too short or the reference close is not
// positive.
func Momentum(candles []model.Candle, offset int) float64 {
	n := len(candles)
	if offset <= 0 || n < offset {
		return 0
	}
	ref := candles[n-offset].Close
	if ref <= 0 {
		return 0
	}
	return PercentChange(candles[n-1].Close, ref)
}
