package collector

import (
	"context"
	"fmt"

	"MarketRadar/internal/model"
)

// Fetcher defines the interface for fetching market data.
//
// FetchFundingRate and FetchOpenInterestGrowth are best-effort enrichment:
// implementations return an absent (nil) funding rate and neutral (zero)
// open-interest stats instead of surfacing failures.
type Fetcher interface {
	FetchUniverse(ctx context.Context, filter model.UniverseFilter) ([]model.TickerSnapshot, error)
	FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error)
	FetchFundingRate(ctx context.Context, symbol string) (*float64, error)
	FetchOpenInterestGrowth(ctx context.Context, symbol string) (model.OpenInterestStats, error)
	Name() string
}

// StatusError reports a non-success HTTP status from an upstream endpoint.
type StatusError struct {
	URL        string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("unexpected status %d from %s", e.StatusCode, e.URL)
}
