package collector

import (
	"context"

	"MarketRadar/internal/model"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Universe     []model.TickerSnapshot
	UniverseErr  error
	Candles      map[string][]model.Candle
	CandlesErr   map[string]error
	Funding      map[string]*float64
	OpenInterest map[string]model.OpenInterestStats
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchUniverse(_ context.Context, filter model.UniverseFilter) ([]model.TickerSnapshot, error) {
	if m.UniverseErr != nil {
		return nil, m.UniverseErr
	}
	universe := m.Universe
	if filter.TopN > 0 && len(universe) > filter.TopN {
		universe = universe[:filter.TopN]
	}
	return universe, nil
}

func (m *MockFetcher) FetchCandles(_ context.Context, symbol, _ string, _ int) ([]model.Candle, error) {
	if err := m.CandlesErr[symbol]; err != nil {
		return nil, err
	}
	return m.Candles[symbol], nil
}

func (m *MockFetcher) FetchFundingRate(_ context.Context, symbol string) (*float64, error) {
	return m.Funding[symbol], nil
}

func (m *MockFetcher) FetchOpenInterestGrowth(_ context.Context, symbol string) (model.OpenInterestStats, error) {
	return m.OpenInterest[symbol], nil
}
