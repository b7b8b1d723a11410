package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"MarketRadar/internal/model"
)

// BinanceFetcher implements Fetcher against the Binance public REST API:
// spot 24h tickers and klines, futures premium index and open-interest
// history. All calls share one client-side rate limiter.
type BinanceFetcher struct {
	SpotBaseURL    string
	FuturesBaseURL string
	Client         *http.Client
	limiter        *rate.Limiter
	logger         zerolog.Logger
}

// NewBinanceFetcher creates a fetcher for the given base URLs.
func NewBinanceFetcher(spotBaseURL, futuresBaseURL string) *BinanceFetcher {
	return &BinanceFetcher{
		SpotBaseURL:    spotBaseURL,
		FuturesBaseURL: futuresBaseURL,
		Client:         &http.Client{Timeout: 15 * time.Second},
		limiter:        rate.NewLimiter(rate.Limit(10), 10),
		logger:         log.With().Str("component", "binance_fetcher").Logger(),
	}
}

func (f *BinanceFetcher) Name() string { return "binance" }

// binanceTicker is one row of /api/v3/ticker/24hr. Binance encodes numbers
// as strings.
type binanceTicker struct {
	Symbol             string `json:"symbol"`
	LastPrice          string `json:"lastPrice"`
	QuoteVolume        string `json:"quoteVolume"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// FetchUniverse fetches the full 24h ticker set, applies the filter
// predicates, sorts by 24h percent change descending and truncates to TopN.
func (f *BinanceFetcher) FetchUniverse(ctx context.Context, filter model.UniverseFilter) ([]model.TickerSnapshot, error) {
	endpoint := f.SpotBaseURL + "/api/v3/ticker/24hr"
	var rows []binanceTicker
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("fetch 24h tickers: %w", err)
	}

	universe := make([]model.TickerSnapshot, 0, len(rows))
	for _, row := range rows {
		if filter.QuoteSuffix != "" && !strings.HasSuffix(row.Symbol, filter.QuoteSuffix) {
			continue
		}
		lastPrice, err := strconv.ParseFloat(row.LastPrice, 64)
		if err != nil || lastPrice <= filter.MinLastPrice {
			continue
		}
		quoteVolume, err := strconv.ParseFloat(row.QuoteVolume, 64)
		if err != nil || quoteVolume < filter.MinQuoteVolume {
			continue
		}
		changePct, err := strconv.ParseFloat(row.PriceChangePercent, 64)
		if err != nil {
			continue
		}
		universe = append(universe, model.TickerSnapshot{
			Symbol:             row.Symbol,
			LastPrice:          lastPrice,
			QuoteVolume:        quoteVolume,
			PriceChangePercent: changePct,
		})
	}

	sort.Slice(universe, func(i, j int) bool {
		return universe[i].PriceChangePercent > universe[j].PriceChangePercent
	})
	if filter.TopN > 0 && len(universe) > filter.TopN {
		universe = universe[:filter.TopN]
	}
	return universe, nil
}

// FetchCandles fetches the most recent candles for a symbol. Klines arrive
// as positional arrays; index 0 is open time (ms), 4 close, 5 volume.
func (f *BinanceFetcher) FetchCandles(ctx context.Context, symbol, interval string, limit int) ([]model.Candle, error) {
	endpoint := fmt.Sprintf("%s/api/v3/klines?symbol=%s&interval=%s&limit=%d",
		f.SpotBaseURL, symbol, interval, limit)
	var rows [][]any
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		return nil, fmt.Errorf("fetch klines %s: %w", symbol, err)
	}

	candles := make([]model.Candle, 0, len(rows))
	for _, row := range rows {
		if len(row) < 6 {
			continue
		}
		candles = append(candles, model.Candle{
			OpenTime: time.UnixMilli(int64(toFloat(row[0]))),
			Close:    toFloat(row[4]),
			Volume:   toFloat(row[5]),
		})
	}
	sort.Slice(candles, func(i, j int) bool { return candles[i].OpenTime.Before(candles[j].OpenTime) })
	return candles, nil
}

// FetchFundingRate fetches the latest funding rate for the perpetual
// matching symbol, as a percentage. Any failure means the instrument has no
// usable funding data and yields an absent (nil) rate, never an error.
func (f *BinanceFetcher) FetchFundingRate(ctx context.Context, symbol string) (*float64, error) {
	endpoint := fmt.Sprintf("%s/fapi/v1/premiumIndex?symbol=%s", f.FuturesBaseURL, symbol)
	var row struct {
		LastFundingRate string `json:"lastFundingRate"`
	}
	if err := f.getJSON(ctx, endpoint, &row); err != nil {
		f.logger.Debug().Str("symbol", symbol).Err(err).Msg("funding rate unavailable")
		return nil, nil
	}
	if row.LastFundingRate == "" {
		return nil, nil
	}
	raw, err := strconv.ParseFloat(row.LastFundingRate, 64)
	if err != nil {
		f.logger.Debug().Str("symbol", symbol).Err(err).Msg("funding rate malformed")
		return nil, nil
	}
	pct := raw * 100
	return &pct, nil
}

// FetchOpenInterestGrowth fetches a 5-point 1h open-interest history and
// returns the percent change from the earliest to the latest point. Any
// failure or empty history yields neutral zero stats, never an error.
func (f *BinanceFetcher) FetchOpenInterestGrowth(ctx context.Context, symbol string) (model.OpenInterestStats, error) {
	endpoint := fmt.Sprintf("%s/futures/data/openInterestHist?symbol=%s&period=1h&limit=5",
		f.FuturesBaseURL, symbol)
	var rows []struct {
		SumOpenInterestValue string `json:"sumOpenInterestValue"`
	}
	if err := f.getJSON(ctx, endpoint, &rows); err != nil {
		f.logger.Debug().Str("symbol", symbol).Err(err).Msg("open interest unavailable")
		return model.OpenInterestStats{}, nil
	}
	if len(rows) == 0 {
		return model.OpenInterestStats{}, nil
	}
	first, err := strconv.ParseFloat(rows[0].SumOpenInterestValue, 64)
	if err != nil {
		return model.OpenInterestStats{}, nil
	}
	last, err := strconv.ParseFloat(rows[len(rows)-1].SumOpenInterestValue, 64)
	if err != nil {
		return model.OpenInterestStats{}, nil
	}
	growth := 0.0
	if first != 0 {
		growth = (last - first) / first * 100
	}
	return model.OpenInterestStats{GrowthPct: growth, LastValueUSD: last}, nil
}

func (f *BinanceFetcher) getJSON(ctx context.Context, endpoint string, target any) error {
	if err := f.limiter.Wait(ctx); err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := f.Client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return &StatusError{URL: endpoint, StatusCode: resp.StatusCode}
	}
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case string:
		f, err := strconv.ParseFloat(n, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}
