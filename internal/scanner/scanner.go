package scanner

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"MarketRadar/internal/calculator"
	"MarketRadar/internal/collector"
	"MarketRadar/internal/model"
	"MarketRadar/internal/strategy"
)

const (
	// 36 five-minute candles, about three hours of history.
	candleInterval = "5m"
	candleLimit    = 36
	momentumOffset = 4
)

// Scanner drives one full scan cycle: fetch the universe, compute and
// classify metrics per symbol, rank the results.
type Scanner struct {
	fetcher    collector.Fetcher
	filter     model.UniverseFilter
	thresholds strategy.Thresholds
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// Result is the outcome of a single cycle. Bullish and bearish lists are
// sorted for presentation: bullish by surge then momentum descending,
// bearish by funding heat descending (absent lowest) then OI growth
// ascending.
type Result struct {
	Bullish []model.SignalRecord
	Bearish []model.SignalRecord
	Scanned int
	Elapsed time.Duration
}

// Signals returns all emitted records, bullish first.
func (r *Result) Signals() []model.SignalRecord {
	out := make([]model.SignalRecord, 0, len(r.Bullish)+len(r.Bearish))
	out = append(out, r.Bullish...)
	out = append(out, r.Bearish...)
	return out
}

// New creates a Scanner. The limiter paces the per-symbol loop to respect
// exchange rate limits; tests inject an unbounded one.
func New(fetcher collector.Fetcher, filter model.UniverseFilter, thresholds strategy.Thresholds, limiter *rate.Limiter) *Scanner {
	return &Scanner{
		fetcher:    fetcher,
		filter:     filter,
		thresholds: thresholds,
		limiter:    limiter,
		logger:     log.With().Str("component", "scanner").Logger(),
	}
}

// ScanOnce runs one cycle. A universe fetch failure is fatal for the cycle;
// a candle fetch failure (or a short series) skips only that symbol; funding
// and open-interest lookups never fail and degrade to neutral values.
func (s *Scanner) ScanOnce(ctx context.Context) (*Result, error) {
	started := time.Now()

	universe, err := s.fetcher.FetchUniverse(ctx, s.filter)
	if err != nil {
		return nil, fmt.Errorf("fetch universe: %w", err)
	}

	res := &Result{Scanned: len(universe)}
	for _, ticker := range universe {
		candles, err := s.fetcher.FetchCandles(ctx, ticker.Symbol, candleInterval, candleLimit)
		if err != nil {
			s.logger.Debug().Str("symbol", ticker.Symbol).Err(err).Msg("candle fetch failed, skipping")
			continue
		}
		if len(candles) < candleLimit {
			s.logger.Debug().Str("symbol", ticker.Symbol).Int("got", len(candles)).Msg("short candle series, skipping")
			continue
		}

		metrics := s.enrich(ctx, ticker.Symbol, model.DerivedMetrics{
			VolumeSurgeRatio: calculator.VolumeSurgeRatio(candles),
			Momentum15mPct:   calculator.Momentum(candles, momentumOffset),
		})

		classification := strategy.Resolve(strategy.Assess(metrics, s.thresholds))
		if classification != model.ClassificationNone {
			record := model.SignalRecord{
				Time:                  time.Now().UTC().Format(time.RFC3339),
				Symbol:                ticker.Symbol,
				Classification:        classification,
				Price:                 ticker.LastPrice,
				VolumeSurgeRatio:      metrics.VolumeSurgeRatio,
				Momentum15mPct:        metrics.Momentum15mPct,
				FundingRatePct:        metrics.FundingRatePct,
				OpenInterestGrowthPct: metrics.OpenInterestGrowthPct,
			}
			if classification == model.ClassificationBullish {
				res.Bullish = append(res.Bullish, record)
			} else {
				res.Bearish = append(res.Bearish, record)
			}
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("throttle: %w", err)
		}
	}

	rankBullish(res.Bullish)
	rankBearish(res.Bearish)
	res.Elapsed = time.Since(started)
	return res, nil
}

// enrich adds derivatives data. Failures map to absent funding and neutral
// open-interest values; they never abort the symbol.
func (s *Scanner) enrich(ctx context.Context, symbol string, m model.DerivedMetrics) model.DerivedMetrics {
	funding, err := s.fetcher.FetchFundingRate(ctx, symbol)
	if err != nil {
		funding = nil
	}
	m.FundingRatePct = funding

	oi, err := s.fetcher.FetchOpenInterestGrowth(ctx, symbol)
	if err != nil {
		oi = model.OpenInterestStats{}
	}
	m.OpenInterestGrowthPct = oi.GrowthPct
	m.LastOpenInterestUSD = oi.LastValueUSD
	return m
}

func rankBullish(records []model.SignalRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].VolumeSurgeRatio != records[j].VolumeSurgeRatio {
			return records[i].VolumeSurgeRatio > records[j].VolumeSurgeRatio
		}
		return records[i].Momentum15mPct > records[j].Momentum15mPct
	})
}

func rankBearish(records []model.SignalRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		fi, fj := fundingOrAbsent(records[i]), fundingOrAbsent(records[j])
		if fi != fj {
			return fi > fj
		}
		return records[i].OpenInterestGrowthPct < records[j].OpenInterestGrowthPct
	})
}

// fundingOrAbsent ranks records without funding data below any real rate.
func fundingOrAbsent(r model.SignalRecord) float64 {
	if r.FundingRatePct == nil {
		return -1
	}
	return *r.FundingRatePct
}
