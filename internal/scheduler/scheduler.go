package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"MarketRadar/internal/notifier"
	"MarketRadar/internal/recorder"
	"MarketRadar/internal/scanner"
	"MarketRadar/internal/store"
)

// reportTop caps how many lines per side go into a Telegram push.
const reportTop = 10

// Scheduler runs scan cycles forever, isolating per-cycle failures, and owns
// the periodic digest task.
type Scheduler struct {
	scanner  *scanner.Scanner
	signals  store.BoundedLog
	recorder recorder.Recorder
	notifier notifier.Notifier
	cron     *cron.Cron
	interval time.Duration
	logger   zerolog.Logger

	mu            sync.Mutex
	lastResult    *scanner.Result
	lastCycleAt   time.Time
	digestSince   time.Time
	digestCycles  int
	digestBullish int
	digestBearish int
}

// New creates a Scheduler.
func New(sc *scanner.Scanner, signals store.BoundedLog, rec recorder.Recorder, nt notifier.Notifier, interval time.Duration) *Scheduler {
	return &Scheduler{
		scanner:     sc,
		signals:     signals,
		recorder:    rec,
		notifier:    nt,
		cron:        cron.New(cron.WithSeconds()),
		interval:    interval,
		logger:      log.With().Str("component", "scheduler").Logger(),
		digestSince: time.Now(),
	}
}

// RegisterDigest registers the periodic digest task.
func (s *Scheduler) RegisterDigest(spec string) error {
	if _, err := s.cron.AddFunc(spec, s.digestTask); err != nil {
		return fmt.Errorf("register digest task: %w", err)
	}
	return nil
}

// Run executes scan cycles until ctx is cancelled. The scheduler sleeps the
// configured interval after each cycle completes, so the interval measures
// idle time, not cycle period. A failed cycle never stops the loop.
func (s *Scheduler) Run(ctx context.Context) {
	s.cron.Start()
	defer s.cron.Stop()
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler started")

	for {
		s.runCycle(ctx)
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler stopped")
			return
		case <-time.After(s.interval):
		}
	}
}

func (s *Scheduler) runCycle(ctx context.Context) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error().Interface("panic", r).Msg("cycle panicked")
		}
	}()

	res, err := s.scanner.ScanOnce(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("scan cycle failed")
		return
	}

	s.logger.Info().
		Int("scanned", res.Scanned).
		Int("bullish", len(res.Bullish)).
		Int("bearish", len(res.Bearish)).
		Dur("elapsed", res.Elapsed).
		Msg("scan cycle complete")
	for _, r := range res.Signals() {
		s.logger.Info().
			Str("symbol", r.Symbol).
			Str("type", string(r.Classification)).
			Float64("volSurge", r.VolumeSurgeRatio).
			Float64("momentum15m", r.Momentum15mPct).
			Str("funding", notifier.FormatFunding(r.FundingRatePct)).
			Float64("oiGrowth", r.OpenInterestGrowthPct).
			Msg("signal")
	}

	all := res.Signals()
	if len(all) > 0 {
		if err := s.signals.Append(all); err != nil {
			s.logger.Error().Err(err).Msg("append signal log")
		}
		if err := s.recorder.RecordSignals(all); err != nil {
			s.logger.Error().Err(err).Msg("record signals")
		}
		s.trySend(notifier.FormatScanReport(res, reportTop))
	}
	if err := s.recorder.RecordCycle(recorder.CycleStats{
		Scanned:      res.Scanned,
		BullishCount: len(res.Bullish),
		BearishCount: len(res.Bearish),
		Elapsed:      res.Elapsed,
	}); err != nil {
		s.logger.Error().Err(err).Msg("record cycle")
	}

	s.mu.Lock()
	s.lastResult = res
	s.lastCycleAt = time.Now()
	s.digestCycles++
	s.digestBullish += len(res.Bullish)
	s.digestBearish += len(res.Bearish)
	s.mu.Unlock()
}

func (s *Scheduler) digestTask() {
	s.mu.Lock()
	cycles, bullish, bearish, since := s.digestCycles, s.digestBullish, s.digestBearish, s.digestSince
	s.digestCycles, s.digestBullish, s.digestBearish = 0, 0, 0
	s.digestSince = time.Now()
	s.mu.Unlock()

	s.logger.Info().Int("cycles", cycles).Msg("sending digest")
	s.trySend(notifier.FormatDigest(cycles, bullish, bearish, since))
}

// HandleCommand processes a user command and returns a reply.
func (s *Scheduler) HandleCommand(command string) string {
	switch command {
	case "/status":
		s.mu.Lock()
		res, at := s.lastResult, s.lastCycleAt
		s.mu.Unlock()
		return notifier.FormatStatus(res, at)
	case "/signals":
		records, err := s.signals.Load()
		if err != nil {
			s.logger.Error().Err(err).Msg("load signal log")
			return "Signal log unavailable."
		}
		return notifier.FormatSignalList(records, reportTop)
	default:
		return "Commands:\n/status - last cycle summary\n/signals - recent signals"
	}
}

func (s *Scheduler) trySend(text string) {
	if err := s.notifier.Send(text); err != nil {
		s.logger.Error().Err(err).Msg("send notification")
	}
}
