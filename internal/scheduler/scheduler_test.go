package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/time/rate"

	"MarketRadar/internal/collector"
	"MarketRadar/internal/model"
	"MarketRadar/internal/recorder"
	"MarketRadar/internal/scanner"
	"MarketRadar/internal/strategy"
)

type fakeLog struct {
	appends [][]model.SignalRecord
}

func (f *fakeLog) Append(records []model.SignalRecord) error {
	f.appends = append(f.appends, records)
	return nil
}

func (f *fakeLog) Load() ([]model.SignalRecord, error) {
	var all []model.SignalRecord
	for _, batch := range f.appends {
		all = append(all, batch...)
	}
	return all, nil
}

type fakeRecorder struct {
	signalBatches int
	cycles        []recorder.CycleStats
}

func (f *fakeRecorder) RecordSignals(_ []model.SignalRecord) error {
	f.signalBatches++
	return nil
}
func (f *fakeRecorder) RecordCycle(stats recorder.CycleStats) error {
	f.cycles = append(f.cycles, stats)
	return nil
}
func (f *fakeRecorder) Close() error { return nil }

type fakeNotifier struct {
	sent []string
}

func (f *fakeNotifier) Send(text string) error {
	f.sent = append(f.sent, text)
	return nil
}

func bullishFetcher() *collector.MockFetcher {
	candles := make([]model.Candle, 36)
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := range candles {
		candles[i] = model.Candle{OpenTime: start.Add(time.Duration(i) * 5 * time.Minute), Close: 100, Volume: 100}
	}
	candles[35].Close = 110
	candles[35].Volume = 300

	return &collector.MockFetcher{
		Universe: []model.TickerSnapshot{{Symbol: "AAAUSDT", LastPrice: 110}},
		Candles:  map[string][]model.Candle{"AAAUSDT": candles},
		OpenInterest: map[string]model.OpenInterestStats{
			"AAAUSDT": {GrowthPct: 2.0},
		},
	}
}

func newTestScheduler(fetcher collector.Fetcher) (*Scheduler, *fakeLog, *fakeRecorder, *fakeNotifier) {
	sc := scanner.New(fetcher, model.UniverseFilter{TopN: 60}, strategy.Thresholds{
		MinVolumeSurge: 2.0,
		MinMomentum15m: 0.2,
		MaxFundingHot:  0.05,
		MinOIGrowth:    1.0,
	}, rate.NewLimiter(rate.Inf, 1))

	log := &fakeLog{}
	rec := &fakeRecorder{}
	nt := &fakeNotifier{}
	return New(sc, log, rec, nt, time.Minute), log, rec, nt
}

func TestRunCycle_EmitsToSinks(t *testing.T) {
	sched, log, rec, nt := newTestScheduler(bullishFetcher())

	sched.runCycle(context.Background())

	if len(log.appends) != 1 || len(log.appends[0]) != 1 {
		t.Fatalf("expected one appended signal, got %+v", log.appends)
	}
	if rec.signalBatches != 1 {
		t.Errorf("expected one recorded signal batch, got %d", rec.signalBatches)
	}
	if len(rec.cycles) != 1 || rec.cycles[0].BullishCount != 1 {
		t.Errorf("expected one cycle record with one bullish signal, got %+v", rec.cycles)
	}
	if len(nt.sent) != 1 {
		t.Fatalf("expected one notification, got %d", len(nt.sent))
	}
}

func TestRunCycle_UniverseFailureTouchesNoSinks(t *testing.T) {
	sched, log, rec, nt := newTestScheduler(&collector.MockFetcher{
		UniverseErr: errors.New("endpoint down"),
	})

	sched.runCycle(context.Background())

	if len(log.appends) != 0 {
		t.Errorf("expected no log appends, got %d", len(log.appends))
	}
	if rec.signalBatches != 0 || len(rec.cycles) != 0 {
		t.Errorf("expected no recorder calls, got %d batches / %d cycles", rec.signalBatches, len(rec.cycles))
	}
	if len(nt.sent) != 0 {
		t.Errorf("expected no notifications, got %d", len(nt.sent))
	}
}

func TestRunCycle_QuietCycleSendsNothing(t *testing.T) {
	fetcher := bullishFetcher()
	// Flatten the last candle so nothing classifies.
	candles := fetcher.Candles["AAAUSDT"]
	candles[35].Close = 100
	candles[35].Volume = 100

	sched, log, rec, nt := newTestScheduler(fetcher)
	sched.runCycle(context.Background())

	if len(log.appends) != 0 || len(nt.sent) != 0 {
		t.Errorf("expected quiet cycle to skip log and notifier, got %d appends / %d sends", len(log.appends), len(nt.sent))
	}
	if len(rec.cycles) != 1 {
		t.Errorf("expected cycle stats recorded even when quiet, got %d", len(rec.cycles))
	}
}

func TestHandleCommand(t *testing.T) {
	sched, _, _, _ := newTestScheduler(bullishFetcher())

	if got := sched.HandleCommand("/status"); got != "No completed scan cycle yet." {
		t.Errorf("unexpected /status before a cycle: %q", got)
	}

	sched.runCycle(context.Background())

	if got := sched.HandleCommand("/status"); got == "No completed scan cycle yet." {
		t.Error("expected /status to report the completed cycle")
	}
	if got := sched.HandleCommand("/signals"); got == "No signals recorded yet." {
		t.Error("expected /signals to list the emitted signal")
	}
	if got := sched.HandleCommand("/bogus"); got == "" {
		t.Error("expected help text for unknown command")
	}
}
