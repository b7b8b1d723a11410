package notifier

import (
	"strings"
	"testing"
	"time"

	"MarketRadar/internal/model"
	"MarketRadar/internal/scanner"
)

func pct(v float64) *float64 { return &v }

func TestFormatFunding(t *testing.T) {
	if got := FormatFunding(nil); got != "-" {
		t.Errorf("expected \"-\" for absent funding, got %q", got)
	}
	if got := FormatFunding(pct(0.0789)); got != "0.079" {
		t.Errorf("expected \"0.079\", got %q", got)
	}
}

func TestFormatScanReport(t *testing.T) {
	res := &scanner.Result{
		Bullish: []model.SignalRecord{{
			Symbol:           "AAAUSDT",
			Classification:   model.ClassificationBullish,
			VolumeSurgeRatio: 3.0,
			Momentum15mPct:   10.0,
		}},
		Bearish: []model.SignalRecord{{
			Symbol:                "BBBUSDT",
			Classification:        model.ClassificationBearish,
			OpenInterestGrowthPct: -1.5,
		}},
	}

	report := FormatScanReport(res, 10)
	if !strings.Contains(report, "*AAAUSDT*") {
		t.Errorf("report missing bullish symbol:\n%s", report)
	}
	if !strings.Contains(report, "vol ×3.00") {
		t.Errorf("report missing surge:\n%s", report)
	}
	if !strings.Contains(report, "funding -%") {
		t.Errorf("report should render absent funding as \"-\":\n%s", report)
	}
	if !strings.Contains(report, "Rule of thumb") {
		t.Errorf("report missing footer:\n%s", report)
	}
}

func TestFormatScanReport_TopLimit(t *testing.T) {
	res := &scanner.Result{}
	for i := 0; i < 15; i++ {
		res.Bullish = append(res.Bullish, model.SignalRecord{Symbol: "AAAUSDT"})
	}

	report := FormatScanReport(res, 10)
	if got := strings.Count(report, "🚀"); got != 10 {
		t.Errorf("expected 10 bullish lines, got %d", got)
	}
}

func TestFormatStatus_NoCycle(t *testing.T) {
	if got := FormatStatus(nil, time.Time{}); got != "No completed scan cycle yet." {
		t.Errorf("unexpected status: %q", got)
	}
}

func TestFormatSignalList(t *testing.T) {
	if got := FormatSignalList(nil, 10); got != "No signals recorded yet." {
		t.Errorf("unexpected empty list text: %q", got)
	}

	records := []model.SignalRecord{
		{Symbol: "OLDUSDT", Time: "2025-01-01T00:00:00Z"},
		{Symbol: "NEWUSDT", Time: "2025-01-02T00:00:00Z", Classification: model.ClassificationBearish},
	}
	got := FormatSignalList(records, 1)
	if strings.Contains(got, "OLDUSDT") {
		t.Errorf("expected only the newest record:\n%s", got)
	}
	if !strings.Contains(got, "NEWUSDT") || !strings.Contains(got, "⚠️") {
		t.Errorf("expected newest bearish record:\n%s", got)
	}
}
