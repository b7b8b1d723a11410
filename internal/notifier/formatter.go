package notifier

import (
	"fmt"
	"strings"
	"time"

	"MarketRadar/internal/model"
	"MarketRadar/internal/scanner"
)

const ruleOfThumb = "Rule of thumb: probe breakouts with a small position; stop -0.8%~-1.0%; target +1%~+2%."

// FormatScanReport formats a scan result into a Telegram push, at most `top`
// lines per side.
func FormatScanReport(res *scanner.Result, top int) string {
	var b strings.Builder

	for i, r := range res.Bullish {
		if i >= top {
			break
		}
		b.WriteString(fmt.Sprintf("🚀 *%s* | vol ×%.2f | momentum %+.2f%%\n",
			r.Symbol, r.VolumeSurgeRatio, r.Momentum15mPct))
	}
	for i, r := range res.Bearish {
		if i >= top {
			break
		}
		b.WriteString(fmt.Sprintf("⚠️ *%s* | funding %s%% | OI %+.2f%%\n",
			r.Symbol, FormatFunding(r.FundingRatePct), r.OpenInterestGrowthPct))
	}

	b.WriteString("\n")
	b.WriteString(ruleOfThumb)
	return b.String()
}

// FormatStatus formats the last cycle summary for the /status command.
func FormatStatus(res *scanner.Result, finishedAt time.Time) string {
	if res == nil {
		return "No completed scan cycle yet."
	}
	return fmt.Sprintf("Last cycle %s: %d candidates scanned in %dms, %d bullish / %d bearish.",
		finishedAt.Format("2006-01-02 15:04:05"), res.Scanned,
		res.Elapsed.Milliseconds(), len(res.Bullish), len(res.Bearish))
}

// FormatSignalList formats the most recent persisted signals for /signals.
func FormatSignalList(records []model.SignalRecord, max int) string {
	if len(records) == 0 {
		return "No signals recorded yet."
	}
	if len(records) > max {
		records = records[len(records)-max:]
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Last %d signals:\n", len(records)))
	for i := len(records) - 1; i >= 0; i-- {
		r := records[i]
		icon := "🚀"
		if r.Classification == model.ClassificationBearish {
			icon = "⚠️"
		}
		b.WriteString(fmt.Sprintf("%s %s %s | vol ×%.2f | momentum %+.2f%% | funding %s%%\n",
			icon, r.Time, r.Symbol, r.VolumeSurgeRatio, r.Momentum15mPct, FormatFunding(r.FundingRatePct)))
	}
	return b.String()
}

// FormatDigest formats the periodic activity digest.
func FormatDigest(cycles, bullish, bearish int, since time.Time) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("📊 *Radar digest* | since %s\n\n", since.Format("2006-01-02 15:04")))
	b.WriteString(fmt.Sprintf("Cycles completed: %d\n", cycles))
	b.WriteString(fmt.Sprintf("🚀 bullish signals: %d\n", bullish))
	b.WriteString(fmt.Sprintf("⚠️ bearish signals: %d\n", bearish))
	return b.String()
}

// FormatFunding renders a funding percentage, "-" when absent.
func FormatFunding(pct *float64) string {
	if pct == nil {
		return "-"
	}
	return fmt.Sprintf("%.3f", *pct)
}
