package recorder

import (
	"time"

	"MarketRadar/internal/model"
)

// CycleStats summarizes one completed scan cycle.
type CycleStats struct {
	Scanned      int
	BullishCount int
	BearishCount int
	Elapsed      time.Duration
}

// Recorder persists signal history for later analysis.
type Recorder interface {
	RecordSignals(records []model.SignalRecord) error
	RecordCycle(stats CycleStats) error
	Close() error
}
