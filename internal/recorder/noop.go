package recorder

import "MarketRadar/internal/model"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordSignals(_ []model.SignalRecord) error { return nil }
func (n *NoopRecorder) RecordCycle(_ CycleStats) error             { return nil }
func (n *NoopRecorder) Close() error                               { return nil }
