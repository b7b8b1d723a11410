package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"MarketRadar/internal/model"
)

// BoundedLog is an append-only signal log with FIFO eviction: once the log
// exceeds its maximum size the oldest entries are dropped.
type BoundedLog interface {
	Append(records []model.SignalRecord) error
	Load() ([]model.SignalRecord, error)
}

// JSONFileLog stores the log as a single JSON array on disk.
type JSONFileLog struct {
	path       string
	maxEntries int
}

// NewJSONFileLog creates a log backed by the given file. maxEntries caps the
// number of retained records.
func NewJSONFileLog(path string, maxEntries int) *JSONFileLog {
	return &JSONFileLog{path: path, maxEntries: maxEntries}
}

// Load reads the current log. A missing or corrupt file is treated as empty.
func (l *JSONFileLog) Load() ([]model.SignalRecord, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read signal log: %w", err)
	}
	var records []model.SignalRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

// Append adds records to the log, truncates to the most recent maxEntries
// and writes the file back. Appending nothing leaves the file untouched.
// The write goes through a temp file and rename so a crash mid-write cannot
// corrupt the previous state.
func (l *JSONFileLog) Append(records []model.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}

	existing, err := l.Load()
	if err != nil {
		return err
	}
	existing = append(existing, records...)
	if len(existing) > l.maxEntries {
		existing = existing[len(existing)-l.maxEntries:]
	}

	data, err := json.MarshalIndent(existing, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal signal log: %w", err)
	}

	dir := filepath.Dir(l.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create log directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".signals-*.json")
	if err != nil {
		return fmt.Errorf("create temp log: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write temp log: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close temp log: %w", err)
	}
	if err := os.Rename(tmp.Name(), l.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace signal log: %w", err)
	}
	return nil
}
