package store

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"MarketRadar/internal/model"
)

func record(symbol string) model.SignalRecord {
	return model.SignalRecord{
		Time:           "2025-01-01T00:00:00Z",
		Symbol:         symbol,
		Classification: model.ClassificationBullish,
		Price:          1.23,
	}
}

func TestAppendAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	log := NewJSONFileLog(path, 5000)

	if err := log.Append([]model.SignalRecord{record("AAAUSDT"), record("BBBUSDT")}); err != nil {
		t.Fatalf("append: %v", err)
	}

	records, err := log.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	if records[0].Symbol != "AAAUSDT" || records[1].Symbol != "BBBUSDT" {
		t.Errorf("unexpected order: %+v", records)
	}
}

func TestAppend_TruncatesOldestFirst(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	log := NewJSONFileLog(path, 5)

	for i := 0; i < 8; i++ {
		if err := log.Append([]model.SignalRecord{record(fmt.Sprintf("SYM%d", i))}); err != nil {
			t.Fatalf("append %d: %v", i, err)
		}
	}

	records, err := log.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 5 {
		t.Fatalf("expected log capped at 5, got %d", len(records))
	}
	// Oldest entries (SYM0..SYM2) must be gone.
	if records[0].Symbol != "SYM3" || records[4].Symbol != "SYM7" {
		t.Errorf("expected SYM3..SYM7, got %+v", records)
	}
}

func TestAppend_EmptyIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	log := NewJSONFileLog(path, 5000)

	if err := log.Append([]model.SignalRecord{record("AAAUSDT")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}

	if err := log.Append(nil); err != nil {
		t.Fatalf("empty append: %v", err)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Error("empty append modified the log file")
	}
}

func TestLoad_MissingFile(t *testing.T) {
	log := NewJSONFileLog(filepath.Join(t.TempDir(), "nope.json"), 5000)
	records, err := log.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if records != nil {
		t.Errorf("expected nil records, got %+v", records)
	}
}

func TestLoad_CorruptFileTreatedAsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "signals.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	log := NewJSONFileLog(path, 5000)

	records, err := log.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 0 {
		t.Fatalf("expected empty log, got %d records", len(records))
	}

	// Appending over a corrupt file starts fresh.
	if err := log.Append([]model.SignalRecord{record("AAAUSDT")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	records, err = log.Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("expected 1 record after recovery, got %d", len(records))
	}
}

func TestAppend_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "signals.json")
	log := NewJSONFileLog(path, 5000)

	if err := log.Append([]model.SignalRecord{record("AAAUSDT")}); err != nil {
		t.Fatalf("append: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
}
