package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"MarketRadar/internal/model"
)

// SQLiteRecorder persists signal history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so dashboards can read while the radar writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS signals (
			id             INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp      INTEGER NOT NULL,
			symbol         TEXT NOT NULL,
			classification TEXT NOT NULL,
			price          REAL,
			vol_surge      REAL,
			momentum_15m   REAL,
			funding_pct    REAL,
			oi_growth_pct  REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_ts ON signals(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_signals_symbol ON signals(symbol)`,

		`CREATE TABLE IF NOT EXISTS scan_cycles (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			scanned     INTEGER,
			bullish     INTEGER,
			bearish     INTEGER,
			duration_ms INTEGER
		)`,
		`CREATE INDEX IF NOT EXISTS idx_cycles_ts ON scan_cycles(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordSignals(records []model.SignalRecord) error {
	if len(records) == 0 {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	now := time.Now().Unix()
	for _, rec := range records {
		var funding sql.NullFloat64
		if rec.FundingRatePct != nil {
			funding = sql.NullFloat64{Float64: *rec.FundingRatePct, Valid: true}
		}
		if _, err := tx.Exec(`INSERT INTO signals
			(timestamp, symbol, classification, price, vol_surge, momentum_15m, funding_pct, oi_growth_pct)
			VALUES (?,?,?,?,?,?,?,?)`,
			now, rec.Symbol, string(rec.Classification), rec.Price,
			rec.VolumeSurgeRatio, rec.Momentum15mPct, funding, rec.OpenInterestGrowthPct,
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (r *SQLiteRecorder) RecordCycle(stats CycleStats) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO scan_cycles
		(timestamp, scanned, bullish, bearish, duration_ms)
		VALUES (?,?,?,?,?)`,
		time.Now().Unix(), stats.Scanned, stats.BullishCount, stats.BearishCount,
		stats.Elapsed.Milliseconds(),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
