// Package history records simulation runs and periodic population samples
// in a SQLite database.
package history

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	_ "modernc.org/sqlite"

	"github.com/lixenwraith/reef/core"
)

// DB wraps the history database
type DB struct {
	conn *sqlx.DB
}

// Run describes one simulation run
type Run struct {
	ID        string    `db:"id"`
	StartedAt time.Time `db:"started_at"`
	Cols      int       `db:"cols"`
	Rows      int       `db:"rows"`
	TimeScale float64   `db:"time_scale"`
	Seed      int64     `db:"seed"`
	WorldFile string    `db:"world_file"`

	FinishedAt *time.Time `db:"finished_at"`
	SimSeconds float64    `db:"sim_seconds"`
	Collected  int        `db:"collected"`
	GameOver   bool       `db:"game_over"`
}

// Sample is one census row
type Sample struct {
	RunID      string  `db:"run_id"`
	SimSeconds float64 `db:"sim_seconds"`
	Collected  int     `db:"collected"`
	Pending    int     `db:"pending"`
	CountsJSON string  `db:"counts_json"`
}

// Counts decodes the per-kind population
func (s Sample) Counts() (map[string]int, error) {
	counts := make(map[string]int)
	if err := json.Unmarshal([]byte(s.CountsJSON), &counts); err != nil {
		return nil, errors.Wrap(err, "decode counts")
	}
	return counts, nil
}

// Summary is the final state recorded when a run ends
type Summary struct {
	SimTime   time.Duration
	Collected int
	GameOver  bool
}

// Open opens or creates the database at path; ":memory:" works for tests
func Open(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		dsn = path + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	}
	conn, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.Wrap(err, "open history db")
	}
	// one connection keeps an in-memory database alive and serializes writers
	conn.SetMaxOpenConns(1)

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "migrate history db")
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		started_at TIMESTAMP NOT NULL,
		cols INTEGER NOT NULL,
		rows INTEGER NOT NULL,
		time_scale REAL NOT NULL,
		seed INTEGER NOT NULL,
		world_file TEXT NOT NULL,
		finished_at TIMESTAMP,
		sim_seconds REAL NOT NULL DEFAULT 0,
		collected INTEGER NOT NULL DEFAULT 0,
		game_over INTEGER NOT NULL DEFAULT 0
	);

	CREATE TABLE IF NOT EXISTS census (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL REFERENCES runs(id),
		sim_seconds REAL NOT NULL,
		collected INTEGER NOT NULL,
		pending INTEGER NOT NULL,
		counts_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_census_run ON census(run_id, sim_seconds);
	`
	_, err := db.conn.Exec(schema)
	return err
}

// StartRun inserts run under a fresh id and returns it
func (db *DB) StartRun(run Run) (string, error) {
	run.ID = uuid.NewString()
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	_, err := db.conn.NamedExec(`INSERT INTO runs
		(id, started_at, cols, rows, time_scale, seed, world_file)
		VALUES (:id, :started_at, :cols, :rows, :time_scale, :seed, :world_file)`, run)
	if err != nil {
		return "", errors.Wrap(err, "insert run")
	}
	return run.ID, nil
}

// RecordCensus appends a population sample to a run
func (db *DB) RecordCensus(runID string, at time.Duration, counts map[core.Kind]int, collected, pending int) error {
	named := make(map[string]int, len(counts))
	for k, n := range counts {
		named[k.String()] = n
	}
	countsJSON, err := json.Marshal(named)
	if err != nil {
		return errors.Wrap(err, "encode counts")
	}

	_, err = db.conn.Exec(`INSERT INTO census
		(run_id, sim_seconds, collected, pending, counts_json)
		VALUES (?, ?, ?, ?, ?)`,
		runID, at.Seconds(), collected, pending, string(countsJSON))
	if err != nil {
		return errors.Wrapf(err, "insert census for run %s", runID)
	}
	return nil
}

// FinishRun stamps the end of a run
func (db *DB) FinishRun(runID string, s Summary) error {
	res, err := db.conn.Exec(`UPDATE runs
		SET finished_at = ?, sim_seconds = ?, collected = ?, game_over = ?
		WHERE id = ?`,
		time.Now(), s.SimTime.Seconds(), s.Collected, s.GameOver, runID)
	if err != nil {
		return errors.Wrapf(err, "finish run %s", runID)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return errors.Errorf("finish run %s: no such run", runID)
	}
	return nil
}

// Runs lists the most recent runs first
func (db *DB) Runs(limit int) ([]Run, error) {
	var runs []Run
	err := db.conn.Select(&runs, `SELECT
		id, started_at, cols, rows, time_scale, seed, world_file,
		finished_at, sim_seconds, collected, game_over
		FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, errors.Wrap(err, "list runs")
	}
	return runs, nil
}

// Census returns a run's samples in time order
func (db *DB) Census(runID string) ([]Sample, error) {
	var samples []Sample
	err := db.conn.Select(&samples, `SELECT run_id, sim_seconds, collected, pending, counts_json
		FROM census WHERE run_id = ? ORDER BY sim_seconds`, runID)
	if err != nil {
		return nil, errors.Wrapf(err, "census for run %s", runID)
	}
	return samples, nil
}
