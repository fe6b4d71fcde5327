package runlog

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Mavwarf/appicon/internal/paths"

	_ "modernc.org/sqlite"
)

// SQLiteStore implements Store using a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// NewSQLiteStore opens (or creates) a SQLite database at path, creates
// tables and indexes, and performs one-time migration from appicon.log
// if it exists in the same directory.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), paths.DirPerm); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// Set PRAGMAs before any DDL.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("sqlite pragma: %w", err)
		}
	}

	ddl := `
CREATE TABLE IF NOT EXISTS runs (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    timestamp   TEXT    NOT NULL,
    source_dir  TEXT    NOT NULL DEFAULT '',
    dest_dir    TEXT    NOT NULL DEFAULT '',
    duration_ms INTEGER NOT NULL DEFAULT 0,
    result      TEXT    NOT NULL,
    error       TEXT    NOT NULL DEFAULT '',
    written     INTEGER NOT NULL DEFAULT 0,
    warnings    INTEGER NOT NULL DEFAULT 0,
    errors      INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS run_steps (
    id       INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id   INTEGER NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    step_num INTEGER NOT NULL,
    kind     TEXT    NOT NULL,
    status   TEXT    NOT NULL,
    name     TEXT    NOT NULL DEFAULT '',
    detail   TEXT    NOT NULL DEFAULT ''
);

CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON runs(timestamp DESC);
CREATE INDEX IF NOT EXISTS idx_run_steps_run  ON run_steps(run_id, step_num);
`
	if _, err := db.Exec(ddl); err != nil {
		db.Close()
		return nil, fmt.Errorf("sqlite schema: %w", err)
	}

	s := &SQLiteStore{db: db, path: path}

	// One-time migration from flat file.
	logPath := filepath.Join(filepath.Dir(path), paths.LogFileName)
	if _, err := os.Stat(logPath); err == nil {
		if err := s.migrateFromFile(logPath); err != nil {
			fmt.Fprintf(os.Stderr, "runlog: migration: %v\n", err)
		}
	}

	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Record(run Run) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := insertRun(tx, run); err != nil {
		return err
	}
	return tx.Commit()
}

func insertRun(tx *sql.Tx, run Run) error {
	res, err := tx.Exec(
		`INSERT INTO runs (timestamp, source_dir, dest_dir, duration_ms, result, error, written, warnings, errors)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.Time.Format(time.RFC3339), run.SourceDir, run.DestDir, run.Duration.Milliseconds(),
		run.Result, run.Error, run.Written, run.Warnings, run.Errors,
	)
	if err != nil {
		return err
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return err
	}
	for i, st := range run.Steps {
		if _, err := tx.Exec(
			`INSERT INTO run_steps (run_id, step_num, kind, status, name, detail)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i+1, st.Kind, st.Status, st.Name, st.Detail,
		); err != nil {
			return err
		}
	}
	return nil
}

func (s *SQLiteStore) Runs(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(
		`SELECT id, timestamp, source_dir, dest_dir, duration_ms, result, error, written, warnings, errors
		 FROM runs ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}

	var (
		ids  []int64
		runs []Run
	)
	for rows.Next() {
		var (
			id  int64
			ts  string
			ms  int64
			run Run
		)
		if err := rows.Scan(&id, &ts, &run.SourceDir, &run.DestDir, &ms, &run.Result,
			&run.Error, &run.Written, &run.Warnings, &run.Errors); err != nil {
			rows.Close()
			return nil, err
		}
		t, err := time.Parse(time.RFC3339, ts)
		if err != nil {
			continue
		}
		run.Time = t
		run.Duration = time.Duration(ms) * time.Millisecond
		ids = append(ids, id)
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for i := range runs {
		steps, err := s.steps(ids[i])
		if err != nil {
			return nil, err
		}
		runs[i].Steps = steps
	}

	// Oldest first, like the flat log.
	for i, j := 0, len(runs)-1; i < j; i, j = i+1, j-1 {
		runs[i], runs[j] = runs[j], runs[i]
	}
	return runs, nil
}

func (s *SQLiteStore) steps(runID int64) ([]StepRecord, error) {
	rows, err := s.db.Query(
		`SELECT kind, status, name, detail FROM run_steps WHERE run_id = ? ORDER BY step_num`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var steps []StepRecord
	for rows.Next() {
		var st StepRecord
		if err := rows.Scan(&st.Kind, &st.Status, &st.Name, &st.Detail); err != nil {
			return nil, err
		}
		steps = append(steps, st)
	}
	return steps, rows.Err()
}

func (s *SQLiteStore) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM run_steps"); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM runs"); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *SQLiteStore) Path() string {
	return s.path
}

// migrateFromFile imports an existing appicon.log into the database. On
// success the log is renamed to appicon.log.migrated.
func (s *SQLiteStore) migrateFromFile(logPath string) error {
	data, err := os.ReadFile(logPath)
	if err != nil {
		return err
	}
	content := strings.TrimRight(string(data), "\n\r ")
	if content == "" {
		return os.Rename(logPath, logPath+".migrated")
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, run := range ParseRuns(content) {
		if err := insertRun(tx, run); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	return os.Rename(logPath, logPath+".migrated")
}
