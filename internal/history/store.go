package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"ripdoctor/internal/report"
)

const schema = `
CREATE TABLE IF NOT EXISTS analysis_runs (
    id           TEXT PRIMARY KEY,
    path         TEXT NOT NULL,
    mode         TEXT NOT NULL,
    total_issues INTEGER NOT NULL,
    findings     INTEGER NOT NULL,
    report       TEXT NOT NULL,
    created_at   TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_analysis_runs_path ON analysis_runs(path, created_at);
`

// Run is one recorded analysis.
type Run struct {
	ID          string
	Path        string
	Mode        string
	TotalIssues int
	Findings    int
	CreatedAt   time.Time
	Report      report.AnalysisReport
}

// Store manages history persistence backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the history database.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open history db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores one analysis run and returns its generated ID.
func (s *Store) Record(ctx context.Context, path, mode string, rep report.AnalysisReport) (string, error) {
	payload, err := json.Marshal(rep)
	if err != nil {
		return "", fmt.Errorf("marshal report: %w", err)
	}

	id := uuid.NewString()
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO analysis_runs (id, path, mode, total_issues, findings, report, created_at)
         VALUES (?, ?, ?, ?, ?, ?, ?)`,
		id, path, mode, rep.TotalIssues, rep.FindingCount(), string(payload),
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("insert run: %w", err)
	}
	return id, nil
}

// Recent returns the newest runs, most recent first. A zero or negative
// limit defaults to 20.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, mode, total_issues, findings, report, created_at
         FROM analysis_runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

// ForPath returns the runs recorded for one file, most recent first.
func (s *Store) ForPath(ctx context.Context, path string, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, path, mode, total_issues, findings, report, created_at
         FROM analysis_runs WHERE path = ? ORDER BY created_at DESC LIMIT ?`, path, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs for %s: %w", path, err)
	}
	defer rows.Close()
	return scanRuns(rows)
}

func scanRuns(rows *sql.Rows) ([]Run, error) {
	var runs []Run
	for rows.Next() {
		var (
			run       Run
			payload   string
			createdAt string
		)
		if err := rows.Scan(&run.ID, &run.Path, &run.Mode, &run.TotalIssues, &run.Findings, &payload, &createdAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		if ts, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			run.CreatedAt = ts
		}
		if err := json.Unmarshal([]byte(payload), &run.Report); err != nil {
			return nil, fmt.Errorf("unmarshal report for run %s: %w", run.ID, err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return runs, nil
}
