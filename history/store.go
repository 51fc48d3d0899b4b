// Package history persists produced analysis reports in SQLite so they can
// be listed and re-exported later.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "embed"

	_ "modernc.org/sqlite"

	"github.com/seo-intel/backend/pipeline"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound means no report exists with the requested ID.
var ErrNotFound = errors.New("report not found")

// Summary is the listing form of a stored report.
type Summary struct {
	ID        string    `json:"id"`
	Source    string    `json:"source"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"created_at"`
}

// Store manages report persistence backed by SQLite.
type Store struct {
	db *sql.DB
}

// Open connects to the report database under dataDir and creates the schema.
func Open(dataDir string) (*Store, error) {
	dbPath := filepath.Join(dataDir, "reports.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
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

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Save stores one report.
func (s *Store) Save(ctx context.Context, report *pipeline.AnalysisReport) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("marshal report: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO reports (id, source, kind, created_at, payload) VALUES (?, ?, ?, ?, ?)`,
		report.ID,
		report.Source,
		string(report.Kind),
		report.CreatedAt.UnixNano(),
		string(payload),
	)
	if err != nil {
		return fmt.Errorf("insert report: %w", err)
	}
	return nil
}

// Get loads one report by ID.
func (s *Store) Get(ctx context.Context, id string) (*pipeline.AnalysisReport, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM reports WHERE id = ?`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("query report: %w", err)
	}

	var report pipeline.AnalysisReport
	if err := json.Unmarshal([]byte(payload), &report); err != nil {
		return nil, fmt.Errorf("unmarshal report: %w", err)
	}
	return &report, nil
}

// Recent lists the newest n stored reports.
func (s *Store) Recent(ctx context.Context, n int) ([]Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, source, kind, created_at FROM reports ORDER BY created_at DESC LIMIT ?`, n,
	)
	if err != nil {
		return nil, fmt.Errorf("query recent reports: %w", err)
	}
	defer rows.Close()

	var summaries []Summary
	for rows.Next() {
		var s Summary
		var createdAt int64
		if err := rows.Scan(&s.ID, &s.Source, &s.Kind, &createdAt); err != nil {
			return nil, fmt.Errorf("scan report row: %w", err)
		}
		s.CreatedAt = time.Unix(0, createdAt).UTC()
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
