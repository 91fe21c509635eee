// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists build-run history in a SQLite database kept
// next to the generated deck. The history command reads it; builds append
// to it.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "catalog.db"

// Store manages the build catalog database.
type Store struct {
	db *sql.DB
}

// Run is one recorded build.
type Run struct {
	ID        string
	StartedAt time.Time
	InputDir  string
	DeckPath  string
	Strategy  string
	Documents int
	Records   int
	Failed    int
}

// DocumentEntry is one source document's outcome within a run.
type DocumentEntry struct {
	Name    string
	FileID  string
	Records int
	Status  string
}

// NewStore opens or creates the catalog database under dir, creating the
// schema if it does not exist.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating catalog schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at TEXT NOT NULL,
			input_dir TEXT NOT NULL,
			deck_path TEXT NOT NULL,
			strategy TEXT NOT NULL,
			documents INTEGER NOT NULL,
			records INTEGER NOT NULL,
			failed INTEGER NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS documents (
			run_id TEXT NOT NULL REFERENCES runs(id),
			name TEXT NOT NULL,
			file_id TEXT NOT NULL,
			records INTEGER NOT NULL,
			status TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_documents_run_id ON documents(run_id)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordRun inserts a run and its per-document outcomes in one
// transaction. A missing run ID is assigned; the stored ID is returned.
func (s *Store) RecordRun(ctx context.Context, run Run, docs []DocumentEntry) (string, error) {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("starting catalog transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, started_at, input_dir, deck_path, strategy, documents, records, failed)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.Format(time.RFC3339), run.InputDir, run.DeckPath,
		run.Strategy, run.Documents, run.Records, run.Failed)
	if err != nil {
		return "", fmt.Errorf("inserting run: %w", err)
	}

	for _, d := range docs {
		_, err = tx.ExecContext(ctx,
			`INSERT INTO documents (run_id, name, file_id, records, status)
			 VALUES (?, ?, ?, ?, ?)`,
			run.ID, d.Name, d.FileID, d.Records, d.Status)
		if err != nil {
			return "", fmt.Errorf("inserting document %s: %w", d.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("committing catalog transaction: %w", err)
	}
	return run.ID, nil
}

// Recent returns the most recent runs, newest first.
func (s *Store) Recent(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, started_at, input_dir, deck_path, strategy, documents, records, failed
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		var ts string
		if err := rows.Scan(&r.ID, &ts, &r.InputDir, &r.DeckPath, &r.Strategy,
			&r.Documents, &r.Records, &r.Failed); err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		r.StartedAt, _ = time.Parse(time.RFC3339, ts)
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// RunDocuments returns the per-document outcomes for one run.
func (s *Store) RunDocuments(ctx context.Context, runID string) ([]DocumentEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, file_id, records, status FROM documents WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []DocumentEntry
	for rows.Next() {
		var d DocumentEntry
		if err := rows.Scan(&d.Name, &d.FileID, &d.Records, &d.Status); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		docs = append(docs, d)
	}
	return docs, rows.Err()
}
