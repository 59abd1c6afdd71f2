// Package manifest keeps a history of config resolutions in SQLite, so a
// capture run can be traced back to the exact files and output paths it was
// given.
package manifest

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/karsanda/barong/packages/core/config"

	// SQLite driver
	_ "github.com/mattn/go-sqlite3"
)

// DefaultPath is where the CLI keeps its history, relative to the project.
const DefaultPath = ".barong/history.db"

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// Run is one recorded resolution.
type Run struct {
	ID            string
	Cwd           string
	Selector      string
	BaseFile      string
	PageFiles     []string
	Label         string
	CaptureTarget string
	ScenarioCount int
	CreatedAt     time.Time
	Scenarios     []ScenarioRecord // only filled by Get
}

// ScenarioRecord is one scenario of a recorded run.
type ScenarioRecord struct {
	Position   int
	Label      string
	OutputFile string
}

// Store is a SQLite backed run history.
type Store struct {
	db           *sql.DB
	path         string
	queryTimeout time.Duration
	now          func() time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create history directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &Store{
		db:           db,
		path:         path,
		queryTimeout: 5 * time.Second,
		now:          time.Now,
	}
	if err := s.initSchema(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS runs (
		id TEXT PRIMARY KEY,
		cwd TEXT NOT NULL,
		selector TEXT NOT NULL,
		base_file TEXT NOT NULL,
		page_files TEXT NOT NULL,
		label TEXT NOT NULL,
		capture_target TEXT NOT NULL,
		scenario_count INTEGER NOT NULL,
		created_at INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS scenarios (
		run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
		position INTEGER NOT NULL,
		label TEXT NOT NULL,
		output_file TEXT NOT NULL,
		PRIMARY KEY (run_id, position)
	);
	CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.path
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Record stores a resolution and its scenarios in one transaction.
func (s *Store) Record(ctx context.Context, cwd, selector string, files config.ConfigFileSet, cfg *config.BaseConfig) (*Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	pages := files.Tests
	if pages == nil {
		pages = []string{}
	}
	pageJSON, err := json.Marshal(pages)
	if err != nil {
		return nil, fmt.Errorf("failed to encode page files: %w", err)
	}

	run := &Run{
		ID:            uuid.NewString(),
		Cwd:           cwd,
		Selector:      selector,
		BaseFile:      files.Base,
		PageFiles:     pages,
		Label:         cfg.Label,
		CaptureTarget: cfg.CaptureTarget,
		ScenarioCount: len(cfg.Scenarios),
		CreatedAt:     s.now().UTC().Truncate(time.Millisecond),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO runs (id, cwd, selector, base_file, page_files, label, capture_target, scenario_count, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Cwd, run.Selector, run.BaseFile, string(pageJSON),
		run.Label, run.CaptureTarget, run.ScenarioCount, run.CreatedAt.UnixMilli())
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO scenarios (run_id, position, label, output_file) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare scenario insert: %w", err)
	}
	defer stmt.Close()

	run.Scenarios = make([]ScenarioRecord, 0, len(cfg.Scenarios))
	for i, sc := range cfg.Scenarios {
		if _, err := stmt.ExecContext(ctx, run.ID, i, sc.Label, sc.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to insert scenario %d: %w", i, err)
		}
		run.Scenarios = append(run.Scenarios, ScenarioRecord{Position: i, Label: sc.Label, OutputFile: sc.OutputFile})
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit run: %w", err)
	}
	return run, nil
}

// List returns the most recent runs, newest first. A limit of zero or less
// returns every run.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	query := `SELECT id, cwd, selector, base_file, page_files, label, capture_target, scenario_count, created_at
		FROM runs ORDER BY created_at DESC, rowid DESC`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	runs := make([]Run, 0)
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, *run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return runs, nil
}

// Get returns one run with its scenarios in their original order.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	row := s.db.QueryRowContext(ctx,
		`SELECT id, cwd, selector, base_file, page_files, label, capture_target, scenario_count, created_at
		 FROM runs WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT position, label, output_file FROM scenarios WHERE run_id = ? ORDER BY position`, id)
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	run.Scenarios = make([]ScenarioRecord, 0, run.ScenarioCount)
	for rows.Next() {
		var sc ScenarioRecord
		if err := rows.Scan(&sc.Position, &sc.Label, &sc.OutputFile); err != nil {
			return nil, fmt.Errorf("failed to scan scenario: %w", err)
		}
		run.Scenarios = append(run.Scenarios, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return run, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*Run, error) {
	var (
		run       Run
		pageJSON  string
		createdAt int64
	)
	err := row.Scan(&run.ID, &run.Cwd, &run.Selector, &run.BaseFile, &pageJSON,
		&run.Label, &run.CaptureTarget, &run.ScenarioCount, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}
	if err := json.Unmarshal([]byte(pageJSON), &run.PageFiles); err != nil {
		return nil, fmt.Errorf("failed to decode page files of run %s: %w", run.ID, err)
	}
	run.CreatedAt = time.UnixMilli(createdAt).UTC()
	return &run, nil
}
