package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"imgor/internal/database/migrations"
	"imgor/internal/imgor"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteDatabase implements the History interface using SQLite.
type SQLiteDatabase struct {
	db   *sql.DB
	path string
}

// NewSQLiteDatabase opens the database at path and migrates it to the latest
// schema. path can be a file path or ":memory:" for an in-memory database.
func NewSQLiteDatabase(path string) (*SQLiteDatabase, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating database: %w", err)
	}

	return &SQLiteDatabase{db: db, path: path}, nil
}

// NewSQLiteDatabaseFromDB wraps an existing database connection.
// The caller is responsible for ensuring the connection is properly configured.
func NewSQLiteDatabaseFromDB(db *sql.DB) *SQLiteDatabase {
	return &SQLiteDatabase{db: db}
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
// path can be a file path or ":memory:" for in-memory database.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Every connection to ":memory:" is a separate database, and runs are
	// recorded sequentially anyway.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// Run operations

func (s *SQLiteDatabase) CreateRun(run *imgor.Run) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO runs (id, started_at, input_dir, output_dir, status, command_count)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.StartedAt.UTC(), run.InputDir, run.OutputDir, run.Status, run.CommandCount)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) RecordCommand(runID string, seq int, cmd imgor.Command) error {
	kind, path, target := imgor.CommandRow(cmd)
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO run_commands (run_id, seq, kind, path, target) VALUES (?, ?, ?, ?, ?)`,
		runID, seq, kind, path, target)
	if err != nil {
		return fmt.Errorf("recording command: %w", err)
	}
	return nil
}

func (s *SQLiteDatabase) FinishRun(runID string, status string, finishedAt time.Time, commandCount int) error {
	res, err := s.db.ExecContext(context.Background(),
		`UPDATE runs SET status = ?, finished_at = ?, command_count = ? WHERE id = ?`,
		status, finishedAt.UTC(), commandCount, runID)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("finishing run: no run with id %s", runID)
	}
	return nil
}

const runColumns = `id, started_at, finished_at, input_dir, output_dir, status, command_count`

func scanRun(row interface{ Scan(...any) error }) (*imgor.Run, error) {
	var r imgor.Run
	if err := row.Scan(&r.ID, &r.StartedAt, &r.FinishedAt, &r.InputDir, &r.OutputDir, &r.Status, &r.CommandCount); err != nil {
		return nil, err
	}
	return &r, nil
}

func (s *SQLiteDatabase) ListRuns(limit int) ([]*imgor.Run, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	defer rows.Close()

	var runs []*imgor.Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	return runs, nil
}

func (s *SQLiteDatabase) FindRun(runID string) (*imgor.Run, error) {
	row := s.db.QueryRowContext(context.Background(),
		`SELECT `+runColumns+` FROM runs WHERE id = ?`, runID)
	r, err := scanRun(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil // Not found
		}
		return nil, fmt.Errorf("finding run: %w", err)
	}
	return r, nil
}

func (s *SQLiteDatabase) ListRunCommands(runID string) ([]*imgor.RunCommand, error) {
	rows, err := s.db.QueryContext(context.Background(),
		`SELECT seq, kind, path, target FROM run_commands WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run commands: %w", err)
	}
	defer rows.Close()

	var cmds []*imgor.RunCommand
	for rows.Next() {
		var c imgor.RunCommand
		if err := rows.Scan(&c.Seq, &c.Kind, &c.Path, &c.Target); err != nil {
			return nil, fmt.Errorf("scanning run command: %w", err)
		}
		cmds = append(cmds, &c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("listing run commands: %w", err)
	}
	return cmds, nil
}

// Path returns the database file path (or ":memory:" for in-memory databases).
func (s *SQLiteDatabase) Path() string {
	return s.path
}

// CheckMigrations verifies the database schema is up-to-date.
func (s *SQLiteDatabase) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteDatabase) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteDatabase implements imgor.History interface
var _ imgor.History = (*SQLiteDatabase)(nil)
