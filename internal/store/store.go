package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	// modernc.org/sqlite driver name is "sqlite".
	_ "modernc.org/sqlite"
)

const (
	dirName    = ".restack"
	dbFileName = "restack.sqlite"
)

// Store locates a workspace directory on disk.
type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for a .restack directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, dirName)
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir returns the discovered workspace dir, or ./.restack.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	return filepath.Join(cwd, dirName), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) dbPath() string {
	return filepath.Join(s.Dir, dbFileName)
}

// Workspace is an open workspace database. It implements the stack
// operations the drag controller persists through.
type Workspace struct {
	db  *sql.DB
	log *zap.Logger
	now func() time.Time
}

// Open opens (creating if needed) the workspace database in s.Dir.
func (s Store) Open(ctx context.Context, log *zap.Logger) (*Workspace, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	if log == nil {
		log = zap.NewNop()
	}
	db, err := sql.Open("sqlite", s.dbPath())
	if err != nil {
		return nil, err
	}
	// WAL lets the CLI read while the board writes; busy_timeout avoids
	// "database is locked" between the two.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA foreign_keys=ON;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate %s: %w", s.dbPath(), err)
	}
	log.Debug("workspace opened", zap.String("path", s.dbPath()))
	return &Workspace{db: db, log: log, now: time.Now}, nil
}

func (w *Workspace) Close() error {
	return w.db.Close()
}

func migrate(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS stacks (
			id TEXT PRIMARY KEY,
			title TEXT NOT NULL DEFAULT '',
			lane_rank TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS series (
			stack_id TEXT NOT NULL REFERENCES stacks(id) ON DELETE CASCADE,
			name TEXT NOT NULL,
			pos INTEGER NOT NULL,
			PRIMARY KEY(stack_id, name)
		);`,
		// One row per commit: the primary key keeps every commit in exactly
		// one series of one stack.
		`CREATE TABLE IF NOT EXISTS commits (
			id TEXT PRIMARY KEY,
			stack_id TEXT NOT NULL,
			series_name TEXT NOT NULL,
			pos INTEGER NOT NULL,
			FOREIGN KEY(stack_id, series_name) REFERENCES series(stack_id, name) ON DELETE CASCADE
		);`,
		`CREATE INDEX IF NOT EXISTS idx_commits_series ON commits(stack_id, series_name, pos);`,
		`CREATE TABLE IF NOT EXISTS events (
			event_id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			entity_id TEXT NOT NULL,
			payload_json TEXT NOT NULL,
			issued_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_events_issued ON events(issued_at_unixms);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}
