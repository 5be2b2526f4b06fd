package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
	"entgo.io/ent/dialect/sql/schema"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

// builder renders SQLite statements for the repositories.
var builder = entsql.Dialect(dialect.SQLite)

// Store owns the database handle and provides access to repositories.
type Store struct {
	db  *sql.DB
	seq *sequenceCounter
}

// Open creates a new Store connected to the SQLite database at dsn.
// It applies recommended pragmas and runs auto-migration.
func Open(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// Pragmas are per connection; a single connection keeps them (and
	// in-memory databases) consistent.
	db.SetMaxOpenConns(1)

	if err := applyPragmas(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("apply pragmas: %w", err)
	}

	ctx := context.Background()
	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}

	seq, err := newSequenceCounter(ctx, db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, seq: seq}, nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	m, err := schema.NewMigrate(entsql.OpenDB(dialect.SQLite, db))
	if err != nil {
		return err
	}
	return m.Create(ctx, tables...)
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// TestRepo returns a TestRepo backed by this store.
func (s *Store) TestRepo() TestRepo {
	return &testRepo{db: s.db}
}

// ResultRepo returns a ResultRepo backed by this store.
func (s *Store) ResultRepo() ResultRepo {
	return &resultRepo{db: s.db, seq: s.seq}
}

// CatalogRepo returns a CatalogRepo backed by this store.
func (s *Store) CatalogRepo() CatalogRepo {
	return &catalogRepo{db: s.db}
}

// PreferenceRepo returns a PreferenceRepo backed by this store.
func (s *Store) PreferenceRepo() PreferenceRepo {
	return &preferenceRepo{db: s.db}
}

// RecommendationRepo returns a RecommendationRepo backed by this store.
func (s *Store) RecommendationRepo() RecommendationRepo {
	return &recommendationRepo{db: s.db}
}

// EventRepo returns an EventRepo backed by this store.
func (s *Store) EventRepo() EventRepo {
	return &eventRepo{db: s.db, seq: s.seq}
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. GIASU_DB environment variable
// 2. $XDG_DATA_HOME/giasu/giasu.db
// 3. ~/.local/share/giasu/giasu.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("GIASU_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "giasu", "giasu.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(filepath.Dir(path), 0o755)
}

// querier is satisfied by *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func execQuery(ctx context.Context, q querier, b entsql.Querier) (sql.Result, error) {
	query, args := b.Query()
	return q.ExecContext(ctx, query, args...)
}

func selectRows(ctx context.Context, q querier, b entsql.Querier) (*sql.Rows, error) {
	query, args := b.Query()
	return q.QueryContext(ctx, query, args...)
}

func selectRow(ctx context.Context, q querier, b entsql.Querier) *sql.Row {
	query, args := b.Query()
	return q.QueryRowContext(ctx, query, args...)
}

// withTx runs fn in a transaction, committing when fn returns nil.
func withTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
