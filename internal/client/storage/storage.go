// Package storage is the durable key/value store of the recipebox client.
//
// The store plays the role browser local storage plays for a web client:
// string keys mapped to opaque blobs that survive restarts. Each service owns
// a disjoint set of keys. Multi-key writes are atomic, so a reader never sees
// half of a record that was written as a unit.
//
// Two backends are supported, chosen by DSN:
//
//   - SQLite (modernc.org/sqlite): a file path or ":memory:". The default.
//   - PostgreSQL (pgx stdlib driver): "postgres://..." or "postgresql://...".
//
// Schema is managed with embedded goose migrations.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/dmitrijs2005/recipebox/internal/client/migrations"
	"github.com/dmitrijs2005/recipebox/internal/client/repositories/kv"
	"github.com/dmitrijs2005/recipebox/internal/dbx"
	"github.com/dmitrijs2005/recipebox/internal/filex"
	"github.com/dmitrijs2005/recipebox/internal/logging"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	_ "modernc.org/sqlite"
)

// KV is what the services need from durable storage.
type KV interface {
	// Get returns (nil, nil) for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put writes all values in one transaction.
	Put(ctx context.Context, values map[string][]byte) error
	// Delete removes all keys in one transaction. Missing keys are ignored.
	Delete(ctx context.Context, keys ...string) error
}

type Dialect string

const (
	DialectSQLite   Dialect = "sqlite"
	DialectPostgres Dialect = "postgres"
)

// DB implements KV on top of a kv.Repository.
type DB struct {
	db      *sql.DB
	dialect Dialect
	log     logging.Logger
}

// DialectFor picks the backend for a DSN.
func DialectFor(dsn string) Dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DialectPostgres
	}
	return DialectSQLite
}

// Open connects to dsn, prepares the connection and applies migrations.
func Open(ctx context.Context, dsn string, log logging.Logger) (*DB, error) {
	dialect := DialectFor(dsn)

	var (
		db  *sql.DB
		err error
	)
	switch dialect {
	case DialectPostgres:
		db, err = sql.Open("pgx", dsn)
	default:
		db, err = openSQLite(ctx, dsn)
	}
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	s := New(db, dialect, log)
	if err := s.RunMigrations(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrations: %w", err)
	}

	log.Debug(ctx, "durable store ready", "dialect", string(dialect))
	return s, nil
}

func openSQLite(ctx context.Context, dsn string) (*sql.DB, error) {
	inMemory := dsn == ":memory:" || strings.Contains(dsn, "mode=memory")
	if !inMemory && !strings.HasPrefix(dsn, "file:") {
		if _, err := filex.EnsureParentDir(dsn); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	// One writer at a time, and a single connection keeps :memory: coherent.
	db.SetMaxOpenConns(1)

	pragmas := []string{"PRAGMA busy_timeout=5000;"}
	if !inMemory {
		pragmas = append(pragmas, "PRAGMA journal_mode=WAL;")
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma %s: %w", p, err)
		}
	}
	return db, nil
}

// New wraps an already opened database. No migrations are run.
func New(db *sql.DB, dialect Dialect, log logging.Logger) *DB {
	return &DB{db: db, dialect: dialect, log: log}
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations applies the embedded migrations for the store's dialect.
func (s *DB) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(migrations.Migrations)
	goose.SetLogger(goose.NopLogger())

	gooseDialect, dir := "sqlite3", "sqlite"
	if s.dialect == DialectPostgres {
		gooseDialect, dir = "postgres", "postgres"
	}
	if err := goose.SetDialect(gooseDialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return gooseUpContext(ctx, s.db, dir)
}

func (s *DB) repo(db dbx.DBTX) kv.Repository {
	if s.dialect == DialectPostgres {
		return kv.NewPostgresRepository(db)
	}
	return kv.NewSQLiteRepository(db)
}

func (s *DB) Get(ctx context.Context, key string) ([]byte, error) {
	return s.repo(s.db).Get(ctx, key)
}

func (s *DB) Put(ctx context.Context, values map[string][]byte) error {
	keys := sortedKeys(values)
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		for _, k := range keys {
			if err := r.Set(ctx, k, values[k]); err != nil {
				return err
			}
		}
		return nil
	})
}

func (s *DB) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		r := s.repo(tx)
		for _, k := range keys {
			if err := r.Delete(ctx, k); err != nil {
				return err
			}
		}
		return nil
	})
}

// List returns every stored pair. Backs the verbose status command.
func (s *DB) List(ctx context.Context) (map[string][]byte, error) {
	return s.repo(s.db).List(ctx)
}

func (s *DB) Close() error {
	return s.db.Close()
}

func sortedKeys(m map[string][]byte) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
