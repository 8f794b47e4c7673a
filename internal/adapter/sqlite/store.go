package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/hearthside/leaseiq/internal/domain"

	_ "modernc.org/sqlite" // Register SQLite driver.
)

//go:embed migrations/*.sql
var migrations embed.FS

// Compile-time checks: the repositories implement the domain persistence ports.
var (
	_ domain.PropertyRepository    = (*PropertyRepository)(nil)
	_ domain.TenantRepository      = (*TenantRepository)(nil)
	_ domain.ApplicationRepository = (*ApplicationRepository)(nil)
)

// Store holds the single SQLite database shared by all repositories. It is
// the only shared mutable resource in the service; all cross-request
// exclusivity is enforced by its transactions, never by in-process locks.
type Store struct {
	db *sql.DB

	// Bounds on multi-step transactions: how long to wait for the write
	// connection and how long the body may run before rolling back.
	txWait time.Duration
	txExec time.Duration
}

// Properties returns the property repository backed by this store.
func (s *Store) Properties() *PropertyRepository {
	return &PropertyRepository{store: s}
}

// Tenants returns the tenant repository backed by this store.
func (s *Store) Tenants() *TenantRepository {
	return &TenantRepository{store: s}
}

// Applications returns the application repository backed by this store.
func (s *Store) Applications() *ApplicationRepository {
	return &ApplicationRepository{store: s}
}

// New opens a SQLite database, runs migrations, and returns a ready store.
func New(dataSourceName string) (*Store, error) {
	db, err := sql.Open("sqlite", dataSourceName)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// A single connection serializes writers and keeps in-memory databases
	// coherent; it also avoids SQLITE_BUSY when sharing the DB with the
	// embedded job queue.
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("setting WAL mode: %w", err)
	}

	// Enable foreign keys (off by default in SQLite).
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	return NewFromDB(db)
}

// NewFromDB wraps an existing database connection, runs migrations, and
// returns a ready store. Use this when the *sql.DB has been pre-configured
// (e.g., with otelsql instrumentation).
func NewFromDB(db *sql.DB) (*Store, error) {
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db, txWait: txWaitTimeout, txExec: txExecTimeout}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database connection for use by other adapters
// (e.g., river).
func (s *Store) DB() *sql.DB {
	return s.db
}

func runMigrations(db *sql.DB) error {
	goose.SetBaseFS(migrations)

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("setting goose dialect: %w", err)
	}

	if err := goose.Up(db, "migrations"); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	return nil
}

const timeFormat = "2006-01-02T15:04:05Z"

// Default transaction bounds; see Store.txWait and Store.txExec.
const (
	txWaitTimeout = 5 * time.Second
	txExecTimeout = 10 * time.Second
)

// withTx runs fn inside a transaction on a dedicated connection. The wait
// for the connection and the execution of the body are bounded separately;
// either bound expiring surfaces domain.ErrTxTimeout with nothing committed.
// fn returning an error rolls the whole transaction back.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx *sql.Tx) error) error {
	waitCtx, cancelWait := context.WithTimeout(ctx, s.txWait)
	conn, err := s.db.Conn(waitCtx)
	cancelWait()
	if err != nil {
		return mapTxErr(ctx, "acquiring connection", err)
	}
	defer conn.Close()

	execCtx, cancelExec := context.WithTimeout(ctx, s.txExec)
	defer cancelExec()

	tx, err := conn.BeginTx(execCtx, nil)
	if err != nil {
		return mapTxErr(ctx, "beginning transaction", err)
	}

	if err := fn(execCtx, tx); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("transaction body: %w", domain.ErrTxTimeout)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		return mapTxErr(ctx, "committing transaction", err)
	}

	return nil
}

// mapTxErr converts a deadline expiry caused by the transaction bounds (not
// by the caller's own context) into the domain timeout error.
func mapTxErr(parent context.Context, op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) && parent.Err() == nil {
		return fmt.Errorf("%s: %w", op, domain.ErrTxTimeout)
	}
	return fmt.Errorf("%s: %w", op, err)
}

// isUniqueViolation checks if a SQLite error is a UNIQUE constraint violation.
func isUniqueViolation(err error) bool {
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeFormat)
}

func parseTime(s string) time.Time {
	t, _ := time.Parse(timeFormat, s)
	return t
}
