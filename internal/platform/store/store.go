// Package store provides the embedded sqlite storage seam
// Repos program against RowQuerier/TxRunner, never *sql.DB directly
package store

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"time"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"

	_ "modernc.org/sqlite" // registers the "sqlite" driver
)

// Row exposes the minimal scan contract a single row needs
type Row interface {
	Scan(dest ...any) error
}

// Rows exposes the minimal iteration and scan for a result set
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// RowQuerier is the read and write surface repos use for sql
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner wraps transaction execution around a function
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Config for opening the on-device database
type Config struct {
	// Path is the database file path, ":memory:" for tests
	Path string
	// BusyTimeout bounds lock waits before the driver gives up
	BusyTimeout time.Duration
}

// Store owns the sqlite handle and implements TxRunner
type Store struct {
	db  *sql.DB
	log logger.Logger
}

// Option mutates the store during Open
type Option func(*Store)

// WithLogger sets the store logger
func WithLogger(l logger.Logger) Option {
	return func(s *Store) { s.log = l }
}

// Open opens (creating if absent) the sqlite database and applies pragmas
// suited to a single-writer device: WAL journal and foreign keys on
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	if cfg.Path == "" {
		return nil, perr.InvalidArgf("store: empty path")
	}
	if cfg.BusyTimeout <= 0 {
		cfg.BusyTimeout = 5 * time.Second
	}

	dsn := fmt.Sprintf(
		"file:%s?_pragma=journal_mode(WAL)&_pragma=foreign_keys(ON)&_pragma=busy_timeout(%d)",
		url.PathEscape(cfg.Path), cfg.BusyTimeout.Milliseconds(),
	)
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "store: open")
	}
	// sqlite serializes writers; a single connection avoids SQLITE_BUSY churn
	db.SetMaxOpenConns(1)

	s := &Store{db: db, log: *logger.Named("store")}
	for _, o := range opts {
		o(s)
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "store: ping")
	}
	s.log.Debug().Str("path", cfg.Path).Msg("sqlite open")
	return s, nil
}

// Close releases the database handle
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Exec implements RowQuerier, returning the affected row count
func (s *Store) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := s.db.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, perr.FromSqlite(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

// Query implements RowQuerier
func (s *Store) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	rs, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, perr.FromSqlite(err)
	}
	return sqlRows{rs}, nil
}

// QueryRow implements RowQuerier
func (s *Store) QueryRow(ctx context.Context, q string, args ...any) Row {
	return s.db.QueryRowContext(ctx, q, args...)
}

// Tx runs fn inside a transaction, rolling back on error
func (s *Store) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return perr.FromSqlite(err)
	}
	if err := fn(txQuerier{tx}); err != nil {
		_ = tx.Rollback()
		return err
	}
	if err := tx.Commit(); err != nil {
		return perr.FromSqlite(err)
	}
	return nil
}

// sqlRows adapts *sql.Rows to the Rows seam
type sqlRows struct{ rs *sql.Rows }

func (r sqlRows) Next() bool             { return r.rs.Next() }
func (r sqlRows) Scan(dest ...any) error { return r.rs.Scan(dest...) }
func (r sqlRows) Err() error             { return r.rs.Err() }
func (r sqlRows) Close()                 { _ = r.rs.Close() }

// txQuerier adapts *sql.Tx to RowQuerier inside Tx
type txQuerier struct{ tx *sql.Tx }

func (t txQuerier) Exec(ctx context.Context, q string, args ...any) (int64, error) {
	res, err := t.tx.ExecContext(ctx, q, args...)
	if err != nil {
		return 0, perr.FromSqlite(err)
	}
	n, _ := res.RowsAffected()
	return n, nil
}

func (t txQuerier) Query(ctx context.Context, q string, args ...any) (Rows, error) {
	rs, err := t.tx.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, perr.FromSqlite(err)
	}
	return sqlRows{rs}, nil
}

func (t txQuerier) QueryRow(ctx context.Context, q string, args ...any) Row {
	return t.tx.QueryRowContext(ctx, q, args...)
}

// compile-time seam checks
var (
	_ TxRunner   = (*Store)(nil)
	_ RowQuerier = txQuerier{}
)
