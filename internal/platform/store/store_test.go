package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	perr "shopsense/internal/platform/errors"
)

func openTemp(t *testing.T) *Store {
	t.Helper()
	s, err := Open(context.Background(), Config{
		Path:        filepath.Join(t.TempDir(), "test.db"),
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenRejectsEmptyPath(t *testing.T) {
	_, err := Open(context.Background(), Config{})
	if !perr.IsCode(err, perr.ErrorCodeInvalidArgument) {
		t.Fatalf("expected invalid argument, got %v", err)
	}
}

func TestExecQueryRoundTrip(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	n, err := s.Exec(ctx, `INSERT INTO kv (k, v) VALUES (?, ?)`, "threshold", "70")
	if err != nil || n != 1 {
		t.Fatalf("insert: n=%d err=%v", n, err)
	}

	var v string
	if err := s.QueryRow(ctx, `SELECT v FROM kv WHERE k = ?`, "threshold").Scan(&v); err != nil {
		t.Fatalf("select: %v", err)
	}
	if v != "70" {
		t.Fatalf("v = %q, want %q", v, "70")
	}
}

func TestDuplicateKeyMapsToProjectError(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := s.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('a', '1')`); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	_, err := s.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('a', '2')`)
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("expected duplicate key code, got %v", err)
	}
}

func TestTxRollbackOnError(t *testing.T) {
	s := openTemp(t)
	ctx := context.Background()

	if _, err := s.Exec(ctx, `CREATE TABLE kv (k TEXT PRIMARY KEY, v TEXT NOT NULL)`); err != nil {
		t.Fatalf("create: %v", err)
	}
	wantErr := perr.Internalf("abort")
	err := s.Tx(ctx, func(q RowQuerier) error {
		if _, err := q.Exec(ctx, `INSERT INTO kv (k, v) VALUES ('a', '1')`); err != nil {
			return err
		}
		return wantErr
	})
	if err != wantErr {
		t.Fatalf("Tx err = %v, want %v", err, wantErr)
	}

	var count int
	if err := s.QueryRow(ctx, `SELECT COUNT(*) FROM kv`).Scan(&count); err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("rollback left %d rows", count)
	}
}
