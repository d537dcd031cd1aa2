package errors

import (
	"database/sql"
	stderrs "errors"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// sqliteCode extracts the extended sqlite result code from err, 0 when err
// is not a driver error
func sqliteCode(err error) int {
	var se *sqlite.Error
	if stderrs.As(err, &se) {
		return se.Code()
	}
	return 0
}

// IsUniqueViolation reports whether err is a unique or primary key constraint violation
func IsUniqueViolation(err error) bool {
	switch sqliteCode(err) {
	case sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY:
		return true
	}
	return sqliteCode(err)&0xff == sqlite3.SQLITE_CONSTRAINT
}

// IsRetryable reports whether err is a transient sqlite condition (locked or
// busy database) where an immediate retry may succeed
func IsRetryable(err error) bool {
	switch sqliteCode(err) & 0xff {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED:
		return true
	}
	return false
}

// FromSqlite maps a sqlite driver error onto a project *Error
// Non-driver errors come back wrapped with ErrorCodeDB
func FromSqlite(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case stderrs.Is(err, sql.ErrNoRows):
		return Wrap(err, ErrorCodeNotFound, "not found")
	case IsUniqueViolation(err):
		return Wrap(err, ErrorCodeDuplicateKey, "duplicate key")
	case IsRetryable(err):
		return Wrap(err, ErrorCodeUnavailable, "database busy")
	default:
		return Wrap(err, ErrorCodeDB, "database error")
	}
}
