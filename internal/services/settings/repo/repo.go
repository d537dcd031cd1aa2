// Package repo persists the settings snapshot in sqlite
package repo

import (
	"context"
	"encoding/json"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/store"
	dom "shopsense/internal/services/settings/domain"
)

// The snapshot is stored as a single JSON document row. The CHECK keeps the
// table at exactly one row so Save is always an upsert of id 1
const schema = `
CREATE TABLE IF NOT EXISTS settings (
	id  INTEGER PRIMARY KEY CHECK (id = 1),
	doc TEXT NOT NULL
)`

// Migrate creates the settings table when missing
func Migrate(ctx context.Context, q store.RowQuerier) error {
	_, err := q.Exec(ctx, schema)
	return perr.WrapIf(err, perr.ErrorCodeDB, "settings: migrate")
}

// Sqlite implements domain.Repo over the store seam
type Sqlite struct {
	q store.RowQuerier
}

// NewSqlite constructs the sqlite-backed settings repo
func NewSqlite(q store.RowQuerier) *Sqlite { return &Sqlite{q: q} }

// Load implements domain.Repo
func (r *Sqlite) Load(ctx context.Context) (dom.Snapshot, bool, error) {
	var doc string
	if err := r.q.QueryRow(ctx, `SELECT doc FROM settings WHERE id = 1`).Scan(&doc); err != nil {
		mapped := perr.FromSqlite(err)
		if perr.IsNotFound(mapped) {
			return dom.Snapshot{}, false, nil
		}
		return dom.Snapshot{}, false, mapped
	}

	// unknown keys in the stored doc are ignored and missing keys keep their
	// defaults, so a snapshot written by an older build still loads
	snap := dom.Defaults()
	if err := json.Unmarshal([]byte(doc), &snap); err != nil {
		return dom.Snapshot{}, false, perr.Wrap(err, perr.ErrorCodeDB, "settings: decode stored doc")
	}
	return snap, true, nil
}

// Save implements domain.Repo
func (r *Sqlite) Save(ctx context.Context, snap dom.Snapshot) error {
	doc, err := json.Marshal(snap)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeDB, "settings: encode doc")
	}
	_, err = r.q.Exec(ctx,
		`INSERT INTO settings (id, doc) VALUES (1, ?)
		 ON CONFLICT (id) DO UPDATE SET doc = excluded.doc`,
		string(doc),
	)
	return err
}

var _ dom.Repo = (*Sqlite)(nil)
