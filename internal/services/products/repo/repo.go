// Package repo persists the product catalog in sqlite
package repo

import (
	"context"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/store"
	dom "shopsense/internal/services/products/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS barcodes (
	barcode      TEXT PRIMARY KEY,
	product_name TEXT NOT NULL,
	brand        TEXT NOT NULL,
	allergies    TEXT NOT NULL DEFAULT '',
	notes        TEXT NOT NULL DEFAULT ''
)`

// Migrate creates the barcodes table when missing
func Migrate(ctx context.Context, q store.RowQuerier) error {
	_, err := q.Exec(ctx, schema)
	return perr.WrapIf(err, perr.ErrorCodeDB, "products: migrate")
}

// Sqlite implements domain.Repo over the store seam
type Sqlite struct {
	q store.RowQuerier
}

// NewSqlite constructs the sqlite-backed products repo
func NewSqlite(q store.RowQuerier) *Sqlite { return &Sqlite{q: q} }

// FindByBarcode implements domain.Repo
func (r *Sqlite) FindByBarcode(ctx context.Context, barcode string) (dom.Record, error) {
	var rec dom.Record
	err := r.q.QueryRow(ctx,
		`SELECT barcode, product_name, brand, allergies, notes FROM barcodes WHERE barcode = ?`,
		barcode,
	).Scan(&rec.Barcode, &rec.ProductName, &rec.Brand, &rec.Allergies, &rec.Notes)
	if err != nil {
		mapped := perr.FromSqlite(err)
		if perr.IsNotFound(mapped) {
			return dom.Record{}, perr.NotFoundf("barcode %q not in catalog", barcode)
		}
		return dom.Record{}, mapped
	}
	return rec, nil
}

// List implements domain.Repo, ordered by product name for the panel
func (r *Sqlite) List(ctx context.Context) ([]dom.Record, error) {
	rows, err := r.q.Query(ctx,
		`SELECT barcode, product_name, brand, allergies, notes FROM barcodes ORDER BY product_name, barcode`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []dom.Record{}
	for rows.Next() {
		var rec dom.Record
		if err := rows.Scan(&rec.Barcode, &rec.ProductName, &rec.Brand, &rec.Allergies, &rec.Notes); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "products: scan")
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, perr.FromSqlite(err)
	}
	return out, nil
}

// Insert implements domain.Repo; a duplicate barcode maps to a duplicate key error
func (r *Sqlite) Insert(ctx context.Context, rec dom.Record) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO barcodes (barcode, product_name, brand, allergies, notes) VALUES (?, ?, ?, ?, ?)`,
		rec.Barcode, rec.ProductName, rec.Brand, rec.Allergies, rec.Notes,
	)
	return err
}

// Update implements domain.Repo
func (r *Sqlite) Update(ctx context.Context, rec dom.Record) error {
	n, err := r.q.Exec(ctx,
		`UPDATE barcodes SET product_name = ?, brand = ?, allergies = ?, notes = ? WHERE barcode = ?`,
		rec.ProductName, rec.Brand, rec.Allergies, rec.Notes, rec.Barcode,
	)
	if err != nil {
		return err
	}
	if n == 0 {
		return perr.NotFoundf("barcode %q not in catalog", rec.Barcode)
	}
	return nil
}

// Delete implements domain.Repo
func (r *Sqlite) Delete(ctx context.Context, barcode string) error {
	n, err := r.q.Exec(ctx, `DELETE FROM barcodes WHERE barcode = ?`, barcode)
	if err != nil {
		return err
	}
	if n == 0 {
		return perr.NotFoundf("barcode %q not in catalog", barcode)
	}
	return nil
}

var _ dom.Repo = (*Sqlite)(nil)
