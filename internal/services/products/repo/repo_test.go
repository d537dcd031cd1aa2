package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/store"
	dom "shopsense/internal/services/products/domain"
)

func openRepo(t *testing.T) *Sqlite {
	t.Helper()
	s, err := store.Open(context.Background(), store.Config{
		Path:        filepath.Join(t.TempDir(), "products.db"),
		BusyTimeout: time.Second,
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	if err := Migrate(context.Background(), s); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	return NewSqlite(s)
}

var oatMilk = dom.Record{
	Barcode:     "7391234567895",
	ProductName: "Oat Milk",
	Brand:       "Acme",
	Allergies:   "oats",
	Notes:       "shelf stable",
}

func TestInsertAndFind(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	if err := r.Insert(ctx, oatMilk); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	got, err := r.FindByBarcode(ctx, oatMilk.Barcode)
	if err != nil {
		t.Fatalf("FindByBarcode: %v", err)
	}
	if got != oatMilk {
		t.Fatalf("FindByBarcode = %+v, want %+v", got, oatMilk)
	}
}

func TestFindUnknownBarcode(t *testing.T) {
	r := openRepo(t)
	_, err := r.FindByBarcode(context.Background(), "0000000000000")
	if !perr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestInsertDuplicateBarcode(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	if err := r.Insert(ctx, oatMilk); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	err := r.Insert(ctx, oatMilk)
	if !perr.IsCode(err, perr.ErrorCodeDuplicateKey) {
		t.Fatalf("expected duplicate key, got %v", err)
	}
}

func TestUpdate(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	if err := r.Insert(ctx, oatMilk); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	changed := oatMilk
	changed.Brand = "Other"
	changed.Allergies = ""
	if err := r.Update(ctx, changed); err != nil {
		t.Fatalf("Update: %v", err)
	}
	got, err := r.FindByBarcode(ctx, oatMilk.Barcode)
	if err != nil {
		t.Fatalf("FindByBarcode: %v", err)
	}
	if got != changed {
		t.Fatalf("after update = %+v, want %+v", got, changed)
	}
}

func TestUpdateMissingBarcode(t *testing.T) {
	r := openRepo(t)
	err := r.Update(context.Background(), oatMilk)
	if !perr.IsNotFound(err) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	if err := r.Insert(ctx, oatMilk); err != nil {
		t.Fatalf("Insert: %v", err)
	}
	if err := r.Delete(ctx, oatMilk.Barcode); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := r.FindByBarcode(ctx, oatMilk.Barcode); !perr.IsNotFound(err) {
		t.Fatalf("record survived delete: %v", err)
	}
	if err := r.Delete(ctx, oatMilk.Barcode); !perr.IsNotFound(err) {
		t.Fatalf("second delete: expected not found, got %v", err)
	}
}

func TestListOrdersByName(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	for _, rec := range []dom.Record{
		{Barcode: "2", ProductName: "Rye Bread", Brand: "B"},
		{Barcode: "1", ProductName: "Apple Juice", Brand: "A"},
	} {
		if err := r.Insert(ctx, rec); err != nil {
			t.Fatalf("Insert: %v", err)
		}
	}
	got, err := r.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(got) != 2 || got[0].ProductName != "Apple Juice" || got[1].ProductName != "Rye Bread" {
		t.Fatalf("List = %+v", got)
	}
}
