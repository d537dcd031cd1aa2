package repo

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"shopsense/internal/platform/store"
	dom "shopsense/internal/services/settings/domain"
)

func openRepo(t *testing.T) *Sqlite {
	t.Helper()
	s, err := store.Open(context.Background(), store.Config{
		Path:        filepath.Join(t.TempDir(), "settings.db"),
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

func TestLoadBeforeAnySave(t *testing.T) {
	r := openRepo(t)
	_, ok, err := r.Load(context.Background())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if ok {
		t.Fatalf("Load reported a snapshot on an empty table")
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	want := dom.Defaults()
	want.TTSSpeedWpm = 340
	want.Threshold = 120
	want.OCRTemplate = "label says {text}"
	if err := r.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := r.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("Load = %+v, want %+v", got, want)
	}
}

func TestSaveOverwritesSingleRow(t *testing.T) {
	r := openRepo(t)
	ctx := context.Background()

	first := dom.Defaults()
	first.Threshold = 10
	second := dom.Defaults()
	second.Threshold = 200

	if err := r.Save(ctx, first); err != nil {
		t.Fatalf("first Save: %v", err)
	}
	if err := r.Save(ctx, second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	got, ok, err := r.Load(ctx)
	if err != nil || !ok {
		t.Fatalf("Load: ok=%v err=%v", ok, err)
	}
	if got.Threshold != 200 {
		t.Fatalf("Threshold = %d, want 200", got.Threshold)
	}
}
