package service

import (
	"context"
	"sync"
	"testing"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/settings/domain"
)

// memRepo is an in-memory domain.Repo for tests
type memRepo struct {
	mu    sync.Mutex
	snap  dom.Snapshot
	ok    bool
	saves int
	fail  error
}

func (m *memRepo) Load(context.Context) (dom.Snapshot, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap, m.ok, nil
}

func (m *memRepo) Save(_ context.Context, s dom.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.fail != nil {
		return m.fail
	}
	m.snap, m.ok = s, true
	m.saves++
	return nil
}

func newService(t *testing.T, repo dom.Repo) *Service {
	t.Helper()
	s, err := New(context.Background(), repo, *logger.Named("settings-test"))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return s
}

func TestFirstBootSeedsDefaults(t *testing.T) {
	repo := &memRepo{}
	s := newService(t, repo)
	if got := s.Get(); got != dom.Defaults() {
		t.Fatalf("Get = %+v, want defaults", got)
	}
	if repo.saves != 1 {
		t.Fatalf("defaults not persisted on first boot")
	}
}

func TestBootLoadsPersistedSnapshot(t *testing.T) {
	stored := dom.Defaults()
	stored.TTSSpeedWpm = 320
	s := newService(t, &memRepo{snap: stored, ok: true})
	if got := s.Get().TTSSpeedWpm; got != 320 {
		t.Fatalf("TTSSpeedWpm = %d, want 320", got)
	}
}

func TestUpdateAcceptsInRangeSpeed(t *testing.T) {
	s := newService(t, &memRepo{})
	snap, err := s.Update(context.Background(), map[string]any{"tts_speed_wpm": float64(300)})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if snap.TTSSpeedWpm != 300 {
		t.Fatalf("returned snapshot speed = %d", snap.TTSSpeedWpm)
	}
	if got := s.Get().TTSSpeedWpm; got != 300 {
		t.Fatalf("Get after update = %d, want 300", got)
	}
}

func TestUpdateRejectsOutOfRangeSpeedAndKeepsSnapshot(t *testing.T) {
	s := newService(t, &memRepo{})
	before := s.Get()
	_, err := s.Update(context.Background(), map[string]any{"tts_speed_wpm": float64(50)})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if s.Get() != before {
		t.Fatalf("rejected update mutated the snapshot")
	}
}

func TestUpdateRejectsWholeBatchOnOneBadField(t *testing.T) {
	s := newService(t, &memRepo{})
	before := s.Get()
	_, err := s.Update(context.Background(), map[string]any{
		"threshold":     float64(128),
		"tts_speed_wpm": float64(9000),
	})
	if err == nil {
		t.Fatalf("expected rejection")
	}
	if s.Get() != before {
		t.Fatalf("partial update applied: %+v", s.Get())
	}
}

func TestUpdateRejectsUnknownKey(t *testing.T) {
	s := newService(t, &memRepo{})
	_, err := s.Update(context.Background(), map[string]any{"tts_volume": float64(10)})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error for unknown key, got %v", err)
	}
}

func TestUpdateRejectsNonIntegralNumber(t *testing.T) {
	s := newService(t, &memRepo{})
	_, err := s.Update(context.Background(), map[string]any{"threshold": 70.5})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestUpdateValidatesTemplatePlaceholders(t *testing.T) {
	s := newService(t, &memRepo{})
	_, err := s.Update(context.Background(), map[string]any{"ocr_template": "read {product_name}"})
	if !perr.IsCode(err, perr.ErrorCodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := s.Update(context.Background(), map[string]any{"ocr_template": "I can see {text}"}); err != nil {
		t.Fatalf("valid template rejected: %v", err)
	}
}

func TestUpdateKeepsSnapshotWhenPersistFails(t *testing.T) {
	repo := &memRepo{}
	s := newService(t, repo)
	before := s.Get()

	repo.fail = perr.DBf("disk full")
	_, err := s.Update(context.Background(), map[string]any{"threshold": float64(90)})
	if !perr.IsCode(err, perr.ErrorCodeDB) {
		t.Fatalf("expected db error, got %v", err)
	}
	if s.Get() != before {
		t.Fatalf("snapshot published despite persist failure")
	}
}

func TestConcurrentReadersSeeConsistentSnapshots(t *testing.T) {
	s := newService(t, &memRepo{})

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 200; i++ {
			speed := 100 + (i%40)*10
			_, _ = s.Update(context.Background(), map[string]any{
				"tts_speed_wpm": float64(speed),
				"threshold":     float64(speed % 256),
			})
		}
	}()

	for i := 0; i < 2000; i++ {
		snap := s.Get()
		// both fields always come from the same committed update
		if snap.TTSSpeedWpm != 200 && snap.Threshold != snap.TTSSpeedWpm%256 {
			t.Fatalf("torn snapshot: %+v", snap)
		}
	}
	<-done
}
