package service

import (
	"context"
	"image"
	"sync"
	"time"

	perr "shopsense/internal/platform/errors"
	dom "shopsense/internal/services/pipeline/domain"
	productsdom "shopsense/internal/services/products/domain"
	settingsdom "shopsense/internal/services/settings/domain"
)

// fakeSettings serves a fixed snapshot
type fakeSettings struct {
	mu   sync.Mutex
	snap settingsdom.Snapshot
}

func newFakeSettings() *fakeSettings {
	return &fakeSettings{snap: settingsdom.Defaults()}
}

func (f *fakeSettings) Get() settingsdom.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeSettings) set(snap settingsdom.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = snap
}

// fakeSynth records spoken utterances in order
type fakeSynth struct {
	mu     sync.Mutex
	spoken []string
	wpms   []int
}

func (f *fakeSynth) Speak(_ context.Context, utterance string, wpm int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.spoken = append(f.spoken, utterance)
	f.wpms = append(f.wpms, wpm)
	return nil
}

func (f *fakeSynth) all() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.spoken...)
}

// fakeLookup serves records from a map, optionally failing a number of
// lookups first
type fakeLookup struct {
	mu       sync.Mutex
	records  map[string]productsdom.Record
	failures int
	calls    int
}

func (f *fakeLookup) FindByBarcode(_ context.Context, barcode string) (productsdom.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failures > 0 {
		f.failures--
		return productsdom.Record{}, perr.Unavailablef("store hiccup")
	}
	rec, ok := f.records[barcode]
	if !ok {
		return productsdom.Record{}, perr.NotFoundf("barcode %q not in catalog", barcode)
	}
	return rec, nil
}

// fakeFrames yields a fresh frame per call until ctx is done
type fakeFrames struct {
	interval time.Duration
}

func (f *fakeFrames) Next(ctx context.Context) (image.Image, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case <-time.After(f.interval):
		return image.NewGray(image.Rect(0, 0, 4, 4)), nil
	}
}

// deadScans reports the scanner permanently gone
type deadScans struct{}

func (deadScans) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	default:
		return "", dom.ErrSourceGone
	}
}

// seqRecognizer yields a different reading on every call so the change
// filter never suppresses
type seqRecognizer struct {
	mu sync.Mutex
	n  int
}

func (r *seqRecognizer) Recognize(context.Context, image.Image) ([]dom.Span, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.n++
	return []dom.Span{{Text: "reading " + string(rune('a'+r.n%26)), Confidence: 0.9}}, nil
}
