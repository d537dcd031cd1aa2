package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"shopsense/internal/platform/logger"
	"shopsense/internal/platform/testkit"
	dom "shopsense/internal/services/pipeline/domain"
)

func ocr(s string) dom.Announcement {
	return dom.Announcement{Utterance: s, Priority: dom.PriorityOCR, CreatedAt: time.Now()}
}

func barcode(s string) dom.Announcement {
	return dom.Announcement{Utterance: s, Priority: dom.PriorityBarcode, CreatedAt: time.Now()}
}

func drainOrder(a *Announcer) []string {
	var out []string
	for {
		ann, ok := a.dequeue()
		if !ok {
			return out
		}
		out = append(out, ann.Utterance)
	}
}

func TestAnnouncerFIFOUnderNormalLoad(t *testing.T) {
	a := NewAnnouncer(&fakeSynth{}, newFakeSettings(), 32, 4, *logger.Named("test"))

	a.Enqueue(ocr("milk"))
	a.Enqueue(barcode("Product: Oat Milk"))
	a.Enqueue(ocr("bread"))

	got := drainOrder(a)
	want := []string{"milk", "Product: Oat Milk", "bread"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestAnnouncerPromotesBarcodeWhenBacklogged(t *testing.T) {
	a := NewAnnouncer(&fakeSynth{}, newFakeSettings(), 32, 4, *logger.Named("test"))

	for i := 0; i < 6; i++ {
		a.Enqueue(ocr(fmt.Sprintf("ocr %d", i)))
	}
	a.Enqueue(barcode("scan 1"))
	a.Enqueue(barcode("scan 2"))

	got := drainOrder(a)
	if got[0] != "scan 1" || got[1] != "scan 2" {
		t.Fatalf("barcode items not promoted past backlog: %v", got)
	}
	if got[2] != "ocr 0" {
		t.Fatalf("queued OCR order disturbed: %v", got)
	}
}

func TestAnnouncerDropsOldestOnOverflow(t *testing.T) {
	a := NewAnnouncer(&fakeSynth{}, newFakeSettings(), 3, 4, *logger.Named("test"))

	for i := 0; i < 4; i++ {
		a.Enqueue(ocr(fmt.Sprintf("ocr %d", i)))
	}
	got := drainOrder(a)
	if len(got) != 3 || got[0] != "ocr 1" {
		t.Fatalf("drop-oldest violated: %v", got)
	}
	if _, dropped := a.Counters(); dropped != 1 {
		t.Fatalf("dropped counter = %d, want 1", dropped)
	}
}

func TestAnnouncerReadsSpeedPerUtterance(t *testing.T) {
	settings := newFakeSettings()
	synth := &fakeSynth{}
	a := NewAnnouncer(synth, settings, 32, 4, *logger.Named("test"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go a.Run(ctx)

	a.Enqueue(ocr("first"))
	testkit.Eventually(t, time.Second, time.Millisecond, func() bool {
		return len(synth.all()) == 1
	})

	snap := settings.Get()
	snap.TTSSpeedWpm = 450
	settings.set(snap)

	a.Enqueue(ocr("second"))
	testkit.Eventually(t, time.Second, time.Millisecond, func() bool {
		return len(synth.all()) == 2
	})

	synth.mu.Lock()
	defer synth.mu.Unlock()
	if synth.wpms[0] != 200 || synth.wpms[1] != 450 {
		t.Fatalf("wpms = %v, want [200 450]", synth.wpms)
	}
}
