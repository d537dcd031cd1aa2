package service

import (
	"testing"
	"time"

	"shopsense/internal/platform/testkit"
)

func TestChangeFilterSuppressesRapidRepeat(t *testing.T) {
	f := NewChangeFilter(10 * time.Second)
	if !f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("first reading suppressed")
	}
	if f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("immediate repeat announced")
	}
	if f.ShouldAnnounce("milk  2%") {
		t.Fatalf("case/whitespace variant treated as new text")
	}
}

func TestChangeFilterAnnouncesDifferentText(t *testing.T) {
	f := NewChangeFilter(10 * time.Second)
	f.ShouldAnnounce("MILK 2%")
	if !f.ShouldAnnounce("OAT MILK") {
		t.Fatalf("new text suppressed")
	}
}

func TestChangeFilterReannouncesAfterQuietPeriod(t *testing.T) {
	f := NewChangeFilter(10 * time.Second)
	clock := time.Now()
	testkit.Swap(t, &f.now, func() time.Time { return clock })

	if !f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("first reading suppressed")
	}
	clock = clock.Add(9 * time.Second)
	if f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("repeat within quiet period announced")
	}
	clock = clock.Add(2 * time.Second)
	if !f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("repeat after quiet period suppressed")
	}
}

func TestChangeFilterEmptyTextClearsState(t *testing.T) {
	f := NewChangeFilter(10 * time.Second)
	f.ShouldAnnounce("MILK 2%")
	if f.ShouldAnnounce("   ") {
		t.Fatalf("blank reading announced")
	}
	if !f.ShouldAnnounce("MILK 2%") {
		t.Fatalf("text re-entering view after a gap was suppressed")
	}
}
