package service

import (
	"sync"
	"time"

	"shopsense/internal/core/textnorm"
)

// ChangeFilter suppresses re-announcing the same reading every cycle while
// an item is held steady in view. It remembers the last announced text and
// allows a repeat only after the quiet period has elapsed
type ChangeFilter struct {
	mu     sync.Mutex
	quiet  time.Duration
	last   string
	lastAt time.Time
	now    func() time.Time
}

// NewChangeFilter constructs the filter with the given quiet period
func NewChangeFilter(quiet time.Duration) *ChangeFilter {
	return &ChangeFilter{quiet: quiet, now: time.Now}
}

// ShouldAnnounce reports whether text warrants an announcement: it differs
// from the last announced text under canonical compare, or the quiet period
// has elapsed since the same text was last announced. On true the filter
// records text as last-announced immediately; that record is never rolled
// back when a downstream announcement fails, so a broken audio path cannot
// cause runaway repetition. Empty text clears the remembered state
func (f *ChangeFilter) ShouldAnnounce(text string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	canon := textnorm.Canonical(text)
	if canon == "" {
		f.last = ""
		return false
	}

	now := f.now()
	if canon == f.last && now.Sub(f.lastAt) < f.quiet {
		return false
	}
	f.last = canon
	f.lastAt = now
	return true
}
