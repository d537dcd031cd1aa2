package service

import (
	"context"
	"sync"

	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/pipeline/domain"
	settingsdom "shopsense/internal/services/settings/domain"
)

// Announcer is the single convergence point of both sensing paths: a bounded
// queue with one draining consumer. Enqueue never blocks; under sustained
// overload the oldest queued item is dropped, since a stale announcement is
// worse than silence
type Announcer struct {
	mu    sync.Mutex
	queue []dom.Announcement

	capacity int
	promote  int

	notify   chan struct{}
	speech   dom.Synthesizer
	settings settingsdom.ReaderPort
	log      logger.Logger

	spoken  uint64
	dropped uint64
}

// NewAnnouncer constructs the announcer. capacity bounds the queue; promote
// is the backlog length beyond which a barcode announcement jumps ahead of
// queued OCR items
func NewAnnouncer(speech dom.Synthesizer, settings settingsdom.ReaderPort, capacity, promote int, log logger.Logger) *Announcer {
	if capacity < 1 {
		capacity = 1
	}
	return &Announcer{
		capacity: capacity,
		promote:  promote,
		notify:   make(chan struct{}, 1),
		speech:   speech,
		settings: settings,
		log:      log,
	}
}

// Enqueue admits a and returns immediately. Ordering is FIFO by creation;
// a barcode announcement is promoted past queued OCR items only when the
// backlog exceeds the promotion bound, keeping scan feedback low-latency
// under load without starving the reading path in normal operation
func (a *Announcer) Enqueue(ann dom.Announcement) {
	a.mu.Lock()
	if len(a.queue) == a.capacity {
		a.queue = a.queue[1:]
		a.dropped++
	}

	if ann.Priority == dom.PriorityBarcode && len(a.queue) > a.promote {
		// insert after the last queued barcode item so scans stay FIFO
		// among themselves
		at := 0
		for i, q := range a.queue {
			if q.Priority == dom.PriorityBarcode {
				at = i + 1
			}
		}
		a.queue = append(a.queue, dom.Announcement{})
		copy(a.queue[at+1:], a.queue[at:])
		a.queue[at] = ann
	} else {
		a.queue = append(a.queue, ann)
	}
	a.mu.Unlock()

	select {
	case a.notify <- struct{}{}:
	default:
	}
}

// Run drains the queue until ctx is done. The speech rate is read fresh from
// the settings snapshot per utterance, never frozen at enqueue time, and the
// utterance in flight when ctx is cancelled is finished rather than cut off
func (a *Announcer) Run(ctx context.Context) {
	for {
		ann, ok := a.dequeue()
		if !ok {
			select {
			case <-ctx.Done():
				return
			case <-a.notify:
				continue
			}
		}

		wpm := a.settings.Get().TTSSpeedWpm
		if err := a.speech.Speak(context.WithoutCancel(ctx), ann.Utterance, wpm); err != nil {
			a.log.Warn().Err(err).Str("utterance", ann.Utterance).Msg("synthesis failed")
		} else {
			a.mu.Lock()
			a.spoken++
			a.mu.Unlock()
		}

		select {
		case <-ctx.Done():
			return
		default:
		}
	}
}

// Counters returns the spoken and dropped totals since construction
func (a *Announcer) Counters() (spoken, dropped uint64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.spoken, a.dropped
}

// Backlog returns the current queue length
func (a *Announcer) Backlog() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.queue)
}

func (a *Announcer) dequeue() (dom.Announcement, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.queue) == 0 {
		return dom.Announcement{}, false
	}
	ann := a.queue[0]
	a.queue = a.queue[1:]
	return ann, true
}
