package service

import (
	"context"
	stderrs "errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cenkalti/backoff/v4"

	"shopsense/internal/core/template"
	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/pipeline/domain"
)

// Config tunes the coordinator at construction time. These are bootstrap
// knobs, not live settings; the live-tunable values come from the settings
// snapshot each iteration
type Config struct {
	// QuietPeriod before the change filter allows re-announcing identical text
	QuietPeriod time.Duration
	// ConfidenceFloor below which recognized spans are dropped
	ConfidenceFloor float64
	// QueueCap bounds the announcement queue
	QueueCap int
	// PromoteBacklog is the backlog beyond which barcode items jump the queue
	PromoteBacklog int
}

// Coordinator owns the three pipeline loops (frame sampling, scan listening,
// announcement draining) and isolates their faults: a transient fault
// restarts the owning loop with backoff, a fatal device fault stops only
// that loop and flags the path degraded
type Coordinator struct {
	ports     dom.Ports
	extractor *Extractor
	filter    *ChangeFilter
	announcer *Announcer
	listener  *Listener
	log       logger.Logger

	mu     sync.Mutex
	state  dom.State
	cancel context.CancelFunc
	wg     sync.WaitGroup

	ocrDegraded     atomic.Bool
	barcodeDegraded atomic.Bool
	frames          atomic.Uint64
	scans           atomic.Uint64
}

// New constructs the coordinator and its subcomponents around the given ports
func New(ports dom.Ports, cfg Config, log logger.Logger) *Coordinator {
	return &Coordinator{
		ports:     ports,
		extractor: NewExtractor(ports.OCR, cfg.ConfidenceFloor, log),
		filter:    NewChangeFilter(cfg.QuietPeriod),
		announcer: NewAnnouncer(ports.Speech, ports.Settings, cfg.QueueCap, cfg.PromoteBacklog, log),
		listener:  NewListener(ports.Lookup, ports.Settings, log),
		log:       log,
	}
}

// Start transitions STOPPED to RUNNING, spinning up the three loops.
// Starting while running is a conflict
func (c *Coordinator) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == dom.Running {
		return perr.Conflictf("pipeline already running")
	}

	ctx, cancel := context.WithCancel(context.Background())
	c.cancel = cancel
	c.state = dom.Running
	c.ocrDegraded.Store(false)
	c.barcodeDegraded.Store(false)

	c.wg.Add(3)
	go func() {
		defer c.wg.Done()
		c.runLoop(ctx, "ocr", c.frameLoop, &c.ocrDegraded)
	}()
	go func() {
		defer c.wg.Done()
		c.runLoop(ctx, "barcode", c.scanLoop, &c.barcodeDegraded)
	}()
	go func() {
		defer c.wg.Done()
		c.announcer.Run(ctx)
	}()

	c.log.Info().Msg("pipeline started")
	return nil
}

// Stop signals all loops to exit after their current unit of work and joins
// them, so no speech output dangles past return. Stopping while stopped is
// a no-op
func (c *Coordinator) Stop() {
	c.mu.Lock()
	if c.state != dom.Running {
		c.mu.Unlock()
		return
	}
	c.state = dom.Stopped
	cancel := c.cancel
	c.mu.Unlock()

	cancel()
	c.wg.Wait()
	c.log.Info().Msg("pipeline stopped")
}

// Health reports the coordinator state and per-path degradation
func (c *Coordinator) Health() dom.Health {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()
	return dom.Health{
		State:           state,
		OCRDegraded:     c.ocrDegraded.Load(),
		BarcodeDegraded: c.barcodeDegraded.Load(),
	}
}

// Announce exposes the queue to callers outside the sensing loops, used by
// the panel to test audio output
func (c *Coordinator) Announce(ann dom.Announcement) { c.announcer.Enqueue(ann) }

// runLoop drives fn until ctx is done, restarting it with exponential
// backoff on transient faults. ErrSourceGone is fatal for this loop only:
// the path is flagged degraded and the loop exits while the rest of the
// pipeline keeps running
func (c *Coordinator) runLoop(ctx context.Context, name string, fn func(context.Context) error, degraded *atomic.Bool) {
	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = 0

	for {
		started := time.Now()
		err := fn(ctx)
		if ctx.Err() != nil || err == nil {
			return
		}
		if stderrs.Is(err, dom.ErrSourceGone) {
			degraded.Store(true)
			c.log.Error().Err(err).Str("loop", name).Msg("device gone, path degraded")
			return
		}

		// a loop that ran cleanly for a while earns a fresh backoff window
		if time.Since(started) > bo.MaxInterval {
			bo.Reset()
		}
		wait := bo.NextBackOff()
		c.log.Warn().Err(err).Str("loop", name).Dur("backoff", wait).Msg("loop fault, restarting")
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
		}
	}
}

// frameLoop samples frames, extracts text, and enqueues announcements for
// readings that pass the change filter. The settings snapshot is re-read at
// the top of every iteration so tuning applies within one frame
func (c *Coordinator) frameLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		frame, err := c.ports.Frames.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		snap := c.ports.Settings.Get()
		reading, ok, err := c.extractor.Extract(ctx, frame, snap.Threshold)
		if err != nil {
			return err
		}
		n := c.frames.Add(1)
		if !ok {
			continue
		}

		if c.filter.ShouldAnnounce(reading.Content) {
			c.announcer.Enqueue(dom.Announcement{
				Utterance: template.Render(snap.OCRTemplate, map[string]string{"text": reading.Content}),
				Priority:  dom.PriorityOCR,
				CreatedAt: reading.At,
			})
			if snap.Debug {
				c.log.Debug().
					Uint64("frames", n).
					Float64("confidence", reading.Confidence).
					Str("text", reading.Content).
					Msg("ocr announcement")
			}
		}
	}
}

// scanLoop consumes barcode scans and enqueues the resolved announcement.
// Every scan produces audio feedback, found or not
func (c *Coordinator) scanLoop(ctx context.Context) error {
	for {
		if ctx.Err() != nil {
			return nil
		}
		code, err := c.ports.Scans.Next(ctx)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}

		ann := c.listener.Resolve(ctx, code)
		c.announcer.Enqueue(ann)

		n := c.scans.Add(1)
		if c.ports.Settings.Get().Debug {
			c.log.Debug().Uint64("scans", n).Str("barcode", code).Msg("scan resolved")
		}
	}
}

// Counters returns the frames sampled and scans resolved since construction
func (c *Coordinator) Counters() (frames, scans uint64) {
	return c.frames.Load(), c.scans.Load()
}
