// Package scanner implements the ScanSource port over a newline-delimited
// stream of barcode payloads. USB barcode scanners present as keyboards, so
// the daemon reads them as lines on stdin
package scanner

import (
	"bufio"
	"context"
	"io"
	"strings"
	"sync"

	dom "shopsense/internal/services/pipeline/domain"
)

// Source pumps lines from r into a channel so Next can honor ctx while the
// underlying read blocks
type Source struct {
	lines chan string
	done  chan struct{}
	quit  chan struct{}
	once  sync.Once
}

// New constructs the source and starts the reader goroutine. When r reaches
// EOF or fails, the device is treated as permanently gone
func New(r io.Reader) *Source {
	s := &Source{
		lines: make(chan string),
		done:  make(chan struct{}),
		quit:  make(chan struct{}),
	}
	go s.pump(r)
	return s
}

func (s *Source) pump(r io.Reader) {
	defer close(s.done)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		select {
		case s.lines <- line:
		case <-s.quit:
			return
		}
	}
}

// Next implements domain.ScanSource. ErrSourceGone is returned once the
// stream has ended or the source was closed
func (s *Source) Next(ctx context.Context) (string, error) {
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case <-s.done:
		return "", dom.ErrSourceGone
	case <-s.quit:
		return "", dom.ErrSourceGone
	case line := <-s.lines:
		return line, nil
	}
}

// Close releases the pump goroutine; a pending line is discarded. The
// underlying reader is not closed, that stays with its owner
func (s *Source) Close() error {
	s.once.Do(func() { close(s.quit) })
	return nil
}

var _ dom.ScanSource = (*Source)(nil)
