// Package camera implements the FrameSource port over an MJPEG multipart
// HTTP stream, the format served by common IP and streaming cameras
package camera

import (
	"context"
	"image"
	"image/jpeg"
	"mime"
	"mime/multipart"
	"net"
	"net/http"
	"time"

	perr "shopsense/internal/platform/errors"
	dom "shopsense/internal/services/pipeline/domain"
)

// Config for the stream connection
type Config struct {
	// URL of the MJPEG stream
	URL string
	// DialTimeout bounds the initial connection, 5s when zero
	DialTimeout time.Duration
}

// Source lazily dials the stream on first Next and redials after any fault,
// since restart-on-fault is owned by the coordinator calling back in
type Source struct {
	cfg    Config
	client *http.Client

	resp   *http.Response
	reader *multipart.Reader
}

// New constructs the source; no connection is made until Next
func New(cfg Config) *Source {
	if cfg.DialTimeout <= 0 {
		cfg.DialTimeout = 5 * time.Second
	}
	// the timeout covers dial and response headers only; the stream body is
	// long-lived and bounded by the request context instead
	return &Source{
		cfg: cfg,
		client: &http.Client{
			Transport: &http.Transport{
				DialContext:           (&net.Dialer{Timeout: cfg.DialTimeout}).DialContext,
				ResponseHeaderTimeout: cfg.DialTimeout,
			},
		},
	}
}

// Next implements domain.FrameSource, returning one decoded frame per call
func (s *Source) Next(ctx context.Context) (image.Image, error) {
	if s.reader == nil {
		if err := s.dial(ctx); err != nil {
			return nil, err
		}
	}

	part, err := s.reader.NextPart()
	if err != nil {
		s.reset()
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "camera: next part")
	}
	frame, err := jpeg.Decode(part)
	_ = part.Close()
	if err != nil {
		// a single corrupt frame does not warrant a redial
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "camera: decode frame")
	}
	return frame, nil
}

func (s *Source) dial(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cfg.URL, nil)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeInvalidArgument, "camera: bad stream url")
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "camera: dial")
	}
	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		return perr.Unavailablef("camera: stream returned status %d", resp.StatusCode)
	}

	mediaType, params, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil || mediaType != "multipart/x-mixed-replace" || params["boundary"] == "" {
		_ = resp.Body.Close()
		// the endpoint exists but is not an MJPEG stream; retrying will not help
		return dom.ErrSourceGone
	}

	s.resp = resp
	s.reader = multipart.NewReader(resp.Body, params["boundary"])
	return nil
}

func (s *Source) reset() {
	if s.resp != nil {
		_ = s.resp.Body.Close()
	}
	s.resp = nil
	s.reader = nil
}

// Close releases the stream connection
func (s *Source) Close() error {
	s.reset()
	return nil
}

var _ dom.FrameSource = (*Source)(nil)
