// Package service implements the settings service: an atomically-swapped
// immutable snapshot with per-field validation on update
package service

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"
	"sync/atomic"

	"shopsense/internal/core/template"
	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/settings/domain"
)

// Service implements domain.AdminPort. Readers take the whole snapshot via
// an atomic pointer load, so no field-level locking is needed; updates are
// serialized by mu and published with a single pointer swap
type Service struct {
	mu   sync.Mutex
	cur  atomic.Pointer[dom.Snapshot]
	repo dom.Repo
	log  logger.Logger
}

// New constructs the service, loading the persisted snapshot when one
// exists and seeding defaults on first boot
func New(ctx context.Context, repo dom.Repo, log logger.Logger) (*Service, error) {
	s := &Service{repo: repo, log: log}

	snap := dom.Defaults()
	if repo != nil {
		stored, ok, err := repo.Load(ctx)
		if err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "settings: load")
		}
		if ok {
			snap = stored
		} else if err := repo.Save(ctx, snap); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeDB, "settings: seed defaults")
		}
	}
	s.cur.Store(&snap)
	return s, nil
}

// Get implements domain.ReaderPort
func (s *Service) Get() dom.Snapshot { return *s.cur.Load() }

// Update implements domain.AdminPort. Each field is checked independently
// against its domain; out-of-range values are rejected, never clamped, and
// unknown keys are rejected rather than ignored so a typo in the panel is
// visible instead of silently dropped
func (s *Service) Update(ctx context.Context, fields map[string]any) (dom.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	next := *s.cur.Load()
	var bad []string

	reject := func(key, reason string) { bad = append(bad, fmt.Sprintf("%s (%s)", key, reason)) }

	for key, raw := range fields {
		switch key {
		case "debug":
			v, ok := raw.(bool)
			if !ok {
				reject(key, "expected boolean")
				continue
			}
			next.Debug = v

		case "tts_speed_wpm":
			v, ok := asInt(raw)
			if !ok {
				reject(key, "expected integer")
				continue
			}
			if v < dom.MinTTSSpeedWpm || v > dom.MaxTTSSpeedWpm {
				reject(key, fmt.Sprintf("must be %d..%d", dom.MinTTSSpeedWpm, dom.MaxTTSSpeedWpm))
				continue
			}
			next.TTSSpeedWpm = v

		case "threshold":
			v, ok := asInt(raw)
			if !ok {
				reject(key, "expected integer")
				continue
			}
			if v < dom.MinThreshold || v > dom.MaxThreshold {
				reject(key, fmt.Sprintf("must be %d..%d", dom.MinThreshold, dom.MaxThreshold))
				continue
			}
			next.Threshold = v

		case "ocr_template":
			v, ok := raw.(string)
			if !ok {
				reject(key, "expected string")
				continue
			}
			if err := template.Validate(v, "text"); err != nil {
				reject(key, perr.WireFrom(err).Message)
				continue
			}
			next.OCRTemplate = v

		case "barcode_found_template":
			v, ok := raw.(string)
			if !ok {
				reject(key, "expected string")
				continue
			}
			if err := template.Validate(v, "product_name", "brand", "allergies"); err != nil {
				reject(key, perr.WireFrom(err).Message)
				continue
			}
			next.BarcodeFoundTemplate = v

		case "barcode_not_found_template":
			v, ok := raw.(string)
			if !ok {
				reject(key, "expected string")
				continue
			}
			if err := template.Validate(v, "barcode"); err != nil {
				reject(key, perr.WireFrom(err).Message)
				continue
			}
			next.BarcodeNotFoundTemplate = v

		default:
			reject(key, "unknown setting")
		}
	}

	if len(bad) > 0 {
		sort.Strings(bad)
		err := perr.Validationf("invalid settings: %s", strings.Join(bad, "; "))
		return *s.cur.Load(), perr.WithField(err, strings.SplitN(bad[0], " ", 2)[0])
	}

	// persist before publish so a write failure never leaves readers on a
	// snapshot that would vanish at the next boot
	if s.repo != nil {
		if err := s.repo.Save(ctx, next); err != nil {
			return *s.cur.Load(), perr.Wrap(err, perr.ErrorCodeDB, "settings: save")
		}
	}
	s.cur.Store(&next)
	s.log.Info().
		Int("tts_speed_wpm", next.TTSSpeedWpm).
		Int("threshold", next.Threshold).
		Bool("debug", next.Debug).
		Msg("settings updated")
	return next, nil
}

// asInt accepts JSON numbers (float64) and native ints, requiring an
// integral value either way
func asInt(raw any) (int, bool) {
	switch v := raw.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	default:
		return 0, false
	}
}
