// Package service implements the sensing pipeline: extraction, change
// filtering, barcode resolution, the announcement queue, and the coordinator
// that drives them
package service

import (
	"context"
	"image"
	"strings"
	"time"

	"shopsense/internal/core/vision"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/pipeline/domain"
)

// Extractor turns a raw frame into at most one confidence-filtered reading.
// Preprocessing is deterministic for a fixed (frame, threshold), so repeated
// calls produce identical output
type Extractor struct {
	rec   dom.Recognizer
	floor float64
	log   logger.Logger
	now   func() time.Time
}

// NewExtractor constructs the extractor with the given confidence floor
func NewExtractor(rec dom.Recognizer, floor float64, log logger.Logger) *Extractor {
	return &Extractor{rec: rec, floor: floor, log: log, now: time.Now}
}

// Extract preprocesses frame at threshold and runs recognition. Spans at or
// below the confidence floor are dropped. An empty result is a normal
// outcome; a recognizer failure also returns empty plus the error so the
// caller treats it as a transient fault rather than aborting
func (e *Extractor) Extract(ctx context.Context, frame image.Image, threshold int) (dom.RecognizedText, bool, error) {
	pre := vision.Preprocess(frame, threshold)

	spans, err := e.rec.Recognize(ctx, pre)
	if err != nil {
		e.log.Warn().Err(err).Msg("recognizer fault")
		return dom.RecognizedText{}, false, err
	}

	var kept []string
	var lowest float64 = 1
	for _, s := range spans {
		if s.Confidence <= e.floor {
			continue
		}
		text := strings.TrimSpace(s.Text)
		if text == "" {
			continue
		}
		kept = append(kept, text)
		if s.Confidence < lowest {
			lowest = s.Confidence
		}
	}
	if len(kept) == 0 {
		return dom.RecognizedText{}, false, nil
	}

	return dom.RecognizedText{
		Content:    strings.Join(kept, " "),
		Confidence: lowest,
		At:         e.now(),
	}, true, nil
}
