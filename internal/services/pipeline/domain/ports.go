package domain

import (
	"context"
	"image"

	productsdom "shopsense/internal/services/products/domain"
	settingsdom "shopsense/internal/services/settings/domain"
)

// FrameSource yields raw camera frames. Next blocks until a frame is
// available, ctx is done, or the source faults. ErrSourceGone means the
// device is permanently gone; any other error is a transient fault and the
// coordinator owns the retry
type FrameSource interface {
	Next(ctx context.Context) (image.Image, error)
}

// Recognizer extracts text spans from a preprocessed frame
type Recognizer interface {
	Recognize(ctx context.Context, frame image.Image) ([]Span, error)
}

// ScanSource yields one opaque barcode string per physical scan, with the
// same fault contract as FrameSource
type ScanSource interface {
	Next(ctx context.Context) (string, error)
}

// Synthesizer renders one utterance to audio, blocking for its duration
type Synthesizer interface {
	Speak(ctx context.Context, utterance string, wpm int) error
}

// Ports bundles the device adapters and cross-module reads the pipeline
// needs; the coordinator owns everything else
type Ports struct {
	Frames   FrameSource
	Scans    ScanSource
	OCR      Recognizer
	Speech   Synthesizer
	Settings settingsdom.ReaderPort
	Lookup   productsdom.LookupPort
}
