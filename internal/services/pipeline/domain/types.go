// Package domain defines the types and ports of the sensing pipeline
package domain

import (
	"time"

	perr "shopsense/internal/platform/errors"
)

// Priority orders announcements when the queue is backlogged
type Priority uint8

const (
	// PriorityOCR is the continuous text-reading path
	PriorityOCR Priority = iota

	// PriorityBarcode is the discrete, user-initiated scan path
	PriorityBarcode
)

// RecognizedText is one confidence-filtered reading from a frame
// It lives only between the extractor and the change filter
type RecognizedText struct {
	Content    string
	Confidence float64
	At         time.Time
}

// Span is a single recognized fragment with its confidence in [0,1]
type Span struct {
	Text       string
	Confidence float64
}

// Announcement is a queued utterance awaiting synthesis
// Ownership transfers to the announcer on enqueue
type Announcement struct {
	Utterance string
	Priority  Priority
	CreatedAt time.Time
}

// State of the coordinator
type State uint8

const (
	// Stopped means no loops are running
	Stopped State = iota

	// Running means the frame, scan, and drain loops are live
	Running
)

// String returns the state name for logs
func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "stopped"
}

// MarshalJSON encodes the state by name so the panel never sees raw enums
func (s State) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Health reports the coordinator state plus per-path degradation after a
// fatal device fault. A degraded path has stopped; the other keeps running
type Health struct {
	State           State `json:"state"`
	OCRDegraded     bool  `json:"ocr_degraded"`
	BarcodeDegraded bool  `json:"barcode_degraded"`
}

// ErrSourceGone marks a fatal device fault: the device is permanently gone
// and the owning loop must stop rather than retry
var ErrSourceGone = perr.Unavailablef("source gone")
