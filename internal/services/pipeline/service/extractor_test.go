package service

import (
	"context"
	"image"
	"reflect"
	"testing"

	perr "shopsense/internal/platform/errors"
	"shopsense/internal/platform/logger"
	dom "shopsense/internal/services/pipeline/domain"
)

type fakeRecognizer struct {
	spans []dom.Span
	err   error
	calls int
}

func (f *fakeRecognizer) Recognize(context.Context, image.Image) ([]dom.Span, error) {
	f.calls++
	return f.spans, f.err
}

func testFrame() image.Image {
	g := image.NewGray(image.Rect(0, 0, 4, 4))
	for i := range g.Pix {
		g.Pix[i] = uint8(i * 16)
	}
	return g
}

func TestExtractFiltersAtOrBelowFloor(t *testing.T) {
	rec := &fakeRecognizer{spans: []dom.Span{
		{Text: "MILK", Confidence: 0.92},
		{Text: "xj7", Confidence: 0.31},
		{Text: "noise", Confidence: 0.6},
		{Text: "2%", Confidence: 0.80},
	}}
	e := NewExtractor(rec, 0.6, *logger.Named("test"))

	got, ok, err := e.Extract(context.Background(), testFrame(), 70)
	if err != nil || !ok {
		t.Fatalf("Extract: ok=%v err=%v", ok, err)
	}
	if got.Content != "MILK 2%" {
		t.Fatalf("Content = %q, want %q (a span exactly at the floor must be dropped)", got.Content, "MILK 2%")
	}
	if got.Confidence != 0.80 {
		t.Fatalf("Confidence = %v, want the lowest kept span", got.Confidence)
	}
}

func TestExtractIsDeterministic(t *testing.T) {
	rec := &fakeRecognizer{spans: []dom.Span{{Text: "OATS", Confidence: 0.9}}}
	e := NewExtractor(rec, 0.6, *logger.Named("test"))
	frame := testFrame()

	a, okA, _ := e.Extract(context.Background(), frame, 70)
	b, okB, _ := e.Extract(context.Background(), frame, 70)
	if !okA || !okB {
		t.Fatalf("expected readings, got ok=%v,%v", okA, okB)
	}
	a.At = b.At
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("repeated extraction differs: %+v vs %+v", a, b)
	}
}

func TestExtractEmptyFrameIsNotAnError(t *testing.T) {
	e := NewExtractor(&fakeRecognizer{}, 0.6, *logger.Named("test"))
	_, ok, err := e.Extract(context.Background(), testFrame(), 70)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if ok {
		t.Fatalf("reading reported for a frame with no spans")
	}
}

func TestExtractRecognizerFaultReturnsEmptyPlusError(t *testing.T) {
	rec := &fakeRecognizer{err: perr.Unavailablef("glitch")}
	e := NewExtractor(rec, 0.6, *logger.Named("test"))
	_, ok, err := e.Extract(context.Background(), testFrame(), 70)
	if err == nil {
		t.Fatalf("expected fault")
	}
	if ok {
		t.Fatalf("reading reported alongside a fault")
	}
}
