// Package tesseract implements the Recognizer port over the tesseract CLI,
// feeding the preprocessed frame as PNG on stdin and parsing TSV output
package tesseract

import (
	"bufio"
	"bytes"
	"context"
	"image"
	"image/png"
	"io"
	"os/exec"
	"strconv"
	"strings"

	perr "shopsense/internal/platform/errors"
	dom "shopsense/internal/services/pipeline/domain"
)

// Config for the tesseract invocation
type Config struct {
	// Binary is the tesseract executable, "tesseract" when empty
	Binary string
	// Language passed as -l, "eng" when empty
	Language string
	// PSM is the page segmentation mode, 6 (uniform text block) when zero
	PSM int
}

// Recognizer shells out to tesseract per frame
type Recognizer struct {
	cfg Config
}

// New constructs the recognizer
func New(cfg Config) *Recognizer {
	if cfg.Binary == "" {
		cfg.Binary = "tesseract"
	}
	if cfg.Language == "" {
		cfg.Language = "eng"
	}
	if cfg.PSM == 0 {
		cfg.PSM = 6
	}
	return &Recognizer{cfg: cfg}
}

// Recognize implements domain.Recognizer
func (r *Recognizer) Recognize(ctx context.Context, frame image.Image) ([]dom.Span, error) {
	var in bytes.Buffer
	if err := png.Encode(&in, frame); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "tesseract: encode frame")
	}

	cmd := exec.CommandContext(ctx, r.cfg.Binary,
		"stdin", "stdout",
		"-l", r.cfg.Language,
		"--psm", strconv.Itoa(r.cfg.PSM),
		"tsv",
	)
	cmd.Stdin = &in

	out, err := cmd.Output()
	if err != nil {
		if _, notFound := err.(*exec.Error); notFound {
			return nil, dom.ErrSourceGone
		}
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "tesseract: run")
	}
	return parseTSV(bytes.NewReader(out))
}

// parseTSV reads tesseract TSV output: one row per detected unit, word rows
// carrying a 0-100 confidence in column 11 and the text in column 12.
// Non-word rows have confidence -1 and are skipped
func parseTSV(r io.Reader) ([]dom.Span, error) {
	var spans []dom.Span
	sc := bufio.NewScanner(r)
	first := true
	for sc.Scan() {
		if first {
			// header row
			first = false
			continue
		}
		cols := strings.Split(sc.Text(), "\t")
		if len(cols) < 12 {
			continue
		}
		conf, err := strconv.ParseFloat(cols[10], 64)
		if err != nil || conf < 0 {
			continue
		}
		text := strings.TrimSpace(cols[11])
		if text == "" {
			continue
		}
		spans = append(spans, dom.Span{Text: text, Confidence: conf / 100})
	}
	if err := sc.Err(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "tesseract: read tsv")
	}
	return spans, nil
}

var _ dom.Recognizer = (*Recognizer)(nil)
