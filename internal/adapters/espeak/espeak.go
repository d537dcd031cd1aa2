// Package espeak implements the Synthesizer port over the espeak-ng CLI
package espeak

import (
	"context"
	"os/exec"
	"strconv"

	perr "shopsense/internal/platform/errors"
	dom "shopsense/internal/services/pipeline/domain"
)

// Config for the espeak invocation
type Config struct {
	// Binary is the espeak executable, "espeak-ng" when empty
	Binary string
	// Voice passed as -v, "en" when empty
	Voice string
}

// Synthesizer shells out to espeak-ng per utterance, blocking until the
// audio has been rendered
type Synthesizer struct {
	cfg Config
}

// New constructs the synthesizer
func New(cfg Config) *Synthesizer {
	if cfg.Binary == "" {
		cfg.Binary = "espeak-ng"
	}
	if cfg.Voice == "" {
		cfg.Voice = "en"
	}
	return &Synthesizer{cfg: cfg}
}

// Speak implements domain.Synthesizer
func (s *Synthesizer) Speak(ctx context.Context, utterance string, wpm int) error {
	if utterance == "" {
		return nil
	}
	cmd := exec.CommandContext(ctx, s.cfg.Binary,
		"-s", strconv.Itoa(wpm),
		"-v", s.cfg.Voice,
		utterance,
	)
	if err := cmd.Run(); err != nil {
		return perr.Wrap(err, perr.ErrorCodeUnavailable, "espeak: run")
	}
	return nil
}

var _ dom.Synthesizer = (*Synthesizer)(nil)
