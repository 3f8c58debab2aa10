package collab

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/participant"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
)

const digestSeparator = "\n\n---\n\n"

var phaseHeaders = map[PhaseKind]string{
	PhaseAnalysis: "📊 **Phase 1: Independent Analyses**",
	PhaseCritique: "🔍 **Phase 2: Peer Critiques**",
}

// PhaseExecutor runs one fan-out phase: every participant is called
// concurrently with its own prompt and the replies are collected in
// participant order.
type PhaseExecutor struct {
	logger logging.Logger
}

// NewPhaseExecutor creates a PhaseExecutor. A nil logger discards output.
func NewPhaseExecutor(logger logging.Logger) *PhaseExecutor {
	return &PhaseExecutor{logger: logging.OrNoOp(logger)}
}

// RunPhase builds every prompt, calls all participants concurrently and
// returns one Contribution per participant in the order of participants.
//
// A failing, panicking or canceled call yields a Contribution whose Text is
// "[Error: <detail>]"; it never fails the phase. RunPhase returns an error
// only when a prompt cannot be built, in which case no call is made.
// It returns after every call has finished.
func (e *PhaseExecutor) RunPhase(ctx context.Context, kind PhaseKind, participants []*participant.Participant, build PromptBuilder) ([]Contribution, error) {
	prompts := make([]string, len(participants))
	for i, p := range participants {
		prompt, err := build(p)
		if err != nil {
			return nil, fmt.Errorf("%s phase: %w", kind, err)
		}
		prompts[i] = prompt
	}

	start := time.Now()
	outputs := make([]Contribution, len(participants))

	g, gctx := errgroup.WithContext(ctx)
	for i, p := range participants {
		i, p := i, p
		g.Go(func() error {
			text, err := invoke(gctx, p, prompts[i])
			if err != nil {
				e.logger.Warn("collab.participant.failed", "phase", string(kind), "participant", p.Name(), "error", err.Error())
				text = errorMarker(err)
			}
			outputs[i] = Contribution{Author: p.Name(), Glyph: p.Glyph(), Text: text, Err: err}
			return nil
		})
	}
	_ = g.Wait()

	failures := lo.CountBy(outputs, func(c Contribution) bool { return c.Err != nil })
	e.logger.Info("collab.phase.complete",
		"phase", string(kind),
		"participants", len(participants),
		"failures", failures,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	return outputs, nil
}

// Digest renders the progress digest for a fan-out phase.
func Digest(kind PhaseKind, outputs []Contribution) string {
	entries := lo.Map(outputs, func(c Contribution, _ int) string {
		return fmt.Sprintf("%s **%s's %s**:\n%s", c.Glyph, c.Author, kind.label(), c.Text)
	})

	header, ok := phaseHeaders[kind]
	if !ok {
		header = "**" + kind.label() + "**"
	}

	return header + "\n\n" + strings.Join(entries, digestSeparator)
}

// invoke calls p and converts a panic in its handle into an error.
func invoke(ctx context.Context, p *participant.Participant, prompt string) (text string, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			text, err = "", fmt.Errorf("panic: %v", rec)
		}
	}()
	return p.Chat(ctx, prompt)
}

func errorMarker(err error) string {
	return fmt.Sprintf("[Error: %v]", err)
}
