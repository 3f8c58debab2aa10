package collab

import (
	"context"
	"fmt"
	"time"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/logging"
	"github.com/hupe1980/roundtable/participant"
	"github.com/samber/lo"
)

// MinParticipants is the smallest roster a run accepts.
const MinParticipants = 2

// ParticipantSource supplies the participants for a run. Order is free;
// the synthesizer is the highest-priority participant, the earliest listed
// on ties. *participant.Registry implements it.
type ParticipantSource interface {
	Discover() []*participant.Participant
}

// Options configures a Collaborator.
type Options struct {
	// Logger defaults to a NoOp logger.
	Logger logging.Logger
	// Prompts defaults to DefaultPrompts. Empty fields fall back to the
	// built-in template for that phase.
	Prompts Prompts
}

// Collaborator sequences the analysis, critique and synthesis phases. It is
// safe for concurrent Collaborate calls.
type Collaborator struct {
	source   ParticipantSource
	executor *PhaseExecutor
	prompts  Prompts
	logger   logging.Logger
}

// New creates a Collaborator drawing participants from source.
func New(source ParticipantSource, optFns ...func(o *Options)) *Collaborator {
	opts := Options{
		Logger:  logging.NoOpLogger{},
		Prompts: DefaultPrompts(),
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	defaults := DefaultPrompts()
	if opts.Prompts.Analysis == "" {
		opts.Prompts.Analysis = defaults.Analysis
	}
	if opts.Prompts.Critique == "" {
		opts.Prompts.Critique = defaults.Critique
	}
	if opts.Prompts.Synthesis == "" {
		opts.Prompts.Synthesis = defaults.Synthesis
	}

	logger := logging.OrNoOp(opts.Logger)

	return &Collaborator{
		source:   source,
		executor: NewPhaseExecutor(logger),
		prompts:  opts.Prompts,
		logger:   logger,
	}
}

// ProviderCount returns the number of usable participants.
func (c *Collaborator) ProviderCount() int {
	return len(c.source.Discover())
}

// Collaborate runs the three-phase protocol on task and reports progress to
// sink (nil means NopSink). It always returns a Result and never panics:
//   - fewer than MinParticipants participants: Success false, State Rejected
//   - participant or synthesizer failures are contained and the run succeeds
//   - a fault outside the individual calls: Success false, State Faulted,
//     with the phases completed so far kept in Phases
func (c *Collaborator) Collaborate(ctx context.Context, task string, sink ProgressSink) *Result {
	start := time.Now()
	if sink == nil {
		sink = NopSink{}
	}

	res := &Result{
		ID:     core.NewID(),
		Task:   task,
		Phases: []PhaseRecord{},
		State:  StateIdle,
	}
	defer func() { res.Duration = time.Since(start) }()

	logger := logging.With(c.logger, "run_id", res.ID)

	res.State = StateValidatingParticipants
	participants := c.source.Discover()
	res.ParticipantsUsed = participant.Names(participants)

	if len(participants) < MinParticipants {
		res.State = StateRejected
		res.Error = fmt.Sprintf("Need at least %d providers configured for collaboration. Found: %d", MinParticipants, len(participants))
		logger.Warn("collab.rejected", "participants", len(participants))
		return res
	}

	synthesizer := selectSynthesizer(participants)
	logger.Info("collab.start", "participants", len(participants), "synthesizer", synthesizer.Name())

	if err := c.run(ctx, logger, res, participants, synthesizer, sink); err != nil {
		logger.Error("collab.faulted", "state", res.State.String(), "error", err.Error())
		res.State = StateFaulted
		res.Error = err.Error()
		return res
	}

	res.Success = true
	res.State = StateCompleted
	logger.Info("collab.complete", "duration_ms", time.Since(start).Milliseconds())

	return res
}

// run advances res through the phases. Any returned error is a fault.
func (c *Collaborator) run(ctx context.Context, logger logging.Logger, res *Result, participants []*participant.Participant, synthesizer *participant.Participant, sink ProgressSink) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic during %s: %v", res.State, rec)
		}
	}()

	res.State = StateAnalysis
	analyses, err := c.fanOut(ctx, logger, PhaseAnalysis, participants, templateBuilder(c.prompts.Analysis, res.Task, nil, nil), sink)
	if err != nil {
		return err
	}
	res.Phases = append(res.Phases, PhaseRecord{Kind: PhaseAnalysis, Outputs: analyses})

	res.State = StateCritique
	critiques, err := c.fanOut(ctx, logger, PhaseCritique, participants, templateBuilder(c.prompts.Critique, res.Task, analyses, nil), sink)
	if err != nil {
		return err
	}
	res.Phases = append(res.Phases, PhaseRecord{Kind: PhaseCritique, Outputs: critiques})

	res.State = StateSynthesis
	synthesis, err := c.synthesize(ctx, logger, res.Task, synthesizer, analyses, critiques, sink)
	if err != nil {
		return err
	}
	res.Phases = append(res.Phases, synthesis)
	res.FinalText = synthesis.Text

	return nil
}

// selectSynthesizer picks the highest-priority participant, first on ties.
func selectSynthesizer(participants []*participant.Participant) *participant.Participant {
	return lo.MaxBy(participants, func(a, b *participant.Participant) bool {
		return a.Priority() > b.Priority()
	})
}

func (c *Collaborator) fanOut(ctx context.Context, logger logging.Logger, kind PhaseKind, participants []*participant.Participant, build PromptBuilder, sink ProgressSink) ([]Contribution, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s phase: %w", kind, err)
	}

	outputs, err := c.executor.RunPhase(ctx, kind, participants, build)
	if err != nil {
		return nil, err
	}

	notify(ctx, logger, sink, "", kind, Digest(kind, outputs))

	return outputs, nil
}

// synthesize asks the synthesizer to merge everything. A failed call is
// replaced by a fallback that quotes the analyses.
func (c *Collaborator) synthesize(ctx context.Context, logger logging.Logger, task string, synthesizer *participant.Participant, analyses, critiques []Contribution, sink ProgressSink) (PhaseRecord, error) {
	if err := ctx.Err(); err != nil {
		return PhaseRecord{}, fmt.Errorf("%s phase: %w", PhaseSynthesis, err)
	}

	prompt, err := templateBuilder(c.prompts.Synthesis, task, analyses, critiques)(synthesizer)
	if err != nil {
		return PhaseRecord{}, fmt.Errorf("%s phase: %w", PhaseSynthesis, err)
	}

	start := time.Now()
	text, callErr := invoke(ctx, synthesizer, prompt)
	if callErr != nil {
		logger.Warn("collab.synthesis.failed", "participant", synthesizer.Name(), "error", callErr.Error())
		text = fmt.Sprintf("[Synthesis failed: %v]\n\nBest proposals:\n%s", callErr, quote(PhaseAnalysis, analyses))
	}

	logger.Info("collab.phase.complete",
		"phase", string(PhaseSynthesis),
		"participant", synthesizer.Name(),
		"fallback", callErr != nil,
		"duration_ms", time.Since(start).Milliseconds(),
	)

	digest := fmt.Sprintf("✅ **Final Synthesis** (by %s %s):\n\n%s", synthesizer.Glyph(), synthesizer.Name(), text)
	notify(ctx, logger, sink, synthesizer.Name(), PhaseSynthesis, digest)

	return PhaseRecord{
		Kind:   PhaseSynthesis,
		Author: synthesizer.Name(),
		Text:   text,
		Err:    callErr,
	}, nil
}

// notify delivers a digest. Sink errors and panics are logged and dropped.
func notify(ctx context.Context, logger logging.Logger, sink ProgressSink, author string, kind PhaseKind, digest string) {
	defer func() {
		if rec := recover(); rec != nil {
			logger.Warn("collab.progress.failed", "phase", string(kind), "error", fmt.Sprint("panic: ", rec))
		}
	}()

	if err := sink.Notify(ctx, author, string(kind), digest); err != nil {
		logger.Warn("collab.progress.failed", "phase", string(kind), "error", err.Error())
	}
}
