package collab

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInsufficientParticipants is returned by Result.Err when fewer than
	// two participants were usable.
	ErrInsufficientParticipants = errors.New("insufficient participants")
	// ErrFaulted is returned by Result.Err when a run ended on an
	// uncontained fault.
	ErrFaulted = errors.New("collaboration faulted")
)

// PhaseKind labels a protocol phase.
type PhaseKind string

const (
	PhaseAnalysis  PhaseKind = "analysis"
	PhaseCritique  PhaseKind = "critique"
	PhaseSynthesis PhaseKind = "synthesis"
)

// Contribution is one participant's output in a fan-out phase. When the call
// failed Err is set and Text holds the error marker.
type Contribution struct {
	Author string
	Glyph  string
	Text   string
	Err    error
}

// PhaseRecord is a completed phase. Analysis and critique records carry
// Outputs in participant priority order; a synthesis record carries Author
// and Text, with Err set when Text is the fallback.
type PhaseRecord struct {
	Kind    PhaseKind
	Outputs []Contribution

	Author string
	Text   string
	Err    error
}

// Output returns the text contributed by the named participant.
func (r PhaseRecord) Output(name string) (string, bool) {
	for _, c := range r.Outputs {
		if c.Author == name {
			return c.Text, true
		}
	}
	return "", false
}

// Texts returns the outputs keyed by participant name.
func (r PhaseRecord) Texts() map[string]string {
	out := make(map[string]string, len(r.Outputs))
	for _, c := range r.Outputs {
		out[c.Author] = c.Text
	}
	return out
}

// Failures counts the contributions whose call failed.
func (r PhaseRecord) Failures() int {
	n := 0
	for _, c := range r.Outputs {
		if c.Err != nil {
			n++
		}
	}
	return n
}

// Result is the outcome of one Collaborate call. It is not modified after
// Collaborate returns.
type Result struct {
	// ID correlates the run with its log lines.
	ID               string
	Task             string
	Phases           []PhaseRecord
	FinalText        string
	ParticipantsUsed []string
	Success          bool
	// Error is empty unless the run was rejected or faulted.
	Error    string
	State    State
	Duration time.Duration
}

// Phase returns the record for kind, if that phase completed.
func (r *Result) Phase(kind PhaseKind) (PhaseRecord, bool) {
	for _, p := range r.Phases {
		if p.Kind == kind {
			return p, true
		}
	}
	return PhaseRecord{}, false
}

// Err converts an unsuccessful result into an error wrapping
// ErrInsufficientParticipants or ErrFaulted. It returns nil on success.
func (r *Result) Err() error {
	if r.Success {
		return nil
	}
	if r.State == StateRejected {
		return fmt.Errorf("%w: %s", ErrInsufficientParticipants, r.Error)
	}
	return fmt.Errorf("%w: %s", ErrFaulted, r.Error)
}
