package participant

import (
	"context"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
	"github.com/samber/lo"
)

// Participant is a configured, priority-ranked chat endpoint. It is immutable
// once constructed.
type Participant struct {
	kind     Kind
	name     string
	glyph    string
	modelID  string
	priority int
	handle   model.Model
}

// New constructs a Participant. Registries use it during discovery; tests and
// custom registries may call it directly.
func New(kind Kind, name, glyph, modelID string, priority int, handle model.Model) *Participant {
	return &Participant{
		kind:     kind,
		name:     name,
		glyph:    glyph,
		modelID:  modelID,
		priority: priority,
		handle:   handle,
	}
}

// Kind returns the participant kind.
func (p *Participant) Kind() Kind { return p.kind }

// Name returns the display name.
func (p *Participant) Name() string { return p.name }

// Glyph returns the display glyph.
func (p *Participant) Glyph() string { return p.glyph }

// Model returns the model id sent with every request.
func (p *Participant) Model() string { return p.modelID }

// Priority returns the synthesis priority.
func (p *Participant) Priority() int { return p.priority }

// Handle returns the underlying chat capability.
func (p *Participant) Handle() model.Model { return p.handle }

// Chat sends prompt as a single user message and returns the reply text.
func (p *Participant) Chat(ctx context.Context, prompt string) (string, error) {
	resp, err := model.Chat(ctx, p.handle, model.Request{
		Model:    p.modelID,
		Contents: []core.Content{core.NewUserText(prompt)},
	})
	if err != nil {
		return "", err
	}
	return resp.Text(), nil
}

// Names returns the display names of ps in order.
func Names(ps []*Participant) []string {
	return lo.Map(ps, func(p *Participant, _ int) string { return p.Name() })
}
