package collab

import (
	"fmt"
	"strings"

	"github.com/hupe1980/roundtable/internal/util"
	"github.com/hupe1980/roundtable/participant"
	"github.com/samber/lo"
)

// Prompts holds the text/template sources for the three phases. Templates
// see these keys:
//
//	.task       the task as given to Collaborate
//	.name       the display name of the participant being prompted
//	.analyses   analysis outputs, each quoted as "=== <name>'s Analysis ===\n<text>"
//	.critiques  critique outputs, quoted the same way with "Critique"
//
// Referencing any other key fails the run.
type Prompts struct {
	Analysis  string
	Critique  string
	Synthesis string
}

// DefaultPrompts returns the built-in phase prompts.
func DefaultPrompts() Prompts {
	return Prompts{
		Analysis:  analysisPrompt,
		Critique:  critiquePrompt,
		Synthesis: synthesisPrompt,
	}
}

const analysisPrompt = `You are participating in a multi-model collaboration to solve a task.
This is Phase 1: Independent Analysis.

TASK: {{.task}}

Provide your analysis and proposed solution. Be thorough and specific.
Consider:
- Key requirements and constraints
- Potential approaches and trade-offs
- Your recommended solution with reasoning

Other AI models will also analyze this task independently. Your response will be shared with them in the next phase.`

const critiquePrompt = `You are participating in a multi-model collaboration.
This is Phase 2: Peer Critique.

ORIGINAL TASK: {{.task}}

Here are all the analyses from Phase 1:

{{.analyses}}

Now provide your critique of ALL proposals (including your own):
1. **Strengths**: What good ideas or approaches do you see?
2. **Weaknesses**: What gaps, issues, or concerns do you identify?
3. **Improvements**: What specific improvements would you suggest?
4. **Best elements**: Which ideas from any proposal should definitely be included in the final solution?

Be constructive and specific. Your critique will help create an optimal final solution.`

const synthesisPrompt = `You are the synthesizer in a multi-model collaboration.
This is Phase 3: Final Synthesis.

ORIGINAL TASK: {{.task}}

=== PHASE 1: INDEPENDENT ANALYSES ===
{{.analyses}}

=== PHASE 2: PEER CRITIQUES ===
{{.critiques}}

Now create the FINAL SOLUTION that:
1. Incorporates the best ideas from all analyses
2. Addresses concerns raised in critiques
3. Provides a complete, actionable answer
4. Is better than any single proposal alone

Your synthesis should be comprehensive and represent the collective intelligence of all participating models. This is the answer that will be delivered to the user.`

// PromptBuilder renders the prompt sent to one participant.
type PromptBuilder func(p *participant.Participant) (string, error)

// templateBuilder renders tmpl for each participant with the shared phase
// context. Quoting is done once per phase.
func templateBuilder(tmpl, task string, analyses, critiques []Contribution) PromptBuilder {
	quotedAnalyses := quote(PhaseAnalysis, analyses)
	quotedCritiques := quote(PhaseCritique, critiques)

	return func(p *participant.Participant) (string, error) {
		prompt, err := util.RenderTemplate(tmpl, map[string]any{
			"task":      task,
			"name":      p.Name(),
			"analyses":  quotedAnalyses,
			"critiques": quotedCritiques,
		})
		if err != nil {
			return "", fmt.Errorf("prompt for %s: %w", p.Name(), err)
		}
		return prompt, nil
	}
}

// quote renders outputs as labeled blocks separated by a blank line.
func quote(kind PhaseKind, outputs []Contribution) string {
	label := kind.label()
	return strings.Join(lo.Map(outputs, func(c Contribution, _ int) string {
		return fmt.Sprintf("=== %s's %s ===\n%s", c.Author, label, c.Text)
	}), "\n\n")
}

func (k PhaseKind) label() string {
	switch k {
	case PhaseAnalysis:
		return "Analysis"
	case PhaseCritique:
		return "Critique"
	case PhaseSynthesis:
		return "Synthesis"
	default:
		return string(k)
	}
}
