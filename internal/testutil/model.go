package testutil

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
)

// ReplyFunc computes a reply for a prompt. It runs synchronously inside
// Generate, so a panic in it surfaces in the caller's goroutine.
type ReplyFunc func(prompt string) (string, error)

// ScriptedModel is a model.Model whose replies come from a ReplyFunc. It
// records every prompt and model id it receives.
type ScriptedModel struct {
	name  string
	reply ReplyFunc
	delay time.Duration

	mu      sync.Mutex
	prompts []string
	models  []string
}

// NewScriptedModel creates a ScriptedModel.
func NewScriptedModel(name string, reply ReplyFunc) *ScriptedModel {
	return &ScriptedModel{name: name, reply: reply}
}

// EchoModel replies with "<name>: <first line of prompt>".
func EchoModel(name string) *ScriptedModel {
	return NewScriptedModel(name, func(prompt string) (string, error) {
		first, _, _ := strings.Cut(prompt, "\n")
		return fmt.Sprintf("%s: %s", name, first), nil
	})
}

// FailingModel always fails with err.
func FailingModel(name string, err error) *ScriptedModel {
	return NewScriptedModel(name, func(string) (string, error) { return "", err })
}

// WithDelay makes replies arrive after d (or when ctx is done, whichever is first).
func (m *ScriptedModel) WithDelay(d time.Duration) *ScriptedModel {
	m.delay = d
	return m
}

// Generate implements model.Model.
func (m *ScriptedModel) Generate(ctx context.Context, req model.Request) (<-chan model.Response, <-chan error) {
	respCh := make(chan model.Response, 1)
	errCh := make(chan error, 1)

	var prompt string
	if len(req.Contents) > 0 {
		prompt = req.Contents[len(req.Contents)-1].Text()
	}

	m.mu.Lock()
	m.prompts = append(m.prompts, prompt)
	m.models = append(m.models, req.Model)
	m.mu.Unlock()

	text, err := m.reply(prompt)

	go func() {
		defer close(respCh)
		defer close(errCh)

		if m.delay > 0 {
			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				errCh <- ctx.Err()
				return
			}
		}
		if err != nil {
			errCh <- err
			return
		}
		respCh <- model.Response{Content: core.NewTextContent(core.RoleAssistant, text), FinishReason: "stop"}
	}()

	return respCh, errCh
}

// Info implements model.Model.
func (m *ScriptedModel) Info() model.Info { return model.Info{Name: m.name, Provider: "scripted"} }

// Prompts returns the prompts received so far.
func (m *ScriptedModel) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.prompts...)
}

// Models returns the model ids received so far.
func (m *ScriptedModel) Models() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.models...)
}

// Calls returns how many times Generate was invoked.
func (m *ScriptedModel) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}
