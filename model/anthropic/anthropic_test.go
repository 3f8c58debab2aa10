package anthropic

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hupe1980/roundtable/core"
	"github.com/hupe1980/roundtable/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModel_Chat(t *testing.T) {
	var (
		gotKey  string
		gotBody map[string]any
	)

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/messages", r.URL.Path)
		gotKey = r.Header.Get("X-Api-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "msg_1",
			"type": "message",
			"role": "assistant",
			"model": "claude-sonnet-4-20250514",
			"content": [{"type": "text", "text": "merged answer"}],
			"stop_reason": "end_turn",
			"stop_sequence": null,
			"usage": {"input_tokens": 7, "output_tokens": 3}
		}`))
	}))
	defer srv.Close()

	m := NewModel(func(o *Options) {
		o.APIKey = "sk-test"
		o.BaseURL = srv.URL
		o.MaxRetries = 0
	})

	resp, err := model.Chat(context.Background(), m, model.Request{
		Instructions: "be precise",
		Contents:     []core.Content{core.NewUserText("synthesize")},
	})
	require.NoError(t, err)

	assert.Equal(t, "merged answer", resp.Text())
	assert.Equal(t, "end_turn", resp.FinishReason)
	require.NotNil(t, resp.Usage)
	assert.Equal(t, 10, resp.Usage.TotalTokens)

	assert.Equal(t, "sk-test", gotKey)
	assert.Equal(t, "claude-sonnet-4-20250514", gotBody["model"])
	assert.NotNil(t, gotBody["system"])
	msgs, ok := gotBody["messages"].([]any)
	require.True(t, ok)
	assert.Len(t, msgs, 1)
}

func TestModel_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"type": "error", "error": {"type": "authentication_error", "message": "invalid x-api-key"}}`))
	}))
	defer srv.Close()

	m := NewModel(func(o *Options) {
		o.APIKey = "bad"
		o.BaseURL = srv.URL
		o.MaxRetries = 0
	})

	_, err := model.Chat(context.Background(), m, model.Request{Contents: []core.Content{core.NewUserText("hi")}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "anthropic api error")
}

func TestBuildMessages_SkipsSystemAndEmpty(t *testing.T) {
	msgs := buildMessages([]core.Content{
		core.NewTextContent(core.RoleSystem, "sys"),
		core.NewUserText("q"),
		core.NewUserText(""),
		core.NewTextContent(core.RoleAssistant, "a"),
	})
	assert.Len(t, msgs, 2)

	system := extractSystem(model.Request{
		Instructions: "top",
		Contents:     []core.Content{core.NewTextContent(core.RoleSystem, "sys")},
	})
	require.Len(t, system, 2)
	assert.Equal(t, "top", system[0].Text)
	assert.Equal(t, "sys", system[1].Text)
}

func TestInfo(t *testing.T) {
	m := NewModel(func(o *Options) { o.Model = "claude-x" })
	assert.Equal(t, model.Info{Name: "claude-x", Provider: "anthropic"}, m.Info())
}
