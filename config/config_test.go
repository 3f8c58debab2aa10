package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleYAML = `
providers:
  anthropic:
    api_key: sk-ant
  openai:
    api_key: sk-oai
    api_base: https://proxy.example.com/v1
    model: gpt-4o-mini
    priority: 120
logging:
  level: debug
  format: json
`

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte(sampleYAML))
	require.NoError(t, err)

	assert.True(t, cfg.Providers.Anthropic.Configured())
	assert.False(t, cfg.Providers.Groq.Configured())
	assert.Equal(t, "https://proxy.example.com/v1", cfg.Providers.OpenAI.APIBase)
	assert.Equal(t, "gpt-4o-mini", cfg.Providers.OpenAI.Model)
	require.NotNil(t, cfg.Providers.OpenAI.Priority)
	assert.Equal(t, 120, *cfg.Providers.OpenAI.Priority)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestParse_EmptyUsesDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("providers:\n  groq:\n    api_key: k\n    api_base: not a url\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("logging:\n  format: xml\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("providers:\n  groq:\n    priority: -1\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = Parse([]byte("providers: [1, 2"))
	assert.Error(t, err)
}

func TestProviderConfig_Configured(t *testing.T) {
	assert.False(t, ProviderConfig{}.Configured())
	assert.False(t, ProviderConfig{APIKey: "   "}.Configured())
	assert.True(t, ProviderConfig{APIKey: "k"}.Configured())
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtable.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("OPENAI_API_BASE", "")
	t.Setenv("ROUNDTABLE_LOG_LEVEL", "")
	t.Setenv("ANTHROPIC_API_KEY", "sk-env")
	t.Setenv("GROQ_API_KEY", "gsk-env")
	t.Setenv("GROQ_API_BASE", "https://groq.example.com/openai/v1")
	t.Setenv("ROUNDTABLE_LOG_FORMAT", "text")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sk-env", cfg.Providers.Anthropic.APIKey)
	assert.Equal(t, "sk-oai", cfg.Providers.OpenAI.APIKey)
	assert.Equal(t, "gsk-env", cfg.Providers.Groq.APIKey)
	assert.Equal(t, "https://groq.example.com/openai/v1", cfg.Providers.Groq.APIBase)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
}

func TestLoad_NoPath(t *testing.T) {
	t.Setenv("ZHIPU_API_KEY", "z")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.True(t, cfg.Providers.Zhipu.Configured())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestWatcher_ReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "roundtable.yaml")
	require.NoError(t, os.WriteFile(path, []byte("providers: {}\n"), 0o600))

	changes := make(chan *Config, 4)
	w, err := NewWatcher(path, func(c *Config) { changes <- c }, func(o *WatcherOptions) {
		o.Debounce = 20 * time.Millisecond
	})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	require.NoError(t, os.WriteFile(path, []byte(sampleYAML), 0o600))

	select {
	case cfg := <-changes:
		assert.True(t, cfg.Providers.OpenAI.Configured())
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not report the change")
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
