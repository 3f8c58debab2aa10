// Package config holds the typed configuration for roundtable: one record per
// participant kind plus logging settings. Configuration is read from an
// optional YAML file, overlaid with environment variables and validated.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// ProviderConfig is the sub-block for a single participant kind. A kind
// without an API key is simply not configured.
type ProviderConfig struct {
	APIKey  string `yaml:"api_key"`
	APIBase string `yaml:"api_base" validate:"omitempty,url"`
	// Model overrides the kind's default model id.
	Model string `yaml:"model"`
	// Priority overrides the kind's default synthesis priority.
	Priority *int `yaml:"priority" validate:"omitempty,gte=0"`
}

// Configured reports whether a credential is present.
func (p ProviderConfig) Configured() bool { return strings.TrimSpace(p.APIKey) != "" }

// ProvidersConfig carries one typed record per participant kind.
type ProvidersConfig struct {
	Anthropic  ProviderConfig `yaml:"anthropic"`
	OpenRouter ProviderConfig `yaml:"openrouter"`
	OpenAI     ProviderConfig `yaml:"openai"`
	Gemini     ProviderConfig `yaml:"gemini"`
	Together   ProviderConfig `yaml:"together"`
	Groq       ProviderConfig `yaml:"groq"`
	Zhipu      ProviderConfig `yaml:"zhipu"`
}

// LoggingConfig selects the level and output format of the process logger.
type LoggingConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	Format string `yaml:"format" validate:"omitempty,oneof=json text"`
}

// Config is the root configuration document.
type Config struct {
	Providers ProvidersConfig `yaml:"providers"`
	Logging   LoggingConfig   `yaml:"logging"`
}

// Default returns a configuration with no providers and info/text logging.
func Default() *Config {
	return &Config{Logging: LoggingConfig{Level: "info", Format: "text"}}
}

// Parse decodes a YAML document on top of the defaults and validates it.
// Environment overrides are not applied.
func Parse(data []byte) (*Config, error) {
	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Load reads the YAML file at path (skipped when path is empty), applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	var data []byte
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
		data = b
	}

	cfg, err := decode(data)
	if err != nil {
		return nil, err
	}

	if err := ApplyEnv(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func decode(data []byte) (*Config, error) {
	cfg := Default()
	if len(bytes.TrimSpace(data)) == 0 {
		return cfg, nil
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: decode yaml: %w", err)
	}
	return cfg, nil
}

var validate = validator.New()

// Validate checks field constraints (URLs, enums, ranges).
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return nil
}

// envOverrides lists the environment variables that take precedence over the file.
type envOverrides struct {
	AnthropicAPIKey   string `env:"ANTHROPIC_API_KEY"`
	AnthropicAPIBase  string `env:"ANTHROPIC_API_BASE"`
	OpenRouterAPIKey  string `env:"OPENROUTER_API_KEY"`
	OpenRouterAPIBase string `env:"OPENROUTER_API_BASE"`
	OpenAIAPIKey      string `env:"OPENAI_API_KEY"`
	OpenAIAPIBase     string `env:"OPENAI_API_BASE"`
	GeminiAPIKey      string `env:"GEMINI_API_KEY"`
	GeminiAPIBase     string `env:"GEMINI_API_BASE"`
	TogetherAPIKey    string `env:"TOGETHER_API_KEY"`
	TogetherAPIBase   string `env:"TOGETHER_API_BASE"`
	GroqAPIKey        string `env:"GROQ_API_KEY"`
	GroqAPIBase       string `env:"GROQ_API_BASE"`
	ZhipuAPIKey       string `env:"ZHIPU_API_KEY"`
	ZhipuAPIBase      string `env:"ZHIPU_API_BASE"`
	LogLevel          string `env:"ROUNDTABLE_LOG_LEVEL"`
	LogFormat         string `env:"ROUNDTABLE_LOG_FORMAT"`
}

// ApplyEnv overlays non-empty environment variables onto cfg.
func ApplyEnv(cfg *Config) error {
	var ov envOverrides
	if _, err := env.UnmarshalFromEnviron(&ov); err != nil {
		return fmt.Errorf("config: environment: %w", err)
	}

	p := &cfg.Providers
	overlay(&p.Anthropic, ov.AnthropicAPIKey, ov.AnthropicAPIBase)
	overlay(&p.OpenRouter, ov.OpenRouterAPIKey, ov.OpenRouterAPIBase)
	overlay(&p.OpenAI, ov.OpenAIAPIKey, ov.OpenAIAPIBase)
	overlay(&p.Gemini, ov.GeminiAPIKey, ov.GeminiAPIBase)
	overlay(&p.Together, ov.TogetherAPIKey, ov.TogetherAPIBase)
	overlay(&p.Groq, ov.GroqAPIKey, ov.GroqAPIBase)
	overlay(&p.Zhipu, ov.ZhipuAPIKey, ov.ZhipuAPIBase)

	if ov.LogLevel != "" {
		cfg.Logging.Level = ov.LogLevel
	}
	if ov.LogFormat != "" {
		cfg.Logging.Format = ov.LogFormat
	}

	return nil
}

func overlay(pc *ProviderConfig, apiKey, apiBase string) {
	if apiKey != "" {
		pc.APIKey = apiKey
	}
	if apiBase != "" {
		pc.APIBase = apiBase
	}
}
