// Package narrate turns a risk Result into a short patient-facing
// explanation. A remote LLM provider writes the text when one is configured
// and healthy; otherwise a deterministic local template is used.
package narrate

import (
	"context"
	"time"

	"github.com/YuminosukeSato/heartrisk/factors"
	"github.com/YuminosukeSato/heartrisk/pkg/errors"
)

// Provider names accepted by NewProvider.
const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
	ProviderLocal     = "local"
)

// Generation defaults.
const (
	DefaultTemperature     = 0.7
	DefaultMaxTokens       = 8192
	DefaultTimeout         = 30 * time.Second
	DefaultBreakerFailures = 3
	DefaultBreakerCooldown = time.Minute
)

// defaultModels is the model used per provider when Config.Model is empty.
var defaultModels = map[string]string{
	ProviderGemini:    "gemini-2.0-flash",
	ProviderAnthropic: "claude-haiku-4-5-20251001",
	ProviderOpenAI:    "gpt-4o-mini",
	ProviderMock:      "mock",
}

// Request is a single text generation call.
type Request struct {
	Prompt      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// Provider generates text for a prompt.
type Provider interface {
	// Name identifies the backend in logs, e.g. "gemini".
	Name() string
	Generate(ctx context.Context, req Request) (string, error)
}

// Config configures the provider and the narrator around it.
type Config struct {
	// Provider is one of gemini, anthropic, openai, mock or local.
	Provider string
	Model    string
	APIKey   string
	// BaseURL overrides the API endpoint (anthropic and openai only).
	BaseURL string

	Language    factors.Language
	Timeout     time.Duration
	Temperature float64
	MaxTokens   int

	// BreakerFailures consecutive failures open the circuit for BreakerCooldown.
	BreakerFailures uint32
	BreakerCooldown time.Duration
}

// DefaultConfig returns a Gemini configuration with the generation settings
// of the web application: temperature 0.7 and up to 8192 output tokens.
func DefaultConfig() Config {
	return Config{
		Provider:        ProviderGemini,
		Model:           defaultModels[ProviderGemini],
		Language:        factors.English,
		Timeout:         DefaultTimeout,
		Temperature:     DefaultTemperature,
		MaxTokens:       DefaultMaxTokens,
		BreakerFailures: DefaultBreakerFailures,
		BreakerCooldown: DefaultBreakerCooldown,
	}
}

func (c Config) model() string {
	if c.Model != "" {
		return c.Model
	}
	return defaultModels[c.Provider]
}

// NewProvider builds the provider named by cfg.Provider. It returns a nil
// Provider and no error for "local" (or an empty name), which makes the
// Narrator use the local template only.
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch cfg.Provider {
	case "", ProviderLocal:
		return nil, nil
	case ProviderMock:
		return NewMockProvider(), nil
	case ProviderGemini, ProviderAnthropic, ProviderOpenAI:
	default:
		return nil, errors.NewValidationError("narration.provider", "must be gemini, anthropic, openai, mock or local", cfg.Provider)
	}

	if cfg.APIKey == "" {
		return nil, errors.NewValidationError("narration.api_key", "is required for provider "+cfg.Provider, "")
	}

	var (
		p   Provider
		err error
	)
	switch cfg.Provider {
	case ProviderGemini:
		p, err = NewGeminiProvider(ctx, cfg.APIKey, cfg.model())
	case ProviderAnthropic:
		p, err = NewAnthropicProvider(cfg.APIKey, cfg.model(), cfg.BaseURL)
	case ProviderOpenAI:
		p, err = NewOpenAIProvider(cfg.APIKey, cfg.model(), cfg.BaseURL)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "initialize %s provider", cfg.Provider)
	}
	return p, nil
}
