package ai

import (
	"context"
	"errors"
	"fmt"
)

// TextGenerationProvider is the interface that all LLM providers must
// implement. It hides the backend's request shape behind a single round trip.
type TextGenerationProvider interface {
	// Name returns the provider identifier ("anthropic" or "openai").
	Name() string

	// SendPrompt sends prompt as a single user message and returns the text
	// of the reply. It performs exactly one request and never retries.
	SendPrompt(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error)
}

// Factory builds the provider selected by a request's GenerationConfig.
type Factory func(cfg GenerationConfig) (TextGenerationProvider, error)

// NewFactory returns a Factory bound to the given server defaults.
func NewFactory(defaults Defaults) Factory {
	return func(cfg GenerationConfig) (TextGenerationProvider, error) {
		return NewProvider(cfg, defaults)
	}
}

// NewProvider creates the appropriate provider based on config. An empty
// provider name falls back to defaults.Provider. The key in cfg wins over the
// fallback key in defaults; having neither is an error.
func NewProvider(cfg GenerationConfig, defaults Defaults) (TextGenerationProvider, error) {
	var p TextGenerationProvider

	name := firstNonEmpty(cfg.PreferredProvider, defaults.Provider)
	switch name {
	case ProviderAnthropic:
		key := firstNonEmpty(cfg.AnthropicAPIKey, defaults.AnthropicAPIKey)
		if key == "" {
			return nil, configError("Anthropic API key is missing")
		}
		p = NewAnthropicProvider(key, defaults.AnthropicModel, defaults.AnthropicBaseURL, defaults.Timeout)
	case ProviderOpenAI:
		key := firstNonEmpty(cfg.OpenAIAPIKey, defaults.OpenAIAPIKey)
		if key == "" {
			return nil, configError("OpenAI API key is missing")
		}
		p = NewOpenAIProvider(key, defaults.OpenAIModel, defaults.OpenAIBaseURL, defaults.Timeout)
	default:
		return nil, configError("unsupported provider: %q", name)
	}

	return instrument(p), nil
}

const probePrompt = "Return the text 'API connection successful' as a response."

const probeMaxTokens = 10

// TestConnection sends a minimal probe prompt through p. It never returns an
// error or panics; every failure is folded into the result.
func TestConnection(ctx context.Context, p TextGenerationProvider) (result ConnectionResult) {
	name := p.Name()
	label := displayName(name)

	defer func() {
		if rec := recover(); rec != nil {
			detail := fmt.Sprint(rec)
			result = ConnectionResult{
				Provider: name,
				Message:  fmt.Sprintf("Failed to connect to API service: %s", detail),
				Error:    detail,
			}
		}
	}()

	if _, err := p.SendPrompt(ctx, probePrompt, probeMaxTokens, DefaultTemperature); err != nil {
		detail := err.Error()
		// Drop the provider prefix; the label already names it.
		var e *Error
		if errors.As(err, &e) && e.Err != nil {
			detail = e.Err.Error()
		}
		return ConnectionResult{
			Provider: name,
			Message:  fmt.Sprintf("%s API error: %s", label, detail),
			Error:    detail,
		}
	}

	return ConnectionResult{
		Success:  true,
		Provider: name,
		Message:  label + " API connection successful",
	}
}

func displayName(provider string) string {
	switch provider {
	case ProviderAnthropic:
		return "Anthropic"
	case ProviderOpenAI:
		return "OpenAI"
	default:
		return provider
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
