package ai

import "time"

// Supported provider names.
const (
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
)

// Fixed per-adapter defaults.
const (
	DefaultAnthropicModel = "claude-3-7-sonnet-20250219"
	DefaultOpenAIModel    = "gpt-4"
	DefaultTemperature    = 0.7
	DefaultTimeout        = 60 * time.Second
)

// GenerationConfig selects the provider for a single request. Keys left empty
// fall back to the process-wide credentials in Defaults.
type GenerationConfig struct {
	PreferredProvider string `json:"preferredProvider"`
	AnthropicAPIKey   string `json:"anthropicApiKey,omitempty"`
	OpenAIAPIKey      string `json:"openaiApiKey,omitempty"`
}

// Defaults holds the server-side settings shared by every provider built by
// the factory.
type Defaults struct {
	// Provider is used when a request names no provider.
	Provider         string
	AnthropicAPIKey  string
	OpenAIAPIKey     string
	AnthropicModel   string
	OpenAIModel      string
	AnthropicBaseURL string
	OpenAIBaseURL    string
	Timeout          time.Duration
}

// ConnectionResult is the outcome of a connection probe. Failures are
// reported in the result, never as an error.
type ConnectionResult struct {
	Success  bool   `json:"success"`
	Provider string `json:"provider,omitempty"`
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
}
