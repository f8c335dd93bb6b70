package ai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	openaigo "github.com/sashabaranov/go-openai"
)

// Compile-time interface check.
var _ TextGenerationProvider = (*OpenAIProvider)(nil)

// OpenAIProvider implements TextGenerationProvider using the OpenAI Chat
// Completions API.
type OpenAIProvider struct {
	client *openaigo.Client
	model  string
}

// NewOpenAIProvider creates an OpenAIProvider. Empty model, baseURL and zero
// timeout fall back to the package defaults. baseURL must include the /v1
// prefix.
func NewOpenAIProvider(apiKey, model, baseURL string, timeout time.Duration) *OpenAIProvider {
	if model == "" {
		model = DefaultOpenAIModel
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	cfg := openaigo.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}

	return &OpenAIProvider{
		client: openaigo.NewClientWithConfig(cfg),
		model:  model,
	}
}

// Name returns "openai".
func (p *OpenAIProvider) Name() string {
	return ProviderOpenAI
}

// SendPrompt makes one chat completion request and returns the content of
// the first choice.
func (p *OpenAIProvider) SendPrompt(ctx context.Context, prompt string, maxTokens int, temperature float64) (string, error) {
	slog.Debug("calling OpenAI API", "model", p.model, "max_tokens", maxTokens)

	resp, err := p.client.CreateChatCompletion(ctx, openaigo.ChatCompletionRequest{
		Model: p.model,
		Messages: []openaigo.ChatCompletionMessage{
			{Role: openaigo.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   maxTokens,
		Temperature: float32(temperature),
	})
	if err != nil {
		var apiErr *openaigo.APIError
		if errors.As(err, &apiErr) {
			return "", providerError(ProviderOpenAI,
				fmt.Errorf("API error (status %d): %s", apiErr.HTTPStatusCode, apiErr.Message))
		}
		return "", providerError(ProviderOpenAI, fmt.Errorf("sending request: %w", err))
	}

	if len(resp.Choices) == 0 {
		return "", providerError(ProviderOpenAI, errors.New("empty response: no choices returned"))
	}

	return resp.Choices[0].Message.Content, nil
}
