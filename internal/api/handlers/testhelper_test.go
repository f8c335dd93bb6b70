package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/generation"
)

// scriptedProvider replies with a fixed text or error and records prompts.
type scriptedProvider struct {
	reply string
	err   error

	mu      sync.Mutex
	prompts []string
}

func (p *scriptedProvider) Name() string { return "anthropic" }

func (p *scriptedProvider) SendPrompt(_ context.Context, prompt string, _ int, _ float64) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.prompts = append(p.prompts, prompt)
	return p.reply, p.err
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.prompts)
}

// newTestService returns a generation service whose factory always yields p
// and records the last GenerationConfig it was given.
func newTestService(t *testing.T, p ai.TextGenerationProvider) (*generation.Service, *ai.GenerationConfig) {
	t.Helper()

	var mu sync.Mutex
	last := &ai.GenerationConfig{}
	factory := func(cfg ai.GenerationConfig) (ai.TextGenerationProvider, error) {
		mu.Lock()
		*last = cfg
		mu.Unlock()
		return p, nil
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return generation.NewService(factory, logger), last
}

// postJSON sends body to h as a JSON POST and returns the recorder.
func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()

	r := httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	h.ServeHTTP(w, r)
	return w
}

// decodeBody decodes the recorder body into v.
func decodeBody(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("decoding response body: %v", err)
	}
}
