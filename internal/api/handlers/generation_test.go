package handlers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/models"
)

func TestGenerateIdeasHandler(t *testing.T) {
	p := &scriptedProvider{reply: `[{"title":"A","description":"d"},{"title":"B"}]`}
	svc, lastCfg := newTestService(t, p)

	w := postJSON(t, GenerateIdeas(svc), `{
		"transcript": "we discussed evals",
		"instructions": "",
		"preferredProvider": "openai",
		"openaiApiKey": "sk-request"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var ideas []models.ContentIdea
	decodeBody(t, w, &ideas)
	require.Len(t, ideas, 2)
	assert.Equal(t, "A", ideas[0].Title)
	assert.Equal(t, ai.NoDescriptionProvided, ideas[1].Description)
	assert.Regexp(t, `^idea-[0-9a-f]{8}$`, ideas[0].ID)

	assert.Equal(t, ai.GenerationConfig{PreferredProvider: "openai", OpenAIAPIKey: "sk-request"}, *lastCfg)
}

func TestBadRequests(t *testing.T) {
	svc, _ := newTestService(t, &scriptedProvider{reply: "unused"})

	tests := []struct {
		name    string
		handler http.Handler
		body    string
		want    string
	}{
		{
			name:    "ideas without transcript",
			handler: GenerateIdeas(svc),
			body:    `{"preferredProvider":"anthropic"}`,
			want:    "Transcript is required",
		},
		{
			name:    "ideas with blank transcript",
			handler: GenerateIdeas(svc),
			body:    `{"transcript":"   "}`,
			want:    "Transcript is required",
		},
		{
			name:    "script without idea",
			handler: GenerateScript(svc),
			body:    `{"transcript":"t"}`,
			want:    "Content idea is required",
		},
		{
			name:    "script without transcript",
			handler: GenerateScript(svc),
			body:    `{"idea":{"id":"idea-1","title":"T","description":"D"}}`,
			want:    "Transcript is required",
		},
		{
			name:    "refine without script",
			handler: RefineScript(svc),
			body:    `{"instructions":"shorter"}`,
			want:    "Video script is required",
		},
		{
			name:    "refine without instructions",
			handler: RefineScript(svc),
			body:    `{"script":{"id":"script-1","ideaId":"idea-1","title":"T","script":"S"}}`,
			want:    "Instructions are required for refinement",
		},
		{
			name:    "regenerate without idea",
			handler: RegenerateScript(svc),
			body:    `{"transcript":"t","instructions":"i"}`,
			want:    "Content idea is required",
		},
		{
			name:    "regenerate without transcript",
			handler: RegenerateScript(svc),
			body:    `{"idea":{"id":"idea-1"},"instructions":"i"}`,
			want:    "Transcript is required",
		},
		{
			name:    "regenerate without instructions",
			handler: RegenerateScript(svc),
			body:    `{"idea":{"id":"idea-1"},"transcript":"t"}`,
			want:    "Instructions are required for regeneration",
		},
		{
			name:    "linkedin without script",
			handler: GenerateLinkedInPost(svc),
			body:    `{}`,
			want:    "Video script is required",
		},
		{
			name:    "malformed json",
			handler: GenerateIdeas(svc),
			body:    `{"transcript":`,
			want:    "Invalid request body",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, tt.handler, tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)

			var got errorResponse
			decodeBody(t, w, &got)
			assert.Equal(t, tt.want, got.Error)
		})
	}
}

func TestGenerateScriptHandler(t *testing.T) {
	p := &scriptedProvider{reply: "Script body"}
	svc, _ := newTestService(t, p)

	w := postJSON(t, GenerateScript(svc), `{
		"idea": {"id": "idea-1a2b3c4d", "title": "Evals", "description": "How to test LLM apps"},
		"transcript": "raw transcript"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var script models.VideoScript
	decodeBody(t, w, &script)
	assert.Regexp(t, `^script-[0-9a-f]{8}$`, script.ID)
	assert.Equal(t, "idea-1a2b3c4d", script.IdeaID)
	assert.Equal(t, "Evals", script.Title)
	assert.Equal(t, "Script body", script.Script)
}

func TestRefineScriptHandler(t *testing.T) {
	p := &scriptedProvider{reply: "Refined"}
	svc, _ := newTestService(t, p)

	w := postJSON(t, RefineScript(svc), `{
		"script": {"id": "script-deadbeef", "ideaId": "idea-1a2b3c4d", "title": "T", "script": "Original"},
		"instructions": "Shorter intro"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var script models.VideoScript
	decodeBody(t, w, &script)
	assert.Equal(t, models.VideoScript{
		ID:     "script-deadbeef",
		IdeaID: "idea-1a2b3c4d",
		Title:  "T",
		Script: "Refined",
	}, script)
}

func TestRegenerateScriptHandler(t *testing.T) {
	p := &scriptedProvider{reply: "Fresh"}
	svc, _ := newTestService(t, p)

	w := postJSON(t, RegenerateScript(svc), `{
		"idea": {"id": "idea-1a2b3c4d", "title": "T", "description": "D"},
		"transcript": "t",
		"instructions": "More humor"
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var script models.VideoScript
	decodeBody(t, w, &script)
	assert.Equal(t, "Fresh", script.Script)
	assert.Equal(t, "idea-1a2b3c4d", script.IdeaID)
	require.Equal(t, 1, p.calls())
	assert.Contains(t, p.prompts[0], "SPECIFIC INSTRUCTIONS:\nMore humor")
}

func TestGenerateLinkedInPostHandler(t *testing.T) {
	p := &scriptedProvider{reply: "Excited to share! #AI"}
	svc, _ := newTestService(t, p)

	w := postJSON(t, GenerateLinkedInPost(svc), `{
		"script": {"id": "script-deadbeef", "ideaId": "idea-1", "title": "T", "script": "S"}
	}`)

	require.Equal(t, http.StatusOK, w.Code)

	var post models.LinkedInPost
	decodeBody(t, w, &post)
	assert.Regexp(t, `^linkedin-[0-9a-f]{8}$`, post.ID)
	assert.Equal(t, "script-deadbeef", post.ScriptID)
	assert.Equal(t, "Excited to share! #AI", post.Post)
}

func TestGenerationFailureIs500(t *testing.T) {
	rateLimited := &ai.Error{
		Kind: ai.ErrProvider,
		Op:   "anthropic",
		Err:  errors.New("API error (status 429): rate limited"),
	}

	tests := []struct {
		name      string
		provider  *scriptedProvider
		wantError string
		wantHint  string
	}{
		{
			name:      "unparseable ideas",
			provider:  &scriptedProvider{reply: "no json here"},
			wantError: "error generating content ideas: failed to parse AI response as JSON: the response was not in the expected format",
		},
		{
			name:      "empty reply",
			provider:  &scriptedProvider{reply: "  "},
			wantError: "error generating content ideas: received empty response from AI service",
		},
		{
			name:      "rate limited",
			provider:  &scriptedProvider{err: rateLimited},
			wantError: "error generating content ideas: anthropic: API error (status 429): rate limited",
			wantHint:  "Rate limit exceeded. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _ := newTestService(t, tt.provider)

			w := postJSON(t, GenerateIdeas(svc), `{"transcript":"t"}`)

			assert.Equal(t, http.StatusInternalServerError, w.Code)

			var got errorResponse
			decodeBody(t, w, &got)
			assert.Equal(t, tt.wantError, got.Error)
			assert.Equal(t, tt.wantHint, got.Hint)
		})
	}
}

func TestTestConnectionHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		svc, _ := newTestService(t, &scriptedProvider{reply: "API connection successful"})

		w := postJSON(t, TestConnection(svc), `{"preferredProvider":"anthropic","anthropicApiKey":"k"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var got ai.ConnectionResult
		decodeBody(t, w, &got)
		assert.True(t, got.Success)
		assert.Equal(t, "anthropic", got.Provider)
		assert.Equal(t, "Anthropic API connection successful", got.Message)
	})

	t.Run("failure is still 200", func(t *testing.T) {
		svc, _ := newTestService(t, &scriptedProvider{err: errors.New("dial tcp: connection refused")})

		w := postJSON(t, TestConnection(svc), `{"preferredProvider":"anthropic"}`)

		require.Equal(t, http.StatusOK, w.Code)

		var got ai.ConnectionResult
		decodeBody(t, w, &got)
		assert.False(t, got.Success)
		assert.Equal(t, "Anthropic API error: dial tcp: connection refused", got.Message)
		assert.Equal(t, "dial tcp: connection refused", got.Error)
	})

	t.Run("malformed body", func(t *testing.T) {
		svc, _ := newTestService(t, &scriptedProvider{})

		w := postJSON(t, TestConnection(svc), `not json`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHealth(t *testing.T) {
	w := postJSON(t, Health(), "")

	require.Equal(t, http.StatusOK, w.Code)

	var got map[string]string
	decodeBody(t, w, &got)
	assert.Equal(t, map[string]string{
		"status":  "ok",
		"message": "Contentformer API is running",
	}, got)
}
