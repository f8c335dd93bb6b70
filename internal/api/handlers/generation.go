package handlers

import (
	"net/http"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/generation"
)

// TestConnection handles POST /api/test-connection. The outcome is always
// reported in the body with 200 OK.
func TestConnection(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var cfg ai.GenerationConfig
		if err := decodeJSON(w, r, &cfg); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		writeJSON(w, http.StatusOK, svc.TestConnection(r.Context(), cfg))
	}
}

// GenerateIdeas handles POST /api/generate-ideas.
func GenerateIdeas(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req ideasRequest
		if !bindRequest(w, r, &req, ideaMessages) {
			return
		}

		ideas, err := svc.GenerateIdeas(r.Context(), req.GenerationConfig, req.Transcript, req.Instructions)
		if err != nil {
			writeGenerationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, ideas)
	}
}

// GenerateScript handles POST /api/generate-script.
func GenerateScript(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req scriptRequest
		if !bindRequest(w, r, &req, ideaMessages) {
			return
		}

		script, err := svc.GenerateScript(r.Context(), req.GenerationConfig, req.Idea, req.Transcript, req.Instructions)
		if err != nil {
			writeGenerationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, script)
	}
}

// RefineScript handles POST /api/refine-script.
func RefineScript(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req refineRequest
		if !bindRequest(w, r, &req, refineMessages) {
			return
		}

		script, err := svc.RefineScript(r.Context(), req.GenerationConfig, req.Script, req.Instructions)
		if err != nil {
			writeGenerationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, script)
	}
}

// RegenerateScript handles POST /api/regenerate-script.
func RegenerateScript(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req regenerateRequest
		if !bindRequest(w, r, &req, regenerateMessages) {
			return
		}

		script, err := svc.RegenerateScript(r.Context(), req.GenerationConfig, req.Idea, req.Transcript, req.Instructions)
		if err != nil {
			writeGenerationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, script)
	}
}

// GenerateLinkedInPost handles POST /api/generate-linkedin-post.
func GenerateLinkedInPost(svc *generation.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req linkedinRequest
		if !bindRequest(w, r, &req, linkedinMessages) {
			return
		}

		post, err := svc.GenerateLinkedInPost(r.Context(), req.GenerationConfig, req.Script)
		if err != nil {
			writeGenerationError(w, r, err)
			return
		}

		writeJSON(w, http.StatusOK, post)
	}
}

// healthResponse is the body of GET /health.
type healthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// Health handles GET /health.
func Health() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, healthResponse{
			Status:  "ok",
			Message: "Contentformer API is running",
		})
	}
}
