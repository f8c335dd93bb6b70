package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/hoanghai1803/contentformer/internal/ai"
)

// maxBodyBytes caps request bodies; transcripts are the largest input.
const maxBodyBytes = 4 << 20

// errorResponse is the body of every non-2xx JSON response. Hint carries a
// friendlier rendering of Error when one applies.
type errorResponse struct {
	Error string `json:"error"`
	Hint  string `json:"hint,omitempty"`
}

// writeJSON encodes v as JSON and writes it to the response with the given
// HTTP status code. Content-Type is always set to application/json.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already sent; nothing left but to log.
		slog.Error("failed to encode response", "error", err)
	}
}

// writeError writes a JSON error response with the given HTTP status code.
// The response body is {"error": "message"}.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeGenerationError maps a service error to its status code: validation
// failures are 400, everything else 500 with the error text as message.
func writeGenerationError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, ai.ErrValidation) {
		status = http.StatusBadRequest
	}

	resp := errorResponse{Error: err.Error()}
	if hint := ai.FriendlyMessage(err); hint != resp.Error {
		resp.Hint = hint
	}

	level := slog.LevelWarn
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	slog.Log(r.Context(), level, "generation request failed",
		"path", r.URL.Path,
		"status", status,
		"kind", kindLabel(err),
		"error", err,
	)

	writeJSON(w, status, resp)
}

func kindLabel(err error) string {
	if k := ai.Kind(err); k != nil {
		return k.Error()
	}
	return "unknown"
}

// decodeJSON decodes the request body into v, rejecting bodies over
// maxBodyBytes.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(v)
}
