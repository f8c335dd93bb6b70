package handlers

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/models"
)

// Global validator instance for reuse.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names.
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	return v
}

// Request bodies. Each embeds the provider selection alongside the inputs of
// its intent, matching the flat wire format. notblank also rejects
// whitespace-only strings.

type ideasRequest struct {
	ai.GenerationConfig
	Transcript   string `json:"transcript" validate:"notblank"`
	Instructions string `json:"instructions"`
}

type scriptRequest struct {
	ai.GenerationConfig
	Idea         *models.ContentIdea `json:"idea" validate:"required"`
	Transcript   string              `json:"transcript" validate:"notblank"`
	Instructions string              `json:"instructions"`
}

type refineRequest struct {
	ai.GenerationConfig
	Script       *models.VideoScript `json:"script" validate:"required"`
	Instructions string              `json:"instructions" validate:"notblank"`
}

type regenerateRequest struct {
	ai.GenerationConfig
	Idea         *models.ContentIdea `json:"idea" validate:"required"`
	Transcript   string              `json:"transcript" validate:"notblank"`
	Instructions string              `json:"instructions" validate:"notblank"`
}

type linkedinRequest struct {
	ai.GenerationConfig
	Script *models.VideoScript `json:"script" validate:"required"`
}

// Messages returned for missing fields, keyed by JSON field name.
var (
	ideaMessages = map[string]string{
		"idea":       "Content idea is required",
		"transcript": "Transcript is required",
	}
	refineMessages = map[string]string{
		"script":       "Video script is required",
		"instructions": "Instructions are required for refinement",
	}
	regenerateMessages = map[string]string{
		"idea":         "Content idea is required",
		"transcript":   "Transcript is required",
		"instructions": "Instructions are required for regeneration",
	}
	linkedinMessages = map[string]string{
		"script": "Video script is required",
	}
)

// bindRequest decodes and validates the body into req. On failure it writes
// a 400 response and returns false.
func bindRequest(w http.ResponseWriter, r *http.Request, req any, messages map[string]string) bool {
	if err := decodeJSON(w, r, req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}

	if err := validate.Struct(req); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err, messages))
		return false
	}
	return true
}

// validationMessage returns the message for the first failing field.
func validationMessage(err error, messages map[string]string) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "Invalid request"
	}
	field := verrs[0].Field()
	if msg, ok := messages[field]; ok {
		return msg
	}
	return field + " is required"
}
