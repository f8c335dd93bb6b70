package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// Placeholders used when a model omits a field of an idea.
const (
	UntitledIdea          = "Untitled Idea"
	NoDescriptionProvided = "No description provided"
)

var (
	// Greedy: first '[' to last ']'.
	arrayPattern = regexp.MustCompile(`\[[\s\S]*\]`)

	embeddedPattern = regexp.MustCompile(`(\{[\s\S]*\}|\[[\s\S]*\])`)
)

// IdeaDraft is a normalized idea element decoded from a model reply, before
// it is given an identity.
type IdeaDraft struct {
	Title       string
	Description string
}

// ExtractIdeaList decodes a JSON array of {title, description} objects from
// a model reply. The whole trimmed reply is tried first; if that does not
// yield an array, the first bracketed span of the reply is tried. Elements
// are normalized individually and never fail on their own.
func ExtractIdeaList(text string) ([]IdeaDraft, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, ParseError("received empty response from AI service")
	}

	items, ok := decodeArray(trimmed)
	if !ok {
		if span := arrayPattern.FindString(trimmed); span != "" {
			items, ok = decodeArray(span)
		}
	}
	if !ok {
		return nil, ParseError("failed to parse AI response as JSON: the response was not in the expected format")
	}

	drafts := make([]IdeaDraft, 0, len(items))
	for _, item := range items {
		drafts = append(drafts, normalizeIdea(item))
	}
	return drafts, nil
}

// ExtractEmbeddedJSON makes a best-effort attempt to decode a JSON object or
// array from text that may carry surrounding prose. It reports false on any
// failure instead of returning an error.
func ExtractEmbeddedJSON(text string) (any, bool) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return nil, false
	}

	var v any
	if err := json.Unmarshal([]byte(trimmed), &v); err == nil {
		switch v.(type) {
		case map[string]any, []any:
			return v, true
		}
	}

	span := embeddedPattern.FindString(trimmed)
	if span == "" {
		return nil, false
	}
	v = nil
	if err := json.Unmarshal([]byte(span), &v); err != nil {
		return nil, false
	}
	return v, true
}

func decodeArray(s string) ([]any, bool) {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return nil, false
	}
	items, ok := v.([]any)
	return items, ok
}

func normalizeIdea(item any) IdeaDraft {
	draft := IdeaDraft{Title: UntitledIdea, Description: NoDescriptionProvided}

	obj, ok := item.(map[string]any)
	if !ok {
		return draft
	}
	if title, ok := obj["title"].(string); ok {
		draft.Title = title
	}
	if desc, ok := obj["description"].(string); ok {
		draft.Description = desc
	}
	return draft
}
