package models

import (
	"strings"

	"github.com/google/uuid"
)

// ContentIdea is a single video idea proposed from a transcript.
type ContentIdea struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// VideoScript is a blog-style script written for a ContentIdea.
type VideoScript struct {
	ID     string `json:"id"`
	IdeaID string `json:"ideaId"`
	Title  string `json:"title"`
	Script string `json:"script"`
}

// LinkedInPost is a promotional post derived from a VideoScript.
type LinkedInPost struct {
	ID       string `json:"id"`
	ScriptID string `json:"scriptId"`
	Post     string `json:"post"`
}

// ID prefixes for generated entities.
const (
	IdeaIDPrefix     = "idea"
	ScriptIDPrefix   = "script"
	LinkedInIDPrefix = "linkedin"
)

// NewID returns an identifier of the form "<prefix>-xxxxxxxx", where the
// suffix is the first eight hex characters of a random UUID.
func NewID(prefix string) string {
	hex := strings.ReplaceAll(uuid.NewString(), "-", "")
	return prefix + "-" + hex[:8]
}
