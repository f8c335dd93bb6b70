// Package generation sequences the content generation intents: it checks
// inputs, builds the provider for the request, renders the prompt, sends it,
// and shapes the reply into domain objects.
package generation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hoanghai1803/contentformer/internal/ai"
	"github.com/hoanghai1803/contentformer/internal/models"
)

// Output token budgets per intent.
const (
	ideasMaxTokens    = 1000
	scriptMaxTokens   = 2000
	linkedinMaxTokens = 1000
)

// Operation labels used to prefix errors.
const (
	opGenerateIdeas    = "error generating content ideas"
	opGenerateScript   = "error generating video script"
	opRefineScript     = "error refining video script"
	opRegenerateScript = "error regenerating video script"
	opLinkedInPost     = "error generating LinkedIn post"
)

// Service runs the generation intents. It holds no per-request state and is
// safe for concurrent use.
type Service struct {
	providers ai.Factory
	logger    *slog.Logger
}

// NewService creates a Service that builds providers with factory.
func NewService(factory ai.Factory, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		providers: factory,
		logger:    logger,
	}
}

// TestConnection probes the provider selected by cfg. Construction failures
// are reported in the result like any other failure.
func (s *Service) TestConnection(ctx context.Context, cfg ai.GenerationConfig) ai.ConnectionResult {
	provider, err := s.providers(cfg)
	if err != nil {
		return ai.ConnectionResult{
			Message: fmt.Sprintf("API connection test failed: %s", err.Error()),
			Error:   err.Error(),
		}
	}

	result := ai.TestConnection(ctx, provider)
	s.logger.InfoContext(ctx, "tested provider connection",
		"provider", result.Provider,
		"success", result.Success,
	)
	return result
}

// GenerateIdeas proposes video ideas from transcript. Every idea gets a
// fresh id; the reply must decode as a whole or the call fails.
func (s *Service) GenerateIdeas(ctx context.Context, cfg ai.GenerationConfig, transcript, instructions string) ([]models.ContentIdea, error) {
	if isBlank(transcript) {
		return nil, wrap(opGenerateIdeas, ai.ValidationError("transcript"))
	}

	text, err := s.send(ctx, cfg, ideasMaxTokens, func() string {
		return ai.IdeasPrompt(transcript, instructions)
	})
	if err != nil {
		return nil, wrap(opGenerateIdeas, err)
	}

	drafts, err := ai.ExtractIdeaList(text)
	if err != nil {
		return nil, wrap(opGenerateIdeas, err)
	}

	ideas := make([]models.ContentIdea, 0, len(drafts))
	seen := make(map[string]struct{}, len(drafts))
	for _, d := range drafts {
		ideas = append(ideas, models.ContentIdea{
			ID:          uniqueID(models.IdeaIDPrefix, seen),
			Title:       d.Title,
			Description: d.Description,
		})
	}

	s.logger.InfoContext(ctx, "generated content ideas", "count", len(ideas))
	return ideas, nil
}

// GenerateScript writes a new script for idea from transcript.
func (s *Service) GenerateScript(ctx context.Context, cfg ai.GenerationConfig, idea *models.ContentIdea, transcript, instructions string) (*models.VideoScript, error) {
	if idea == nil {
		return nil, wrap(opGenerateScript, ai.ValidationError("idea"))
	}
	if isBlank(transcript) {
		return nil, wrap(opGenerateScript, ai.ValidationError("transcript"))
	}

	text, err := s.send(ctx, cfg, scriptMaxTokens, func() string {
		return ai.ScriptPrompt(*idea, transcript, instructions)
	})
	if err != nil {
		return nil, wrap(opGenerateScript, err)
	}

	return &models.VideoScript{
		ID:     models.NewID(models.ScriptIDPrefix),
		IdeaID: idea.ID,
		Title:  idea.Title,
		Script: text,
	}, nil
}

// RefineScript rewrites the body of script. The id, idea reference and
// title are carried over unchanged.
func (s *Service) RefineScript(ctx context.Context, cfg ai.GenerationConfig, script *models.VideoScript, instructions string) (*models.VideoScript, error) {
	if script == nil {
		return nil, wrap(opRefineScript, ai.ValidationError("script"))
	}
	if isBlank(instructions) {
		return nil, wrap(opRefineScript, ai.ValidationError("instructions"))
	}

	text, err := s.send(ctx, cfg, scriptMaxTokens, func() string {
		return ai.RefineScriptPrompt(*script, instructions)
	})
	if err != nil {
		return nil, wrap(opRefineScript, err)
	}

	refined := *script
	refined.Script = text
	return &refined, nil
}

// RegenerateScript writes a completely new script for idea following
// instructions. The result has a new id.
func (s *Service) RegenerateScript(ctx context.Context, cfg ai.GenerationConfig, idea *models.ContentIdea, transcript, instructions string) (*models.VideoScript, error) {
	if idea == nil {
		return nil, wrap(opRegenerateScript, ai.ValidationError("idea"))
	}
	if isBlank(transcript) {
		return nil, wrap(opRegenerateScript, ai.ValidationError("transcript"))
	}
	if isBlank(instructions) {
		return nil, wrap(opRegenerateScript, ai.ValidationError("instructions"))
	}

	text, err := s.send(ctx, cfg, scriptMaxTokens, func() string {
		return ai.RegenerateScriptPrompt(*idea, transcript, instructions)
	})
	if err != nil {
		return nil, wrap(opRegenerateScript, err)
	}

	return &models.VideoScript{
		ID:     models.NewID(models.ScriptIDPrefix),
		IdeaID: idea.ID,
		Title:  idea.Title,
		Script: text,
	}, nil
}

// GenerateLinkedInPost writes a promotional post for script.
func (s *Service) GenerateLinkedInPost(ctx context.Context, cfg ai.GenerationConfig, script *models.VideoScript) (*models.LinkedInPost, error) {
	if script == nil {
		return nil, wrap(opLinkedInPost, ai.ValidationError("script"))
	}

	text, err := s.send(ctx, cfg, linkedinMaxTokens, func() string {
		return ai.LinkedInPostPrompt(*script)
	})
	if err != nil {
		return nil, wrap(opLinkedInPost, err)
	}

	return &models.LinkedInPost{
		ID:       models.NewID(models.LinkedInIDPrefix),
		ScriptID: script.ID,
		Post:     text,
	}, nil
}

// send builds the provider, renders the prompt and performs the single
// remote call. The prompt is only rendered once a provider exists. A blank
// reply is an error.
func (s *Service) send(ctx context.Context, cfg ai.GenerationConfig, maxTokens int, prompt func() string) (string, error) {
	provider, err := s.providers(cfg)
	if err != nil {
		return "", err
	}

	text, err := provider.SendPrompt(ctx, prompt(), maxTokens, ai.DefaultTemperature)
	if err != nil {
		return "", err
	}
	if isBlank(text) {
		return "", ai.EmptyResponseError()
	}
	return text, nil
}

// uniqueID returns a fresh id not yet present in seen and records it.
func uniqueID(prefix string, seen map[string]struct{}) string {
	for {
		id := models.NewID(prefix)
		if _, dup := seen[id]; !dup {
			seen[id] = struct{}{}
			return id
		}
	}
}

func wrap(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}
