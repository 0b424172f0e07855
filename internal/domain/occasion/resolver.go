package occasion

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
)

// Strategy attempts to resolve occasion text into a Context. Strategies
// are tried in order; a failing strategy hands over to the next one.
type Strategy interface {
	Name() string
	Resolve(ctx context.Context, input string) (Context, error)
}

// ChatClient is the narrow LLM surface the AI strategy depends on.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// Resolver turns free-text occasion input into a Context. Resolution is
// total: the final strategy in the chain is deterministic and never
// fails, so Resolve always returns a usable value.
type Resolver struct {
	strategies []Strategy
	fallback   *KeywordStrategy
	logger     *slog.Logger
}

// NewResolver wires the AI-first, keyword-second strategy chain.
func NewResolver(cfg Config, client ChatClient, extractor *jsonextract.Extractor, logger *slog.Logger) *Resolver {
	fallback := NewKeywordStrategy()
	return &Resolver{
		strategies: []Strategy{
			newAIStrategy(cfg, client, extractor),
			fallback,
		},
		fallback: fallback,
		logger:   logger.With("component", "occasion.resolver"),
	}
}

// Resolve returns the first successful strategy result. Failures are
// logged, never surfaced.
func (r *Resolver) Resolve(ctx context.Context, input string) Context {
	for _, strategy := range r.strategies {
		resolved, err := strategy.Resolve(ctx, input)
		if err != nil {
			r.logger.Warn("occasion strategy failed", "strategy", strategy.Name(), "error", err)
			continue
		}
		r.logger.Debug("occasion resolved", "strategy", strategy.Name(), "occasion", resolved.Occasion)
		return resolved
	}

	// Unreachable while the keyword strategy terminates the chain, but
	// resolution must stay total even if the chain is reconfigured.
	resolved, _ := r.fallback.Resolve(ctx, input)
	return resolved
}

type aiStrategy struct {
	cfg       Config
	client    ChatClient
	extractor *jsonextract.Extractor
}

func newAIStrategy(cfg Config, client ChatClient, extractor *jsonextract.Extractor) *aiStrategy {
	return &aiStrategy{cfg: cfg, client: client, extractor: extractor}
}

func (s *aiStrategy) Name() string { return "ai" }

func (s *aiStrategy) Resolve(ctx context.Context, input string) (Context, error) {
	if s.client == nil {
		return Context{}, fmt.Errorf("no chat client configured")
	}

	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			chatgpt.TextMessage("user", buildExtractionPrompt(input)),
		},
		Temperature: s.cfg.Temperature,
		MaxTokens:   s.cfg.MaxTokens,
	})
	if err != nil {
		return Context{}, fmt.Errorf("context extraction call: %w", err)
	}

	raw, err := s.extractor.Extract(completion.Content())
	if err != nil {
		return Context{}, fmt.Errorf("context extraction parse: %w", err)
	}

	resolved, err := DecodeContext(raw, input)
	if err != nil {
		return Context{}, fmt.Errorf("context decode: %w", err)
	}
	return resolved, nil
}

func buildExtractionPrompt(input string) string {
	return fmt.Sprintf(`Analyze this occasion description and extract structured information: %q

Respond with ONLY valid JSON, no markdown, no extra text, using exactly this shape:
{"occasion":"short occasion label","location":"place name or null","formality":"casual|business-casual|formal|athletic","tone":["style descriptors"],"weatherConsideration":"weather note or null","culturalNotes":"cultural dress guidance or null","preferences":["explicitly stated preferences"]}

Rules:
- formality must be one of: casual, business-casual, formal, athletic.
- Use null for any field the text gives no evidence for; never invent details.
- preferences contains only wishes the person stated themselves.`, input)
}
