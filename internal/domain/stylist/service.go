package stylist

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"strings"

	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	apperrors "github.com/PMQ9/ai-attire/pkg/errors"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
	"github.com/PMQ9/ai-attire/pkg/metrics"
)

// Service orchestrates recommendation generation: flow selection,
// prompt construction, model calls, response reconciliation and the
// weather/image merges.
type Service interface {
	Recommend(ctx context.Context, req Request) (Response, error)
	RecommendFromAnalysis(ctx context.Context, analysis ClothingAnalysis, resolved occasion.Context) (Response, error)
}

type service struct {
	cfg       Config
	client    ChatClient
	weather   WeatherClient
	images    ImageClient
	extractor *jsonextract.Extractor
	logger    *slog.Logger
}

// NewService wires up the recommendation orchestrator. weather and
// images may be nil; the corresponding merge steps are then skipped.
func NewService(cfg Config, client ChatClient, weather WeatherClient, images ImageClient, extractor *jsonextract.Extractor, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		client:    client,
		weather:   weather,
		images:    images,
		extractor: extractor,
		logger:    logger.With("component", "stylist.service"),
	}
}

func (s *service) Recommend(ctx context.Context, req Request) (Response, error) {
	imageData := strings.TrimSpace(req.ImageData)
	occasionText := strings.TrimSpace(req.Occasion)
	if imageData == "" {
		return Response{}, apperrors.Wrap("invalid_input", "image data cannot be empty", nil)
	}
	if occasionText == "" {
		return Response{}, apperrors.Wrap("invalid_input", "occasion cannot be empty", nil)
	}
	if _, err := base64.StdEncoding.DecodeString(imageData); err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "image data is not valid base64", err)
	}

	useWeather := req.UseWeather && s.weather != nil

	var (
		snapshot *WeatherSnapshot
		usage    metrics.TokenUsage
	)
	if useWeather {
		// The two calls are strictly sequential: the extracted location
		// feeds the weather lookup, which feeds the final prompt. Both
		// enhancement steps degrade to nothing on failure.
		location, locUsage := s.extractLocation(ctx, occasionText)
		usage = usage.Add(locUsage)
		if location != "" {
			current, err := s.weather.CurrentWeather(ctx, location)
			if err != nil {
				s.logger.Warn("weather lookup failed, continuing without weather", "location", location, "error", err)
			} else {
				snapshot = &current
			}
		}
	}

	prompt := buildCombinedPrompt(occasionText)
	if snapshot != nil {
		prompt = buildWeatherAwarePrompt(occasionText, *snapshot)
	}
	s.logger.Debug("recommendation prompt built", "weatherAware", snapshot != nil,
		"estimatedTokens", metrics.EstimateTokens(s.cfg.Model, prompt))

	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model: s.cfg.Model,
		Messages: []chatgpt.Message{
			{Role: "user", Content: []chatgpt.ContentPart{
				chatgpt.TextPart(prompt),
				chatgpt.ImagePart(imageData),
			}},
		},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "recommendation request failed", err)
	}
	usage = usage.Add(s.usageFrom(completion, prompt))

	resp, err := s.decodeCompletion(completion, occasionText)
	if err != nil {
		return Response{}, err
	}

	if useWeather {
		considered := snapshot != nil
		resp.WeatherConsidered = &considered
		if snapshot != nil {
			resp.WeatherData = snapshot
			if resp.Location == "" {
				resp.Location = snapshot.Location
			}
		}
	}

	if err := Validate(resp); err != nil {
		return Response{}, err
	}

	if !usage.IsZero() {
		resp.TokenUsage = &usage
	}
	s.attachImages(ctx, &resp)
	return resp, nil
}

// RecommendFromAnalysis is the legacy flow for callers that already hold
// a wardrobe analysis and resolved occasion context. It issues a single
// text-only completion embedding both verbatim.
func (s *service) RecommendFromAnalysis(ctx context.Context, analysis ClothingAnalysis, resolved occasion.Context) (Response, error) {
	if strings.TrimSpace(resolved.Occasion) == "" {
		return Response{}, apperrors.Wrap("invalid_input", "occasion context is missing its occasion", nil)
	}

	resolvedJSON, err := json.Marshal(resolved)
	if err != nil {
		return Response{}, apperrors.Wrap("invalid_input", "occasion context cannot be encoded", err)
	}

	prompt := buildLegacyPrompt(analysis, resolvedJSON)
	s.logger.Debug("legacy prompt built", "estimatedTokens", metrics.EstimateTokens(s.cfg.Model, prompt))

	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:       s.cfg.Model,
		Messages:    []chatgpt.Message{chatgpt.TextMessage("user", prompt)},
		Temperature: s.cfg.Temperature,
	})
	if err != nil {
		return Response{}, apperrors.Wrap("llm_error", "recommendation request failed", err)
	}

	resp, err := s.decodeCompletion(completion, resolved.RawInput)
	if err != nil {
		return Response{}, err
	}

	resp.ClothingAnalysis = &analysis
	resp.OccasionContext = &resolved
	if resp.Occasion == defaultOccasion {
		resp.Occasion = resolved.Occasion
	}
	if resp.Location == "" {
		resp.Location = resolved.Location
	}

	if err := Validate(resp); err != nil {
		return Response{}, err
	}

	usage := s.usageFrom(completion, prompt)
	if !usage.IsZero() {
		resp.TokenUsage = &usage
	}
	s.attachImages(ctx, &resp)
	return resp, nil
}

func (s *service) decodeCompletion(completion chatgpt.ChatCompletionResponse, rawInput string) (Response, error) {
	content := completion.Content()
	if strings.TrimSpace(content) == "" {
		return Response{}, apperrors.Wrap("llm_error", "model returned no content", nil)
	}

	raw, err := s.extractor.Extract(content)
	if err != nil {
		return Response{}, apperrors.Wrap("parse_error", "model response is not JSON", err)
	}

	resp, err := decodeResponseWire(raw, rawInput)
	if err != nil {
		return Response{}, apperrors.Wrap("parse_error", "model response has unusable shape", err)
	}
	return resp, nil
}

// extractLocation issues the cheap, low-token text call that pulls a
// location string out of the occasion text. Failures resolve to no
// location; weather is an enhancement, never a blocking dependency.
func (s *service) extractLocation(ctx context.Context, occasionText string) (string, metrics.TokenUsage) {
	prompt := buildLocationPrompt(occasionText)
	completion, err := s.client.CreateChatCompletion(ctx, chatgpt.ChatCompletionRequest{
		Model:     s.cfg.Model,
		Messages:  []chatgpt.Message{chatgpt.TextMessage("user", prompt)},
		MaxTokens: s.cfg.LocationMaxTokens,
	})
	if err != nil {
		s.logger.Warn("location extraction failed, continuing without weather", "error", err)
		return "", metrics.TokenUsage{}
	}

	usage := s.usageFrom(completion, prompt)
	location := strings.Trim(strings.TrimSpace(completion.Content()), `"'.`)
	if location == "" || strings.EqualFold(location, locationSentinel) {
		return "", usage
	}
	return location, usage
}

func (s *service) usageFrom(completion chatgpt.ChatCompletionResponse, prompt string) metrics.TokenUsage {
	u := completion.Usage
	if u.PromptTokens == 0 && u.TotalTokens == 0 {
		estimate := metrics.EstimateTokens(s.cfg.Model, prompt)
		return metrics.TokenUsage{PromptTokens: estimate, TotalTokens: estimate}
	}
	return metrics.TokenUsage{
		PromptTokens:     u.PromptTokens,
		CompletionTokens: u.CompletionTokens,
		TotalTokens:      u.TotalTokens,
	}
}

// attachImages merges best-effort outfit photographs. Image lookups
// never fail the request.
func (s *service) attachImages(ctx context.Context, resp *Response) {
	if s.images == nil || len(resp.Recommendations) == 0 {
		return
	}
	descriptions := resp.Recommendations
	if s.cfg.MaxImages > 0 && len(descriptions) > s.cfg.MaxImages {
		descriptions = descriptions[:s.cfg.MaxImages]
	}
	images := s.images.ImagesForDescriptions(ctx, descriptions)
	if len(images) > 0 {
		resp.OutfitImages = images
	}
}
