package stylist

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	apperrors "github.com/PMQ9/ai-attire/pkg/errors"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
)

const validImage = "aGVsbG8gd29ybGQ=" // plain base64, content irrelevant

const fullModelResponse = `{
	"occasion": "wedding",
	"location": "Kyoto",
	"summary": "Formal and modest works best here.",
	"recommendations": ["Charcoal suit with the white dress shirt", "Black oxfords"],
	"culturalTips": ["Keep shoulders covered during the ceremony"],
	"dontWear": ["White tie"],
	"shoppingTips": [],
	"clothingAnalysis": {
		"items": [
			{"type": "suit", "color": "charcoal", "style": "slim", "material": "wool"},
			{"type": "shirt", "color": "white", "style": "dress"}
		],
		"overallStyle": "classic",
		"colorPalette": ["charcoal", "white"],
		"summary": "A compact formal capsule."
	},
	"occasionContext": {
		"occasion": "wedding",
		"location": "Kyoto",
		"formality": "formal",
		"tone": ["elegant"],
		"preferences": []
	}
}`

func TestRecommendSingleCallFlow(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{"Sure!\n" + fullModelResponse}}
	weather := &stubWeatherClient{}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, weather, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		ImageData: validImage,
		Occasion:  "wedding in Kyoto",
	})
	require.NoError(t, err)

	require.Equal(t, "wedding", resp.Occasion)
	require.Equal(t, "Kyoto", resp.Location)
	require.Len(t, resp.Recommendations, 2)
	require.NotNil(t, resp.ClothingAnalysis)
	require.Len(t, resp.ClothingAnalysis.Items, 2)
	require.NotNil(t, resp.OccasionContext)
	require.Equal(t, "wedding in Kyoto", resp.OccasionContext.RawInput)

	// Single-call flow: no weather merge, one model call, no weather lookup.
	require.Nil(t, resp.WeatherConsidered)
	require.Nil(t, resp.WeatherData)
	require.Equal(t, 1, len(chat.requests))
	require.Zero(t, weather.calls)

	// The vision request carries the photo alongside the prompt.
	parts := chat.requests[0].Messages[0].Content
	require.Len(t, parts, 2)
	require.Equal(t, "image_url", parts[1].Type)
	require.Contains(t, parts[0].Text, "ONLY valid JSON")
	require.Contains(t, parts[0].Text, "never invent items")
}

func TestRecommendWeatherAwareFlow(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{"Kyoto", fullModelResponse}}
	weather := &stubWeatherClient{
		snapshot: WeatherSnapshot{
			Location:     "Kyoto, Japan",
			TemperatureC: 8,
			TemperatureF: 46.4,
			Description:  "Rain",
			Humidity:     80,
			WindSpeedKmh: 12,
		},
	}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, weather, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		ImageData:  validImage,
		Occasion:   "wedding in Kyoto",
		UseWeather: true,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WeatherConsidered)
	require.True(t, *resp.WeatherConsidered)
	require.NotNil(t, resp.WeatherData)
	require.Equal(t, "Kyoto, Japan", resp.WeatherData.Location)
	require.Equal(t, "Kyoto", weather.lastLocation)

	// Two sequential calls: location extraction then the vision request.
	require.Equal(t, 2, len(chat.requests))
	require.Equal(t, 20, chat.requests[0].MaxTokens)
	visionPrompt := chat.requests[1].Messages[0].Content[0].Text
	require.Contains(t, visionPrompt, "8.0°C")
	require.Contains(t, visionPrompt, "rain")
}

func TestRecommendWeatherLookupFailureDegrades(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{"Kyoto", fullModelResponse}}
	weather := &stubWeatherClient{err: errors.New("geocode down")}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, weather, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		ImageData:  validImage,
		Occasion:   "wedding in Kyoto",
		UseWeather: true,
	})
	require.NoError(t, err)

	require.NotNil(t, resp.WeatherConsidered)
	require.False(t, *resp.WeatherConsidered)
	require.Nil(t, resp.WeatherData)
	require.NotEmpty(t, resp.Recommendations)
}

func TestRecommendLocationSentinelSkipsWeather(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{"NONE", fullModelResponse}}
	weather := &stubWeatherClient{}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, weather, nil)

	resp, err := svc.Recommend(context.Background(), Request{
		ImageData:  validImage,
		Occasion:   "a party somewhere",
		UseWeather: true,
	})
	require.NoError(t, err)
	require.Zero(t, weather.calls)
	require.NotNil(t, resp.WeatherConsidered)
	require.False(t, *resp.WeatherConsidered)
}

func TestRecommendInputValidation(t *testing.T) {
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, &scriptedChatClient{}, nil, nil)

	_, err := svc.Recommend(context.Background(), Request{ImageData: "", Occasion: "party"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Recommend(context.Background(), Request{ImageData: validImage, Occasion: "   "})
	require.True(t, apperrors.IsCode(err, "invalid_input"))

	_, err = svc.Recommend(context.Background(), Request{ImageData: "not!!base64??", Occasion: "party"})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func TestRecommendMissingRecommendationsFailsValidation(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{`{"occasion":"business"}`}}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, nil, nil)

	_, err := svc.Recommend(context.Background(), Request{ImageData: validImage, Occasion: "business meeting"})
	require.True(t, apperrors.IsCode(err, "invalid_response"))
}

func TestRecommendProseResponseIsParseError(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{"I am unable to see the image."}}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, nil, nil)

	_, err := svc.Recommend(context.Background(), Request{ImageData: validImage, Occasion: "party"})
	require.True(t, apperrors.IsCode(err, "parse_error"))
}

func TestRecommendChatFailureIsFatal(t *testing.T) {
	chat := &scriptedChatClient{err: errors.New("rate limited")}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, nil, nil)

	_, err := svc.Recommend(context.Background(), Request{ImageData: validImage, Occasion: "party"})
	require.True(t, apperrors.IsCode(err, "llm_error"))
}

func TestRecommendAttachesImages(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{fullModelResponse}}
	images := &stubImageClient{}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20, MaxImages: 1}, chat, nil, images)

	resp, err := svc.Recommend(context.Background(), Request{ImageData: validImage, Occasion: "wedding"})
	require.NoError(t, err)

	// MaxImages truncates the descriptions handed to the collaborator.
	require.Equal(t, []string{"Charcoal suit with the white dress shirt"}, images.lastDescriptions)
	require.Len(t, resp.OutfitImages, 1)
}

func TestRecommendFromAnalysisLegacyFlow(t *testing.T) {
	chat := &scriptedChatClient{responses: []string{`{"summary":"wear the suit","recommendations":["The charcoal suit"]}`}}
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, chat, nil, nil)

	analysis := ClothingAnalysis{
		Items:        []ClothingItem{{Type: "suit", Color: "charcoal", Style: "slim"}},
		OverallStyle: "classic",
		ColorPalette: []string{"charcoal"},
		Summary:      "one good suit",
	}
	resolved := occasion.Context{
		Occasion:  "wedding",
		Location:  "Japan",
		Formality: occasion.FormalityFormal,
		Tone:      []string{"elegant"},
		RawInput:  "wedding in Japan",
	}

	resp, err := svc.RecommendFromAnalysis(context.Background(), analysis, resolved)
	require.NoError(t, err)

	// The model omitted occasion/location, so the resolved context fills them.
	require.Equal(t, "wedding", resp.Occasion)
	require.Equal(t, "Japan", resp.Location)
	require.Equal(t, &analysis, resp.ClothingAnalysis)
	require.Equal(t, &resolved, resp.OccasionContext)

	// One text-only call embedding both inputs verbatim.
	require.Equal(t, 1, len(chat.requests))
	prompt := chat.requests[0].Messages[0].Content[0].Text
	require.Contains(t, prompt, `"charcoal"`)
	require.Contains(t, prompt, `"wedding in Japan"`)
}

func TestRecommendFromAnalysisRequiresOccasion(t *testing.T) {
	svc := newTestService(Config{Model: "gpt-test", LocationMaxTokens: 20}, &scriptedChatClient{}, nil, nil)

	_, err := svc.RecommendFromAnalysis(context.Background(), ClothingAnalysis{}, occasion.Context{})
	require.True(t, apperrors.IsCode(err, "invalid_input"))
}

func newTestService(cfg Config, chat ChatClient, weather WeatherClient, images ImageClient) Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(cfg, chat, weather, images, jsonextract.New(), logger)
}

type scriptedChatClient struct {
	responses []string
	requests  []chatgpt.ChatCompletionRequest
	err       error
}

func (s *scriptedChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.requests = append(s.requests, req)
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	if len(s.requests) > len(s.responses) {
		return chatgpt.ChatCompletionResponse{}, nil
	}
	return textResponse(s.responses[len(s.requests)-1]), nil
}

func textResponse(content string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
		"usage": map[string]any{"prompt_tokens": 100, "completion_tokens": 50, "total_tokens": 150},
	})
	_ = json.Unmarshal(payload, &resp)
	return resp
}

type stubWeatherClient struct {
	snapshot     WeatherSnapshot
	err          error
	calls        int
	lastLocation string
}

func (s *stubWeatherClient) CurrentWeather(ctx context.Context, location string) (WeatherSnapshot, error) {
	s.calls++
	s.lastLocation = location
	if s.err != nil {
		return WeatherSnapshot{}, s.err
	}
	return s.snapshot, nil
}

type stubImageClient struct {
	lastDescriptions []string
}

func (s *stubImageClient) ImagesForDescriptions(ctx context.Context, descriptions []string) []OutfitImage {
	s.lastDescriptions = descriptions
	images := make([]OutfitImage, 0, len(descriptions))
	for _, description := range descriptions {
		images = append(images, OutfitImage{
			Description: description,
			URL:         "https://images.example/" + strings.ReplaceAll(description, " ", "-"),
		})
	}
	return images
}
