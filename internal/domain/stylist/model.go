package stylist

import (
	"context"

	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	"github.com/PMQ9/ai-attire/pkg/metrics"
)

// ClothingItem is a single wardrobe piece identified by the model from
// the uploaded photo. It is never constructed by callers.
type ClothingItem struct {
	Type      string `json:"type"`
	Color     string `json:"color"`
	Style     string `json:"style"`
	Material  string `json:"material,omitempty"`
	Condition string `json:"condition,omitempty"`
}

// ClothingAnalysis summarizes everything the model saw in the wardrobe
// photo. Items may be empty: an empty wardrobe is a valid analysis.
type ClothingAnalysis struct {
	Items        []ClothingItem `json:"items"`
	OverallStyle string         `json:"overallStyle"`
	ColorPalette []string       `json:"colorPalette"`
	Summary      string         `json:"summary"`
}

// WeatherSnapshot carries current conditions for a resolved location.
// It is sourced externally and merged into responses read-only.
type WeatherSnapshot struct {
	Location        string  `json:"location"`
	Latitude        float64 `json:"latitude"`
	Longitude       float64 `json:"longitude"`
	TemperatureC    float64 `json:"temperatureC"`
	TemperatureF    float64 `json:"temperatureF"`
	Description     string  `json:"description"`
	Humidity        int     `json:"humidity"`
	WindSpeedKmh    float64 `json:"windSpeedKmh"`
	PrecipitationMm float64 `json:"precipitationMm"`
	Summary         string  `json:"summary"`
}

// OutfitImage is a representative photograph attached to one
// recommendation. Placeholder entries mark lookups that failed.
type OutfitImage struct {
	Description string `json:"description"`
	URL         string `json:"url,omitempty"`
	ThumbURL    string `json:"thumbUrl,omitempty"`
	Credit      string `json:"credit,omitempty"`
	Placeholder bool   `json:"placeholder,omitempty"`
}

// Request is the orchestrator's input: a base64 wardrobe photo plus the
// free-text occasion description.
type Request struct {
	ImageData  string `json:"imageData"`
	Occasion   string `json:"occasion"`
	UseWeather bool   `json:"useWeather"`
}

// Response is the fully merged recommendation returned to callers.
type Response struct {
	Occasion          string              `json:"occasion"`
	Location          string              `json:"location,omitempty"`
	Summary           string              `json:"summary"`
	Recommendations   []string            `json:"recommendations"`
	CulturalTips      []string            `json:"culturalTips,omitempty"`
	DontWear          []string            `json:"dontWear,omitempty"`
	ShoppingTips      []string            `json:"shoppingTips,omitempty"`
	ClothingAnalysis  *ClothingAnalysis   `json:"clothingAnalysis,omitempty"`
	OccasionContext   *occasion.Context   `json:"occasionContext,omitempty"`
	WeatherData       *WeatherSnapshot    `json:"weatherData,omitempty"`
	WeatherConsidered *bool               `json:"weatherConsidered,omitempty"`
	OutfitImages      []OutfitImage       `json:"outfitImages,omitempty"`
	TokenUsage        *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// Config tunes the orchestrator's LLM usage.
type Config struct {
	Model             string
	Temperature       float32
	LocationMaxTokens int
	MaxImages         int
}

// ChatClient is the LLM surface the orchestrator depends on. Vision
// requests go through the same call with an image content part.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error)
}

// WeatherClient resolves a location name to current conditions.
type WeatherClient interface {
	CurrentWeather(ctx context.Context, location string) (WeatherSnapshot, error)
}

// ImageClient attaches representative photographs to recommendation
// texts, best effort: it returns fewer entries or placeholders on
// partial failure, never an error.
type ImageClient interface {
	ImagesForDescriptions(ctx context.Context, descriptions []string) []OutfitImage
}
