package main

import (
	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/internal/domain/stylist"
	"github.com/PMQ9/ai-attire/internal/infra/config"
	"github.com/PMQ9/ai-attire/internal/infra/imagesearch/unsplash"
	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	"github.com/PMQ9/ai-attire/internal/infra/weather/openmeteo"
)

func provideChatGPTClient(cfg *config.Config) (*chatgpt.Client, error) {
	return chatgpt.NewClient(cfg.LLM.APIKey, cfg.LLM.BaseURL, cfg.LLM.MaxAttempts, cfg.LLM.BaseBackoff)
}

func provideStylistConfig(cfg *config.Config) stylist.Config {
	return stylist.Config{
		Model:             cfg.LLM.Model,
		Temperature:       cfg.LLM.Temperature,
		LocationMaxTokens: cfg.Stylist.LocationMaxTokens,
		MaxImages:         cfg.Stylist.MaxImages,
	}
}

func provideOccasionConfig(cfg *config.Config) occasion.Config {
	return occasion.Config{
		Model:       cfg.LLM.Model,
		Temperature: cfg.LLM.Temperature,
		MaxTokens:   cfg.Occasion.MaxTokens,
	}
}

func provideWeatherClient(cfg *config.Config) stylist.WeatherClient {
	if !cfg.Weather.Enabled {
		return nil
	}
	return openmeteo.NewClient(cfg.Weather.GeocodeBaseURL, cfg.Weather.ForecastBaseURL)
}

func provideImageClient(cfg *config.Config) stylist.ImageClient {
	if !cfg.Images.Enabled {
		return nil
	}
	return unsplash.NewClient(cfg.Images.AccessKey, cfg.Images.BaseURL)
}

func provideMaxUploadBytes(cfg *config.Config) int64 {
	return cfg.HTTP.MaxUploadBytes
}
