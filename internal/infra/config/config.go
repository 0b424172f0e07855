package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	LLM      LLMConfig      `yaml:"llm"`
	Stylist  StylistConfig  `yaml:"stylist"`
	Occasion OccasionConfig `yaml:"occasion"`
	Weather  WeatherConfig  `yaml:"weather"`
	Images   ImagesConfig   `yaml:"images"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address         string          `yaml:"address"`
	ReadTimeout     time.Duration   `yaml:"readTimeout"`
	WriteTimeout    time.Duration   `yaml:"writeTimeout"`
	ShutdownTimeout time.Duration   `yaml:"shutdownTimeout"`
	MaxUploadBytes  int64           `yaml:"maxUploadBytes"`
	AllowedOrigins  []string        `yaml:"allowedOrigins"`
	RateLimit       RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// LLMConfig contains ChatGPT/OpenAI settings.
type LLMConfig struct {
	APIKey      string        `yaml:"apiKey"`
	BaseURL     string        `yaml:"baseUrl"`
	Model       string        `yaml:"model"`
	Temperature float32       `yaml:"temperature"`
	MaxAttempts int           `yaml:"maxAttempts"`
	BaseBackoff time.Duration `yaml:"baseBackoff"`
}

// StylistConfig tunes the recommendation orchestrator.
type StylistConfig struct {
	LocationMaxTokens int `yaml:"locationMaxTokens"`
	MaxImages         int `yaml:"maxImages"`
}

// OccasionConfig tunes the AI context resolution strategy.
type OccasionConfig struct {
	MaxTokens int `yaml:"maxTokens"`
}

// WeatherConfig controls the Open-Meteo collaborator.
type WeatherConfig struct {
	Enabled         bool   `yaml:"enabled"`
	GeocodeBaseURL  string `yaml:"geocodeBaseUrl"`
	ForecastBaseURL string `yaml:"forecastBaseUrl"`
}

// ImagesConfig controls the Unsplash collaborator.
type ImagesConfig struct {
	Enabled   bool   `yaml:"enabled"`
	AccessKey string `yaml:"accessKey"`
	BaseURL   string `yaml:"baseUrl"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HTTP.MaxUploadBytes = parsed
		}
	}
	if v := os.Getenv("HTTP_ALLOWED_ORIGINS"); v != "" {
		cfg.HTTP.AllowedOrigins = splitList(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = isTrue(v)
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLM.APIKey = v
	}
	if v := os.Getenv("LLM_BASE_URL"); v != "" {
		cfg.LLM.BaseURL = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLM.Model = v
	}
	if v := os.Getenv("LLM_TEMPERATURE"); v != "" {
		if parsed, err := strconv.ParseFloat(v, 32); err == nil {
			cfg.LLM.Temperature = float32(parsed)
		}
	}
	if v := os.Getenv("LLM_MAX_ATTEMPTS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.LLM.MaxAttempts = parsed
		}
	}
	if v := os.Getenv("LLM_BASE_BACKOFF"); v != "" {
		if parsed, err := time.ParseDuration(v); err == nil {
			cfg.LLM.BaseBackoff = parsed
		}
	}
	if v := os.Getenv("STYLIST_LOCATION_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Stylist.LocationMaxTokens = parsed
		}
	}
	if v := os.Getenv("STYLIST_MAX_IMAGES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Stylist.MaxImages = parsed
		}
	}
	if v := os.Getenv("OCCASION_MAX_TOKENS"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Occasion.MaxTokens = parsed
		}
	}
	if v := os.Getenv("WEATHER_ENABLED"); v != "" {
		cfg.Weather.Enabled = isTrue(v)
	}
	if v := os.Getenv("WEATHER_GEOCODE_BASE_URL"); v != "" {
		cfg.Weather.GeocodeBaseURL = v
	}
	if v := os.Getenv("WEATHER_FORECAST_BASE_URL"); v != "" {
		cfg.Weather.ForecastBaseURL = v
	}
	if v := os.Getenv("IMAGES_ENABLED"); v != "" {
		cfg.Images.Enabled = isTrue(v)
	}
	if v := os.Getenv("IMAGES_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("IMAGES_BASE_URL"); v != "" {
		cfg.Images.BaseURL = v
	}
}

func isTrue(v string) bool {
	return v == "1" || strings.EqualFold(v, "true")
}

func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if clean := strings.TrimSpace(part); clean != "" {
			out = append(out, clean)
		}
	}
	return out
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:         ":8080",
			ReadTimeout:     30 * time.Second,
			WriteTimeout:    120 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			MaxUploadBytes:  10 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 30,
				Burst:             10,
			},
		},
		LLM: LLMConfig{
			Model:       "gpt-4o-mini",
			Temperature: 0.4,
			MaxAttempts: 3,
			BaseBackoff: 500 * time.Millisecond,
		},
		Stylist: StylistConfig{
			LocationMaxTokens: 20,
			MaxImages:         4,
		},
		Occasion: OccasionConfig{
			MaxTokens: 300,
		},
		Weather: WeatherConfig{
			Enabled: true,
		},
		Images: ImagesConfig{
			Enabled: false,
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if strings.TrimSpace(c.LLM.Model) == "" {
		return errors.New("llm.model cannot be empty")
	}
	if c.LLM.MaxAttempts < 1 {
		return errors.New("llm.maxAttempts must be at least 1")
	}
	if c.LLM.BaseBackoff < 0 {
		return errors.New("llm.baseBackoff cannot be negative")
	}
	if c.Stylist.LocationMaxTokens <= 0 {
		return errors.New("stylist.locationMaxTokens must be positive")
	}
	if c.Stylist.MaxImages < 0 {
		return errors.New("stylist.maxImages cannot be negative")
	}
	if c.Occasion.MaxTokens <= 0 {
		return errors.New("occasion.maxTokens must be positive")
	}
	if c.Images.Enabled && strings.TrimSpace(c.Images.AccessKey) == "" {
		return errors.New("images.accessKey cannot be empty when image search is enabled")
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
