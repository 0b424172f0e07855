package occasion

import "strings"

// Formality is the dress-code bucket attached to a resolved context.
type Formality string

const (
	FormalityCasual         Formality = "casual"
	FormalityBusinessCasual Formality = "business-casual"
	FormalityFormal         Formality = "formal"
	FormalityAthletic       Formality = "athletic"
)

// CoerceFormality maps an arbitrary model-supplied value into the valid
// enum, defaulting to casual.
func CoerceFormality(value string) Formality {
	switch Formality(strings.ToLower(strings.TrimSpace(value))) {
	case FormalityBusinessCasual:
		return FormalityBusinessCasual
	case FormalityFormal:
		return FormalityFormal
	case FormalityAthletic:
		return FormalityAthletic
	default:
		return FormalityCasual
	}
}

// Context is the structured understanding of a free-text occasion
// description. It is created once per request and never mutated after
// resolution. RawInput always carries the caller's text byte-for-byte.
type Context struct {
	Occasion             string    `json:"occasion"`
	Location             string    `json:"location,omitempty"`
	Formality            Formality `json:"formality"`
	Tone                 []string  `json:"tone"`
	WeatherConsideration string    `json:"weatherConsideration,omitempty"`
	CulturalNotes        string    `json:"culturalNotes,omitempty"`
	Preferences          []string  `json:"preferences,omitempty"`
	RawInput             string    `json:"rawInput"`
}

// Config holds the LLM settings used by the AI resolution strategy.
type Config struct {
	Model       string
	Temperature float32
	MaxTokens   int
}
