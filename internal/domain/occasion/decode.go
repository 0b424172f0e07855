package occasion

import (
	"encoding/json"
	"fmt"

	"github.com/PMQ9/ai-attire/pkg/jsonextract"
)

// DecodeContext maps an untyped JSON object onto a Context, coercing
// formality into the enum and defaulting tone and preferences to empty
// slices. rawInput is preserved verbatim regardless of what the payload
// claims.
func DecodeContext(raw json.RawMessage, rawInput string) (Context, error) {
	var wire struct {
		Occasion             json.RawMessage `json:"occasion"`
		Location             json.RawMessage `json:"location"`
		Formality            json.RawMessage `json:"formality"`
		Tone                 json.RawMessage `json:"tone"`
		WeatherConsideration json.RawMessage `json:"weatherConsideration"`
		CulturalNotes        json.RawMessage `json:"culturalNotes"`
		Preferences          json.RawMessage `json:"preferences"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Context{}, fmt.Errorf("decode occasion context: %w", err)
	}

	occasionLabel, err := jsonextract.String(wire.Occasion)
	if err != nil {
		return Context{}, fmt.Errorf("decode occasion field: %w", err)
	}
	if occasionLabel == "" {
		occasionLabel = "general"
	}

	location, err := jsonextract.String(wire.Location)
	if err != nil {
		return Context{}, fmt.Errorf("decode location field: %w", err)
	}

	formality, err := jsonextract.String(wire.Formality)
	if err != nil {
		return Context{}, fmt.Errorf("decode formality field: %w", err)
	}

	tone, err := jsonextract.StringArray(wire.Tone)
	if err != nil {
		return Context{}, fmt.Errorf("decode tone field: %w", err)
	}
	if tone == nil {
		tone = []string{}
	}

	weather, err := jsonextract.String(wire.WeatherConsideration)
	if err != nil {
		return Context{}, fmt.Errorf("decode weatherConsideration field: %w", err)
	}

	cultural, err := jsonextract.String(wire.CulturalNotes)
	if err != nil {
		return Context{}, fmt.Errorf("decode culturalNotes field: %w", err)
	}

	preferences, err := jsonextract.StringArray(wire.Preferences)
	if err != nil {
		return Context{}, fmt.Errorf("decode preferences field: %w", err)
	}

	return Context{
		Occasion:             occasionLabel,
		Location:             location,
		Formality:            CoerceFormality(formality),
		Tone:                 tone,
		WeatherConsideration: weather,
		CulturalNotes:        cultural,
		Preferences:          preferences,
		RawInput:             rawInput,
	}, nil
}
