package stylist

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/PMQ9/ai-attire/internal/domain/occasion"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
)

// defaultOccasion labels responses whose payload omitted the occasion.
const defaultOccasion = "Unknown"

// decodeResponseWire maps an untyped model payload onto a Response with
// explicit defaults, so a partially conforming payload still yields a
// well-typed value. Validation decides afterwards whether the result is
// usable.
func decodeResponseWire(raw json.RawMessage, rawInput string) (Response, error) {
	var wire struct {
		Occasion         json.RawMessage `json:"occasion"`
		Location         json.RawMessage `json:"location"`
		Summary          json.RawMessage `json:"summary"`
		Recommendations  json.RawMessage `json:"recommendations"`
		CulturalTips     json.RawMessage `json:"culturalTips"`
		DontWear         json.RawMessage `json:"dontWear"`
		ShoppingTips     json.RawMessage `json:"shoppingTips"`
		ClothingAnalysis json.RawMessage `json:"clothingAnalysis"`
		OccasionContext  json.RawMessage `json:"occasionContext"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return Response{}, fmt.Errorf("decode recommendation payload: %w", err)
	}

	occasionLabel, err := jsonextract.String(wire.Occasion)
	if err != nil {
		return Response{}, fmt.Errorf("decode occasion field: %w", err)
	}
	if occasionLabel == "" {
		occasionLabel = defaultOccasion
	}

	location, err := jsonextract.String(wire.Location)
	if err != nil {
		return Response{}, fmt.Errorf("decode location field: %w", err)
	}

	summary, err := jsonextract.String(wire.Summary)
	if err != nil {
		return Response{}, fmt.Errorf("decode summary field: %w", err)
	}

	recommendations, err := jsonextract.StringArray(wire.Recommendations)
	if err != nil {
		return Response{}, fmt.Errorf("decode recommendations field: %w", err)
	}
	if recommendations == nil {
		recommendations = []string{}
	}

	culturalTips, err := jsonextract.StringArray(wire.CulturalTips)
	if err != nil {
		return Response{}, fmt.Errorf("decode culturalTips field: %w", err)
	}
	dontWear, err := jsonextract.StringArray(wire.DontWear)
	if err != nil {
		return Response{}, fmt.Errorf("decode dontWear field: %w", err)
	}
	shoppingTips, err := jsonextract.StringArray(wire.ShoppingTips)
	if err != nil {
		return Response{}, fmt.Errorf("decode shoppingTips field: %w", err)
	}

	out := Response{
		Occasion:        occasionLabel,
		Location:        location,
		Summary:         summary,
		Recommendations: recommendations,
		CulturalTips:    culturalTips,
		DontWear:        dontWear,
		ShoppingTips:    shoppingTips,
	}

	if analysisPresent(wire.ClothingAnalysis) {
		analysis, err := decodeClothingAnalysis(wire.ClothingAnalysis)
		if err != nil {
			return Response{}, err
		}
		out.ClothingAnalysis = &analysis
	}

	if analysisPresent(wire.OccasionContext) {
		resolved, err := occasion.DecodeContext(wire.OccasionContext, rawInput)
		if err != nil {
			return Response{}, err
		}
		out.OccasionContext = &resolved
	}

	return out, nil
}

func analysisPresent(raw json.RawMessage) bool {
	return len(raw) > 0 && string(raw) != "null"
}

// decodeClothingAnalysis decodes the nested wardrobe analysis. Items
// missing a required field are dropped rather than failing the whole
// response.
func decodeClothingAnalysis(raw json.RawMessage) (ClothingAnalysis, error) {
	var wire struct {
		Items        json.RawMessage `json:"items"`
		OverallStyle json.RawMessage `json:"overallStyle"`
		ColorPalette json.RawMessage `json:"colorPalette"`
		Summary      json.RawMessage `json:"summary"`
	}
	if err := json.Unmarshal(raw, &wire); err != nil {
		return ClothingAnalysis{}, fmt.Errorf("decode clothing analysis: %w", err)
	}

	overallStyle, err := jsonextract.String(wire.OverallStyle)
	if err != nil {
		return ClothingAnalysis{}, fmt.Errorf("decode overallStyle field: %w", err)
	}
	summary, err := jsonextract.String(wire.Summary)
	if err != nil {
		return ClothingAnalysis{}, fmt.Errorf("decode analysis summary field: %w", err)
	}
	palette, err := jsonextract.StringArray(wire.ColorPalette)
	if err != nil {
		return ClothingAnalysis{}, fmt.Errorf("decode colorPalette field: %w", err)
	}
	if palette == nil {
		palette = []string{}
	}

	items, err := decodeClothingItems(wire.Items)
	if err != nil {
		return ClothingAnalysis{}, err
	}

	return ClothingAnalysis{
		Items:        items,
		OverallStyle: overallStyle,
		ColorPalette: palette,
		Summary:      summary,
	}, nil
}

func decodeClothingItems(raw json.RawMessage) ([]ClothingItem, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return []ClothingItem{}, nil
	}

	var wireItems []struct {
		Type      string `json:"type"`
		Color     string `json:"color"`
		Style     string `json:"style"`
		Material  string `json:"material"`
		Condition string `json:"condition"`
	}
	if err := json.Unmarshal(raw, &wireItems); err != nil {
		return nil, fmt.Errorf("decode clothing items: %w", err)
	}

	items := make([]ClothingItem, 0, len(wireItems))
	for _, wi := range wireItems {
		item := ClothingItem{
			Type:      strings.TrimSpace(wi.Type),
			Color:     strings.TrimSpace(wi.Color),
			Style:     strings.TrimSpace(wi.Style),
			Material:  strings.TrimSpace(wi.Material),
			Condition: strings.TrimSpace(wi.Condition),
		}
		if item.Type == "" || item.Color == "" || item.Style == "" {
			continue
		}
		items = append(items, item)
	}
	return items, nil
}
