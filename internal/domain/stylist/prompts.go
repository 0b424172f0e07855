package stylist

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Every prompt below demands raw JSON with an explicit example schema,
// instructs the model to only use wardrobe items it identified in the
// photo, and asks it to minimize suggesting new purchases.

const jsonOnlyRule = "Respond with ONLY valid JSON, no markdown, no code fences, no extra text."

const wardrobeRules = `Rules:
- Recommend outfits using ONLY items you can identify in the photo; never invent items.
- Minimize suggesting new purchases; if something essential is missing, put it under shoppingTips.
- Be culturally and locally sensitive when a location or culture is implied.`

const responseSchema = `{"occasion":"short occasion label","location":"place or null","summary":"one-paragraph outfit advice","recommendations":["specific outfit suggestion"],"culturalTips":["optional cultural guidance"],"dontWear":["things to avoid"],"shoppingTips":["minimal purchases worth considering"],"clothingAnalysis":{"items":[{"type":"shirt","color":"navy","style":"oxford","material":"cotton","condition":"good"}],"overallStyle":"wardrobe style read","colorPalette":["dominant colors"],"summary":"what the wardrobe offers"},"occasionContext":{"occasion":"label","location":"place or null","formality":"casual|business-casual|formal|athletic","tone":["descriptors"],"weatherConsideration":null,"culturalNotes":null,"preferences":[]}}`

func buildCombinedPrompt(occasionText string) string {
	return fmt.Sprintf(`You are a personal stylist. Analyze the wardrobe photo and this occasion: %q

In one pass, identify every clothing item visible in the photo, work out what the occasion calls for, and recommend complete outfits.

%s
Use exactly this schema:
%s

%s`, occasionText, jsonOnlyRule, responseSchema, wardrobeRules)
}

func buildWeatherAwarePrompt(occasionText string, weather WeatherSnapshot) string {
	return fmt.Sprintf(`You are a personal stylist. Analyze the wardrobe photo and this occasion: %q

Current weather at %s: %.1f°C (%.1f°F), %s, humidity %d%%, wind %.1f km/h, precipitation %.1f mm.

In one pass, identify every clothing item visible in the photo, work out what the occasion calls for, and recommend complete outfits appropriate for these exact conditions. Weigh temperature, precipitation and wind when choosing layers and fabrics.

%s
Use exactly this schema (weatherConsideration must describe how the conditions shaped your advice):
%s

%s`, occasionText, weather.Location, weather.TemperatureC, weather.TemperatureF,
		strings.ToLower(weather.Description), weather.Humidity, weather.WindSpeedKmh,
		weather.PrecipitationMm, jsonOnlyRule, responseSchema, wardrobeRules)
}

// locationSentinel is what the model answers when the occasion text
// names no place.
const locationSentinel = "NONE"

func buildLocationPrompt(occasionText string) string {
	return fmt.Sprintf(`Extract the single most relevant location (city or country) mentioned in this text: %q

Answer with just the location name and nothing else. If no location is mentioned, answer exactly %s.`, occasionText, locationSentinel)
}

func buildLegacyPrompt(analysis ClothingAnalysis, resolved json.RawMessage) string {
	analysisJSON, err := json.Marshal(analysis)
	if err != nil {
		analysisJSON = []byte("{}")
	}
	return fmt.Sprintf(`You are a personal stylist. A wardrobe has already been analyzed and the occasion already resolved.

Wardrobe analysis:
%s

Occasion context:
%s

Recommend complete outfits for this occasion from this wardrobe.

%s
Use exactly this schema:
%s

%s`, analysisJSON, resolved, jsonOnlyRule, responseSchema, wardrobeRules)
}
