package occasion

import (
	"context"
	"strings"
)

// KeywordStrategy is the deterministic, offline resolution fallback. It
// never fails and produces byte-identical output for identical input.
type KeywordStrategy struct{}

// NewKeywordStrategy constructs the fallback strategy.
func NewKeywordStrategy() *KeywordStrategy {
	return &KeywordStrategy{}
}

// Name identifies the strategy in logs.
func (s *KeywordStrategy) Name() string { return "keyword" }

// Resolve classifies input using fixed keyword tables. The error is
// always nil; the signature exists to satisfy Strategy.
func (s *KeywordStrategy) Resolve(_ context.Context, input string) (Context, error) {
	lower := strings.ToLower(input)

	resolved := matchOccasion(lower)
	location := matchLocation(lower)

	out := Context{
		Occasion:             resolved,
		Location:             location,
		Formality:            formalityFor(resolved),
		Tone:                 matchVocabulary(lower, toneVocabulary),
		WeatherConsideration: matchWeather(lower),
		CulturalNotes:        culturalNotesFor(lower, location),
		Preferences:          matchPreferences(lower),
		RawInput:             input,
	}
	return out, nil
}

type occasionRule struct {
	name     string
	keywords []string
}

// occasionRules is ordered from specific to generic; the first matching
// group wins, so "job interview" can never be intercepted by a later
// generic rule.
var occasionRules = []occasionRule{
	{"interview", []string{"job interview", "interview"}},
	{"wedding", []string{"wedding", "marriage ceremony"}},
	{"workout", []string{"workout", "gym", "exercise", "yoga", "running", "jog"}},
	{"funeral", []string{"funeral", "memorial service", "wake"}},
	{"gala", []string{"gala", "black tie", "black-tie", "red carpet"}},
	{"formal-event", []string{"formal event", "banquet", "ceremony", "awards"}},
	{"business", []string{"business meeting", "business", "conference", "presentation", "client meeting", "office"}},
	{"party", []string{"party", "birthday", "celebration", "night out", "clubbing"}},
	{"date", []string{"date night", "date", "anniversary"}},
	{"casual-dining", []string{"dinner", "lunch", "brunch", "restaurant", "cafe"}},
	{"beach", []string{"beach", "pool", "swimming", "seaside"}},
	{"outdoor", []string{"hike", "hiking", "camping", "picnic", "outdoor", "trail"}},
	{"casual", []string{"casual", "hangout", "hanging out", "errands", "weekend"}},
}

func matchOccasion(lower string) string {
	for _, rule := range occasionRules {
		for _, keyword := range rule.keywords {
			if strings.Contains(lower, keyword) {
				return rule.name
			}
		}
	}
	return "general"
}

var formalityTable = map[string]Formality{
	"interview":     FormalityFormal,
	"wedding":       FormalityFormal,
	"funeral":       FormalityFormal,
	"gala":          FormalityFormal,
	"formal-event":  FormalityFormal,
	"business":      FormalityBusinessCasual,
	"date":          FormalityBusinessCasual,
	"workout":       FormalityAthletic,
	"party":         FormalityCasual,
	"casual-dining": FormalityCasual,
	"beach":         FormalityCasual,
	"outdoor":       FormalityCasual,
	"casual":        FormalityCasual,
}

func formalityFor(occasion string) Formality {
	if formality, ok := formalityTable[occasion]; ok {
		return formality
	}
	return FormalityCasual
}

// gazetteer maps lower-cased substrings to their display names. It is a
// fixed, narrow list; anything outside it resolves to no location.
var gazetteer = []struct {
	match   string
	display string
}{
	{"new york", "New York"},
	{"japan", "Japan"},
	{"tokyo", "Tokyo"},
	{"india", "India"},
	{"mumbai", "Mumbai"},
	{"france", "France"},
	{"paris", "Paris"},
	{"italy", "Italy"},
	{"rome", "Rome"},
	{"london", "London"},
	{"dubai", "Dubai"},
	{"singapore", "Singapore"},
	{"thailand", "Thailand"},
	{"bali", "Bali"},
	{"mexico", "Mexico"},
	{"brazil", "Brazil"},
	{"egypt", "Egypt"},
	{"china", "China"},
	{"korea", "Korea"},
	{"seoul", "Seoul"},
	{"hawaii", "Hawaii"},
	{"california", "California"},
	{"texas", "Texas"},
	{"germany", "Germany"},
	{"berlin", "Berlin"},
	{"spain", "Spain"},
	{"greece", "Greece"},
	{"australia", "Australia"},
	{"sydney", "Sydney"},
	{"canada", "Canada"},
	{"toronto", "Toronto"},
}

func matchLocation(lower string) string {
	for _, entry := range gazetteer {
		if strings.Contains(lower, entry.match) {
			return entry.display
		}
	}
	return ""
}

var toneVocabulary = []string{
	"elegant", "modern", "traditional", "trendy", "classic", "minimalist",
	"bold", "comfortable", "professional", "romantic", "festive", "edgy",
	"sporty", "chic", "relaxed",
}

func matchVocabulary(lower string, vocabulary []string) []string {
	matches := make([]string, 0, 2)
	for _, word := range vocabulary {
		if strings.Contains(lower, word) {
			matches = append(matches, word)
		}
	}
	return matches
}

var preferenceVocabulary = []string{
	"comfortable", "colorful", "modest", "lightweight", "layered",
	"bright", "dark", "neutral", "sustainable", "vintage", "breathable",
}

// guardedPreferences are only counted as stated preferences next to a
// desire verb; otherwise the occasion word itself would be miscounted.
var guardedPreferences = []string{"casual", "formal"}

var desireVerbs = []string{"prefer", "want", "need", "like"}

func matchPreferences(lower string) []string {
	matches := matchVocabulary(lower, preferenceVocabulary)
	for _, word := range guardedPreferences {
		for _, verb := range desireVerbs {
			if strings.Contains(lower, verb+" "+word) || strings.Contains(lower, verb+" something "+word) {
				matches = append(matches, word)
				break
			}
		}
	}
	return matches
}

var weatherTerms = []struct {
	match         string
	consideration string
}{
	{"rain", "Rain is expected; favor water-resistant layers and closed shoes."},
	{"snow", "Snowy conditions; prioritize warm, insulated layers."},
	{"cold", "Cold weather; layer up and bring outerwear."},
	{"hot", "Hot weather; choose light, breathable fabrics."},
	{"humid", "Humid conditions; breathable natural fabrics work best."},
	{"windy", "Windy conditions; avoid loose accessories and light scarves."},
	{"winter", "Winter season; prioritize warmth over layering flexibility."},
	{"summer", "Summer season; choose light, breathable fabrics."},
}

func matchWeather(lower string) string {
	for _, term := range weatherTerms {
		if strings.Contains(lower, term.match) {
			return term.consideration
		}
	}
	return ""
}

const religiousSiteNote = "Religious site: modest attire required, cover shoulders and knees; some sites expect head coverings or shoes removed."

var religiousSiteTerms = []string{"temple", "mosque", "church", "shrine", "cathedral"}

// culturalNotesByLocation keys match gazetteer display names.
var culturalNotesByLocation = map[string]string{
	"Japan":     "Japanese dress codes lean conservative and modest; avoid loud prints at formal occasions and keep shoulders covered at ceremonies.",
	"Tokyo":     "Japanese dress codes lean conservative and modest; avoid loud prints at formal occasions and keep shoulders covered at ceremonies.",
	"India":     "Modest dress is appreciated, particularly at family and religious gatherings; rich colors are welcome at celebrations.",
	"Mumbai":    "Modest dress is appreciated, particularly at family and religious gatherings; rich colors are welcome at celebrations.",
	"Dubai":     "Modest public dress is expected: cover shoulders and knees outside resort areas.",
	"Thailand":  "Modest dress is expected at temples and royal sites; remove shoes indoors.",
	"Bali":      "Temple visits require a sarong and sash; modest dress is the norm outside beach areas.",
	"Egypt":     "Modest dress is expected outside resorts; light fabrics that still cover shoulders work well.",
	"France":    "Polished, understated style is the norm; avoid athletic wear outside the gym.",
	"Paris":     "Polished, understated style is the norm; avoid athletic wear outside the gym.",
	"Italy":     "Italians dress sharply; churches require covered shoulders and knees.",
	"Rome":      "Italians dress sharply; churches require covered shoulders and knees.",
	"Korea":     "Neat, well-put-together outfits are valued; modest necklines at formal events.",
	"Seoul":     "Neat, well-put-together outfits are valued; modest necklines at formal events.",
	"Singapore": "Dress is lightweight but neat; smart casual covers most venues.",
}

func culturalNotesFor(lower, location string) string {
	for _, term := range religiousSiteTerms {
		if strings.Contains(lower, term) {
			return religiousSiteNote
		}
	}
	if location == "" {
		return ""
	}
	return culturalNotesByLocation[location]
}
