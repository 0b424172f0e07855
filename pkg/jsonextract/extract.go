// Package jsonextract recovers the JSON object embedded in raw LLM output.
package jsonextract

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrNoObject is returned when the text contains no {...} span.
var ErrNoObject = errors.New("no JSON object found in response")

// Extractor locates and parses the JSON object embedded in model output,
// independent of any surrounding prose or markdown fencing.
type Extractor struct{}

// New constructs an Extractor. Callers hold their own instance; there is
// no package-level default.
func New() *Extractor {
	return &Extractor{}
}

// Extract returns the substring between the first '{' and the last '}'
// of raw, parsed as JSON. The span match is greedy rather than
// balanced-brace scanning: it tolerates models that wrap the payload in
// prose or fences, but mis-extracts if the text carries multiple
// independent JSON objects. Callers validate the shape themselves.
func (e *Extractor) Extract(raw string) (json.RawMessage, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start == -1 || end == -1 || end < start {
		return nil, ErrNoObject
	}

	span := raw[start : end+1]
	if !json.Valid([]byte(span)) {
		return nil, fmt.Errorf("extracted span is not valid JSON: %.80s", span)
	}
	return json.RawMessage(span), nil
}
