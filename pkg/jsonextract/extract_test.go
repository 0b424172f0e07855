package jsonextract

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractFromProse(t *testing.T) {
	extractor := New()

	raw, err := extractor.Extract(`noise {"a":1} trailing`)
	require.NoError(t, err)

	var payload map[string]int
	require.NoError(t, json.Unmarshal(raw, &payload))
	require.Equal(t, map[string]int{"a": 1}, payload)
}

func TestExtractFromMarkdownFence(t *testing.T) {
	extractor := New()

	raw, err := extractor.Extract("```json\n{\"summary\":\"ok\",\"items\":[]}\n```")
	require.NoError(t, err)
	require.JSONEq(t, `{"summary":"ok","items":[]}`, string(raw))
}

func TestExtractNoBraces(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract("the model refused and answered in plain text")
	require.ErrorIs(t, err, ErrNoObject)
}

func TestExtractInvalidSpan(t *testing.T) {
	extractor := New()

	_, err := extractor.Extract(`prefix {"broken": } suffix`)
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoObject)
}

func TestExtractNestedObject(t *testing.T) {
	extractor := New()

	raw, err := extractor.Extract(`{"outer":{"inner":[1,2]}}`)
	require.NoError(t, err)
	require.JSONEq(t, `{"outer":{"inner":[1,2]}}`, string(raw))
}
