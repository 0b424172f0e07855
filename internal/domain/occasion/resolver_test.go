package occasion

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/PMQ9/ai-attire/internal/infra/llm/chatgpt"
	"github.com/PMQ9/ai-attire/pkg/jsonextract"
)

func TestResolverAIPathSuccess(t *testing.T) {
	stub := &stubChatClient{
		content: `Here you go:
{"occasion":"gala","location":"Paris","formality":"formal","tone":["elegant"],"weatherConsideration":null,"culturalNotes":null,"preferences":["modest"]}`,
	}
	resolver := newTestResolver(stub)

	resolved := resolver.Resolve(context.Background(), "attending a gala in Paris, keep it modest")
	require.Equal(t, "gala", resolved.Occasion)
	require.Equal(t, "Paris", resolved.Location)
	require.Equal(t, FormalityFormal, resolved.Formality)
	require.Equal(t, []string{"elegant"}, resolved.Tone)
	require.Equal(t, []string{"modest"}, resolved.Preferences)
	require.Empty(t, resolved.WeatherConsideration)
	require.Empty(t, resolved.CulturalNotes)
	require.Equal(t, "attending a gala in Paris, keep it modest", resolved.RawInput)
	require.Equal(t, 1, stub.calls)
}

func TestResolverCoercesInvalidFormality(t *testing.T) {
	stub := &stubChatClient{
		content: `{"occasion":"party","formality":"smart-casual","tone":"festive"}`,
	}
	resolver := newTestResolver(stub)

	resolved := resolver.Resolve(context.Background(), "office party")
	require.Equal(t, FormalityCasual, resolved.Formality)
	// A bare string tone is wrapped into a one-element slice.
	require.Equal(t, []string{"festive"}, resolved.Tone)
}

func TestResolverFallsBackOnNetworkFailure(t *testing.T) {
	stub := &stubChatClient{err: errors.New("upstream down")}
	resolver := newTestResolver(stub)

	resolved := resolver.Resolve(context.Background(), "job interview tomorrow")
	require.Equal(t, "interview", resolved.Occasion)
	require.Equal(t, FormalityFormal, resolved.Formality)
	require.Equal(t, "job interview tomorrow", resolved.RawInput)
}

func TestResolverFallsBackOnMalformedJSON(t *testing.T) {
	stub := &stubChatClient{content: "I'm sorry, I cannot help with that."}
	resolver := newTestResolver(stub)

	resolved := resolver.Resolve(context.Background(), "wedding in Japan")
	require.Equal(t, "wedding", resolved.Occasion)
	require.Equal(t, "Japan", resolved.Location)
	require.Contains(t, resolved.CulturalNotes, "modest")
}

func TestResolverNeverFailsAndKeepsEnum(t *testing.T) {
	inputs := []string{
		"", "   ", "xyzzy", "wedding", "ДЕНЬ РОЖДЕНИЯ", "a very long description of nothing in particular",
	}
	resolver := newTestResolver(&stubChatClient{err: errors.New("down")})

	valid := map[Formality]bool{
		FormalityCasual:         true,
		FormalityBusinessCasual: true,
		FormalityFormal:         true,
		FormalityAthletic:       true,
	}
	for _, input := range inputs {
		resolved := resolver.Resolve(context.Background(), input)
		require.True(t, valid[resolved.Formality], "formality %q outside enum", resolved.Formality)
		require.Equal(t, input, resolved.RawInput)
	}
}

func TestDecodeContextDefaults(t *testing.T) {
	resolved, err := DecodeContext([]byte(`{"occasion":null,"location":null}`), "raw text")
	require.NoError(t, err)
	require.Equal(t, "general", resolved.Occasion)
	require.Empty(t, resolved.Location)
	require.Equal(t, FormalityCasual, resolved.Formality)
	require.NotNil(t, resolved.Tone)
	require.Empty(t, resolved.Tone)
	require.Equal(t, "raw text", resolved.RawInput)
}

func newTestResolver(client ChatClient) *Resolver {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewResolver(Config{Model: "gpt-test", MaxTokens: 300}, client, jsonextract.New(), logger)
}

type stubChatClient struct {
	content string
	err     error
	calls   int
}

func (s *stubChatClient) CreateChatCompletion(ctx context.Context, req chatgpt.ChatCompletionRequest) (chatgpt.ChatCompletionResponse, error) {
	s.calls++
	if s.err != nil {
		return chatgpt.ChatCompletionResponse{}, s.err
	}
	return textResponse(s.content), nil
}

func textResponse(content string) chatgpt.ChatCompletionResponse {
	var resp chatgpt.ChatCompletionResponse
	payload, _ := json.Marshal(map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"role": "assistant", "content": content}},
		},
	})
	_ = json.Unmarshal(payload, &resp)
	return resp
}
