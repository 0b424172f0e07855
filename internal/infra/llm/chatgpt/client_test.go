package chatgpt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const completionBody = `{"choices":[{"message":{"role":"assistant","content":"hello"}}],"usage":{"prompt_tokens":10,"completion_tokens":2,"total_tokens":12}}`

func TestCreateChatCompletion(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/chat/completions", r.URL.Path)
		require.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, 1, 0)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-test",
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Content())
	require.Equal(t, 12, resp.Usage.TotalTokens)
}

func TestCreateChatCompletionRetriesTransientFailures(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(completionBody))
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, 3, time.Millisecond)
	require.NoError(t, err)

	resp, err := client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-test",
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.NoError(t, err)
	require.Equal(t, "hello", resp.Content())
	require.Equal(t, int32(3), calls.Load())
}

func TestCreateChatCompletionDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	client, err := NewClient("test-key", srv.URL, 3, time.Millisecond)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{
		Model:    "gpt-test",
		Messages: []Message{TextMessage("user", "hi")},
	})
	require.Error(t, err)
	require.Equal(t, int32(1), calls.Load())
}

func TestCreateChatCompletionRequiresMessages(t *testing.T) {
	client, err := NewClient("test-key", "", 1, 0)
	require.NoError(t, err)

	_, err = client.CreateChatCompletion(context.Background(), ChatCompletionRequest{Model: "gpt-test"})
	require.Error(t, err)
}

func TestNewClientRejectsEmptyKey(t *testing.T) {
	_, err := NewClient("  ", "", 1, 0)
	require.Error(t, err)
}
