package groq

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"notepocket/pkg/llm"
)

func TestChatSendsOpenAICompatibleRequest(t *testing.T) {
	var captured chatRequest
	var authHeader string

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/chat/completions", r.URL.Path)
		authHeader = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"hello back"}}]}`))
	}))
	defer server.Close()

	provider := NewGroqProvider("test-key", server.URL, "llama-3.3-70b-versatile")

	reply, err := provider.Chat(context.Background(),
		[]llm.Message{{Role: "user", Content: "hello"}},
		llm.WithTemperature(0.7),
		llm.WithJSONObject(),
	)
	require.NoError(t, err)

	assert.Equal(t, "hello back", reply)
	assert.Equal(t, "Bearer test-key", authHeader)
	assert.Equal(t, "llama-3.3-70b-versatile", captured.Model)
	assert.InDelta(t, 0.7, captured.Temperature, 0.0001)
	require.NotNil(t, captured.ResponseFormat)
	assert.Equal(t, "json_object", captured.ResponseFormat.Type)
	require.Len(t, captured.Messages, 1)
	assert.Equal(t, "user", captured.Messages[0].Role)
}

func TestChatMissingAPIKeyFailsBeforeAnyRequest(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
	}))
	defer server.Close()

	provider := NewGroqProvider("", server.URL, "llama-3.3-70b-versatile")

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.ErrorIs(t, err, llm.ErrMissingAPIKey)
	assert.Equal(t, int32(0), requests.Load())
}

func TestChatClassifiesUpstreamStatuses(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		sentinel error
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error":{"message":"invalid api key"}}`, llm.ErrUnauthorized},
		{"rate limited", http.StatusTooManyRequests, `{"error":{"message":"slow down"}}`, llm.ErrRateLimited},
		{"bad request", http.StatusBadRequest, `{"error":{"message":"model not found"}}`, llm.ErrBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			provider := NewGroqProvider("key", server.URL, "m")

			_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
			assert.ErrorIs(t, err, tt.sentinel)
		})
	}

	t.Run("bad request carries upstream message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":{"message":"model not found"}}`))
		}))
		defer server.Close()

		provider := NewGroqProvider("key", server.URL, "m")

		_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "model not found")
	})

	t.Run("other statuses stay generic", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
			_, _ = w.Write([]byte(`{"error":{"message":"upstream exploded"}}`))
		}))
		defer server.Close()

		provider := NewGroqProvider("key", server.URL, "m")

		_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
		require.Error(t, err)
		assert.NotErrorIs(t, err, llm.ErrUnauthorized)
		assert.NotErrorIs(t, err, llm.ErrRateLimited)
		assert.NotErrorIs(t, err, llm.ErrBadRequest)
		assert.Contains(t, err.Error(), "upstream exploded")
	})
}

func TestChatRejectsEmptyChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	defer server.Close()

	provider := NewGroqProvider("key", server.URL, "m")

	_, err := provider.Chat(context.Background(), []llm.Message{{Role: "user", Content: "hi"}})
	assert.Error(t, err)
}
