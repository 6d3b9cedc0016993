package completion

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewChatClient_MissingKey(t *testing.T) {
	_, err := NewChatClient("Groq", "", "llama", DefaultGroqBaseURL, nil)
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestChatClient_Complete(t *testing.T) {
	var seen chatRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer groq-key", r.Header.Get("Authorization"))
		raw, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(raw, &seen))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"choices": [{"message": {"role": "assistant", "content": "\nTomato Basil Pasta\n"}}]}`))
	}))
	defer srv.Close()

	c, err := NewChatClient("Groq", "groq-key", "llama-3.3-70b-versatile", srv.URL+"/v1/", srv.Client())
	require.NoError(t, err)

	text, err := c.Complete(context.Background(), "translate me")
	require.NoError(t, err)
	assert.Equal(t, "Tomato Basil Pasta", text)

	assert.Equal(t, "llama-3.3-70b-versatile", seen.Model)
	require.Len(t, seen.Messages, 1)
	assert.Equal(t, "user", seen.Messages[0].Role)
	assert.Equal(t, "translate me", seen.Messages[0].Content)
}

func TestChatClient_Errors(t *testing.T) {
	tests := []struct {
		name     string
		status   int
		body     string
		wantType string
	}{
		{"server error", http.StatusServiceUnavailable, `{"error": "down"}`, "server_error"},
		{"payment", http.StatusPaymentRequired, `{"error": "pay up"}`, "credit_exhausted"},
		{"no choices", http.StatusOK, `{"choices": []}`, "malformed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			c, err := NewChatClient("OpenAI", "key", "gpt-4o-mini", srv.URL, srv.Client())
			require.NoError(t, err)

			_, err = c.Complete(context.Background(), "prompt")
			require.Error(t, err)
			assert.Equal(t, tt.wantType, ClassifyError(err, "openai").Type)
		})
	}
}
