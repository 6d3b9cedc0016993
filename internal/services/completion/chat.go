package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/socialchef/sous/internal/httpclient"
)

const (
	DefaultGroqBaseURL   = "https://api.groq.com/openai/v1"
	DefaultOpenAIBaseURL = "https://api.openai.com/v1"
)

// ChatClient calls an OpenAI-compatible chat completions endpoint (Groq, OpenAI).
type ChatClient struct {
	provider   string
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewChatClient builds a client for provider. A blank key yields an error wrapping ErrNotConfigured.
func NewChatClient(provider, apiKey, model, baseURL string, httpClient *http.Client) (*ChatClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: %s API key is missing", ErrNotConfigured, provider)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: %s model is empty", ErrNotConfigured, provider)
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &ChatClient{provider: provider, apiKey: apiKey, model: model, baseURL: base, httpClient: httpClient}, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// Complete sends prompt as one user message and returns the first choice, trimmed.
func (c *ChatClient) Complete(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { observe(ctx, c.provider, start, err) }()

	body, err := json.Marshal(chatRequest{
		Model:    c.model,
		Messages: []chatMessage{{Role: "user", Content: prompt}},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(httpclient.WithBackend(ctx, c.provider), http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode >= 400 {
		return "", &APIError{Provider: c.provider, StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var cr chatResponse
	if err := json.Unmarshal(respBody, &cr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(cr.Choices) == 0 {
		return "", fmt.Errorf("%w: no choices from %s", ErrMalformedResponse, c.provider)
	}

	return strings.TrimSpace(cr.Choices[0].Message.Content), nil
}
