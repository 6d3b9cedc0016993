package completion

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/socialchef/sous/internal/httpclient"
)

const DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com"

// GeminiClient calls the Gemini generateContent REST endpoint.
type GeminiClient struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

// NewGeminiClient validates the credential and endpoint once. A blank key or a bad
// base URL yields an error wrapping ErrNotConfigured.
func NewGeminiClient(apiKey, model, baseURL string, httpClient *http.Client) (*GeminiClient, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("%w: GEMINI_API_KEY is missing", ErrNotConfigured)
	}
	if model == "" {
		return nil, fmt.Errorf("%w: gemini model is empty", ErrNotConfigured)
	}
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}
	if httpClient == nil {
		httpClient = httpclient.New(0)
	}
	return &GeminiClient{apiKey: apiKey, model: model, baseURL: base, httpClient: httpClient}, nil
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiResponse struct {
	Candidates []struct {
		Content      geminiContent `json:"content"`
		FinishReason string        `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

// Complete sends prompt as a single user turn and returns the trimmed text of the first candidate.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (text string, err error) {
	start := time.Now()
	defer func() { observe(ctx, "gemini", start, err) }()

	body, err := json.Marshal(geminiRequest{
		Contents: []geminiContent{{Role: "user", Parts: []geminiPart{{Text: prompt}}}},
	})
	if err != nil {
		return "", err
	}

	endpoint := fmt.Sprintf("%s/v1beta/models/%s:generateContent", c.baseURL, url.PathEscape(c.model))
	req, err := http.NewRequestWithContext(httpclient.WithBackend(ctx, "Gemini"), http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
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
		return "", &APIError{Provider: "Gemini", StatusCode: resp.StatusCode, Body: string(respBody)}
	}

	var gr geminiResponse
	if err := json.Unmarshal(respBody, &gr); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if gr.PromptFeedback != nil && gr.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("%w: %s", ErrBlocked, gr.PromptFeedback.BlockReason)
	}
	if len(gr.Candidates) == 0 {
		return "", fmt.Errorf("%w: no candidates", ErrMalformedResponse)
	}

	var sb strings.Builder
	for _, p := range gr.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return strings.TrimSpace(sb.String()), nil
}
