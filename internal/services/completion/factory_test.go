package completion

import (
	"errors"
	"testing"

	"github.com/socialchef/sous/internal/config"
)

func newConfig(provider string) *config.Config {
	cfg := &config.Config{
		GeminiAPIKey: "test-gemini-key",
		GroqKey:      "test-groq-key",
		OpenAIKey:    "test-openai-key",
		Completion:   config.CompletionConfig{Provider: provider},
	}
	cfg.SetCompletionDefaults()
	return cfg
}

func TestConfigure_Gemini(t *testing.T) {
	setup := Configure(newConfig("gemini"))

	if !setup.Available() {
		t.Fatalf("Expected available setup, got %v", setup.Err)
	}
	if _, ok := setup.Client.(*GeminiClient); !ok {
		t.Errorf("Expected GeminiClient, got %T", setup.Client)
	}
	if setup.Model != "gemini-1.5-flash" {
		t.Errorf("Expected default gemini model, got %s", setup.Model)
	}
}

func TestConfigure_Default(t *testing.T) {
	setup := Configure(newConfig(""))

	if _, ok := setup.Client.(*GeminiClient); !ok {
		t.Errorf("Expected default GeminiClient, got %T", setup.Client)
	}
}

func TestConfigure_Groq(t *testing.T) {
	setup := Configure(newConfig("groq"))

	c, ok := setup.Client.(*ChatClient)
	if !ok {
		t.Fatalf("Expected ChatClient, got %T", setup.Client)
	}
	if c.baseURL != DefaultGroqBaseURL {
		t.Errorf("Expected groq base URL, got %s", c.baseURL)
	}
}

func TestConfigure_OpenAI(t *testing.T) {
	setup := Configure(newConfig("openai"))

	c, ok := setup.Client.(*ChatClient)
	if !ok {
		t.Fatalf("Expected ChatClient, got %T", setup.Client)
	}
	if c.baseURL != DefaultOpenAIBaseURL {
		t.Errorf("Expected openai base URL, got %s", c.baseURL)
	}
}

func TestConfigure_MissingKey(t *testing.T) {
	cfg := newConfig("gemini")
	cfg.GeminiAPIKey = ""

	setup := Configure(cfg)

	if setup.Available() {
		t.Fatal("Expected unavailable setup")
	}
	if setup.Client != nil {
		t.Errorf("Expected nil client, got %T", setup.Client)
	}
	if !errors.Is(setup.Err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", setup.Err)
	}
}

func TestConfigure_UnknownProvider(t *testing.T) {
	cfg := newConfig("gemini")
	cfg.Completion.Provider = "mystery"

	setup := Configure(cfg)
	if setup.Available() || !errors.Is(setup.Err, ErrNotConfigured) {
		t.Errorf("Expected ErrNotConfigured, got %v", setup.Err)
	}
}
