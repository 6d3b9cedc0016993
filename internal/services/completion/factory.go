package completion

import (
	"fmt"

	"github.com/socialchef/sous/internal/config"
	"github.com/socialchef/sous/internal/httpclient"
)

// Configure builds the backend selected by cfg. It never panics and never returns a
// half-built client: a failure comes back as Setup.Err.
func Configure(cfg *config.Config) Setup {
	cc := cfg.Completion
	setup := Setup{Provider: cc.Provider, Model: cc.Model}
	httpClient := httpclient.New(cc.Timeout)

	var (
		client Client
		err    error
	)
	switch cc.Provider {
	case config.ProviderGemini:
		client, err = NewGeminiClient(cfg.APIKey(), cc.Model, cc.BaseURL, httpClient)
	case config.ProviderGroq:
		client, err = NewChatClient("Groq", cfg.APIKey(), cc.Model, orDefault(cc.BaseURL, DefaultGroqBaseURL), httpClient)
	case config.ProviderOpenAI:
		client, err = NewChatClient("OpenAI", cfg.APIKey(), cc.Model, orDefault(cc.BaseURL, DefaultOpenAIBaseURL), httpClient)
	default:
		err = fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cc.Provider)
	}

	if err != nil {
		setup.Err = err
		return setup
	}
	setup.Client = client
	return setup
}

// ProviderName is the display name used in user-facing messages.
func ProviderName(provider string) string {
	switch provider {
	case config.ProviderGroq:
		return "Groq"
	case config.ProviderOpenAI:
		return "OpenAI"
	default:
		return "Gemini"
	}
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
