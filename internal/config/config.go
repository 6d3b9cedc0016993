package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	ProviderGemini = "gemini"
	ProviderGroq   = "groq"
	ProviderOpenAI = "openai"
)

type Config struct {
	Env            string
	ServiceName    string
	ServiceVersion string

	GeminiAPIKey string
	GroqKey      string
	OpenAIKey    string

	// APIJWTSecret enables bearer auth on the JSON API when set.
	APIJWTSecret string

	OtelExporterOTLPEndpoint string
	OtelExporterOTLPHeaders  string
	SentryDSN                string

	Port string

	Completion CompletionConfig
}

type CompletionConfig struct {
	Provider string        `yaml:"provider"`
	Model    string        `yaml:"model"`
	BaseURL  string        `yaml:"base_url"`
	Timeout  time.Duration `yaml:"timeout"`
}

func Load() (*Config, error) {
	cfg := &Config{
		Env:                      os.Getenv("ENV"),
		ServiceName:              os.Getenv("SERVICE_NAME"),
		ServiceVersion:           os.Getenv("SERVICE_VERSION"),
		GeminiAPIKey:             os.Getenv("GEMINI_API_KEY"),
		GroqKey:                  os.Getenv("GROQ_API_KEY"),
		OpenAIKey:                os.Getenv("OPENAI_API_KEY"),
		APIJWTSecret:             os.Getenv("API_JWT_SECRET"),
		OtelExporterOTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		OtelExporterOTLPHeaders:  os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"),
		SentryDSN:                os.Getenv("SENTRY_DSN"),
		Port:                     os.Getenv("PORT"),
		Completion: CompletionConfig{
			Provider: os.Getenv("COMPLETION_PROVIDER"),
			Model:    os.Getenv("COMPLETION_MODEL"),
			BaseURL:  os.Getenv("COMPLETION_BASE_URL"),
		},
	}

	if raw := os.Getenv("COMPLETION_TIMEOUT"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid COMPLETION_TIMEOUT %q: %w", raw, err)
		}
		cfg.Completion.Timeout = d
	}

	// Load from YAML file if available
	if err := cfg.LoadFromYAML("config.yaml"); err != nil {
		return nil, fmt.Errorf("failed to load YAML config: %w", err)
	}

	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.ServiceName == "" {
		cfg.ServiceName = "sous"
	}
	if cfg.ServiceVersion == "" {
		cfg.ServiceVersion = "1.0.0"
	}
	if cfg.Port == "" {
		cfg.Port = "8080"
	}

	cfg.SetCompletionDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) LoadFromYAML(path string) error {
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // File not found is not an error
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var yamlConfig struct {
		Completion CompletionConfig `yaml:"completion"`
	}

	if err := yaml.Unmarshal(data, &yamlConfig); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Environment variables win over the file.
	if c.Completion.Provider == "" {
		c.Completion.Provider = yamlConfig.Completion.Provider
	}
	if c.Completion.Model == "" {
		c.Completion.Model = yamlConfig.Completion.Model
	}
	if c.Completion.BaseURL == "" {
		c.Completion.BaseURL = yamlConfig.Completion.BaseURL
	}
	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = yamlConfig.Completion.Timeout
	}

	return nil
}

// SetCompletionDefaults fills the provider and the provider's default model.
// Timeout stays zero so outbound calls use the transport default.
func (c *Config) SetCompletionDefaults() {
	c.Completion.Provider = strings.ToLower(strings.TrimSpace(c.Completion.Provider))
	if c.Completion.Provider == "" {
		c.Completion.Provider = ProviderGemini
	}
	if c.Completion.Model == "" {
		switch c.Completion.Provider {
		case ProviderGroq:
			c.Completion.Model = "llama-3.3-70b-versatile"
		case ProviderOpenAI:
			c.Completion.Model = "gpt-4o-mini"
		default:
			c.Completion.Model = "gemini-1.5-flash"
		}
	}
}

// APIKey returns the credential for the configured completion provider.
func (c *Config) APIKey() string {
	switch c.Completion.Provider {
	case ProviderGroq:
		return c.GroqKey
	case ProviderOpenAI:
		return c.OpenAIKey
	default:
		return c.GeminiAPIKey
	}
}

// OTLPHeaders parses OTEL_EXPORTER_OTLP_HEADERS ("k1=v1,k2=v2").
func (c *Config) OTLPHeaders() map[string]string {
	if c.OtelExporterOTLPHeaders == "" {
		return nil
	}
	headers := make(map[string]string)
	for _, pair := range strings.Split(c.OtelExporterOTLPHeaders, ",") {
		k, v, ok := strings.Cut(pair, "=")
		if !ok {
			continue
		}
		headers[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return headers
}

// A missing API key is not a config error; the completion setup reports it.
func (c *Config) validate() error {
	switch c.Completion.Provider {
	case ProviderGemini, ProviderGroq, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown completion provider %q", c.Completion.Provider)
	}
	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion timeout must not be negative")
	}
	return nil
}
