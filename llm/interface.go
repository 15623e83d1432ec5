package llm

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/drafterhq/drafter/logger"
)

// Client is a single LLM provider behind one completion call.
type Client interface {
	GetCompletion(ctx context.Context, prompt, responseType string) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider  string
	ModelName string
	APIKey    string
	// BaseURL overrides the provider's default endpoint.
	BaseURL string
}

// ProviderInfo describes one member of the fixed provider set.
type ProviderInfo struct {
	Name           string
	KeyEnvVar      string
	DefaultBaseURL string
	DefaultModel   string
	NeedsKey       bool
}

// Providers is the fixed set of supported providers, in display order.
var Providers = []ProviderInfo{
	{Name: "openai", KeyEnvVar: "OPENAI_API_KEY", DefaultModel: "gpt-4o-mini", NeedsKey: true},
	{Name: "anthropic", KeyEnvVar: "ANTHROPIC_API_KEY", DefaultBaseURL: "https://api.anthropic.com", DefaultModel: "claude-3-5-sonnet-20240620", NeedsKey: true},
	{Name: "groq", KeyEnvVar: "GROQ_API_KEY", DefaultBaseURL: "https://api.groq.com/openai/v1", DefaultModel: "llama-3.1-70b-versatile", NeedsKey: true},
	{Name: "ollama", DefaultBaseURL: "http://localhost:11434/v1", DefaultModel: "llama3.1", NeedsKey: false},
}

var ErrUnknownProvider = errors.New("unknown provider")

// LookupProvider returns the ProviderInfo for name.
func LookupProvider(name string) (ProviderInfo, error) {
	for _, p := range Providers {
		if p.Name == name {
			return p, nil
		}
	}
	return ProviderInfo{}, fmt.Errorf("%w: %q", ErrUnknownProvider, name)
}

// ResolveAPIKey returns the configured key, falling back to the provider's
// environment variable.
func ResolveAPIKey(cfg *Config) string {
	if cfg.APIKey != "" {
		return cfg.APIKey
	}
	p, err := LookupProvider(cfg.Provider)
	if err != nil || p.KeyEnvVar == "" {
		return ""
	}
	return os.Getenv(p.KeyEnvVar)
}

// NewClient creates the adapter for the configured provider. Missing
// credentials and unknown providers fail here, before any network call.
func NewClient(cfg *Config, l logger.Logger) (Client, error) {
	if l == nil {
		l = logger.NewNullLogger()
	}
	p, err := LookupProvider(cfg.Provider)
	if err != nil {
		return nil, err
	}

	resolved := *cfg
	resolved.APIKey = ResolveAPIKey(cfg)
	if resolved.APIKey == "" && p.NeedsKey {
		return nil, fmt.Errorf("%s API key is required (set %s)", p.Name, p.KeyEnvVar)
	}
	if resolved.ModelName == "" {
		resolved.ModelName = p.DefaultModel
	}
	if resolved.BaseURL == "" {
		resolved.BaseURL = p.DefaultBaseURL
	}

	switch p.Name {
	case "anthropic":
		return NewAnthropicClient(&resolved, l)
	default:
		return NewOpenAIClient(&resolved, l)
	}
}

// GenerateBlueprint asks the client for a file-tree description of the
// build and returns the raw completion.
func GenerateBlueprint(ctx context.Context, client Client, in PromptInput) (string, error) {
	prompt := getBlueprintPrompt(in)
	return client.GetCompletion(ctx, prompt, "json_object")
}
