package llm

import (
	"context"
	"strings"
	"testing"

	"github.com/drafterhq/drafter/blueprint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLookupProvider(t *testing.T) {
	p, err := LookupProvider("openai")
	require.NoError(t, err)
	assert.Equal(t, "OPENAI_API_KEY", p.KeyEnvVar)
	assert.True(t, p.NeedsKey)

	_, err = LookupProvider("skynet")
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestResolveAPIKey(t *testing.T) {
	cfg := &Config{Provider: "openai", APIKey: "explicit"}
	assert.Equal(t, "explicit", ResolveAPIKey(cfg))

	t.Setenv("OPENAI_API_KEY", "from-env")
	cfg = &Config{Provider: "openai"}
	assert.Equal(t, "from-env", ResolveAPIKey(cfg))

	t.Setenv("GROQ_API_KEY", "")
	cfg = &Config{Provider: "groq"}
	assert.Empty(t, ResolveAPIKey(cfg))
}

func TestNewClientUnknownProvider(t *testing.T) {
	_, err := NewClient(&Config{Provider: "skynet"}, nil)
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestNewClientMissingKey(t *testing.T) {
	t.Setenv("ANTHROPIC_API_KEY", "")
	_, err := NewClient(&Config{Provider: "anthropic"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ANTHROPIC_API_KEY")
}

func TestNewClientDefaults(t *testing.T) {
	client, err := NewClient(&Config{Provider: "anthropic", APIKey: "test-key"}, nil)
	require.NoError(t, err)
	ac, ok := client.(*AnthropicClient)
	require.True(t, ok)
	assert.Equal(t, "https://api.anthropic.com", ac.config.BaseURL)
	assert.Equal(t, "https://api.anthropic.com/v1/messages", ac.endpoint())
	assert.Equal(t, "claude-3-5-sonnet-20240620", ac.config.ModelName)
}

func TestNewClientBaseURLOverride(t *testing.T) {
	client, err := NewClient(&Config{Provider: "anthropic", APIKey: "test-key", BaseURL: "http://localhost:9999/"}, nil)
	require.NoError(t, err)
	ac := client.(*AnthropicClient)
	assert.Equal(t, "http://localhost:9999/v1/messages", ac.endpoint())
}

func TestNewClientOllamaNeedsNoKey(t *testing.T) {
	client, err := NewClient(&Config{Provider: "ollama"}, nil)
	require.NoError(t, err)
	assert.IsType(t, &OpenAIClient{}, client)
}

func TestNewClientOpenAICompatible(t *testing.T) {
	client, err := NewClient(&Config{Provider: "groq", APIKey: "test-key"}, nil)
	require.NoError(t, err)
	oc, ok := client.(*OpenAIClient)
	require.True(t, ok)
	assert.Equal(t, "https://api.groq.com/openai/v1", oc.config.BaseURL)
}

func TestGetSystemPromptCarriesSchema(t *testing.T) {
	prompt := getSystemPrompt()
	assert.Contains(t, prompt, blueprint.Schema)
	assert.Contains(t, prompt, `starts with "./"`)
}

func TestGetBlueprintPrompt(t *testing.T) {
	prompt := getBlueprintPrompt(PromptInput{
		Description:  "a Go web server",
		Instructions: []string{"use chi for routing", "include a Makefile"},
	})
	assert.Contains(t, prompt, "a Go web server")
	assert.Contains(t, prompt, "- use chi for routing")
	assert.Contains(t, prompt, "- include a Makefile")
	assert.NotContains(t, prompt, blueprint.NamePlaceholder)
}

func TestGetBlueprintPromptWithPlaceholder(t *testing.T) {
	prompt := getBlueprintPrompt(PromptInput{
		Description:        "a Go web server",
		UseNamePlaceholder: true,
	})
	assert.Contains(t, prompt, blueprint.NamePlaceholder)
}

type stubClient struct {
	prompt       string
	responseType string
	response     string
}

func (s *stubClient) GetCompletion(ctx context.Context, prompt, responseType string) (string, error) {
	s.prompt = prompt
	s.responseType = responseType
	return s.response, nil
}

func TestGenerateBlueprint(t *testing.T) {
	stub := &stubClient{response: `{"entries": []}`}
	raw, err := GenerateBlueprint(context.Background(), stub, PromptInput{Description: "a CLI tool"})
	require.NoError(t, err)
	assert.Equal(t, `{"entries": []}`, raw)
	assert.Equal(t, "json_object", stub.responseType)
	assert.True(t, strings.Contains(stub.prompt, "a CLI tool"))
}
