package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/drafterhq/drafter/logger"
	"github.com/sashabaranov/go-openai"
)

// OpenAIClient talks to any chat-completions endpoint that speaks the
// OpenAI API: OpenAI itself, and the compatible providers (groq, ollama)
// via their base URLs.
type OpenAIClient struct {
	openAIClient *openai.Client
	config       *Config
	logger       logger.Logger
}

// NewOpenAIClient creates an adapter for an OpenAI-compatible provider.
func NewOpenAIClient(cfg *Config, l logger.Logger) (Client, error) {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &OpenAIClient{
		openAIClient: openai.NewClientWithConfig(clientCfg),
		config:       cfg,
		logger:       l,
	}, nil
}

// GetCompletion sends a request to the provider and returns the generated text
func (c *OpenAIClient) GetCompletion(ctx context.Context, prompt, responseType string) (string, error) {
	c.logger.WithField("provider", c.config.Provider).Debug("Requesting completion")
	resp, err := c.openAIClient.CreateChatCompletion(
		ctx,
		openai.ChatCompletionRequest{
			Model: c.config.ModelName,
			Messages: []openai.ChatCompletionMessage{
				{
					Role:    openai.ChatMessageRoleSystem,
					Content: getSystemPrompt(),
				},
				{
					Role:    openai.ChatMessageRoleUser,
					Content: prompt,
				},
			},
			ResponseFormat: &openai.ChatCompletionResponseFormat{Type: openai.ChatCompletionResponseFormatType(responseType)},
		},
	)

	e := &openai.APIError{}
	if errors.As(err, &e) {
		switch e.HTTPStatusCode {
		case 401:
			return "", fmt.Errorf("unauthorized: invalid %s API key", c.config.Provider)
		case 429:
			return "", fmt.Errorf("rate limited by %s API", c.config.Provider)
		case 500:
			return "", fmt.Errorf("%s server error", c.config.Provider)
		default:
			return "", fmt.Errorf("%s API error: %v", c.config.Provider, e)
		}
	}
	if err != nil {
		return "", fmt.Errorf("error requesting completion: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("no choices returned from %s", c.config.Provider)
	}
	return resp.Choices[0].Message.Content, nil
}
