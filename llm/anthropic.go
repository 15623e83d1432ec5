package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/drafterhq/drafter/logger"
)

type AnthropicResponse struct {
	Content []struct {
		Text string `json:"text"`
		Type string `json:"type"`
	} `json:"content"`
	ID           string  `json:"id"`
	Model        string  `json:"model"`
	Role         string  `json:"role"`
	StopReason   string  `json:"stop_reason"`
	StopSequence *string `json:"stop_sequence"`
	Type         string  `json:"type"`
	Usage        struct {
		InputTokens  int `json:"input_tokens"`
		OutputTokens int `json:"output_tokens"`
	} `json:"usage"`
}

type AnthropicErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

type AnthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system"`
	Messages  []Message `json:"messages"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type AnthropicClient struct {
	config     *Config
	logger     logger.Logger
	httpClient *http.Client
}

func NewAnthropicClient(cfg *Config, l logger.Logger) (Client, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("anthropic API key is required")
	}
	return &AnthropicClient{
		config:     cfg,
		logger:     l,
		httpClient: &http.Client{},
	}, nil
}

// endpoint joins the configured base URL with the messages path, so the
// base URL override means the same thing for every provider.
func (a *AnthropicClient) endpoint() string {
	return strings.TrimSuffix(a.config.BaseURL, "/") + "/v1/messages"
}

func (a *AnthropicClient) GetCompletion(ctx context.Context, prompt, responseType string) (string, error) {
	req := AnthropicRequest{
		Model:     a.config.ModelName,
		MaxTokens: 4096,
		System:    getSystemPrompt(),
		Messages: []Message{
			{Role: "user", Content: prompt},
		},
	}

	jsonData, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", a.endpoint(), bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}

	httpReq.Header.Set("x-api-key", a.config.APIKey)
	httpReq.Header.Set("anthropic-version", "2023-06-01")
	httpReq.Header.Set("content-type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("error sending request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		var errResp AnthropicErrorResponse
		if err := json.Unmarshal(body, &errResp); err != nil {
			return "", fmt.Errorf("anthropic API error: status %d", resp.StatusCode)
		}
		return "", fmt.Errorf("anthropic API error: %s - %s", errResp.Error.Type, errResp.Error.Message)
	}

	var anthropicResp AnthropicResponse
	if err := json.Unmarshal(body, &anthropicResp); err != nil {
		return "", fmt.Errorf("error unmarshaling response: %v", err)
	}

	if len(anthropicResp.Content) == 0 {
		return "", fmt.Errorf("no content returned from Anthropic")
	}

	a.logger.WithField("input_tokens", anthropicResp.Usage.InputTokens).
		WithField("output_tokens", anthropicResp.Usage.OutputTokens).
		Debug("Anthropic completion received")

	return anthropicResp.Content[0].Text, nil
}
