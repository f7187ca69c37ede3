package ai

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/go-resty/resty/v2"

	"sheetforge/internal/config"
	"sheetforge/internal/errors"
)

const anthropicBaseURL = "https://api.anthropic.com"

type anthropicProvider struct {
	client *resty.Client
	model  string
}

type anthropicRequest struct {
	Model     string    `json:"model"`
	MaxTokens int       `json:"max_tokens"`
	System    string    `json:"system,omitempty"`
	Messages  []Message `json:"messages"`
}

type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

func newAnthropicProvider(cfg config.AIConfig) (*anthropicProvider, error) {
	apiKey := os.Getenv("ANTHROPIC_API_KEY")
	if apiKey == "" {
		return nil, errors.Config("ANTHROPIC_API_KEY environment variable is not set")
	}

	client := resty.New().
		SetBaseURL(anthropicBaseURL).
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("x-api-key", apiKey).
		SetHeader("anthropic-version", "2023-06-01").
		SetHeader("Content-Type", "application/json")

	return &anthropicProvider{client: client, model: cfg.AnthropicModel}, nil
}

func (p *anthropicProvider) Name() string { return "anthropic" }

func (p *anthropicProvider) Complete(ctx context.Context, messages []Message, systemPrompt string) (string, error) {
	req := anthropicRequest{
		Model:     p.model,
		MaxTokens: 4096,
		System:    systemPrompt,
		Messages:  messages,
	}

	var out anthropicResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&out).
		SetError(&out).
		Post("/v1/messages")
	if err != nil {
		return "", errors.Provider("anthropic request failed", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", errors.Provider(fmt.Sprintf("anthropic API error: %s", msg), nil)
	}
	if len(out.Content) == 0 || out.Content[0].Type != "text" {
		return "", errors.Provider("unexpected response shape from anthropic", nil)
	}
	return out.Content[0].Text, nil
}
