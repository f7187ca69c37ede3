package ai

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"sheetforge/internal/config"
	"sheetforge/internal/errors"
)

const openAIBaseURL = "https://api.openai.com"

// openAIProvider serves both plain OpenAI and Azure OpenAI deployments;
// the two differ only in endpoint shape and auth header.
type openAIProvider struct {
	client  *resty.Client
	model   string
	path    string
	isAzure bool
}

type openAIRequest struct {
	Model    string    `json:"model,omitempty"`
	Messages []Message `json:"messages"`
}

type openAIResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func newOpenAIProvider(cfg config.AIConfig) (*openAIProvider, error) {
	isAzure := strings.EqualFold(cfg.Provider, "azure")

	client := resty.New().
		SetTimeout(time.Duration(cfg.TimeoutSeconds) * time.Second).
		SetHeader("Content-Type", "application/json")

	if isAzure {
		apiKey := os.Getenv("AZURE_OPENAI_API_KEY")
		if apiKey == "" || cfg.AzureEndpoint == "" || cfg.AzureDeployment == "" {
			return nil, errors.Config("azure provider requires AZURE_OPENAI_API_KEY, azure_endpoint and azure_deployment")
		}
		client.
			SetBaseURL(strings.TrimRight(cfg.AzureEndpoint, "/")).
			SetHeader("api-key", apiKey).
			SetQueryParam("api-version", "2024-02-01")
		return &openAIProvider{
			client:  client,
			path:    fmt.Sprintf("/openai/deployments/%s/chat/completions", cfg.AzureDeployment),
			isAzure: true,
		}, nil
	}

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, errors.Config("OPENAI_API_KEY environment variable is not set")
	}
	client.
		SetBaseURL(openAIBaseURL).
		SetAuthToken(apiKey)
	return &openAIProvider{
		client: client,
		model:  cfg.OpenAIModel,
		path:   "/v1/chat/completions",
	}, nil
}

func (p *openAIProvider) Name() string {
	if p.isAzure {
		return "azure"
	}
	return "openai"
}

func (p *openAIProvider) Complete(ctx context.Context, messages []Message, systemPrompt string) (string, error) {
	msgs := make([]Message, 0, len(messages)+1)
	msgs = append(msgs, Message{Role: "system", Content: systemPrompt})
	msgs = append(msgs, messages...)

	var out openAIResponse
	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(openAIRequest{Model: p.model, Messages: msgs}).
		SetResult(&out).
		SetError(&out).
		Post(p.path)
	if err != nil {
		return "", errors.Provider(p.Name()+" request failed", err)
	}
	if resp.IsError() {
		msg := resp.Status()
		if out.Error != nil {
			msg = out.Error.Message
		}
		return "", errors.Provider(fmt.Sprintf("%s API error: %s", p.Name(), msg), nil)
	}
	if len(out.Choices) == 0 {
		return "", errors.Provider("empty completion from "+p.Name(), nil)
	}
	return out.Choices[0].Message.Content, nil
}
