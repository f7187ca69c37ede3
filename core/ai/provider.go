// Package ai abstracts text-completion backends behind a single
// interface. The backend set is closed: anthropic, openai, azure.
// Selection happens once at process start from configuration; there is
// no dynamic loading and no retry policy, just one attempt per call.
package ai

import (
	"context"
	"strings"

	"sheetforge/internal/config"
	"sheetforge/internal/errors"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    string `json:"role"` // "user" or "assistant"
	Content string `json:"content"`
}

// Provider is the uniform text-completion contract. Complete sends the
// conversation with a system prompt and returns the raw reply text.
type Provider interface {
	Complete(ctx context.Context, messages []Message, systemPrompt string) (string, error)
	Name() string
}

// NewProvider constructs the backend selected by cfg. Unknown provider
// names and missing credentials are configuration errors.
func NewProvider(cfg config.AIConfig) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "anthropic":
		return newAnthropicProvider(cfg)
	case "openai", "azure":
		return newOpenAIProvider(cfg)
	default:
		return nil, errors.Newf(errors.TypeConfig,
			"unknown AI provider %q (valid: anthropic, openai, azure)", cfg.Provider)
	}
}
