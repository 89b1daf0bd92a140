// Package api provides the conversation client for the Claude Messages API.
// It supports tool/function calling with typed content blocks and retry
// logic for transient failures.
package api

import (
	"context"

	"github.com/quocvuong92/askweb/internal/config"
)

// AIClient defines the interface for the conversation client.
// The orchestrator depends on this interface rather than the concrete
// client, allowing tests to substitute scripted implementations.
type AIClient interface {
	// SendMessage sends the history plus one new user message, declaring
	// the given tools to the model. A nil tools slice declares none.
	SendMessage(ctx context.Context, history []Message, message string, tools []Tool) (*MessagesResponse, error)

	// Close releases any resources held by the client
	Close()
}

// Ensure the client implements AIClient interface
var _ AIClient = (*AnthropicClient)(nil)

// NewClient creates an AI client based on configuration.
// Returns config.ErrAPIKeyNotFound when no API key is configured.
func NewClient(cfg *config.Config) (AIClient, error) {
	if cfg.APIKey == "" {
		return nil, config.ErrAPIKeyNotFound
	}
	return NewAnthropicClient(cfg), nil
}
