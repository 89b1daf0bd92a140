package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/quocvuong92/askweb/internal/config"
	"github.com/quocvuong92/askweb/internal/constants"
	"github.com/quocvuong92/askweb/internal/logging"
)

// AnthropicVersion is the value of the anthropic-version request header
const AnthropicVersion = "2023-06-01"

// AnthropicErrorResponse represents a Claude API error envelope
type AnthropicErrorResponse struct {
	Type  string `json:"type"`
	Error struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// APIError represents an error with status code
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return e.Message
}

// AnthropicClient is the Claude Messages API client
type AnthropicClient struct {
	httpClient *http.Client
	config     *config.Config
	httpLogger *logging.HTTPLogger
}

// NewAnthropicClient creates a new Claude Messages API client
func NewAnthropicClient(cfg *config.Config) *AnthropicClient {
	transport := http.DefaultTransport

	var httpLogger *logging.HTTPLogger
	if cfg.Debug {
		logger := logging.New(logging.Options{
			Level:  logging.LevelDebug,
			Format: logging.FormatJSON,
		})
		httpLogger = logging.NewHTTPLogger(logger)
		transport = logging.NewLoggingRoundTripper(http.DefaultTransport, httpLogger, true)
	}

	return &AnthropicClient{
		httpClient: &http.Client{
			Timeout:   constants.DefaultAPITimeout,
			Transport: transport,
		},
		config:     cfg,
		httpLogger: httpLogger,
	}
}

// SendMessage sends the conversation history plus one new user message.
// Tools are declared to the model only when tools is non-nil; passing
// nil produces a request the model cannot answer with a tool call.
func (c *AnthropicClient) SendMessage(ctx context.Context, history []Message, message string, tools []Tool) (*MessagesResponse, error) {
	messages := make([]Message, 0, len(history)+1)
	messages = append(messages, history...)
	messages = append(messages, NewUserMessage(message))

	reqBody := MessagesRequest{
		Model:     c.config.Model,
		MaxTokens: c.config.MaxTokens,
		Messages:  messages,
		Tools:     tools,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	// Use retry logic for transient failures
	return WithRetry(ctx, func() (*MessagesResponse, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.config.GetMessagesURL(), bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-api-key", c.config.APIKey)
		req.Header.Set("anthropic-version", AnthropicVersion)

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return nil, fmt.Errorf("failed to send request: %w", err)
		}
		defer func() { _ = resp.Body.Close() }()

		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, fmt.Errorf("failed to read response: %w", err)
		}

		if resp.StatusCode != http.StatusOK {
			var errResp AnthropicErrorResponse
			errMsg := fmt.Sprintf("status code %d", resp.StatusCode)
			if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error.Message != "" {
				errMsg = errResp.Error.Message
			}
			return nil, &APIError{
				StatusCode: resp.StatusCode,
				Message:    fmt.Sprintf("Claude API error: %s", errMsg),
			}
		}

		var msgResp MessagesResponse
		if err := json.Unmarshal(body, &msgResp); err != nil {
			return nil, fmt.Errorf("failed to parse response: %w", err)
		}

		return &msgResp, nil
	})
}

// Close is a no-op for AnthropicClient as it doesn't hold any resources
func (c *AnthropicClient) Close() {
	// No resources to clean up
}
