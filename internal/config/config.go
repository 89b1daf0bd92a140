package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quocvuong92/askweb/internal/constants"
)

// Environment variable names
const (
	// Claude settings
	EnvClaudeAPIKey  = "CLAUDE_API_KEY"
	EnvClaudeModel   = "CLAUDE_MODEL"
	EnvClaudeBaseURL = "CLAUDE_BASE_URL"

	// Tool service settings
	EnvToolServerURL = "TOOL_SERVER_URL"
)

// Defaults - re-exported from constants for convenience
const (
	DefaultModel         = constants.DefaultModel
	DefaultMaxTokens     = constants.DefaultMaxTokens
	DefaultBaseURL       = constants.DefaultBaseURL
	DefaultToolServerURL = constants.DefaultToolServerURL
)

// Timeout constants - re-exported from constants for convenience
const (
	DefaultAPITimeout  = constants.DefaultAPITimeout
	HealthProbeTimeout = constants.HealthProbeTimeout
	ToolCallTimeout    = constants.ToolCallTimeout
)

// Errors
var (
	ErrAPIKeyNotFound = errors.New("Claude API key not found. Set CLAUDE_API_KEY environment variable")
)

// Config holds the application configuration
type Config struct {
	// Claude API settings
	APIKey    string
	BaseURL   string
	Model     string
	MaxTokens int

	// Tool service settings
	ToolServerURL string

	// Flags
	Render      bool
	Debug       bool
	Interactive bool
}

// NewConfig creates a new Config with defaults
func NewConfig() *Config {
	return &Config{}
}

// Validate validates the configuration and loads from environment.
// Layering: config file (lowest), then environment variables, then
// CLI flags (already set by the caller before Validate runs).
func (c *Config) Validate() error {
	// Load from config file first (lowest priority)
	if fileConfig, err := LoadConfigFile(); err == nil {
		c.ApplyFileConfig(fileConfig)
	}
	// Errors loading config file are silently ignored - env vars and flags take precedence

	// Load API key
	if c.APIKey == "" {
		c.APIKey = strings.TrimSpace(os.Getenv(EnvClaudeAPIKey))
	}
	if c.APIKey == "" {
		return ErrAPIKeyNotFound
	}

	// Load base URL
	if c.BaseURL == "" {
		c.BaseURL = os.Getenv(EnvClaudeBaseURL)
	}
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")

	// Load model
	if c.Model == "" {
		c.Model = os.Getenv(EnvClaudeModel)
	}
	if c.Model == "" {
		c.Model = DefaultModel
	}

	if c.MaxTokens <= 0 {
		c.MaxTokens = DefaultMaxTokens
	}

	// Load tool server URL
	if c.ToolServerURL == "" {
		c.ToolServerURL = os.Getenv(EnvToolServerURL)
	}
	if c.ToolServerURL == "" {
		c.ToolServerURL = DefaultToolServerURL
	}
	c.ToolServerURL = strings.TrimSuffix(c.ToolServerURL, "/")

	return nil
}

// GetMessagesURL builds the full API URL for the messages endpoint
func (c *Config) GetMessagesURL() string {
	return fmt.Sprintf("%s/v1/messages", c.BaseURL)
}
