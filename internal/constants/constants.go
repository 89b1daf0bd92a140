// Package constants provides shared constants used across the application
// to avoid circular dependencies between packages.
package constants

import "time"

// Timeout constants used across the application
const (
	// DefaultAPITimeout is the timeout for model API requests
	DefaultAPITimeout = 30 * time.Second
	// HealthProbeTimeout bounds the tool service liveness probe
	HealthProbeTimeout = 2 * time.Second
	// ToolCallTimeout bounds a single tool call attempt
	ToolCallTimeout = 10 * time.Second
	// SearchTimeout bounds a single search provider request
	SearchTimeout = 10 * time.Second
	// ShutdownTimeout bounds graceful shutdown of the tool server
	ShutdownTimeout = 5 * time.Second
)

// Application defaults
const (
	DefaultModel         = "claude-3-opus-20240229"
	DefaultMaxTokens     = 4096
	DefaultBaseURL       = "https://api.anthropic.com"
	DefaultToolServerURL = "http://localhost:5001"
	// DefaultToolServerAddr is the listen address used by the serve command
	DefaultToolServerAddr = ":5001"
)

// Version is the application version reported by the tool server.
const Version = "1.0.0"
