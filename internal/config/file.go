package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ConfigFileName is the name of the config file
const ConfigFileName = "config.yaml"

// FileConfig represents the configuration file structure
type FileConfig struct {
	// Model settings
	Model string `yaml:"model,omitempty"`

	// Claude API settings
	Claude *ClaudeConfig `yaml:"claude,omitempty"`

	// Tool service settings
	ToolServer *ToolServerConfig `yaml:"tool_server,omitempty"`

	// Default flags
	Defaults *DefaultsConfig `yaml:"defaults,omitempty"`
}

// ClaudeConfig holds Claude API-specific configuration
type ClaudeConfig struct {
	APIKey    string `yaml:"api_key,omitempty"`
	BaseURL   string `yaml:"base_url,omitempty"`
	MaxTokens int    `yaml:"max_tokens,omitempty"`
}

// ToolServerConfig holds tool service configuration
type ToolServerConfig struct {
	URL  string `yaml:"url,omitempty"`  // Where the assistant reaches the tool service
	Addr string `yaml:"addr,omitempty"` // Where 'askweb serve' listens
}

// DefaultsConfig holds default flag values
type DefaultsConfig struct {
	Render      bool `yaml:"render,omitempty"`
	Interactive bool `yaml:"interactive,omitempty"`
}

// GetConfigPaths returns the paths to check for config files (in order of priority)
func GetConfigPaths() []string {
	var paths []string

	// 1. Current directory
	paths = append(paths, filepath.Join(".", ".askweb", ConfigFileName))

	// 2. User config directory
	if configDir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(configDir, "askweb", ConfigFileName))
	}

	// 3. Home directory
	if homeDir, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(homeDir, ".config", "askweb", ConfigFileName))
	}

	return paths
}

// LoadConfigFile attempts to load configuration from a file
func LoadConfigFile() (*FileConfig, error) {
	paths := GetConfigPaths()

	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			return loadConfigFromPath(path)
		}
	}

	// No config file found, return empty config
	return &FileConfig{}, nil
}

// loadConfigFromPath loads config from a specific path
func loadConfigFromPath(path string) (*FileConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg FileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	return &cfg, nil
}

// ApplyFileConfig applies file configuration to the main Config
// File config has lower priority than environment variables and CLI flags
func (c *Config) ApplyFileConfig(fc *FileConfig) {
	if fc == nil {
		return
	}

	// Model (only if not set by env/flag)
	if c.Model == "" && fc.Model != "" {
		c.Model = fc.Model
	}

	// Claude config
	if fc.Claude != nil {
		if c.APIKey == "" && fc.Claude.APIKey != "" {
			c.APIKey = fc.Claude.APIKey
		}
		if c.BaseURL == "" && fc.Claude.BaseURL != "" {
			c.BaseURL = fc.Claude.BaseURL
		}
		if c.MaxTokens <= 0 && fc.Claude.MaxTokens > 0 {
			c.MaxTokens = fc.Claude.MaxTokens
		}
	}

	// Tool service config
	if fc.ToolServer != nil {
		if c.ToolServerURL == "" && fc.ToolServer.URL != "" {
			c.ToolServerURL = fc.ToolServer.URL
		}
	}

	// Apply defaults (these are applied unless explicitly overridden by flags)
	if fc.Defaults != nil {
		// Note: These only apply if the flags weren't explicitly set
		// Since we can't distinguish between "flag not set" and "flag set to false",
		// we apply defaults only for "true" values in the config file
		if fc.Defaults.Render && !c.Render {
			c.Render = true
		}
		if fc.Defaults.Interactive && !c.Interactive {
			c.Interactive = true
		}
	}
}

// CreateDefaultConfigFile creates a default config file at the user config directory
func CreateDefaultConfigFile() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("could not determine config directory: %w", err)
		}
		configDir = filepath.Join(homeDir, ".config")
	}

	dir := filepath.Join(configDir, "askweb")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, fmt.Errorf("config file already exists at %s", path)
	}

	defaultConfig := `# askweb Configuration
# Location: ~/.config/askweb/config.yaml

# Default model to use
# model: claude-3-opus-20240229

# Claude API settings
# claude:
#   api_key: your-api-key  # Prefer the CLAUDE_API_KEY environment variable
#   base_url: https://api.anthropic.com
#   max_tokens: 4096

# Tool service settings
# tool_server:
#   url: http://localhost:5001  # Where the assistant reaches the tool service
#   addr: :5001                 # Where 'askweb serve' listens

# Default flags
# defaults:
#   render: true
#   interactive: false
`

	if err := os.WriteFile(path, []byte(defaultConfig), 0600); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return path, nil
}
