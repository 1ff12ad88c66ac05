// Package config provides configuration loading and validation for the
// interview coach server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// Config represents server configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or environment
// variables applied by ApplyEnv.
type Config struct {
	Port         int    `json:"port,omitempty"`          // HTTP listen port
	DatabaseURL  string `json:"database_url,omitempty"`  // PostgreSQL connection URL; empty selects the in-memory store
	APIKey       string `json:"api_key,omitempty"`       // Gemini API key
	ExtractorURL string `json:"extractor_url,omitempty"` // Text-extraction service endpoint
	TTSURL       string `json:"tts_url,omitempty"`       // Text-to-speech endpoint (empty uses the default)
	TTSLanguage  string `json:"tts_language,omitempty"`  // Text-to-speech language code
	GenTimeout   int    `json:"gen_timeout,omitempty"`   // Generation timeout in seconds
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// ApplyEnv fills unset fields from environment variables. File values win
// over the environment so a config file can pin a deployment.
func (c *Config) ApplyEnv() {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv("GEMINI_API_KEY")
	}
	if c.ExtractorURL == "" {
		c.ExtractorURL = os.Getenv("EXTRACTOR_URL")
	}
	if c.TTSURL == "" {
		c.TTSURL = os.Getenv("TTS_URL")
	}
	if c.Port == 0 {
		if port, err := strconv.Atoi(os.Getenv("PORT")); err == nil {
			c.Port = port
		}
	}
}

// Validate checks that the configuration has valid values and that the
// fields without a workable default are set.
func (c *Config) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("config error: 'port' must be between 0 and 65535")
	}
	if c.GenTimeout < 0 {
		return fmt.Errorf("config error: 'gen_timeout' must be non-negative")
	}
	if c.APIKey == "" {
		return fmt.Errorf("config error: 'api_key' (or GEMINI_API_KEY) is required")
	}
	if c.ExtractorURL == "" {
		return fmt.Errorf("config error: 'extractor_url' (or EXTRACTOR_URL) is required")
	}
	return nil
}
