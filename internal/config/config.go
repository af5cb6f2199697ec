// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jonathan/candidate-screener/internal/fraud"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Environment variables that fill empty config values
const (
	EnvDatabaseURL         = "DATABASE_URL"
	EnvAPIKey              = "GEMINI_API_KEY"
	EnvSimilarityThreshold = "SIMILARITY_THRESHOLD"
)

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL
	APIKey      string `json:"api_key,omitempty"`      // Gemini API key

	// Embeddings
	EmbeddingProvider string `json:"embedding_provider,omitempty"` // "gemini" or "hash"
	EmbeddingModel    string `json:"embedding_model,omitempty"`

	// Scoring
	SimilarityThreshold float64        `json:"similarity_threshold,omitempty"` // fraud base threshold, (0,1]
	Weights             *types.Weights `json:"weights,omitempty"`

	// Behavior
	LogJSON bool `json:"log_json,omitempty"`
	Verbose bool `json:"verbose,omitempty"` // Print detailed debug information
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	weights := scoring.DefaultWeights()
	return Config{
		EmbeddingProvider:   string(llm.ProviderGemini),
		EmbeddingModel:      llm.DefaultEmbeddingModel,
		SimilarityThreshold: fraud.DefaultSimilarityThreshold,
		Weights:             &weights,
	}
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

// Validate checks that the configuration has valid values. Zero values are allowed;
// they are filled by MergeWithDefaults.
func (c *Config) Validate() error {
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("config error: 'similarity_threshold' must be in (0,1], got %v", c.SimilarityThreshold)
	}

	if c.Weights != nil {
		if err := scoring.ValidateWeights(*c.Weights); err != nil {
			return fmt.Errorf("config error: 'weights': %w", err)
		}
	}

	switch llm.Provider(c.EmbeddingProvider) {
	case "", llm.ProviderGemini, llm.ProviderHash:
	default:
		return fmt.Errorf("config error: unknown 'embedding_provider' %q", c.EmbeddingProvider)
	}

	return nil
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.APIKey == "" {
		result.APIKey = defaults.APIKey
	}
	if result.EmbeddingProvider == "" {
		result.EmbeddingProvider = defaults.EmbeddingProvider
	}
	if result.EmbeddingModel == "" {
		result.EmbeddingModel = defaults.EmbeddingModel
	}

	// Float fields: use default if zero
	if result.SimilarityThreshold == 0 {
		result.SimilarityThreshold = defaults.SimilarityThreshold
	}

	if result.Weights == nil && defaults.Weights != nil {
		w := *defaults.Weights
		result.Weights = &w
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// ApplyEnv fills empty values from the environment.
func (c *Config) ApplyEnv() error {
	if c.DatabaseURL == "" {
		c.DatabaseURL = os.Getenv(EnvDatabaseURL)
	}
	if c.APIKey == "" {
		c.APIKey = os.Getenv(EnvAPIKey)
	}
	if c.SimilarityThreshold == 0 {
		if raw := os.Getenv(EnvSimilarityThreshold); raw != "" {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", EnvSimilarityThreshold, err)
			}
			c.SimilarityThreshold = v
		}
	}
	return nil
}

// EmbeddingConfig returns the llm configuration this config selects.
func (c *Config) EmbeddingConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.EmbeddingProvider != "" {
		cfg.Provider = llm.Provider(c.EmbeddingProvider)
	}
	if c.EmbeddingModel != "" {
		cfg.Model = c.EmbeddingModel
	}
	return cfg
}

// ScoringWeights returns the configured weights, or the defaults.
func (c *Config) ScoringWeights() types.Weights {
	if c.Weights == nil {
		return scoring.DefaultWeights()
	}
	return *c.Weights
}
