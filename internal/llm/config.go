// Package llm provides the embedding providers used to compare job descriptions and resumes.
package llm

// Provider represents an embedding provider
type Provider string

// Provider constants define supported embedding providers
const (
	// ProviderGemini is the Google Gemini embedding API
	ProviderGemini Provider = "gemini"
	// ProviderHash is the local feature-hashing embedder, for offline use and tests
	ProviderHash Provider = "hash"
)

// Defaults
const (
	DefaultEmbeddingModel = "text-embedding-004"
	DefaultHashDimensions = 256
)

// Config holds the embedding configuration
type Config struct {
	Provider   Provider
	Model      string
	Dimensions int // hash provider only
}

// DefaultConfig returns the default configuration (Gemini)
func DefaultConfig() *Config {
	return &Config{
		Provider:   ProviderGemini,
		Model:      DefaultEmbeddingModel,
		Dimensions: DefaultHashDimensions,
	}
}

// WithModel returns a copy of c using model
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}
