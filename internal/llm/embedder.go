package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Embedder turns text into a vector. Errors are returned as *EmbeddingError; a caller
// must never substitute a zero vector.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	// Close releases any resources held by the embedder
	Close() error
}

// EmbeddingError reports a failed embedding request. The caller may retry the whole
// operation that needed the embedding.
type EmbeddingError struct {
	Message string
	Cause   error
}

func (e *EmbeddingError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("embedding failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("embedding failed: %s", e.Message)
}

func (e *EmbeddingError) Unwrap() error {
	return e.Cause
}

// NewEmbedder creates an embedder for the configured provider
func NewEmbedder(ctx context.Context, config *Config, apiKey string) (Embedder, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderHash:
		return NewHashEmbedder(config.Dimensions), nil
	case ProviderGemini, "":
		return NewGeminiEmbedder(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unknown embedding provider %q", config.Provider)
	}
}

// GeminiEmbedder implements Embedder with the Gemini embedding API
type GeminiEmbedder struct {
	client *genai.Client
	model  *genai.EmbeddingModel
	name   string
}

// NewGeminiEmbedder creates a new Gemini embedder
func NewGeminiEmbedder(ctx context.Context, config *Config, apiKey string) (*GeminiEmbedder, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	name := config.Model
	if name == "" {
		name = DefaultEmbeddingModel
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.EmbeddingModel(name)
	model.TaskType = genai.TaskTypeSemanticSimilarity

	return &GeminiEmbedder{client: client, model: model, name: name}, nil
}

// Embed requests an embedding for text
func (e *GeminiEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &EmbeddingError{Message: "text input cannot be empty"}
	}

	res, err := e.model.EmbedContent(ctx, genai.Text(text))
	if err != nil {
		return nil, &EmbeddingError{Message: fmt.Sprintf("model %s", e.name), Cause: err}
	}
	if res == nil || res.Embedding == nil || len(res.Embedding.Values) == 0 {
		return nil, &EmbeddingError{Message: fmt.Sprintf("model %s returned no values", e.name)}
	}
	return res.Embedding.Values, nil
}

// Close releases resources held by the client
func (e *GeminiEmbedder) Close() error {
	if e.client != nil {
		return e.client.Close()
	}
	return nil
}
