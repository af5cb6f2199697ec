package llm

import (
	"context"
	"hash/fnv"
	"math"
	"strings"
	"unicode"
)

// HashEmbedder builds bag-of-words vectors by feature hashing, L2-normalized. Identical
// texts get identical vectors and texts sharing vocabulary score high cosine similarity.
// It needs no network and is deterministic.
type HashEmbedder struct {
	dims int
}

// NewHashEmbedder returns a HashEmbedder producing vectors of length dims
// (DefaultHashDimensions when dims is not positive).
func NewHashEmbedder(dims int) *HashEmbedder {
	if dims <= 0 {
		dims = DefaultHashDimensions
	}
	return &HashEmbedder{dims: dims}
}

// Embed counts each lowercase word of text into a hashed bucket.
func (e *HashEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := ctx.Err(); err != nil {
		return nil, &EmbeddingError{Message: "context done", Cause: err}
	}

	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '+' && r != '#'
	})
	if len(words) == 0 {
		return nil, &EmbeddingError{Message: "text input cannot be empty"}
	}

	vec := make([]float64, e.dims)
	for _, w := range words {
		h := fnv.New64a()
		_, _ = h.Write([]byte(w))
		vec[h.Sum64()%uint64(e.dims)]++
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	norm = math.Sqrt(norm)

	out := make([]float32, e.dims)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

// Close is a no-op
func (e *HashEmbedder) Close() error { return nil }
