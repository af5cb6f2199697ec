package ingestion

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Source formats
const (
	FormatText = "text"
	FormatHTML = "html"
)

// Metadata describes one ingested document.
type Metadata struct {
	Source    string `json:"source,omitempty"`
	Format    string `json:"format"`
	Platform  string `json:"platform,omitempty"` // job board, for URL sources
	Timestamp string `json:"timestamp"`          // RFC3339
	Hash      string `json:"hash"`               // SHA256 hex digest of the cleaned text
	CharCount int    `json:"char_count"`
}

// NewMetadata creates a new Metadata instance with current timestamp
func NewMetadata(content string, source string) *Metadata {
	return &Metadata{
		Source:    source,
		Format:    FormatText,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Hash:      computeHash(content),
		CharCount: len(content),
	}
}

func computeHash(content string) string {
	hash := sha256.Sum256([]byte(content))
	return hex.EncodeToString(hash[:])
}

// ToJSON marshals Metadata to pretty-printed JSON
func (m *Metadata) ToJSON() ([]byte, error) {
	jsonBytes, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal metadata to JSON: %w", err)
	}
	return jsonBytes, nil
}
