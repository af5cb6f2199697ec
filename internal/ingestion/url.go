package ingestion

import (
	"context"
	"fmt"

	"github.com/jonathan/candidate-screener/internal/fetch"
)

// IngestFromURL downloads a job posting, extracts its description and cleans it.
func IngestFromURL(ctx context.Context, rawURL string, opts *fetch.Options) (string, *Metadata, error) {
	posting, err := fetch.JobPosting(ctx, rawURL, opts)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch job posting: %w", err)
	}

	cleaned := CleanText(posting.Text)
	metadata := NewMetadata(cleaned, rawURL)
	metadata.Format = FormatHTML
	metadata.Platform = string(posting.Platform)
	return cleaned, metadata, nil
}
