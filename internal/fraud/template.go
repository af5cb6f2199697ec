package fraud

import (
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

const templatedThreshold = 0.4

// templatePhrases are boilerplate phrases common to resume templates.
var templatePhrases = []string{
	"curriculum vitae",
	"professional summary",
	"objective statement",
	"references available upon request",
	"detail-oriented professional",
	"results-driven",
	"proven track record",
	"team player",
}

// placeholderTokens are left-over template filler.
var placeholderTokens = []string{
	"insert name here",
	"your name",
	"[name]",
	"lorem ipsum",
	"sample text",
}

// detectTemplate scores how much of text is template boilerplate.
func detectTemplate(text string) types.TemplateCheck {
	lower := strings.ToLower(text)

	count := 0
	for _, phrase := range templatePhrases {
		if strings.Contains(lower, phrase) {
			count++
		}
	}

	hasPlaceholder := false
	for _, token := range placeholderTokens {
		if strings.Contains(lower, token) {
			hasPlaceholder = true
			break
		}
	}

	score := min(float64(count)/float64(len(templatePhrases)), 1.0)

	return types.TemplateCheck{
		AppearsTemplated:   score > templatedThreshold || hasPlaceholder,
		TemplateScore:      numeric.Round4(score),
		HasPlaceholder:     hasPlaceholder,
		GenericPhraseCount: count,
	}
}
