package fraud

import (
	"regexp"
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

const shingleSize = 3

// Text similarity thresholds
const (
	duplicationThreshold = 0.90
	textCriticalLevel    = 0.95
	textHighLevel        = 0.90
	textMediumLevel      = 0.80
)

var (
	whitespacePattern = regexp.MustCompile(`\s+`)
	nonWordPattern    = regexp.MustCompile(`[^a-z0-9\s]`)
)

// normalizeText lowercases, collapses whitespace and strips punctuation.
func normalizeText(text string) string {
	text = whitespacePattern.ReplaceAllString(strings.ToLower(text), " ")
	text = nonWordPattern.ReplaceAllString(text, "")
	return strings.TrimSpace(text)
}

// shingles returns the set of 3-byte substrings of normalized text.
func shingles(text string) map[string]struct{} {
	if len(text) < shingleSize {
		return nil
	}
	out := make(map[string]struct{}, len(text)-shingleSize+1)
	for i := 0; i+shingleSize <= len(text); i++ {
		out[text[i:i+shingleSize]] = struct{}{}
	}
	return out
}

// jaccard returns |a∩b| / |a∪b|, or 0 when either set is empty.
func jaccard(a, b map[string]struct{}) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	small, large := a, b
	if len(small) > len(large) {
		small, large = large, small
	}
	intersection := 0
	for s := range small {
		if _, ok := large[s]; ok {
			intersection++
		}
	}
	return float64(intersection) / float64(len(a)+len(b)-intersection)
}

// TextSimilarity compares two raw texts by 3-shingle Jaccard similarity after normalization.
func TextSimilarity(a, b string) float64 {
	return jaccard(shingles(normalizeText(a)), shingles(normalizeText(b)))
}

// detectTextDuplication finds the most similar existing text.
func detectTextDuplication(text string, pool []types.PoolEntry) types.TextDuplication {
	if len(pool) == 0 {
		return types.TextDuplication{DuplicateIndex: -1, RiskLevel: types.RiskNone}
	}

	target := shingles(normalizeText(text))
	maxSim := 0.0
	index := -1
	for i, entry := range pool {
		sim := jaccard(target, shingles(normalizeText(entry.ResumeText)))
		if sim > maxSim {
			maxSim = sim
			index = i
		}
	}

	return types.TextDuplication{
		HasDuplication:    maxSim > duplicationThreshold,
		MaxTextSimilarity: numeric.Round4(maxSim),
		DuplicateIndex:    index,
		RiskLevel:         textRiskLevel(maxSim),
	}
}

func textRiskLevel(sim float64) types.RiskLevel {
	switch {
	case sim >= textCriticalLevel:
		return types.RiskCritical
	case sim >= textHighLevel:
		return types.RiskHigh
	case sim >= textMediumLevel:
		return types.RiskMedium
	default:
		return types.RiskLow
	}
}
