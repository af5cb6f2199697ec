package skills

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/jonathan/candidate-screener/internal/types"
)

var (
	acronymPattern    = regexp.MustCompile(`\b[A-Z]{2,5}\b`)
	dottedTechPattern = regexp.MustCompile(`\b[A-Z][a-z]*\.[a-z]{2,}\b`)
)

// InputError is returned when extraction is asked to read empty text.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return fmt.Sprintf("skill extraction input error: %s", e.Message)
}

// Extract finds technical and soft skills in text.
// It is a pure function of text and the built-in taxonomy.
func Extract(text string) (*types.SkillSet, error) {
	if strings.TrimSpace(text) == "" {
		return nil, &InputError{Message: "text is empty"}
	}

	lower := strings.ToLower(text)

	technical := make(set)
	for _, skill := range sortedTechnical {
		if !containsWord(lower, skill) {
			continue
		}
		if acceptToken(skill) {
			technical[skill] = struct{}{}
		}
	}

	soft := make(set)
	for _, skill := range sortedSoft {
		if containsWord(lower, skill) {
			soft[skill] = struct{}{}
		}
	}

	for skill := range extractCustomSkills(text) {
		technical[skill] = struct{}{}
	}

	all := make(set, len(technical)+len(soft))
	for s := range technical {
		all[s] = struct{}{}
	}
	for s := range soft {
		all[s] = struct{}{}
	}

	return &types.SkillSet{
		Technical:  technical.sorted(),
		Soft:       soft.sorted(),
		All:        all.sorted(),
		SkillCount: len(technical) + len(soft),
	}, nil
}

// acceptToken applies the noise filter and the short-token whitelist.
func acceptToken(token string) bool {
	if noiseTerms.has(token) {
		return false
	}
	if len(token) <= 3 {
		return shortSkillWhitelist.has(token)
	}
	return true
}

// extractCustomSkills picks up capitalized acronyms and dotted technology names
// that are not in the fixed vocabulary.
func extractCustomSkills(text string) set {
	custom := make(set)

	for _, a := range acronymPattern.FindAllString(text, -1) {
		lower := strings.ToLower(a)
		if len(a) <= 3 {
			if shortSkillWhitelist.has(lower) {
				custom[lower] = struct{}{}
			}
		} else if !noiseTerms.has(lower) {
			custom[lower] = struct{}{}
		}
	}

	for _, t := range dottedTechPattern.FindAllString(text, -1) {
		lower := strings.ToLower(t)
		if !noiseTerms.has(lower) {
			custom[lower] = struct{}{}
		}
	}

	return custom
}

// EnrichForEmbedding appends up to the first 20 skills to text so the embedding
// weighs them more heavily.
func EnrichForEmbedding(text string, skills []string) string {
	if len(skills) == 0 {
		return text
	}
	top := skills
	if len(top) > 20 {
		top = top[:20]
	}
	return text + "\n\nKey Skills: " + strings.Join(top, " ")
}
