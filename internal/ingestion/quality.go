package ingestion

import (
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/skills"
)

// Word-count bounds for a complete document
const (
	minWords = 100
	maxWords = 5000
)

// Quality levels
const (
	QualityHigh   = "high"
	QualityMedium = "medium"
	QualityLow    = "low"
)

// Quality summarizes how complete a resume or job description looks.
type Quality struct {
	WordCount         int     `json:"word_count"`
	CharacterCount    int     `json:"character_count"`
	HasEducation      bool    `json:"has_education"`
	HasContact        bool    `json:"has_contact"`
	HasLinks          bool    `json:"has_links"`
	CompletenessScore float64 `json:"completeness_score"`
	QualityLevel      string  `json:"quality_level"`
}

// AnalyzeQuality scores completeness as the share of four checks that pass: more than
// 100 words, an education mention, contact details and fewer than 5000 words.
func AnalyzeQuality(text string) Quality {
	words := len(strings.Fields(text))
	hasEducation := containsAny(strings.ToLower(text), skills.EducationKeywords())
	hasContact := emailPattern.MatchString(text) || firstPhone(text) != ""

	passed := 0
	for _, ok := range []bool{words > minWords, hasEducation, hasContact, words < maxWords} {
		if ok {
			passed++
		}
	}
	completeness := numeric.Round(float64(passed)/4, 2)

	level := QualityLow
	switch {
	case completeness >= 0.75:
		level = QualityHigh
	case completeness >= 0.5:
		level = QualityMedium
	}

	return Quality{
		WordCount:         words,
		CharacterCount:    len(text),
		HasEducation:      hasEducation,
		HasContact:        hasContact,
		HasLinks:          urlPattern.MatchString(text),
		CompletenessScore: completeness,
		QualityLevel:      level,
	}
}
