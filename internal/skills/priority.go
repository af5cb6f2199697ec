package skills

import (
	"strings"

	"github.com/jonathan/candidate-screener/internal/types"
)

// SkillPriorityClassifier splits a job's skills into required and nice-to-have.
type SkillPriorityClassifier interface {
	Classify(jobText string, jobSkills []string) *types.SkillPriority
}

// DefaultRequiredMarkers open a section of required skills.
var DefaultRequiredMarkers = []string{
	"requirements", "required", "must have", "essential", "mandatory",
	"required skills", "key requirements", "qualifications",
	"minimum qualifications", "you must", "you should",
}

// DefaultOptionalMarkers open a section of nice-to-have skills.
var DefaultOptionalMarkers = []string{
	"nice to have", "preferred", "bonus", "plus", "optional",
	"would be nice", "additional", "advantageous", "desired",
	"good to have", "we would love", "ideal candidate",
}

// SectionMarkerClassifier classifies skills by the section-marker phrase that precedes them.
// It is a heuristic: order-sensitive and biased toward required.
type SectionMarkerClassifier struct {
	RequiredMarkers []string
	OptionalMarkers []string
}

// NewSectionMarkerClassifier returns a classifier using the default marker phrases.
func NewSectionMarkerClassifier() *SectionMarkerClassifier {
	return &SectionMarkerClassifier{
		RequiredMarkers: DefaultRequiredMarkers,
		OptionalMarkers: DefaultOptionalMarkers,
	}
}

// Classify assigns every skill to exactly one bucket. Skills with no occurrence inside a
// marked section, and all skills when no markers exist, are required. A skill seen in
// both sections is required.
func (c *SectionMarkerClassifier) Classify(jobText string, jobSkills []string) *types.SkillPriority {
	lower := strings.ToLower(jobText)
	reqStart := earliestMarker(lower, c.RequiredMarkers)
	optStart := earliestMarker(lower, c.OptionalMarkers)

	required := make(set)
	optional := make(set)

	if reqStart < 0 && optStart < 0 {
		for _, skill := range jobSkills {
			required[skill] = struct{}{}
		}
	} else {
		for _, skill := range jobSkills {
			inRequired, inOptional := false, false
			for _, pos := range wordOccurrences(lower, strings.ToLower(skill)) {
				switch sectionOf(pos, reqStart, optStart) {
				case sectionRequired:
					inRequired = true
				case sectionOptional:
					inOptional = true
				}
			}
			if inOptional && !inRequired {
				optional[skill] = struct{}{}
			} else {
				required[skill] = struct{}{}
			}
		}
	}

	return &types.SkillPriority{
		Required:         required.sorted(),
		NiceToHave:       optional.sorted(),
		HasClearSections: reqStart >= 0 || optStart >= 0,
		RequiredCount:    len(required),
		NiceToHaveCount:  len(optional),
	}
}

type section int

const (
	sectionNone section = iota
	sectionRequired
	sectionOptional
)

// sectionOf places an offset relative to the two section starts. A section runs from its
// marker to the other marker when that comes later, otherwise to the end of the text.
func sectionOf(pos, reqStart, optStart int) section {
	switch {
	case reqStart >= 0 && optStart >= 0:
		if reqStart < optStart {
			if pos >= reqStart && pos < optStart {
				return sectionRequired
			}
			if pos >= optStart {
				return sectionOptional
			}
		} else {
			if pos >= optStart && pos < reqStart {
				return sectionOptional
			}
			if pos >= reqStart {
				return sectionRequired
			}
		}
	case reqStart >= 0:
		if pos >= reqStart {
			return sectionRequired
		}
	case optStart >= 0:
		if pos >= optStart {
			return sectionOptional
		}
	}
	return sectionNone
}

// earliestMarker returns the smallest offset of any marker in text, or -1.
func earliestMarker(text string, markers []string) int {
	earliest := -1
	for _, marker := range markers {
		pos := strings.Index(text, marker)
		if pos >= 0 && (earliest < 0 || pos < earliest) {
			earliest = pos
		}
	}
	return earliest
}
