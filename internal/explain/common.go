// Package explain builds the evidence artifacts stored with every evaluation: a plain-language
// explanation, a factor-level XAI explanation, a skill-gap roadmap and a skill evidence graph.
// Every builder is a pure function of the evaluation result.
package explain

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Input is one evaluation result. JobText is used only to weigh missing skills by how
// often the job mentions them.
type Input struct {
	Decision   types.Decision
	Scores     types.ScoreBundle
	Match      types.SkillMatch
	Experience types.ExperienceDetail
	Fraud      types.FraudReport
	JobText    string
}

// Build produces every evidence artifact for in.
func Build(in Input) types.Evidence {
	gap := SkillGap(in)
	return types.Evidence{
		Basic:    Basic(in),
		XAI:      XAI(in, gap),
		SkillGap: gap,
		Graph:    Graph(in.Match),
	}
}

// Display limits
const (
	maxNamedSkills  = 3
	maxListedSkills = 10
)

// Confidence thresholds on the composite score
const (
	decisiveHigh = 0.85
	decisiveLow  = 0.50
	clearHigh    = 0.75
	clearLow     = 0.60

	clearMatchHigh = 80.0
	clearMatchLow  = 30.0
	clarityBonus   = 0.05
)

// decisionConfidence is high when the composite score sits far from the decision bands'
// edges and low in the middle. A clear-cut skill match adds a small bonus.
func decisionConfidence(composite, matchPercentage float64) types.Confidence {
	level, score := "low", 0.5
	switch {
	case composite >= decisiveHigh || composite <= decisiveLow:
		level, score = "high", 0.9
	case composite >= clearHigh || composite <= clearLow:
		level, score = "medium", 0.7
	}
	if matchPercentage >= clearMatchHigh || matchPercentage <= clearMatchLow {
		score += clarityBonus
	}
	return types.Confidence{
		Level:       level,
		Score:       min(numeric.Round(score, 2), 1.0),
		Explanation: "Decision confidence based on score clarity and skill alignment",
	}
}

// assessment is the reading of one evaluation that every explanation builds on, so the
// artifacts stored together never disagree.
type assessment struct {
	confidence types.Confidence
	strengths  []string
	weaknesses []string
	// critical and important split the missing required skills by job-text mentions.
	critical  []string
	important []string
}

func assess(in Input) assessment {
	critical, important := splitCritical(byMentions(in.Match.MissingRequired, in.JobText))
	return assessment{
		confidence: decisionConfidence(in.Scores.Composite, in.Match.OverallMatchPercentage),
		strengths:  strengthsOf(in),
		weaknesses: weaknessesOf(in, append(append([]string{}, critical...), important...)),
		critical:   critical,
		important:  important,
	}
}

func strengthsOf(in Input) []string {
	var strengths []string
	if in.Scores.RFS >= 0.80 {
		strengths = append(strengths, fmt.Sprintf("Excellent role fit with %s semantic alignment", pct0(in.Scores.RFS)))
	}
	if in.Scores.DCS >= 0.75 {
		strengths = append(strengths, fmt.Sprintf("Excellent technical skill match (%s)", pct0(in.Scores.DCS)))
	}
	if in.Match.OverallMatchPercentage >= 70 {
		strengths = append(strengths, fmt.Sprintf("Strong skill match: %d required skills present", in.Match.MatchedCount()))
	}
	if in.Scores.ELC >= 0.8 {
		strengths = append(strengths, fmt.Sprintf("Meets experience requirements (%d years)", in.Experience.Candidate))
	}
	if n := len(in.Match.CandidateExtras); n > 5 {
		strengths = append(strengths, fmt.Sprintf("Additional %d relevant skills beyond requirements", n))
	}
	if in.Scores.Composite >= 0.80 {
		strengths = append(strengths, "Overall strong candidate profile")
	}
	return strengths
}

// weaknessesOf lists the shortfalls; missingRequired is already in priority order.
func weaknessesOf(in Input, missingRequired []string) []string {
	var weaknesses []string
	if in.Scores.RFS < 0.60 {
		weaknesses = append(weaknesses, fmt.Sprintf("Limited role alignment (%s fit)", pct0(in.Scores.RFS)))
	}
	if in.Scores.DCS < 0.60 {
		weaknesses = append(weaknesses, fmt.Sprintf("Skill gap in technical requirements (%s)", pct0(in.Scores.DCS)))
	}

	if len(missingRequired) > 0 {
		weaknesses = append(weaknesses, "Missing required skills: "+joinTop(missingRequired, maxNamedSkills))
	} else if len(in.Match.MissingSkills) > 0 {
		weaknesses = append(weaknesses, "Missing skills: "+joinTop(in.Match.MissingSkills, maxNamedSkills))
	}

	if in.Experience.Gap > 0 {
		weaknesses = append(weaknesses, fmt.Sprintf("Experience gap: %d years below requirement", in.Experience.Gap))
	} else if in.Experience.Overqualified {
		weaknesses = append(weaknesses, "Significantly overqualified - may affect retention")
	}

	if pct := in.Match.OverallMatchPercentage; pct < 50 {
		weaknesses = append(weaknesses, fmt.Sprintf("Only %s%% of required skills present", plain(pct)))
	}
	return weaknesses
}

// weightsOf returns the weights the scores were combined with, or the defaults when the
// bundle carries none.
func weightsOf(s types.ScoreBundle) types.Weights {
	w := s.Breakdown.Weights
	if w.RFS == 0 && w.DCS == 0 && w.ELC == 0 {
		return scoring.DefaultWeights()
	}
	return w
}

// interpretScore names the band a [0,1] score falls in.
func interpretScore(score float64) string {
	switch {
	case score >= 0.90:
		return "Exceptional"
	case score >= 0.80:
		return "Excellent"
	case score >= 0.70:
		return "Good"
	case score >= 0.60:
		return "Fair"
	case score >= 0.50:
		return "Moderate"
	default:
		return "Needs Improvement"
	}
}

// experienceBand classifies candidate years against required years.
type experienceBand int

const (
	experienceMeets experienceBand = iota
	experienceNear
	experienceBelow
)

func bandFor(detail types.ExperienceDetail) experienceBand {
	switch {
	case detail.Candidate >= detail.Required:
		return experienceMeets
	case float64(detail.Candidate) >= float64(detail.Required)*0.75:
		return experienceNear
	default:
		return experienceBelow
	}
}

// top returns at most n items.
func top(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func joinTop(items []string, n int) string {
	return strings.Join(top(items, n), ", ")
}

// pct0 and pct1 render fractions as whole or one-decimal percentages.
func pct0(v float64) string { return numeric.FormatPercent(v, 0) }
func pct1(v float64) string { return numeric.FormatPercent(v, 1) }

// plain renders a number with no trailing zeros.
func plain(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// nonNil keeps empty lists serialized as [] rather than null.
func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}
