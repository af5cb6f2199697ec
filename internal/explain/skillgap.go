package explain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Learning-time estimates in weeks
const (
	basicWeeks        = 4
	intermediateWeeks = 8
	advancedWeeks     = 16

	weeksPerSkill    = 6
	parallelDiscount = 0.7
	closeableGap     = 40.0
)

// transferMap lists the technologies each known skill makes easier to learn.
var transferMap = map[string][]string{
	"python":     {"java", "javascript", "ruby", "go"},
	"java":       {"python", "c++", "c#", "kotlin"},
	"javascript": {"typescript", "node.js", "react", "vue"},
	"react":      {"angular", "vue", "svelte"},
	"aws":        {"azure", "gcp", "cloud"},
	"postgresql": {"mysql", "mongodb", "sql"},
	"docker":     {"kubernetes", "containerization"},
}

var (
	advancedMarkers     = []string{"expert", "senior", "architect"}
	intermediateMarkers = []string{"aws", "kubernetes", "microservices"}
)

// SkillGap analyzes the candidate's missing skills and proposes a learning roadmap.
// Missing required skills are ordered by how often the job text mentions them; the more
// frequent half is critical and the rest important.
func SkillGap(in Input) *types.SkillGapAnalysis {
	m := in.Match
	a := assess(in)
	critical, important := a.critical, a.important
	niceToHave := m.MissingNiceToHave

	totalRequired := len(m.MatchedRequired) + len(m.MissingRequired)
	total := len(m.MatchedSkills) + len(m.MissingSkills)
	gapPct := numeric.Percent(len(m.MissingSkills), total, 0)
	gapPctRequired := numeric.Percent(len(m.MissingRequired), totalRequired, 0)

	transfers := transferableSkills(m.CandidateExtras, m.MissingSkills)

	return &types.SkillGapAnalysis{
		Summary: types.GapSummary{
			TotalRequiredSkills:     total,
			SkillsMatched:           len(m.MatchedSkills),
			SkillsMissing:           len(m.MissingSkills),
			SkillsMissingRequired:   len(m.MissingRequired),
			SkillsMissingNiceToHave: len(m.MissingNiceToHave),
			GapPercentage:           gapPct,
			GapPercentageRequired:   gapPctRequired,
			Severity:                gapSeverity(len(critical), len(important), gapPctRequired),
			IsCloseable:             gapPct < closeableGap,
			FocusOnRequired:         len(m.MissingRequired) > 0,
		},
		Breakdown: types.GapBreakdown{
			Critical: types.SkillGroup{
				Count:  len(critical),
				Skills: nonNil(critical),
				Impact: "High - Essential for role performance (Required Skills)",
			},
			Important: types.SkillGroup{
				Count:  len(important),
				Skills: nonNil(important),
				Impact: "Medium - Important but can be learned on job (Required Skills)",
			},
			NiceToHave: types.SkillGroup{
				Count:  len(niceToHave),
				Skills: nonNil(niceToHave),
				Impact: "Low - Beneficial but not critical (Nice-to-Have Skills)",
			},
		},
		Transferable: types.TransferableSkills{
			Count:  len(transfers),
			Skills: transfers,
			Impact: "These existing skills can help learn missing ones faster",
		},
		Roadmap:         learningRoadmap(m.MissingSkills),
		ClosureTime:     closureEstimate(len(m.MissingSkills)),
		Recommendations: gapRecommendations(critical, important, niceToHave, transfers),
	}
}

// byMentions orders skills by whole-word mentions in text, most first, ties alphabetical.
func byMentions(list []string, text string) []string {
	out := append([]string(nil), list...)
	counts := make(map[string]int, len(out))
	for _, s := range out {
		counts[s] = skills.CountOccurrences(text, s)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] < out[j]
	})
	return out
}

// splitCritical puts the first half in critical when there are more than two skills,
// otherwise everything is critical.
func splitCritical(missing []string) (critical, important []string) {
	if len(missing) <= 2 {
		return missing, nil
	}
	half := len(missing) / 2
	return missing[:half], missing[half:]
}

func gapSeverity(critical, important int, gapPct float64) string {
	switch {
	case critical >= 5 || gapPct >= 70:
		return "Critical - Major skills gap"
	case critical >= 2 || gapPct >= 50:
		return "High - Significant skills gap"
	case important >= 5 || gapPct >= 30:
		return "Medium - Moderate skills gap"
	case gapPct >= 15:
		return "Low - Minor skills gap"
	default:
		return "Minimal - Negligible skills gap"
	}
}

// transferableSkills pairs each extra skill with every missing skill it helps learn.
func transferableSkills(extras, missing []string) []types.Transfer {
	transfers := []types.Transfer{}
	for _, extra := range extras {
		related, ok := transferMap[strings.ToLower(extra)]
		if !ok {
			continue
		}
		for _, m := range missing {
			lower := strings.ToLower(m)
			for _, r := range related {
				if strings.Contains(lower, r) {
					transfers = append(transfers, types.Transfer{
						FromSkill:    extra,
						ToSkill:      m,
						TransferEase: "Easy - Related technology",
					})
					break
				}
			}
		}
	}
	return transfers
}

func containsAny(s string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(s, m) {
			return true
		}
	}
	return false
}

func learningRoadmap(missing []string) []types.RoadmapStep {
	steps := make([]types.RoadmapStep, 0, min(len(missing), maxListedSkills))
	for i, skill := range top(missing, maxListedSkills) {
		lower := strings.ToLower(skill)
		difficulty, weeks := "basic", basicWeeks
		switch {
		case containsAny(lower, advancedMarkers):
			difficulty, weeks = "advanced", advancedWeeks
		case containsAny(lower, intermediateMarkers):
			difficulty, weeks = "intermediate", intermediateWeeks
		}
		steps = append(steps, types.RoadmapStep{
			Priority:       i + 1,
			Skill:          skill,
			Difficulty:     difficulty,
			EstimatedWeeks: weeks,
			LearningResources: []string{
				"Online courses for " + skill,
				fmt.Sprintf("Official %s documentation", skill),
				"Practice projects using " + skill,
			},
		})
	}
	return steps
}

// closureEstimate assumes six weeks per skill, with a 30% discount for parallel
// learning once there are more than two skills.
func closureEstimate(count int) types.ClosureEstimate {
	weeks := float64(count * weeksPerSkill)
	if count > 2 {
		weeks *= parallelDiscount
	}
	return types.ClosureEstimate{
		TotalWeeks:  int(weeks),
		TotalMonths: numeric.Round(weeks/4, 1),
		SkillsCount: count,
		Assumptions: []string{
			"Assumes dedicated learning time",
			"Some skills can be learned in parallel",
			"Prior experience accelerates learning",
		},
	}
}

func gapRecommendations(critical, important, niceToHave []string, transfers []types.Transfer) []string {
	var recs []string
	if len(critical) > 0 {
		recs = append(recs, "PRIORITY: Focus on learning critical skills: "+joinTop(critical, maxNamedSkills))
	}
	if len(transfers) > 0 {
		recs = append(recs, fmt.Sprintf("Leverage existing skills (%s) to learn %s faster", transfers[0].FromSkill, transfers[0].ToSkill))
	}
	if len(important) > 0 {
		recs = append(recs, "Next, work on important skills: "+joinTop(important, maxNamedSkills))
	}
	if len(niceToHave) > 0 {
		recs = append(recs, "Optional: Add value with: "+joinTop(niceToHave, 2))
	}
	return append(recs,
		"Consider bootcamps, online courses, or certification programs",
		"Build portfolio projects demonstrating newly learned skills",
	)
}
