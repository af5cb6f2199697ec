package skills

import (
	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

const (
	// niceToHaveWeight scales the nice-to-have match ratio into a bonus on top of the required score.
	niceToHaveWeight = 0.2
	// missingPenaltyWeight damps the unweighted score for each missing job skill.
	missingPenaltyWeight = 0.3
	// maxExtras caps the candidate extras list.
	maxExtras = 20
)

// Matcher compares job skills against candidate skills using a priority classifier.
type Matcher struct {
	classifier SkillPriorityClassifier
}

// NewMatcher returns a Matcher. A nil classifier uses the section-marker heuristic.
func NewMatcher(classifier SkillPriorityClassifier) *Matcher {
	if classifier == nil {
		classifier = NewSectionMarkerClassifier()
	}
	return &Matcher{classifier: classifier}
}

// Match classifies jobSkills against jobText and computes the weighted match.
func (m *Matcher) Match(jobText string, jobSkills, candidateSkills []string) *types.SkillMatch {
	return MatchWeighted(m.classifier.Classify(jobText, jobSkills), len(jobSkills), candidateSkills)
}

// MatchWeighted scores candidateSkills against a classified job. Required skills carry the
// score; matched nice-to-have skills add a bonus of at most 0.2. Candidate skills are
// expanded with inferred prerequisites before matching, while extras use only the
// normalized explicit skills.
func MatchWeighted(priority *types.SkillPriority, jobSkillCount int, candidateSkills []string) *types.SkillMatch {
	required := newSet(priority.Required...)
	optional := newSet(priority.NiceToHave...)

	inferred := inferSet(candidateSkills)
	explicit := normalizeSet(candidateSkills)

	matchedReq, missingReq := partition(required, inferred)
	matchedOpt, missingOpt := partition(optional, inferred)

	requiredScore := 1.0
	if len(required) > 0 {
		requiredScore = float64(len(matchedReq)) / float64(len(required))
	}
	bonus := 0.0
	if len(optional) > 0 {
		bonus = float64(len(matchedOpt)) / float64(len(optional)) * niceToHaveWeight
	}

	allJob := union(required, optional)
	extras := make(set)
	for skill := range explicit {
		if !allJob.has(skill) {
			extras[skill] = struct{}{}
		}
	}

	matched := union(matchedReq, matchedOpt)
	missing := union(missingReq, missingOpt)

	return &types.SkillMatch{
		MatchScore:              numeric.Round4(min(requiredScore+bonus, 1.0)),
		RequiredMatchScore:      numeric.Round4(requiredScore),
		MatchedRequired:         matchedReq.sorted(),
		MissingRequired:         missingReq.sorted(),
		MatchedNiceToHave:       matchedOpt.sorted(),
		MissingNiceToHave:       missingOpt.sorted(),
		MatchedSkills:           matched.sorted(),
		MissingSkills:           missing.sorted(),
		CandidateExtras:         truncate(extras.sorted(), maxExtras),
		RequiredMatchPercentage: numeric.Percent(len(matchedReq), len(required), 100),
		OverallMatchPercentage:  numeric.Percent(len(matched), len(required)+len(optional), 0),
		Breakdown: types.PriorityBreakdown{
			RequiredTotal:     len(required),
			RequiredMatched:   len(matchedReq),
			RequiredMissing:   len(missingReq),
			NiceToHaveTotal:   len(optional),
			NiceToHaveMatched: len(matchedOpt),
			NiceToHaveMissing: len(missingOpt),
		},
		TotalJobSkills:   len(allJob),
		JobSkillCount:    jobSkillCount,
		ResumeSkillCount: len(candidateSkills),
	}
}

// MatchUnweighted treats every job skill equally and penalizes each missing one.
// An empty job skill list yields a zero match.
func MatchUnweighted(jobSkills, candidateSkills []string) *types.FlatSkillMatch {
	job := normalizeSet(jobSkills)
	if len(job) == 0 {
		return &types.FlatSkillMatch{
			MatchedSkills:     []string{},
			MatchedExplicit:   []string{},
			MatchedInferred:   []string{},
			MissingSkills:     []string{},
			ExtraSkills:       []string{},
			TotalResumeSkills: len(candidateSkills),
		}
	}

	inferred := inferSet(candidateSkills)
	explicit := normalizeSet(candidateSkills)

	matched, missing := partition(job, inferred)
	matchedExplicit := make(set)
	matchedInferred := make(set)
	for skill := range matched {
		if explicit.has(skill) {
			matchedExplicit[skill] = struct{}{}
		} else {
			matchedInferred[skill] = struct{}{}
		}
	}
	extras := make(set)
	for skill := range explicit {
		if !job.has(skill) {
			extras[skill] = struct{}{}
		}
	}

	denominator := float64(len(job)) + missingPenaltyWeight*float64(len(missing))
	score := float64(len(matched)) / denominator

	return &types.FlatSkillMatch{
		MatchScore:        numeric.Round4(min(score, 1.0)),
		MatchedSkills:     matched.sorted(),
		MatchedExplicit:   matchedExplicit.sorted(),
		MatchedInferred:   matchedInferred.sorted(),
		MissingSkills:     missing.sorted(),
		ExtraSkills:       truncate(extras.sorted(), maxExtras),
		MatchPercentage:   numeric.Percent(len(matched), len(job), 0),
		TotalJobSkills:    len(job),
		TotalResumeSkills: len(candidateSkills),
	}
}

// partition splits want into the members present in have and those absent.
func partition(want, have set) (present, absent set) {
	present, absent = make(set), make(set)
	for skill := range want {
		if have.has(skill) {
			present[skill] = struct{}{}
		} else {
			absent[skill] = struct{}{}
		}
	}
	return present, absent
}

func union(a, b set) set {
	out := make(set, len(a)+len(b))
	for s := range a {
		out[s] = struct{}{}
	}
	for s := range b {
		out[s] = struct{}{}
	}
	return out
}

func truncate(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}
