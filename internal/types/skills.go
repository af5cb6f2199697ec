// Package types provides type definitions for structured data used throughout the candidate screener.
package types

// SkillSet is the output of skill extraction over a single text.
// Lists are sorted and deduplicated.
type SkillSet struct {
	Technical  []string `json:"technical_skills"`
	Soft       []string `json:"soft_skills"`
	All        []string `json:"all_skills"`
	SkillCount int      `json:"skill_count"`
}

// IsEmpty reports whether no skills were found.
func (s *SkillSet) IsEmpty() bool {
	return s == nil || len(s.All) == 0
}

// SkillPriority classifies a job's technical skills as required or nice-to-have.
type SkillPriority struct {
	Required         []string `json:"required_skills"`
	NiceToHave       []string `json:"nice_to_have_skills"`
	HasClearSections bool     `json:"has_clear_sections"`
	RequiredCount    int      `json:"required_count"`
	NiceToHaveCount  int      `json:"nice_to_have_count"`
}

// PriorityBreakdown reports counts per priority bucket.
type PriorityBreakdown struct {
	RequiredTotal     int `json:"required_total"`
	RequiredMatched   int `json:"required_matched"`
	RequiredMissing   int `json:"required_missing"`
	NiceToHaveTotal   int `json:"nice_to_have_total"`
	NiceToHaveMatched int `json:"nice_to_have_matched"`
	NiceToHaveMissing int `json:"nice_to_have_missing"`
}

// SkillMatch is the weighted comparison of job skills against candidate skills.
type SkillMatch struct {
	MatchScore         float64 `json:"match_score"`
	RequiredMatchScore float64 `json:"required_match_score"`

	MatchedRequired   []string `json:"matched_required"`
	MissingRequired   []string `json:"missing_required"`
	MatchedNiceToHave []string `json:"matched_nice_to_have"`
	MissingNiceToHave []string `json:"missing_nice_to_have"`
	MatchedSkills     []string `json:"matched_skills"`
	MissingSkills     []string `json:"missing_skills"`
	CandidateExtras   []string `json:"candidate_extras"`

	RequiredMatchPercentage float64           `json:"required_match_percentage"`
	OverallMatchPercentage  float64           `json:"overall_match_percentage"`
	Breakdown               PriorityBreakdown `json:"priority_breakdown"`

	TotalJobSkills   int `json:"total_jd_skills"`
	JobSkillCount    int `json:"jd_skill_count"`
	ResumeSkillCount int `json:"resume_skill_count"`
}

// MatchedCount returns the number of matched job skills across both priorities.
func (m *SkillMatch) MatchedCount() int {
	return len(m.MatchedSkills)
}

// FlatSkillMatch is the unweighted comparison used for side-by-side reporting.
type FlatSkillMatch struct {
	MatchScore        float64  `json:"match_score"`
	MatchedSkills     []string `json:"matched_skills"`
	MatchedExplicit   []string `json:"matched_explicit"`
	MatchedInferred   []string `json:"matched_inferred"`
	MissingSkills     []string `json:"missing_skills"`
	ExtraSkills       []string `json:"extra_skills"`
	MatchPercentage   float64  `json:"match_percentage"`
	TotalJobSkills    int      `json:"total_jd_skills"`
	TotalResumeSkills int      `json:"total_resume_skills"`
}
