package types

// ExperienceDetail compares required against actual years of experience.
// Gap is required minus candidate and is negative when the candidate exceeds the requirement.
type ExperienceDetail struct {
	Required        int     `json:"required"`
	Candidate       int     `json:"candidate"`
	Gap             int     `json:"gap"`
	PercentageMatch float64 `json:"percentage_match"`
	Overqualified   bool    `json:"overqualified"`
	Underqualified  bool    `json:"underqualified"`
}

// Weights holds the composite score weights. They must sum to 1.0.
type Weights struct {
	RFS float64 `json:"rfs"`
	DCS float64 `json:"dcs"`
	ELC float64 `json:"elc"`
}

// ScoreBreakdown records each weighted contribution to the composite score.
type ScoreBreakdown struct {
	RFSContribution float64 `json:"rfs_contribution"`
	DCSContribution float64 `json:"dcs_contribution"`
	ELCContribution float64 `json:"elc_contribution"`
	Weights         Weights `json:"weights"`
	Total           float64 `json:"total"`
}

// ScoreBundle holds the four evaluation scores, each in [0,1] and rounded to 4 decimals.
type ScoreBundle struct {
	RFS       float64        `json:"rfs"`
	DCS       float64        `json:"dcs"`
	ELC       float64        `json:"elc"`
	Composite float64        `json:"composite_score"`
	Breakdown ScoreBreakdown `json:"breakdown"`
}
