package types

import "github.com/google/uuid"

// RankedEntry is a compact view of an application for listings.
type RankedEntry struct {
	ApplicationID uuid.UUID `json:"application_id"`
	CandidateID   uuid.UUID `json:"candidate_id"`
	Rank          *int      `json:"rank"`
	Composite     float64   `json:"composite_score"`
	Decision      Decision  `json:"decision"`
	FraudFlag     bool      `json:"fraud_flag"`
}

// AverageScores holds per-score means across a job's applications.
type AverageScores struct {
	Composite float64 `json:"composite"`
	RFS       float64 `json:"rfs"`
	DCS       float64 `json:"dcs"`
	ELC       float64 `json:"elc"`
}

// FraudStatistics counts fraud-flagged applications.
type FraudStatistics struct {
	Total      int     `json:"total_fraud"`
	Percentage float64 `json:"fraud_percentage"`
}

// JobReport summarizes every application to one job.
type JobReport struct {
	JobID             uuid.UUID        `json:"job_id"`
	TotalApplications int              `json:"total_applications"`
	DecisionBreakdown map[Decision]int `json:"decision_breakdown"`
	AverageScores     AverageScores    `json:"average_scores"`
	FraudStatistics   FraudStatistics  `json:"fraud_statistics"`
	TopCandidates     []RankedEntry    `json:"top_candidates"`
	TopCandidate      *RankedEntry     `json:"top_candidate"`
}
