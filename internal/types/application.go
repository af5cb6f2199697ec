package types

import (
	"time"

	"github.com/google/uuid"
)

// Application status values
const (
	StatusEvaluated  = "evaluated"
	StatusOverridden = "overridden"
)

// Job is a posted job with skills and embedding cached at creation time.
type Job struct {
	ID                 uuid.UUID `json:"id"`
	Company            string    `json:"company,omitempty"`
	Role               string    `json:"role"`
	Text               string    `json:"jd_text"`
	Embedding          []float32 `json:"jd_embedding,omitempty"`
	RequiredExperience int       `json:"required_experience"`
	Skills             *SkillSet `json:"skills_extracted,omitempty"`
	CreatedAt          time.Time `json:"created_at"`
}

// Candidate is an applicant with skills and embedding cached at creation time.
type Candidate struct {
	ID         uuid.UUID `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone,omitempty"`
	ResumeText string    `json:"resume_text"`
	Embedding  []float32 `json:"resume_embedding,omitempty"`
	Experience int       `json:"experience"`
	Skills     *SkillSet `json:"skills_extracted,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// PoolEntry is the slice of a candidate record the fraud check needs.
type PoolEntry struct {
	CandidateID uuid.UUID `json:"candidate_id"`
	Embedding   []float32 `json:"resume_embedding"`
	ResumeText  string    `json:"resume_text"`
	Email       string    `json:"email"`
}

// PoolEntryFor projects a candidate into a pool entry.
func PoolEntryFor(c *Candidate) PoolEntry {
	return PoolEntry{
		CandidateID: c.ID,
		Embedding:   c.Embedding,
		ResumeText:  c.ResumeText,
		Email:       c.Email,
	}
}

// Application binds a job and candidate to the evaluation computed at submission.
// Only Rank changes after creation, except through an audited decision override.
type Application struct {
	ID             uuid.UUID        `json:"id"`
	JobID          uuid.UUID        `json:"job_id"`
	CandidateID    uuid.UUID        `json:"candidate_id"`
	Scores         ScoreBundle      `json:"scores"`
	SkillMatch     SkillMatch       `json:"skill_match"`
	Experience     ExperienceDetail `json:"experience_details"`
	Fraud          FraudReport      `json:"fraud_details"`
	Decision       Decision         `json:"decision"`
	DecisionReason string           `json:"decision_reason"`
	Evidence       Evidence         `json:"explanation"`
	Rank           *int             `json:"rank"`
	Status         string           `json:"status"`
	CreatedAt      time.Time        `json:"created_at"`
	UpdatedAt      time.Time        `json:"updated_at"`
}

// IsRanked reports whether the ranking pass has assigned a rank.
func (a *Application) IsRanked() bool {
	return a.Rank != nil
}
