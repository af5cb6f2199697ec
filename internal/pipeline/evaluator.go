// Package pipeline turns a job and a candidate into a scored, decided and explained
// application, and persists the result.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-screener/internal/decision"
	"github.com/jonathan/candidate-screener/internal/explain"
	"github.com/jonathan/candidate-screener/internal/fraud"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Evaluator runs the scoring, fraud, decision and explanation stages. It holds no
// per-call state and is safe for concurrent use.
type Evaluator struct {
	matcher  *skills.Matcher
	detector *fraud.Detector
	weights  types.Weights
}

// EvaluatorOptions configures an Evaluator. Zero values select the defaults.
type EvaluatorOptions struct {
	Classifier          skills.SkillPriorityClassifier
	SimilarityThreshold float64
	Weights             *types.Weights
}

// NewEvaluator builds an Evaluator. Weights that do not sum to 1.0 are rejected.
func NewEvaluator(opts EvaluatorOptions) (*Evaluator, error) {
	weights := scoring.DefaultWeights()
	if opts.Weights != nil {
		if err := scoring.ValidateWeights(*opts.Weights); err != nil {
			return nil, fmt.Errorf("invalid weights: %w", err)
		}
		weights = *opts.Weights
	}
	return &Evaluator{
		matcher:  skills.NewMatcher(opts.Classifier),
		detector: fraud.NewDetector(opts.SimilarityThreshold),
		weights:  weights,
	}, nil
}

// Weights returns the composite weights in use.
func (e *Evaluator) Weights() types.Weights {
	return e.weights
}

// SimilarityThreshold returns the fraud detector's embedding threshold after defaults.
func (e *Evaluator) SimilarityThreshold() float64 {
	return e.detector.Threshold()
}

// Evaluation is everything computed for one job and candidate pair.
type Evaluation struct {
	JobSkills       *types.SkillSet        `json:"job_skills"`
	CandidateSkills *types.SkillSet        `json:"candidate_skills"`
	Match           types.SkillMatch       `json:"skill_match"`
	Scores          types.ScoreBundle      `json:"scores"`
	Experience      types.ExperienceDetail `json:"experience_details"`
	Fraud           types.FraudReport      `json:"fraud_details"`
	Decision        types.Decision         `json:"decision"`
	Reason          string                 `json:"decision_reason"`
	Evidence        types.Evidence         `json:"explanation"`
}

// Application projects the evaluation into a new, unranked application record.
func (ev *Evaluation) Application(jobID, candidateID uuid.UUID) *types.Application {
	return &types.Application{
		JobID:          jobID,
		CandidateID:    candidateID,
		Scores:         ev.Scores,
		SkillMatch:     ev.Match,
		Experience:     ev.Experience,
		Fraud:          ev.Fraud,
		Decision:       ev.Decision,
		DecisionReason: ev.Reason,
		Evidence:       ev.Evidence,
		Status:         types.StatusEvaluated,
	}
}

// Evaluate scores candidate against job. pool is every other candidate in the system and
// must not include candidate itself. Skill sets missing from either record are extracted
// from its text. Both embeddings must already be present.
func (e *Evaluator) Evaluate(job *types.Job, candidate *types.Candidate, pool []types.PoolEntry) (*Evaluation, error) {
	if job == nil || candidate == nil {
		return nil, &types.ValidationError{Message: "job and candidate are required"}
	}
	if candidate.Experience < 0 || job.RequiredExperience < 0 {
		return nil, &types.ValidationError{Message: "experience years must not be negative"}
	}
	if len(job.Embedding) == 0 || len(candidate.Embedding) == 0 {
		return nil, &types.ValidationError{Message: "job and candidate embeddings are required"}
	}

	jobSkills, err := skillsOrExtract(job.Skills, job.Text)
	if err != nil {
		return nil, fmt.Errorf("failed to extract job skills: %w", err)
	}
	candidateSkills, err := skillsOrExtract(candidate.Skills, candidate.ResumeText)
	if err != nil {
		return nil, fmt.Errorf("failed to extract candidate skills: %w", err)
	}

	match := e.matcher.Match(job.Text, jobSkills.Technical, candidateSkills.Technical)

	scores, experience, err := scoring.Bundle(job.Embedding, candidate.Embedding, match,
		job.RequiredExperience, candidate.Experience, e.weights)
	if err != nil {
		if errors.Is(err, scoring.ErrDimensionMismatch) {
			return nil, &types.ValidationError{Message: "job and resume embeddings differ in length", Cause: err}
		}
		return nil, fmt.Errorf("failed to compute scores: %w", err)
	}

	report := e.detector.Detect(candidate.Embedding, candidate.ResumeText, candidate.Email, pool)

	label, reason := decision.Decide(decision.Input{
		Scores:     scores,
		Fraud:      report,
		Match:      *match,
		Experience: experience,
	})

	evidence := explain.Build(explain.Input{
		Decision:   label,
		Scores:     scores,
		Match:      *match,
		Experience: experience,
		Fraud:      report,
		JobText:    job.Text,
	})

	return &Evaluation{
		JobSkills:       jobSkills,
		CandidateSkills: candidateSkills,
		Match:           *match,
		Scores:          scores,
		Experience:      experience,
		Fraud:           report,
		Decision:        label,
		Reason:          reason,
		Evidence:        evidence,
	}, nil
}

// skillsOrExtract returns cached when present, otherwise extracts from text.
func skillsOrExtract(cached *types.SkillSet, text string) (*types.SkillSet, error) {
	if cached != nil {
		return cached, nil
	}
	extracted, err := skills.Extract(text)
	if err != nil {
		var inputErr *skills.InputError
		if errors.As(err, &inputErr) {
			return nil, &types.ValidationError{Message: inputErr.Message, Cause: err}
		}
		return nil, err
	}
	return extracted, nil
}
