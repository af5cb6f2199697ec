// Package scoring computes the role fit, domain competency, experience and composite scores.
package scoring

import (
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Default weights for the composite score
const (
	rfsWeight = 0.40
	dcsWeight = 0.40
	elcWeight = 0.20
)

// Experience step thresholds, as fractions of the required years
const (
	nearlyMeetsRatio     = 0.75
	halfwayRatio         = 0.5
	overqualifiedRatio   = 2.0
	overqualifiedPenalty = 2.5
	penaltyMultiplier    = 0.9
)

// weightSumTolerance absorbs float error when checking that weights sum to 1.
const weightSumTolerance = 1e-6

// ErrDimensionMismatch is returned when two embeddings have different lengths.
var ErrDimensionMismatch = errors.New("embedding dimensions differ")

// DefaultWeights returns the 0.4/0.4/0.2 composite weighting.
func DefaultWeights() types.Weights {
	return types.Weights{RFS: rfsWeight, DCS: dcsWeight, ELC: elcWeight}
}

// ValidateWeights checks that every weight is non-negative and that they sum to 1.
func ValidateWeights(w types.Weights) error {
	if w.RFS < 0 || w.DCS < 0 || w.ELC < 0 {
		return fmt.Errorf("weights must be non-negative: rfs=%v dcs=%v elc=%v", w.RFS, w.DCS, w.ELC)
	}
	if sum := w.RFS + w.DCS + w.ELC; math.Abs(sum-1.0) > weightSumTolerance {
		return fmt.Errorf("weights must sum to 1.0, got %v", sum)
	}
	return nil
}

// Cosine returns the cosine similarity of a and b. Empty or zero-norm vectors score 0.
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("%w: %d vs %d", ErrDimensionMismatch, len(a), len(b))
	}
	var dot, normA, normB float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		normA += x * x
		normB += y * y
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// RoleFit scores the semantic alignment of the job and resume embeddings.
// Negative similarity clamps to 0.
func RoleFit(jobEmbedding, resumeEmbedding []float32) (float64, error) {
	sim, err := Cosine(jobEmbedding, resumeEmbedding)
	if err != nil {
		return 0, fmt.Errorf("failed to compute role fit: %w", err)
	}
	return numeric.Round4(numeric.Clamp01(sim)), nil
}

// DomainCompetency returns the weighted technical skill match score.
func DomainCompetency(match *types.SkillMatch) float64 {
	if match == nil {
		return 0
	}
	return numeric.Round4(numeric.Clamp01(match.MatchScore))
}

// ExperienceCompatibility scores candidate years against required years with a step function.
// Candidates above 2.5x the requirement take a 10% overqualification penalty.
func ExperienceCompatibility(required, candidate int) (float64, types.ExperienceDetail) {
	r, c := float64(required), float64(candidate)

	var score float64
	switch {
	case c >= r:
		score = 1.0
	case c >= r*nearlyMeetsRatio:
		score = 0.8
	case c >= r*halfwayRatio:
		score = 0.5
	default:
		score = 0.0
	}
	if c > r*overqualifiedPenalty {
		score *= penaltyMultiplier
	}

	detail := types.ExperienceDetail{
		Required:        required,
		Candidate:       candidate,
		Gap:             required - candidate,
		PercentageMatch: numeric.Round(math.Min(c, r)/math.Max(r, 1)*100, 2),
		Overqualified:   c > r*overqualifiedRatio,
		Underqualified:  c < r*nearlyMeetsRatio,
	}

	return numeric.Round4(score), detail
}

// Composite combines the three scores with w and records each contribution.
func Composite(rfs, dcs, elc float64, w types.Weights) (float64, types.ScoreBreakdown) {
	total := w.RFS*rfs + w.DCS*dcs + w.ELC*elc
	composite := numeric.Round4(numeric.Clamp01(total))

	return composite, types.ScoreBreakdown{
		RFSContribution: numeric.Round4(w.RFS * rfs),
		DCSContribution: numeric.Round4(w.DCS * dcs),
		ELCContribution: numeric.Round4(w.ELC * elc),
		Weights:         w,
		Total:           composite,
	}
}

// Bundle computes every score for one job and candidate pair.
func Bundle(jobEmbedding, resumeEmbedding []float32, match *types.SkillMatch, requiredYears, candidateYears int, w types.Weights) (types.ScoreBundle, types.ExperienceDetail, error) {
	rfs, err := RoleFit(jobEmbedding, resumeEmbedding)
	if err != nil {
		return types.ScoreBundle{}, types.ExperienceDetail{}, err
	}
	dcs := DomainCompetency(match)
	elc, detail := ExperienceCompatibility(requiredYears, candidateYears)
	composite, breakdown := Composite(rfs, dcs, elc, w)

	return types.ScoreBundle{
		RFS:       rfs,
		DCS:       dcs,
		ELC:       elc,
		Composite: composite,
		Breakdown: breakdown,
	}, detail, nil
}
