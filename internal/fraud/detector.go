// Package fraud flags resumes that duplicate, or are templated copies of, resumes already in the pool.
package fraud

import (
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/scoring"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Embedding similarity thresholds
const (
	DefaultSimilarityThreshold = 0.90
	HighRiskThreshold          = 0.92
	MediumRiskThreshold        = 0.85
)

// Detector runs every fraud check against a snapshot of the candidate pool.
// It holds no state between calls.
type Detector struct {
	threshold float64
}

// NewDetector returns a Detector with the given base embedding threshold.
// A threshold outside (0,1] falls back to the default.
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultSimilarityThreshold
	}
	return &Detector{threshold: threshold}
}

// Threshold returns the base embedding similarity threshold.
func (d *Detector) Threshold() float64 {
	return d.threshold
}

// Detect compares a new resume against every entry in pool. The pool must not contain
// the candidate being checked.
func (d *Detector) Detect(embedding []float32, text, email string, pool []types.PoolEntry) types.FraudReport {
	embSim, similarIndex := maxEmbeddingSimilarity(embedding, pool)
	textDup := detectTextDuplication(text, pool)
	emailDup := emailExists(email, pool)
	template := detectTemplate(text)

	factors := make([]string, 0, 4)
	if embSim > HighRiskThreshold {
		factors = append(factors, types.RiskFactorEmbeddingSimilarity)
	}
	if textDup.HasDuplication {
		factors = append(factors, types.RiskFactorTextDuplication)
	}
	if emailDup {
		factors = append(factors, types.RiskFactorEmailDuplication)
	}
	if template.HasPlaceholder {
		factors = append(factors, types.RiskFactorTemplatePlaceholder)
	}

	overall := types.RiskLow
	switch {
	case len(factors) >= 2:
		overall = types.RiskHigh
	case len(factors) == 1:
		overall = types.RiskMedium
	}

	return types.FraudReport{
		FraudFlag:          embSim > d.threshold || textDup.HasDuplication || emailDup || template.HasPlaceholder,
		OverallRisk:        overall,
		RiskFactors:        factors,
		SimilarityIndex:    embSim,
		EmbeddingRisk:      d.embeddingRisk(embSim),
		TextDuplication:    textDup,
		EmailDuplication:   emailDup,
		TemplateCheck:      template,
		SimilarResumeIndex: similarIndex,
		RequiresReview:     overall == types.RiskHigh || overall == types.RiskMedium || embSim > HighRiskThreshold,
	}
}

func (d *Detector) embeddingRisk(sim float64) types.RiskLevel {
	switch {
	case sim > HighRiskThreshold:
		return types.RiskHigh
	case sim > MediumRiskThreshold:
		return types.RiskMedium
	case sim > d.threshold:
		return types.RiskLow
	default:
		return types.RiskNone
	}
}

// maxEmbeddingSimilarity returns the highest cosine similarity in the pool and its index.
// Entries with a different dimension are skipped.
func maxEmbeddingSimilarity(embedding []float32, pool []types.PoolEntry) (float64, int) {
	maxSim := 0.0
	index := -1
	for i, entry := range pool {
		sim, err := scoring.Cosine(embedding, entry.Embedding)
		if err != nil {
			continue
		}
		if sim > maxSim {
			maxSim = sim
			index = i
		}
	}
	return numeric.Round4(maxSim), index
}

// emailExists reports a case-insensitive match against any pool email.
func emailExists(email string, pool []types.PoolEntry) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	for _, entry := range pool {
		if strings.EqualFold(email, strings.TrimSpace(entry.Email)) {
			return true
		}
	}
	return false
}
