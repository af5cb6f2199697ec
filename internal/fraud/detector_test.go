package fraud

import (
	"testing"

	"github.com/jonathan/candidate-screener/internal/types"
	"github.com/stretchr/testify/assert"
)

const sampleResume = `Jane Doe. Backend engineer with six years building payment systems in Python and Go.
Led migration of a monolith to Kubernetes. Designed PostgreSQL schemas for ledger data.`

func TestDetect_EmptyPool(t *testing.T) {
	report := NewDetector(0).Detect([]float32{1, 0}, sampleResume, "jane@example.com", nil)

	assert.False(t, report.FraudFlag)
	assert.Equal(t, 0.0, report.SimilarityIndex)
	assert.Equal(t, -1, report.SimilarResumeIndex)
	assert.Equal(t, types.RiskLow, report.OverallRisk)
	assert.Equal(t, types.RiskNone, report.EmbeddingRisk)
	assert.Equal(t, -1, report.TextDuplication.DuplicateIndex)
	assert.Empty(t, report.RiskFactors)
	assert.False(t, report.RequiresReview)
}

func TestDetect_IdenticalText(t *testing.T) {
	pool := []types.PoolEntry{
		{Embedding: []float32{0, 1}, ResumeText: "Something unrelated entirely.", Email: "a@example.com"},
		{Embedding: []float32{1, 0}, ResumeText: sampleResume, Email: "other@example.com"},
	}
	report := NewDetector(0.9).Detect([]float32{1, 0}, sampleResume, "jane@example.com", pool)

	assert.True(t, report.FraudFlag)
	assert.True(t, report.TextDuplication.HasDuplication)
	assert.Equal(t, 1.0, report.TextDuplication.MaxTextSimilarity)
	assert.Equal(t, 1, report.TextDuplication.DuplicateIndex)
	assert.Equal(t, types.RiskCritical, report.TextDuplication.RiskLevel)
	assert.Equal(t, 1.0, report.SimilarityIndex)
	assert.Equal(t, 1, report.SimilarResumeIndex)
	assert.Equal(t, []string{types.RiskFactorEmbeddingSimilarity, types.RiskFactorTextDuplication}, report.RiskFactors)
	assert.Equal(t, types.RiskHigh, report.OverallRisk)
	assert.True(t, report.RequiresReview)
}

func TestDetect_EmailDuplicationCaseInsensitive(t *testing.T) {
	pool := []types.PoolEntry{{Embedding: []float32{0, 1}, ResumeText: "different text here", Email: "Jane@Example.com"}}
	report := NewDetector(0.9).Detect([]float32{1, 0}, sampleResume, "jane@example.com", pool)

	assert.True(t, report.EmailDuplication)
	assert.True(t, report.FraudFlag)
	assert.Equal(t, types.RiskMedium, report.OverallRisk)
	assert.Equal(t, []string{types.RiskFactorEmailDuplication}, report.RiskFactors)
}

func TestDetect_EmptyEmailNeverDuplicates(t *testing.T) {
	pool := []types.PoolEntry{{Embedding: []float32{0, 1}, ResumeText: "x", Email: ""}}
	report := NewDetector(0.9).Detect([]float32{1, 0}, sampleResume, "", pool)
	assert.False(t, report.EmailDuplication)
}

func TestDetect_EmbeddingRiskBands(t *testing.T) {
	d := NewDetector(0.80)

	assert.Equal(t, types.RiskHigh, d.embeddingRisk(0.95))
	assert.Equal(t, types.RiskMedium, d.embeddingRisk(0.90))
	assert.Equal(t, types.RiskLow, d.embeddingRisk(0.83))
	assert.Equal(t, types.RiskNone, d.embeddingRisk(0.50))
}

func TestDetect_ModerateEmbeddingSimilarityFlagsWithoutFactor(t *testing.T) {
	// cos([1,0.5],[1,0]) = 0.8944: over the base threshold, under the high-risk factor.
	pool := []types.PoolEntry{{Embedding: []float32{1, 0}, ResumeText: "unrelated", Email: "x@example.com"}}

	report := NewDetector(0.85).Detect([]float32{1, 0.5}, sampleResume, "jane@example.com", pool)
	assert.Equal(t, 0.8944, report.SimilarityIndex)
	assert.True(t, report.FraudFlag)
	assert.Empty(t, report.RiskFactors)
	assert.Equal(t, types.RiskMedium, report.EmbeddingRisk)
	assert.False(t, report.RequiresReview)
}

func TestDetect_SkipsMismatchedDimensions(t *testing.T) {
	pool := []types.PoolEntry{{Embedding: []float32{1, 0, 0}, ResumeText: "unrelated", Email: "x@example.com"}}
	report := NewDetector(0.9).Detect([]float32{1, 0}, sampleResume, "jane@example.com", pool)

	assert.Equal(t, 0.0, report.SimilarityIndex)
	assert.Equal(t, -1, report.SimilarResumeIndex)
}

func TestNewDetector_DefaultThreshold(t *testing.T) {
	assert.Equal(t, DefaultSimilarityThreshold, NewDetector(0).Threshold())
	assert.Equal(t, DefaultSimilarityThreshold, NewDetector(1.5).Threshold())
	assert.Equal(t, 0.8, NewDetector(0.8).Threshold())
}

func TestDetectTemplate(t *testing.T) {
	check := detectTemplate("Curriculum Vitae. Professional Summary: results-driven team player with a proven track record.")
	assert.Equal(t, 5, check.GenericPhraseCount)
	assert.Equal(t, 0.625, check.TemplateScore)
	assert.True(t, check.AppearsTemplated)
	assert.False(t, check.HasPlaceholder)

	check = detectTemplate("Hello, I am [Name] and this is lorem ipsum.")
	assert.True(t, check.HasPlaceholder)
	assert.True(t, check.AppearsTemplated)
	assert.Equal(t, 0.0, check.TemplateScore)
}

func TestDetect_PlaceholderIsRiskFactor(t *testing.T) {
	report := NewDetector(0.9).Detect([]float32{1}, "Insert name here. Engineer.", "a@b.co", nil)

	assert.True(t, report.FraudFlag)
	assert.Equal(t, []string{types.RiskFactorTemplatePlaceholder}, report.RiskFactors)
	assert.Equal(t, types.RiskMedium, report.OverallRisk)
	assert.True(t, report.RequiresReview)
}

func TestTextSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, TextSimilarity("Hello,   World!", "hello world"))
	assert.Equal(t, 0.0, TextSimilarity("ab", "abc"))
	assert.Equal(t, 0.0, TextSimilarity("abc", "xyz"))

	// "abcd" -> {abc, bcd}; "abce" -> {abc, bce}; 1 shared of 3.
	assert.InDelta(t, 1.0/3.0, TextSimilarity("abcd", "abce"), 1e-9)
}

func TestTextRiskLevel(t *testing.T) {
	assert.Equal(t, types.RiskCritical, textRiskLevel(0.95))
	assert.Equal(t, types.RiskHigh, textRiskLevel(0.90))
	assert.Equal(t, types.RiskMedium, textRiskLevel(0.80))
	assert.Equal(t, types.RiskLow, textRiskLevel(0.10))
}
