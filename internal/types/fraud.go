package types

// RiskLevel is a coarse risk classification.
type RiskLevel string

// Risk levels used across fraud checks
const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Risk factor identifiers reported in FraudReport.RiskFactors
const (
	RiskFactorEmbeddingSimilarity = "high_embedding_similarity"
	RiskFactorTextDuplication     = "text_duplication"
	RiskFactorEmailDuplication    = "email_duplication"
	RiskFactorTemplatePlaceholder = "template_placeholder"
)

// TextDuplication is the result of the shingle-based text comparison.
type TextDuplication struct {
	HasDuplication    bool      `json:"has_duplication"`
	MaxTextSimilarity float64   `json:"max_text_similarity"`
	DuplicateIndex    int       `json:"duplicate_index"`
	RiskLevel         RiskLevel `json:"risk_level"`
}

// TemplateCheck is the result of boilerplate and placeholder detection.
type TemplateCheck struct {
	AppearsTemplated   bool    `json:"appears_templated"`
	TemplateScore      float64 `json:"template_score"`
	HasPlaceholder     bool    `json:"has_placeholder"`
	GenericPhraseCount int     `json:"generic_phrase_count"`
}

// FraudReport is recomputed for every evaluation against the current candidate pool.
type FraudReport struct {
	FraudFlag          bool            `json:"fraud_flag"`
	OverallRisk        RiskLevel       `json:"overall_risk"`
	RiskFactors        []string        `json:"risk_factors"`
	SimilarityIndex    float64         `json:"similarity_index"`
	EmbeddingRisk      RiskLevel       `json:"embedding_risk"`
	TextDuplication    TextDuplication `json:"text_duplication"`
	EmailDuplication   bool            `json:"email_duplication"`
	TemplateCheck      TemplateCheck   `json:"template_check"`
	SimilarResumeIndex int             `json:"similar_resume_index"`
	RequiresReview     bool            `json:"requires_review"`
}

// HasRiskFactor reports whether the named factor was triggered.
func (r *FraudReport) HasRiskFactor(factor string) bool {
	for _, f := range r.RiskFactors {
		if f == factor {
			return true
		}
	}
	return false
}
