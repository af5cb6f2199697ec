package explain

import (
	"fmt"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Basic builds the plain-language explanation of a decision.
func Basic(in Input) *types.BasicExplanation {
	a := assess(in)

	strengths := a.strengths
	if len(strengths) == 0 {
		strengths = []string{"Candidate shows basic qualifications"}
	}
	weaknesses := a.weaknesses
	if len(weaknesses) == 0 {
		weaknesses = []string{"No significant weaknesses identified"}
	}

	return &types.BasicExplanation{
		Decision:           in.Decision,
		Summary:            basicSummary(in.Decision, in.Scores.Composite),
		Strengths:          strengths,
		Weaknesses:         weaknesses,
		KeyFactors:         basicKeyFactors(in),
		SkillAnalysis:      basicSkillAnalysis(in.Match),
		ExperienceAnalysis: basicExperience(in.Experience),
		FraudAssessment:    basicFraud(in.Fraud),
		Recommendation:     basicRecommendation(in.Decision, in.Fraud),
		Confidence:         a.confidence,
	}
}

func basicSummary(d types.Decision, composite float64) string {
	switch d {
	case types.DecisionFastTrack:
		return fmt.Sprintf("Exceptional candidate with composite score of %.2f. Immediate interview recommended.", composite)
	case types.DecisionSelected:
		return fmt.Sprintf("Strong candidate with composite score of %.2f. Schedule interview.", composite)
	case types.DecisionHirePooled:
		return fmt.Sprintf("Moderate match with composite score of %.2f. Consider for future opportunities.", composite)
	case types.DecisionRejected:
		return fmt.Sprintf("Insufficient match with composite score of %.2f. Does not meet requirements.", composite)
	case types.DecisionReviewRequired:
		return "Potential issues detected. Manual review required before proceeding."
	default:
		return fmt.Sprintf("Decision: %s with score %.2f", d, composite)
	}
}

func basicKeyFactors(in Input) []types.KeyFactor {
	factors := []types.KeyFactor{{
		Factor:      "Overall Competency",
		Value:       pct0(in.Scores.Composite),
		Impact:      "high",
		Description: "Combined evaluation across all criteria",
	}}

	if in.Fraud.FraudFlag {
		factors = append(factors, types.KeyFactor{
			Factor:      "Fraud Detection",
			Value:       string(in.Fraud.OverallRisk),
			Impact:      "critical",
			Description: fmt.Sprintf("Potential duplication detected (%s similarity)", pct0(in.Fraud.SimilarityIndex)),
		})
	}

	if in.Scores.ELC == 0 {
		factors = append(factors, types.KeyFactor{
			Factor:      "Experience",
			Value:       "Insufficient",
			Impact:      "high",
			Description: "Does not meet minimum experience requirement",
		})
	}

	impact := "medium"
	if in.Scores.DCS >= 0.7 {
		impact = "high"
	}
	factors = append(factors, types.KeyFactor{
		Factor:      "Skill Match",
		Value:       pct0(in.Scores.DCS),
		Impact:      impact,
		Description: "Technical competency alignment",
	})

	return factors
}

func basicSkillAnalysis(m types.SkillMatch) types.SkillAnalysis {
	matched := m.MatchedCount()
	total := m.TotalJobSkills
	if total == 0 {
		total = matched + len(m.MissingSkills)
	}

	var text string
	switch pct := m.OverallMatchPercentage; {
	case pct >= 80:
		text = fmt.Sprintf("Excellent skill coverage: %d of %d required skills demonstrated.", matched, total)
	case pct >= 60:
		text = fmt.Sprintf("Good skill coverage: %d of %d required skills present.", matched, total)
	case pct >= 40:
		text = fmt.Sprintf("Moderate skill coverage: %d of %d required skills found.", matched, total)
	default:
		text = fmt.Sprintf("Limited skill coverage: Only %d of %d required skills identified.", matched, total)
	}

	return types.SkillAnalysis{
		MatchPercentage: m.OverallMatchPercentage,
		MatchedSkills:   nonNil(top(m.MatchedSkills, maxListedSkills)),
		MissingSkills:   nonNil(top(m.MissingSkills, maxListedSkills)),
		ExtraSkills:     nonNil(top(m.CandidateExtras, maxListedSkills)),
		TotalRequired:   total,
		TotalCandidate:  m.ResumeSkillCount,
		Analysis:        text,
	}
}

func basicExperience(d types.ExperienceDetail) types.ExperienceAnalysis {
	status := "Below requirements"
	switch bandFor(d) {
	case experienceMeets:
		status = "Meets or exceeds requirements"
	case experienceNear:
		status = "Close to requirements"
	}
	return types.ExperienceAnalysis{
		RequiredYears:   d.Required,
		CandidateYears:  d.Candidate,
		GapYears:        d.Gap,
		Status:          status,
		Overqualified:   d.Overqualified,
		Underqualified:  d.Underqualified,
		MatchPercentage: d.PercentageMatch,
	}
}

func basicFraud(f types.FraudReport) types.FraudAssessment {
	if !f.FraudFlag {
		return types.FraudAssessment{
			Status:    "clean",
			RiskLevel: types.RiskNone,
			Message:   "No fraud indicators detected",
		}
	}

	var messages []string
	if f.HasRiskFactor(types.RiskFactorEmbeddingSimilarity) {
		messages = append(messages, fmt.Sprintf("High similarity to existing resume (%s)", pct0(f.SimilarityIndex)))
	}
	if f.HasRiskFactor(types.RiskFactorTextDuplication) {
		messages = append(messages, "Potential text duplication detected")
	}
	if f.HasRiskFactor(types.RiskFactorEmailDuplication) {
		messages = append(messages, "Email address already exists in system")
	}
	if f.HasRiskFactor(types.RiskFactorTemplatePlaceholder) {
		messages = append(messages, "Resume contains template placeholders")
	}

	recommendation := "Proceed with caution"
	if f.OverallRisk == types.RiskHigh || f.OverallRisk == types.RiskMedium {
		recommendation = "Manual review required"
	}

	return types.FraudAssessment{
		Status:         "flagged",
		RiskLevel:      f.OverallRisk,
		RiskFactors:    f.RiskFactors,
		Messages:       messages,
		Recommendation: recommendation,
	}
}

func basicRecommendation(d types.Decision, f types.FraudReport) string {
	if f.FraudFlag && f.OverallRisk == types.RiskHigh {
		return "Manual review required before proceeding. Potential fraud detected."
	}
	switch d {
	case types.DecisionFastTrack:
		return "Immediately schedule interview. Excellent candidate match."
	case types.DecisionSelected:
		return "Schedule interview. Strong alignment with requirements."
	case types.DecisionHirePooled:
		return "Add to talent pool for future consideration."
	case types.DecisionRejected:
		return "Not recommended for this position."
	case types.DecisionReviewRequired:
		return "Manual review needed before making final decision."
	default:
		return "Review application manually."
	}
}
