package explain

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-screener/internal/types"
)

const maxKeyFactors = 5

// XAI builds the factor-level explanation. gap may be nil.
func XAI(in Input, gap *types.SkillGapAnalysis) *types.XAIExplanation {
	a := assess(in)
	return &types.XAIExplanation{
		Decision:            in.Decision,
		Confidence:          a.confidence,
		ConfidenceLevel:     xaiConfidence(a.confidence, in.Scores.Composite, in.Fraud.FraudFlag),
		KeyFactors:          xaiKeyFactors(in),
		Strengths:           nonNil(a.strengths),
		AreasForImprovement: nonNil(a.weaknesses),
		ScoreBreakdown:      xaiScoreBreakdown(in.Scores),
		SkillAnalysis:       xaiSkillAnalysis(in.Match, gap),
		ExperienceAnalysis:  xaiExperience(in.Experience),
		FraudCheck:          xaiFraudCheck(in.Fraud),
		DecisionRationale:   xaiRationale(in),
		Recommendations:     nonNil(xaiRecommendations(in.Decision, in.Match)),
	}
}

// xaiConfidence labels the shared confidence level with what drove the outcome.
func xaiConfidence(c types.Confidence, composite float64, fraud bool) string {
	level := strings.ToUpper(c.Level[:1]) + c.Level[1:]
	switch {
	case fraud:
		return level + " - Fraud Detected"
	case composite >= 0.85:
		return level + " - Strong Match"
	case composite >= 0.70:
		return level + " - Good Match"
	case composite >= 0.50:
		return level + " - Moderate Match"
	default:
		return level + " - Clear Mismatch"
	}
}

func xaiKeyFactors(in Input) []types.KeyFactor {
	var factors []types.KeyFactor
	w := weightsOf(in.Scores)

	if in.Fraud.FraudFlag {
		factors = append(factors, types.KeyFactor{
			Factor:      "Fraud Detection",
			Impact:      "Critical",
			Description: fmt.Sprintf("Detected %s similarity with existing applications", pct1(in.Fraud.SimilarityIndex)),
			Weight:      "Automatic Disqualification",
		})
	}

	switch skill := in.Match.MatchScore; {
	case skill >= 0.8:
		factors = append(factors, types.KeyFactor{
			Factor:      "Excellent Skill Match",
			Impact:      "Very Positive",
			Description: fmt.Sprintf("%s of required skills present", pct1(skill)),
			Weight:      shareLabel(w.DCS),
		})
	case skill < 0.5:
		factors = append(factors, types.KeyFactor{
			Factor:      "Skill Gap",
			Impact:      "Negative",
			Description: fmt.Sprintf("Only %s of required skills present", pct1(skill)),
			Weight:      shareLabel(w.DCS),
		})
	}

	exp := in.Experience
	yearsText := fmt.Sprintf("Candidate has %d years (requires %d)", exp.Candidate, exp.Required)
	switch ratio := exp.PercentageMatch / 100; {
	case ratio >= 1.0:
		factors = append(factors, types.KeyFactor{
			Factor:      "Experience Match",
			Impact:      "Positive",
			Description: yearsText,
			Weight:      shareLabel(w.ELC),
		})
	case ratio < 0.75:
		factors = append(factors, types.KeyFactor{
			Factor:      "Experience Gap",
			Impact:      "Negative",
			Description: yearsText,
			Weight:      shareLabel(w.ELC),
		})
	}

	if in.Scores.RFS >= 0.8 {
		factors = append(factors, types.KeyFactor{
			Factor:      "Strong Semantic Alignment",
			Impact:      "Very Positive",
			Description: fmt.Sprintf("Resume and JD have %s semantic similarity", pct1(in.Scores.RFS)),
			Weight:      shareLabel(w.RFS),
		})
	}

	if len(factors) > maxKeyFactors {
		factors = factors[:maxKeyFactors]
	}
	if factors == nil {
		return []types.KeyFactor{}
	}
	return factors
}

func interpretation(value float64, weight string, contribution float64) types.ScoreInterpretation {
	return types.ScoreInterpretation{
		Value:          value,
		Percentage:     pct1(value),
		Weight:         weight,
		Contribution:   contribution,
		Interpretation: interpretScore(value),
	}
}

func weightLabel(w float64) string {
	return pct0(w)
}

func shareLabel(w float64) string {
	return weightLabel(w) + " of total score"
}

func xaiScoreBreakdown(s types.ScoreBundle) types.XAIScoreBreakdown {
	w := weightsOf(s)
	return types.XAIScoreBreakdown{
		Composite:               interpretation(s.Composite, "", 0),
		RoleFit:                 interpretation(s.RFS, weightLabel(w.RFS), s.Breakdown.RFSContribution),
		DomainCompetency:        interpretation(s.DCS, weightLabel(w.DCS), s.Breakdown.DCSContribution),
		ExperienceCompatibility: interpretation(s.ELC, weightLabel(w.ELC), s.Breakdown.ELCContribution),
	}
}

func xaiSkillAnalysis(m types.SkillMatch, gap *types.SkillGapAnalysis) types.XAISkillAnalysis {
	return types.XAISkillAnalysis{
		OverallMatch: pct1(m.MatchScore),
		Matched: types.SkillGroup{
			Count:  len(m.MatchedSkills),
			Skills: nonNil(m.MatchedSkills),
			Impact: "These skills directly align with job requirements",
		},
		Missing: types.SkillGroup{
			Count:       len(m.MissingSkills),
			Skills:      nonNil(m.MissingSkills),
			Impact:      "Learning these skills would improve candidacy",
			Criticality: skillCriticality(len(m.MissingSkills), m.JobSkillCount),
		},
		Additional: types.SkillGroup{
			Count:  len(m.CandidateExtras),
			Skills: nonNil(top(m.CandidateExtras, maxListedSkills)),
			Impact: "Bonus skills that add value beyond requirements",
		},
		GapDetails: gap,
	}
}

// skillCriticality grades how much of the job's skill list is missing.
func skillCriticality(missing, jobSkills int) string {
	if missing == 0 {
		return "None - All required skills present"
	}
	ratio := 1.0
	if jobSkills > 0 {
		ratio = float64(missing) / float64(jobSkills)
	}
	switch {
	case ratio >= 0.7:
		return "High - Most required skills are missing"
	case ratio >= 0.4:
		return "Medium - Several key skills are missing"
	default:
		return "Low - Only some skills are missing"
	}
}

func xaiExperience(d types.ExperienceDetail) types.ExperienceAnalysis {
	var status, text string
	switch bandFor(d) {
	case experienceMeets:
		status = "Meets Requirement"
		text = fmt.Sprintf("Candidate has %d years, exceeding the %d year requirement", d.Candidate, d.Required)
	case experienceNear:
		status = "Nearly Meets Requirement"
		text = fmt.Sprintf("Candidate has %d years, approaching the %d year requirement", d.Candidate, d.Required)
	default:
		status = "Below Requirement"
		text = fmt.Sprintf("Candidate has %d years, %d years short of the %d year requirement", d.Candidate, abs(d.Gap), d.Required)
	}
	return types.ExperienceAnalysis{
		RequiredYears:   d.Required,
		CandidateYears:  d.Candidate,
		GapYears:        d.Gap,
		Status:          status,
		Explanation:     text,
		Overqualified:   d.Overqualified,
		Underqualified:  d.Underqualified,
		MatchPercentage: d.PercentageMatch,
	}
}

func xaiFraudCheck(f types.FraudReport) types.XAIFraudCheck {
	check := types.XAIFraudCheck{
		FraudDetected:        f.FraudFlag,
		SimilarityToExisting: pct1(f.SimilarityIndex),
		Status:               "Clean - No fraud detected",
		ChecksPerformed: []string{
			"Resume duplication analysis",
			"Email pattern analysis",
			"Content similarity check",
		},
		Explanation: "Application passed all fraud detection checks",
	}
	if f.FraudFlag {
		check.Status = "FRAUD DETECTED - Application Flagged"
		check.Explanation = "Embedding similarity above the configured threshold"
		if len(f.RiskFactors) > 0 {
			check.Explanation = "Risk factors: " + strings.Join(f.RiskFactors, ", ")
		}
	}
	return check
}

func xaiRationale(in Input) string {
	composite := pct1(in.Scores.Composite)
	skill := pct1(in.Match.MatchScore)

	if in.Fraud.FraudFlag {
		return fmt.Sprintf("Application FLAGGED by fraud detection. The system identified %s similarity with existing applications, "+
			"indicating potential resume duplication or fraudulent submission.", pct1(in.Fraud.SimilarityIndex))
	}

	switch in.Decision {
	case types.DecisionFastTrack:
		return fmt.Sprintf("Candidate FAST-TRACKED for immediate interview. Exceptional performance with %s overall match, "+
			"%s skill alignment, and strong experience fit. This candidate exceeds all requirements and represents a top-tier match.", composite, skill)
	case types.DecisionSelected:
		return fmt.Sprintf("Candidate SELECTED for interview round. Strong performance with %s overall match. "+
			"The candidate demonstrates %s skill alignment and meets the core requirements for this role.", composite, skill)
	case types.DecisionHirePooled:
		return fmt.Sprintf("Candidate placed in TALENT POOL for future consideration. Shows potential with %s overall match. "+
			"While not an immediate fit, the candidate has transferable skills and could be valuable for future opportunities.", composite)
	case types.DecisionReviewRequired:
		return "MANUAL REVIEW REQUIRED. The candidate shows mixed signals - some areas of strength but also notable gaps. " +
			"Human review recommended to make final decision."
	default:
		return fmt.Sprintf("Candidate NOT SELECTED for this position. With %s overall match and %s skill alignment, "+
			"the candidate does not meet the minimum requirements for this role at this time.", composite, skill)
	}
}

func xaiRecommendations(d types.Decision, m types.SkillMatch) []string {
	switch d {
	case types.DecisionFastTrack, types.DecisionSelected:
		return []string{
			"Proceed with scheduling interview",
			"Prepare technical assessment based on matched skills",
			"Verify experience claims during interview",
		}
	case types.DecisionHirePooled:
		recs := []string{
			"Keep candidate in talent pool for 6 months",
			"Consider for related roles or future openings",
		}
		if len(m.MissingSkills) > 0 {
			recs = append(recs, fmt.Sprintf("If candidate learns %s, reconsider application", joinTop(m.MissingSkills, maxNamedSkills)))
		}
		return recs
	case types.DecisionRejected:
		recs := []string{
			"Send polite rejection email",
			"Consider candidate for other open positions if any align better",
		}
		if len(m.MissingSkills) > 0 {
			recs = append(recs, "Candidate could reapply after gaining: "+joinTop(m.MissingSkills, maxNamedSkills))
		}
		return recs
	default:
		return nil
	}
}
