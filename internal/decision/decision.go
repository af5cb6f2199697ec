// Package decision maps an evaluation's scores and fraud report to a hiring decision and reason.
package decision

import (
	"fmt"
	"strings"

	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

// Cascade thresholds
const (
	criticalSimilarity = 0.92
	moderateSimilarity = 0.85
	severeExperience   = 0.3

	fastTrackComposite = 0.85
	fastTrackRequired  = 0.85
	reviewComposite    = 0.70

	weakScore       = 0.50
	potentialScore  = 0.40
	strongStrength  = 0.85
	experienceFit   = 0.8
	maxListedGaps   = 5
	maxNamedMissing = 3
)

// band is one (composite, required) threshold pair; either pair of a tier qualifies.
type band struct {
	composite float64
	required  float64
}

var (
	selectedBands = []band{{0.65, 0.75}, {0.75, 0.65}}
	pooledBands   = []band{{0.50, 0.60}, {0.55, 0.50}}
)

func inBand(bands []band, composite, required float64) bool {
	for _, b := range bands {
		if composite >= b.composite && required >= b.required {
			return true
		}
	}
	return false
}

// Input is everything the cascade reads.
type Input struct {
	Scores     types.ScoreBundle
	Fraud      types.FraudReport
	Match      types.SkillMatch
	Experience types.ExperienceDetail
}

// Decide runs the rule cascade top to bottom; the first matching rule wins and the
// final rule always matches, so every input yields exactly one decision.
func Decide(in Input) (types.Decision, string) {
	s := in.Scores
	f := in.Fraud
	required := in.Match.RequiredMatchScore
	matched := len(in.Match.MatchedRequired)
	missing := len(in.Match.MissingRequired)

	if f.FraudFlag && f.SimilarityIndex > criticalSimilarity {
		return types.DecisionReviewRequired, "Critical: High resume similarity detected (>92%). Manual review required."
	}

	if f.OverallRisk == types.RiskHigh {
		return types.DecisionReviewRequired, fmt.Sprintf("Fraud indicators: %s. Requires verification.", strings.Join(f.RiskFactors, ", "))
	}

	if s.ELC < severeExperience && in.Experience.Gap > 0 {
		return types.DecisionRejected, fmt.Sprintf("Insufficient experience: %d years below requirement.", in.Experience.Gap)
	}

	if f.FraudFlag && f.SimilarityIndex > moderateSimilarity && s.Composite >= reviewComposite {
		return types.DecisionReviewRequired, fmt.Sprintf("Good qualifications but moderate similarity detected (%s). Verify uniqueness.", numeric.FormatPercent(f.SimilarityIndex, 0))
	}

	if s.Composite >= fastTrackComposite && required >= fastTrackRequired {
		var strengths []string
		if s.RFS >= strongStrength {
			strengths = append(strengths, "excellent role fit")
		}
		if required >= strongStrength {
			strengths = append(strengths, "strong match on required skills")
		}
		if s.ELC >= experienceFit {
			strengths = append(strengths, "appropriate experience")
		}
		summary := "all metrics exceed threshold"
		if len(strengths) > 0 {
			summary = strings.Join(strengths, ", ")
		}
		return types.DecisionFastTrack, fmt.Sprintf("Outstanding candidate: %s. Matches %d required skills.", summary, matched)
	}

	if inBand(selectedBands, s.Composite, required) {
		if missing <= 2 {
			return types.DecisionSelected, fmt.Sprintf("Strong alignment (%s). Matches %d required skills, missing only %d.", numeric.FormatPercent(s.Composite, 0), matched, missing)
		}
		return types.DecisionSelected, fmt.Sprintf("Good alignment (%s). Matches %d/%d required skills.", numeric.FormatPercent(s.Composite, 0), matched, matched+missing)
	}

	if inBand(pooledBands, s.Composite, required) {
		if f.FraudFlag {
			return types.DecisionReviewRequired, "Moderate fit but fraud flag raised. Review before pooling."
		}
		if required >= 0.60 {
			return types.DecisionHirePooled, fmt.Sprintf("Moderate potential (%s). Has %d required skills. Consider for future roles or with training.", numeric.FormatPercent(s.Composite, 0), matched)
		}
		return types.DecisionHirePooled, fmt.Sprintf("Acceptable foundation. Matches %d required skills. Could grow into role with mentorship.", matched)
	}

	return types.DecisionRejected, rejectionReason(in)
}

// rejectionReason names each weak dimension in priority order: role fit, required skills, experience.
func rejectionReason(in Input) string {
	s := in.Scores
	required := in.Match.RequiredMatchScore
	missing := in.Match.MissingRequired

	var issues []string
	if s.RFS < weakScore {
		issues = append(issues, fmt.Sprintf("poor role fit (%s)", numeric.FormatPercent(s.RFS, 0)))
	}

	if required < weakScore {
		if len(missing) > 0 {
			issues = append(issues, fmt.Sprintf("missing %d required skills (%s match)", len(missing), numeric.FormatPercent(required, 0)))
		} else {
			issues = append(issues, fmt.Sprintf("insufficient required skills match (%s)", numeric.FormatPercent(required, 0)))
		}
	} else if s.DCS < weakScore {
		issues = append(issues, "limited technical breadth (meets core requirements but overall skills low)")
	}

	if s.ELC < weakScore {
		if gap := in.Experience.Gap; gap > 0 {
			issues = append(issues, fmt.Sprintf("insufficient experience (%d years below requirement)", gap))
		} else {
			issues = append(issues, "experience level concerns")
		}
	}

	if len(issues) == 0 {
		return fmt.Sprintf("Overall score (%s) below minimum threshold. Significant gaps in multiple areas.", numeric.FormatPercent(s.Composite, 0))
	}

	reason := fmt.Sprintf("Not selected: %s.", strings.Join(issues, ", "))
	switch {
	case len(missing) > 0 && len(missing) <= maxListedGaps:
		top := missing
		if len(top) > maxNamedMissing {
			top = top[:maxNamedMissing]
		}
		reason += fmt.Sprintf(" Focus on developing: %s.", strings.Join(top, ", "))
	case required >= potentialScore:
		reason += " Shows potential - consider reapplying after gaining more experience."
	}
	return reason
}
