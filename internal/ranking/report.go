package ranking

import (
	"github.com/google/uuid"
	"github.com/jonathan/candidate-screener/internal/numeric"
	"github.com/jonathan/candidate-screener/internal/types"
)

// topCandidatesLimit caps the top-candidate list in a job report.
const topCandidatesLimit = 5

// BuildJobReport summarizes a job's applications. Ranks are read as stored; call
// AssignRanks first if they may be stale.
func BuildJobReport(jobID uuid.UUID, apps []*types.Application) *types.JobReport {
	report := &types.JobReport{
		JobID:             jobID,
		TotalApplications: len(apps),
		DecisionBreakdown: make(map[types.Decision]int),
		TopCandidates:     []types.RankedEntry{},
	}
	if len(apps) == 0 {
		return report
	}

	var sumComposite, sumRFS, sumDCS, sumELC float64
	fraudCount := 0
	for _, app := range apps {
		report.DecisionBreakdown[app.Decision]++
		sumComposite += app.Scores.Composite
		sumRFS += app.Scores.RFS
		sumDCS += app.Scores.DCS
		sumELC += app.Scores.ELC
		if app.Fraud.FraudFlag {
			fraudCount++
		}
	}

	n := float64(len(apps))
	report.AverageScores = types.AverageScores{
		Composite: numeric.Round4(sumComposite / n),
		RFS:       numeric.Round4(sumRFS / n),
		DCS:       numeric.Round4(sumDCS / n),
		ELC:       numeric.Round4(sumELC / n),
	}
	report.FraudStatistics = types.FraudStatistics{
		Total:      fraudCount,
		Percentage: numeric.Percent(fraudCount, len(apps), 0),
	}

	ranked := Ranked(apps)
	for i, app := range ranked {
		if i >= topCandidatesLimit {
			break
		}
		report.TopCandidates = append(report.TopCandidates, Entry(app))
	}
	if len(report.TopCandidates) > 0 {
		top := report.TopCandidates[0]
		report.TopCandidate = &top
	}

	return report
}
