// Package ranking orders a job's applications by composite score and summarizes them.
package ranking

import (
	"sort"

	"github.com/jonathan/candidate-screener/internal/types"
)

// AssignRanks recomputes ranks for every application to one job in place.
// Fraud-flagged applications get a nil rank; the rest are ranked 1..N by composite
// score descending. Equal scores rank the earlier application first, then the lower ID,
// so the result does not depend on input order. Calling it again yields the same ranks.
func AssignRanks(apps []*types.Application) {
	eligible := make([]*types.Application, 0, len(apps))
	for _, app := range apps {
		if app.Fraud.FraudFlag {
			app.Rank = nil
			continue
		}
		eligible = append(eligible, app)
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return ranksBefore(eligible[i], eligible[j])
	})

	for i, app := range eligible {
		rank := i + 1
		app.Rank = &rank
	}
}

// ranksBefore orders by composite descending, then created_at ascending, then ID.
func ranksBefore(a, b *types.Application) bool {
	if a.Scores.Composite != b.Scores.Composite {
		return a.Scores.Composite > b.Scores.Composite
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID.String() < b.ID.String()
}

// Ranked returns the ranked applications ordered by rank, leaving apps untouched.
func Ranked(apps []*types.Application) []*types.Application {
	out := make([]*types.Application, 0, len(apps))
	for _, app := range apps {
		if app.Rank != nil {
			out = append(out, app)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return *out[i].Rank < *out[j].Rank
	})
	return out
}

// Entry projects an application into a listing row.
func Entry(app *types.Application) types.RankedEntry {
	return types.RankedEntry{
		ApplicationID: app.ID,
		CandidateID:   app.CandidateID,
		Rank:          app.Rank,
		Composite:     app.Scores.Composite,
		Decision:      app.Decision,
		FraudFlag:     app.Fraud.FraudFlag,
	}
}
