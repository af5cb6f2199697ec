package audit

import (
	"time"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Summarize aggregates the events whose timestamp falls within [start, end].
func Summarize(events []types.AuditEvent, start, end time.Time) types.AuditReport {
	report := types.AuditReport{
		Period:               types.AuditPeriod{Start: start.UTC(), End: end.UTC()},
		EventBreakdown:       map[string]int{},
		DecisionDistribution: map[types.Decision]int{},
	}

	for _, e := range events {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		report.TotalEvents++
		report.EventBreakdown[e.EventType]++
		if e.EventType == types.EventApplicationEvaluation {
			report.DecisionDistribution[decisionOf(e.Details, "decision")]++
		}
	}

	report.FraudFlags = report.EventBreakdown[types.EventFraudDetection]
	report.ApplicationsProcessed = report.EventBreakdown[types.EventApplicationEvaluation]
	report.JobsCreated = report.EventBreakdown[types.EventJobCreation]
	report.CandidatesRegistered = report.EventBreakdown[types.EventCandidateRegistration]
	report.Overrides = report.EventBreakdown[types.EventDecisionOverride]
	return report
}

// decisionOf reads a decision from event details, which hold a types.Decision when built
// in process and a string once decoded from storage.
func decisionOf(details map[string]any, key string) types.Decision {
	switch v := details[key].(type) {
	case types.Decision:
		return v
	case string:
		return types.Decision(v)
	default:
		return "unknown"
	}
}
