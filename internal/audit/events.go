// Package audit builds the append-only audit trail of screening activity and delivers it
// to one or more sinks.
package audit

import (
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-screener/internal/types"
)

// Actions
const (
	ActionEvaluate = "evaluate"
	ActionCreate   = "create"
	ActionFlag     = "flag"
	ActionOverride = "override"
)

// SystemActor marks events the screener generated on its own.
const SystemActor = "system"

func newEvent(eventType, entityType string, entityID uuid.UUID, action, actor string, details map[string]any, at time.Time) types.AuditEvent {
	return types.AuditEvent{
		ID:         uuid.New(),
		EventType:  eventType,
		EntityType: entityType,
		EntityID:   entityID,
		Actor:      actor,
		Action:     action,
		Details:    details,
		Timestamp:  at.UTC(),
	}
}

// Evaluation records a completed application evaluation with its full result.
func Evaluation(app *types.Application, at time.Time) types.AuditEvent {
	return newEvent(types.EventApplicationEvaluation, types.EntityApplication, app.ID, ActionEvaluate, SystemActor, map[string]any{
		"job_id":          app.JobID.String(),
		"candidate_id":    app.CandidateID.String(),
		"scores":          app.Scores,
		"fraud_analysis":  app.Fraud,
		"decision":        app.Decision,
		"decision_reason": app.DecisionReason,
		"explanation":     app.Evidence,
	}, at)
}

// FraudDetection records a fraud flag raised against a candidate.
func FraudDetection(candidateID uuid.UUID, report types.FraudReport, at time.Time) types.AuditEvent {
	return newEvent(types.EventFraudDetection, types.EntityCandidate, candidateID, ActionFlag, SystemActor, map[string]any{
		"fraud_analysis": report,
		"flagged_at":     at.UTC().Format(time.RFC3339),
	}, at)
}

// JobCreated records a job registration.
func JobCreated(job *types.Job, at time.Time) types.AuditEvent {
	return newEvent(types.EventJobCreation, types.EntityJob, job.ID, ActionCreate, SystemActor, map[string]any{
		"company":    job.Company,
		"role":       job.Role,
		"created_at": at.UTC().Format(time.RFC3339),
	}, at)
}

// CandidateRegistered records a candidate registration.
func CandidateRegistered(c *types.Candidate, at time.Time) types.AuditEvent {
	return newEvent(types.EventCandidateRegistration, types.EntityCandidate, c.ID, ActionCreate, SystemActor, map[string]any{
		"email":         c.Email,
		"registered_at": at.UTC().Format(time.RFC3339),
	}, at)
}

// DecisionOverride records a human replacing an automated decision.
func DecisionOverride(applicationID uuid.UUID, original, updated types.Decision, actor, reason string, at time.Time) types.AuditEvent {
	return newEvent(types.EventDecisionOverride, types.EntityApplication, applicationID, ActionOverride, actor, map[string]any{
		"original_decision": original,
		"new_decision":      updated,
		"reason":            reason,
		"overridden_at":     at.UTC().Format(time.RFC3339),
	}, at)
}
