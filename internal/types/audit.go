package types

import (
	"time"

	"github.com/google/uuid"
)

// Audit event types
const (
	EventApplicationEvaluation = "application_evaluation"
	EventFraudDetection        = "fraud_detection"
	EventJobCreation           = "job_creation"
	EventCandidateRegistration = "candidate_registration"
	EventDecisionOverride      = "decision_override"
)

// Audit entity types
const (
	EntityApplication = "application"
	EntityJob         = "job"
	EntityCandidate   = "candidate"
)

// AuditEvent is a structured, append-only record of something the screener did.
type AuditEvent struct {
	ID         uuid.UUID      `json:"id"`
	EventType  string         `json:"event_type"`
	EntityType string         `json:"entity_type"`
	EntityID   uuid.UUID      `json:"entity_id"`
	Actor      string         `json:"actor,omitempty"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	Timestamp  time.Time      `json:"timestamp"`
}

// AuditPeriod bounds an audit report.
type AuditPeriod struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// AuditReport aggregates the audit trail over a period.
type AuditReport struct {
	Period                AuditPeriod      `json:"period"`
	TotalEvents           int              `json:"total_events"`
	EventBreakdown        map[string]int   `json:"event_breakdown"`
	DecisionDistribution  map[Decision]int `json:"decision_distribution"`
	FraudFlags            int              `json:"fraud_flags"`
	ApplicationsProcessed int              `json:"applications_processed"`
	JobsCreated           int              `json:"jobs_created"`
	CandidatesRegistered  int              `json:"candidates_registered"`
	Overrides             int              `json:"overrides"`
}
