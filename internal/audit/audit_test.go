package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/jonathan/candidate-screener/internal/types"
)

var fixedTime = time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

type memoryWriter struct {
	events []types.AuditEvent
	err    error
}

func (w *memoryWriter) InsertAuditEvent(_ context.Context, event *types.AuditEvent) error {
	if w.err != nil {
		return w.err
	}
	w.events = append(w.events, *event)
	return nil
}

func TestEvaluation(t *testing.T) {
	app := &types.Application{
		ID:             uuid.New(),
		JobID:          uuid.New(),
		CandidateID:    uuid.New(),
		Decision:       types.DecisionSelected,
		DecisionReason: "Strong match",
	}

	e := Evaluation(app, fixedTime)

	assert.NotEqual(t, uuid.Nil, e.ID)
	assert.Equal(t, types.EventApplicationEvaluation, e.EventType)
	assert.Equal(t, types.EntityApplication, e.EntityType)
	assert.Equal(t, app.ID, e.EntityID)
	assert.Equal(t, ActionEvaluate, e.Action)
	assert.Equal(t, SystemActor, e.Actor)
	assert.Equal(t, app.JobID.String(), e.Details["job_id"])
	assert.Equal(t, types.DecisionSelected, e.Details["decision"])
	assert.Equal(t, fixedTime, e.Timestamp)
}

func TestDecisionOverride(t *testing.T) {
	id := uuid.New()

	e := DecisionOverride(id, types.DecisionRejected, types.DecisionSelected, "recruiter@acme.io", "strong referral", fixedTime)

	assert.Equal(t, types.EventDecisionOverride, e.EventType)
	assert.Equal(t, "recruiter@acme.io", e.Actor)
	assert.Equal(t, types.DecisionRejected, e.Details["original_decision"])
	assert.Equal(t, types.DecisionSelected, e.Details["new_decision"])
	assert.Equal(t, "2024-03-01T12:00:00Z", e.Details["overridden_at"])
}

func TestRegistrationEvents(t *testing.T) {
	job := JobCreated(&types.Job{ID: uuid.New(), Role: "Backend Engineer"}, fixedTime)
	cand := CandidateRegistered(&types.Candidate{ID: uuid.New(), Email: "a@b.io"}, fixedTime)
	fraud := FraudDetection(uuid.New(), types.FraudReport{FraudFlag: true}, fixedTime)

	assert.Equal(t, types.EntityJob, job.EntityType)
	assert.Equal(t, "Backend Engineer", job.Details["role"])
	assert.Equal(t, types.EventCandidateRegistration, cand.EventType)
	assert.Equal(t, "a@b.io", cand.Details["email"])
	assert.Equal(t, ActionFlag, fraud.Action)
	assert.Equal(t, types.EntityCandidate, fraud.EntityType)
}

func TestMultiSink_CollectsErrors(t *testing.T) {
	good := &memoryWriter{}
	bad := &memoryWriter{err: errors.New("disk full")}
	sink := MultiSink{NewStoreSink(good), NewStoreSink(bad), NewLogSink(nil)}

	err := sink.Record(context.Background(), JobCreated(&types.Job{ID: uuid.New()}, fixedTime))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "disk full")
	assert.Len(t, good.events, 1)
}

func TestLogSink(t *testing.T) {
	core, observed := observer.New(zapcore.InfoLevel)
	sink := NewLogSink(zap.New(core))

	require.NoError(t, sink.Record(context.Background(), JobCreated(&types.Job{ID: uuid.New()}, fixedTime)))

	entries := observed.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "audit event", entries[0].Message)
	assert.Equal(t, types.EventJobCreation, entries[0].ContextMap()["event_type"])
}

func TestRecorder_LogsFailures(t *testing.T) {
	core, observed := observer.New(zapcore.WarnLevel)
	recorder := NewRecorder(NewStoreSink(&memoryWriter{err: errors.New("boom")}), zap.New(core))

	recorder.Record(context.Background(), JobCreated(&types.Job{ID: uuid.New()}, fixedTime))

	require.Equal(t, 1, observed.Len())
	assert.Equal(t, "failed to record audit event", observed.All()[0].Message)
}

func TestRecorder_NilSink(t *testing.T) {
	var nilRecorder *Recorder
	assert.NotPanics(t, func() {
		nilRecorder.Record(context.Background(), types.AuditEvent{})
		NewRecorder(nil, nil).Record(context.Background(), types.AuditEvent{})
	})
}

func TestSummarize(t *testing.T) {
	start := fixedTime.Add(-time.Hour)
	end := fixedTime.Add(time.Hour)

	selected := Evaluation(&types.Application{ID: uuid.New(), Decision: types.DecisionSelected}, fixedTime)
	rejected := Evaluation(&types.Application{ID: uuid.New(), Decision: types.DecisionRejected}, fixedTime)
	rejected.Details["decision"] = "Rejected" // as decoded from storage
	outside := Evaluation(&types.Application{ID: uuid.New(), Decision: types.DecisionSelected}, fixedTime.Add(2*time.Hour))

	events := []types.AuditEvent{
		selected,
		rejected,
		outside,
		FraudDetection(uuid.New(), types.FraudReport{}, fixedTime),
		JobCreated(&types.Job{ID: uuid.New()}, fixedTime),
		CandidateRegistered(&types.Candidate{ID: uuid.New()}, fixedTime),
		DecisionOverride(uuid.New(), types.DecisionRejected, types.DecisionSelected, "hr", "x", fixedTime),
	}

	report := Summarize(events, start, end)

	assert.Equal(t, 6, report.TotalEvents)
	assert.Equal(t, 2, report.ApplicationsProcessed)
	assert.Equal(t, 1, report.FraudFlags)
	assert.Equal(t, 1, report.JobsCreated)
	assert.Equal(t, 1, report.CandidatesRegistered)
	assert.Equal(t, 1, report.Overrides)
	assert.Equal(t, map[types.Decision]int{types.DecisionSelected: 1, types.DecisionRejected: 1}, report.DecisionDistribution)
}
