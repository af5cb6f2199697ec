package db

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/candidate-screener/internal/types"
)

func newApplication(jobID, candID uuid.UUID, composite float64) *types.Application {
	return &types.Application{
		JobID:       jobID,
		CandidateID: candID,
		Scores:      types.ScoreBundle{Composite: composite},
		Decision:    types.DecisionSelected,
		Status:      types.StatusEvaluated,
	}
}

func TestMemoryStore_JobRoundTrip(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	job := &types.Job{Role: "Backend Engineer", Text: "Go and PostgreSQL", RequiredExperience: 3}
	require.NoError(t, s.CreateJob(ctx, job))
	assert.NotEqual(t, uuid.Nil, job.ID)
	assert.False(t, job.CreatedAt.IsZero())

	got, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Backend Engineer", got.Role)

	got.Role = "mutated"
	again, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", again.Role)
}

func TestMemoryStore_CopiesNestedFields(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	cand := &types.Candidate{
		Name:       "Ada",
		ResumeText: "Go",
		Embedding:  []float32{0.1, 0.2},
		Skills:     &types.SkillSet{Technical: []string{"go"}, Soft: []string{}, All: []string{"go"}, SkillCount: 1},
	}
	require.NoError(t, s.CreateCandidate(ctx, cand))
	cand.Embedding[0] = 9
	cand.Skills.Technical[0] = "cobol"

	got, err := s.GetCandidate(ctx, cand.ID)
	require.NoError(t, err)
	assert.Equal(t, float32(0.1), got.Embedding[0])
	assert.Equal(t, "go", got.Skills.Technical[0])

	got.Embedding[1] = 9
	pool, err := s.ListPool(ctx, uuid.Nil)
	require.NoError(t, err)
	require.Len(t, pool, 1)
	assert.Equal(t, float32(0.2), pool[0].Embedding[1])

	job := &types.Job{Role: "Engineer", Text: "Go", Embedding: []float32{1}, Skills: &types.SkillSet{All: []string{"go"}}}
	require.NoError(t, s.CreateJob(ctx, job))
	job.Skills.All[0] = "cobol"
	storedJob, err := s.GetJob(ctx, job.ID)
	require.NoError(t, err)
	assert.Equal(t, "go", storedJob.Skills.All[0])

	app := newApplication(job.ID, cand.ID, 0.7)
	app.SkillMatch.MissingRequired = []string{"kubernetes"}
	app.Fraud.RiskFactors = []string{types.RiskFactorEmailDuplication}
	require.NoError(t, s.CreateApplication(ctx, app))
	app.SkillMatch.MissingRequired[0] = "mutated"
	app.Fraud.RiskFactors[0] = "mutated"

	storedApp, err := s.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"kubernetes"}, storedApp.SkillMatch.MissingRequired)
	assert.Equal(t, []string{types.RiskFactorEmailDuplication}, storedApp.Fraud.RiskFactors)
}

func TestMemoryStore_GetMissingReturnsNil(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	job, err := s.GetJob(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, job)

	cand, err := s.GetCandidate(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, cand)

	app, err := s.GetApplication(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, app)
}

func TestMemoryStore_DuplicateCandidate(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	c := &types.Candidate{Name: "Ada", Email: "ada@example.com"}
	require.NoError(t, s.CreateCandidate(ctx, c))

	dup := &types.Candidate{ID: c.ID, Name: "Ada again"}
	err := s.CreateCandidate(ctx, dup)
	assert.ErrorIs(t, err, ErrDuplicate)
}

func TestMemoryStore_ListPoolExcludes(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	a := &types.Candidate{Name: "A", Email: "a@example.com", ResumeText: "first"}
	b := &types.Candidate{Name: "B", Email: "b@example.com", ResumeText: "second"}
	c := &types.Candidate{Name: "C", Email: "c@example.com", ResumeText: "third"}
	for _, cand := range []*types.Candidate{a, b, c} {
		require.NoError(t, s.CreateCandidate(ctx, cand))
	}

	pool, err := s.ListPool(ctx, b.ID)
	require.NoError(t, err)
	require.Len(t, pool, 2)
	assert.Equal(t, a.ID, pool[0].CandidateID)
	assert.Equal(t, c.ID, pool[1].CandidateID)
	assert.Equal(t, "third", pool[1].ResumeText)
}

func TestMemoryStore_DuplicateApplication(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	jobID, candID := uuid.New(), uuid.New()

	require.NoError(t, s.CreateApplication(ctx, newApplication(jobID, candID, 0.5)))

	exists, err := s.ApplicationExists(ctx, jobID, candID)
	require.NoError(t, err)
	assert.True(t, exists)

	err = s.CreateApplication(ctx, newApplication(jobID, candID, 0.7))
	assert.ErrorIs(t, err, ErrDuplicate)

	// Same candidate, different job is fine.
	require.NoError(t, s.CreateApplication(ctx, newApplication(uuid.New(), candID, 0.7)))
}

func TestMemoryStore_CreationOrderStrict(t *testing.T) {
	s := NewMemoryStore()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	s.now = func() time.Time { return fixed }
	ctx := context.Background()
	jobID := uuid.New()

	first := newApplication(jobID, uuid.New(), 0.5)
	second := newApplication(jobID, uuid.New(), 0.5)
	require.NoError(t, s.CreateApplication(ctx, first))
	require.NoError(t, s.CreateApplication(ctx, second))

	assert.True(t, first.CreatedAt.Before(second.CreatedAt))
}

func TestMemoryStore_Rerank(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	jobID := uuid.New()

	low := newApplication(jobID, uuid.New(), 0.4)
	high := newApplication(jobID, uuid.New(), 0.9)
	flagged := newApplication(jobID, uuid.New(), 0.95)
	flagged.Fraud.FraudFlag = true
	for _, app := range []*types.Application{low, high, flagged} {
		require.NoError(t, s.CreateApplication(ctx, app))
	}

	ranked, err := s.Rerank(ctx, jobID, func(apps []*types.Application) {
		for _, app := range apps {
			if app.Fraud.FraudFlag {
				app.Rank = nil
				continue
			}
			r := 2
			if app.Scores.Composite > 0.5 {
				r = 1
			}
			app.Rank = &r
		}
	})
	require.NoError(t, err)
	assert.Len(t, ranked, 3)

	listed, err := s.ListApplicationsByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, listed, 3)
	assert.Equal(t, high.ID, listed[0].ID)
	assert.Equal(t, 1, *listed[0].Rank)
	assert.Equal(t, low.ID, listed[1].ID)
	assert.Equal(t, 2, *listed[1].Rank)
	assert.Equal(t, flagged.ID, listed[2].ID)
	assert.Nil(t, listed[2].Rank)
}

func TestMemoryStore_RerankConcurrent(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	jobID := uuid.New()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			app := newApplication(jobID, uuid.New(), float64(i)/20)
			if err := s.CreateApplication(ctx, app); err != nil {
				t.Error(err)
				return
			}
			_, err := s.Rerank(ctx, jobID, func(apps []*types.Application) {
				for j, a := range apps {
					r := j + 1
					a.Rank = &r
				}
			})
			if err != nil {
				t.Error(err)
			}
		}(i)
	}
	wg.Wait()

	apps, err := s.ListApplicationsByJob(ctx, jobID)
	require.NoError(t, err)
	require.Len(t, apps, 20)
	seen := make(map[int]bool)
	for _, app := range apps {
		require.NotNil(t, app.Rank)
		seen[*app.Rank] = true
	}
	assert.Len(t, seen, 20)
}

func TestMemoryStore_UpdateDecision(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	app := newApplication(uuid.New(), uuid.New(), 0.5)
	require.NoError(t, s.CreateApplication(ctx, app))

	err := s.UpdateDecision(ctx, app.ID, types.DecisionRejected, "manual", types.StatusOverridden)
	require.NoError(t, err)

	got, err := s.GetApplication(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DecisionRejected, got.Decision)
	assert.Equal(t, "manual", got.DecisionReason)
	assert.Equal(t, types.StatusOverridden, got.Status)

	err = s.UpdateDecision(ctx, uuid.New(), types.DecisionRejected, "", "")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStore_AuditEvents(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()
	entity := uuid.New()
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

	events := []*types.AuditEvent{
		{EventType: types.EventApplicationEvaluation, EntityType: types.EntityApplication, EntityID: entity, Action: "evaluate", Timestamp: base},
		{EventType: types.EventDecisionOverride, EntityType: types.EntityApplication, EntityID: entity, Action: "override", Timestamp: base.Add(time.Hour)},
		{EventType: types.EventJobCreation, EntityType: types.EntityJob, EntityID: uuid.New(), Action: "create", Timestamp: base.Add(2 * time.Hour)},
	}
	for _, e := range events {
		require.NoError(t, s.InsertAuditEvent(ctx, e))
		assert.NotEqual(t, uuid.Nil, e.ID)
	}

	history, err := s.ListAuditEvents(ctx, types.EntityApplication, entity)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, types.EventDecisionOverride, history[0].EventType)
	assert.Equal(t, types.EventApplicationEvaluation, history[1].EventType)

	window, err := s.ListAuditEventsBetween(ctx, base.Add(30*time.Minute), base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, window, 2)
	assert.Equal(t, types.EventDecisionOverride, window[0].EventType)
	assert.Equal(t, types.EventJobCreation, window[1].EventType)
}

func TestMemoryStore_CanceledContext(t *testing.T) {
	s := NewMemoryStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.CreateJob(ctx, &types.Job{Role: "x"})
	assert.ErrorIs(t, err, context.Canceled)
}
