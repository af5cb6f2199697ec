package db

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-screener/internal/types"
)

// MemoryStore keeps every record in process memory. It mirrors DB: getters return
// (nil, nil) for unknown IDs, duplicates return ErrDuplicate and updates to missing rows
// return ErrNotFound. Records are copied in and out; slices and pointers are cloned too,
// except application evidence, which is written once and shared read-only.
type MemoryStore struct {
	mu           sync.RWMutex
	jobs         map[uuid.UUID]*types.Job
	candidates   map[uuid.UUID]*types.Candidate
	candidateSeq []uuid.UUID
	applications map[uuid.UUID]*types.Application
	appsByJob    map[uuid.UUID][]uuid.UUID
	events       []types.AuditEvent
	lastStamp    time.Time
	now          func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		jobs:         make(map[uuid.UUID]*types.Job),
		candidates:   make(map[uuid.UUID]*types.Candidate),
		applications: make(map[uuid.UUID]*types.Application),
		appsByJob:    make(map[uuid.UUID][]uuid.UUID),
		now:          func() time.Time { return time.Now().UTC() },
	}
}

// stamp returns a strictly increasing timestamp so creation order is total. Callers hold mu.
func (s *MemoryStore) stamp() time.Time {
	t := s.now()
	if !t.After(s.lastStamp) {
		t = s.lastStamp.Add(time.Microsecond)
	}
	s.lastStamp = t
	return t
}

func (s *MemoryStore) CreateJob(ctx context.Context, job *types.Job) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}
	if _, ok := s.jobs[job.ID]; ok {
		return fmt.Errorf("failed to create job %s: %w", job.ID, ErrDuplicate)
	}
	job.CreatedAt = s.stamp()
	s.jobs[job.ID] = cloneJob(job)
	return nil
}

func (s *MemoryStore) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	job, ok := s.jobs[id]
	if !ok {
		return nil, nil
	}
	return cloneJob(job), nil
}

func (s *MemoryStore) CreateCandidate(ctx context.Context, cand *types.Candidate) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if cand.ID == uuid.Nil {
		cand.ID = uuid.New()
	}
	if _, ok := s.candidates[cand.ID]; ok {
		return fmt.Errorf("failed to create candidate %s: %w", cand.ID, ErrDuplicate)
	}
	cand.CreatedAt = s.stamp()
	s.candidates[cand.ID] = cloneCandidate(cand)
	s.candidateSeq = append(s.candidateSeq, cand.ID)
	return nil
}

func (s *MemoryStore) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	cand, ok := s.candidates[id]
	if !ok {
		return nil, nil
	}
	return cloneCandidate(cand), nil
}

// ListPool returns every candidate except exclude in registration order.
func (s *MemoryStore) ListPool(ctx context.Context, exclude uuid.UUID) ([]types.PoolEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	pool := make([]types.PoolEntry, 0, len(s.candidateSeq))
	for _, id := range s.candidateSeq {
		if id == exclude {
			continue
		}
		entry := types.PoolEntryFor(s.candidates[id])
		entry.Embedding = slices.Clone(entry.Embedding)
		pool = append(pool, entry)
	}
	return pool, nil
}

func (s *MemoryStore) CreateApplication(ctx context.Context, app *types.Application) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}
	if _, ok := s.applications[app.ID]; ok {
		return fmt.Errorf("failed to create application %s: %w", app.ID, ErrDuplicate)
	}
	for _, id := range s.appsByJob[app.JobID] {
		if s.applications[id].CandidateID == app.CandidateID {
			return fmt.Errorf("failed to create application for job %s: %w", app.JobID, ErrDuplicate)
		}
	}

	app.CreatedAt = s.stamp()
	app.UpdatedAt = app.CreatedAt
	s.applications[app.ID] = cloneApplication(app)
	s.appsByJob[app.JobID] = append(s.appsByJob[app.JobID], app.ID)
	return nil
}

func (s *MemoryStore) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	app, ok := s.applications[id]
	if !ok {
		return nil, nil
	}
	return cloneApplication(app), nil
}

func (s *MemoryStore) ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, id := range s.appsByJob[jobID] {
		if s.applications[id].CandidateID == candidateID {
			return true, nil
		}
	}
	return false, nil
}

// ListApplicationsByJob orders like DB: ranked by rank, then unranked by creation.
func (s *MemoryStore) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*types.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	apps := s.jobApplications(jobID)
	sort.SliceStable(apps, func(i, j int) bool {
		a, b := apps[i], apps[j]
		switch {
		case a.Rank != nil && b.Rank != nil:
			return *a.Rank < *b.Rank
		case a.Rank != nil:
			return true
		case b.Rank != nil:
			return false
		}
		return false
	})
	return apps, nil
}

// Rerank holds the write lock across assign so concurrent reranks serialize.
func (s *MemoryStore) Rerank(ctx context.Context, jobID uuid.UUID, assign func([]*types.Application)) ([]*types.Application, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	apps := s.jobApplications(jobID)
	assign(apps)

	now := s.stamp()
	for _, app := range apps {
		stored := s.applications[app.ID]
		stored.Rank = cloneRank(app.Rank)
		stored.UpdatedAt = now
		app.UpdatedAt = now
	}
	return apps, nil
}

func (s *MemoryStore) UpdateDecision(ctx context.Context, id uuid.UUID, decision types.Decision, reason, status string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	app, ok := s.applications[id]
	if !ok {
		return fmt.Errorf("failed to update decision for application %s: %w", id, ErrNotFound)
	}
	app.Decision = decision
	app.DecisionReason = reason
	app.Status = status
	app.UpdatedAt = s.stamp()
	return nil
}

func (s *MemoryStore) InsertAuditEvent(ctx context.Context, event *types.AuditEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = s.now()
	}
	s.events = append(s.events, *event)
	return nil
}

// ListAuditEvents returns the events for one entity, newest first.
func (s *MemoryStore) ListAuditEvents(ctx context.Context, entityType string, entityID uuid.UUID) ([]types.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.AuditEvent
	for i := len(s.events) - 1; i >= 0; i-- {
		e := s.events[i]
		if e.EntityType == entityType && e.EntityID == entityID {
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	return out, nil
}

// ListAuditEventsBetween returns events with start <= timestamp <= end, oldest first.
func (s *MemoryStore) ListAuditEventsBetween(ctx context.Context, start, end time.Time) ([]types.AuditEvent, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []types.AuditEvent
	for _, e := range s.events {
		if e.Timestamp.Before(start) || e.Timestamp.After(end) {
			continue
		}
		out = append(out, e)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})
	return out, nil
}

// jobApplications copies a job's applications in creation order. Callers hold mu.
func (s *MemoryStore) jobApplications(jobID uuid.UUID) []*types.Application {
	ids := s.appsByJob[jobID]
	apps := make([]*types.Application, 0, len(ids))
	for _, id := range ids {
		apps = append(apps, cloneApplication(s.applications[id]))
	}
	return apps
}

func cloneJob(job *types.Job) *types.Job {
	c := *job
	c.Embedding = slices.Clone(job.Embedding)
	c.Skills = cloneSkillSet(job.Skills)
	return &c
}

func cloneCandidate(cand *types.Candidate) *types.Candidate {
	c := *cand
	c.Embedding = slices.Clone(cand.Embedding)
	c.Skills = cloneSkillSet(cand.Skills)
	return &c
}

func cloneSkillSet(set *types.SkillSet) *types.SkillSet {
	if set == nil {
		return nil
	}
	c := *set
	c.Technical = slices.Clone(set.Technical)
	c.Soft = slices.Clone(set.Soft)
	c.All = slices.Clone(set.All)
	return &c
}

func cloneApplication(app *types.Application) *types.Application {
	c := *app
	c.Rank = cloneRank(app.Rank)

	m := &c.SkillMatch
	m.MatchedRequired = slices.Clone(m.MatchedRequired)
	m.MissingRequired = slices.Clone(m.MissingRequired)
	m.MatchedNiceToHave = slices.Clone(m.MatchedNiceToHave)
	m.MissingNiceToHave = slices.Clone(m.MissingNiceToHave)
	m.MatchedSkills = slices.Clone(m.MatchedSkills)
	m.MissingSkills = slices.Clone(m.MissingSkills)
	m.CandidateExtras = slices.Clone(m.CandidateExtras)
	c.Fraud.RiskFactors = slices.Clone(app.Fraud.RiskFactors)
	return &c
}

func cloneRank(rank *int) *int {
	if rank == nil {
		return nil
	}
	r := *rank
	return &r
}
