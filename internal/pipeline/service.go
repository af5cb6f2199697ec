package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/audit"
	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/logging"
	"github.com/jonathan/candidate-screener/internal/ranking"
	"github.com/jonathan/candidate-screener/internal/types"
)

var (
	// ErrDuplicateApplication is returned when the candidate already applied to the job.
	ErrDuplicateApplication = errors.New("application already exists for this job and candidate")
	// ErrJobNotFound is returned when a referenced job does not exist.
	ErrJobNotFound = errors.New("job not found")
	// ErrCandidateNotFound is returned when a referenced candidate does not exist.
	ErrCandidateNotFound = errors.New("candidate not found")
	// ErrApplicationNotFound is returned when a referenced application does not exist.
	ErrApplicationNotFound = errors.New("application not found")
)

// RankingError reports that an application was committed but the job's ranks could not be
// recomputed. The application exists unranked; retry with RecomputeRanks.
type RankingError struct {
	ApplicationID uuid.UUID
	JobID         uuid.UUID
	Cause         error
}

func (e *RankingError) Error() string {
	return fmt.Sprintf("application %s committed but ranking job %s failed: %v", e.ApplicationID, e.JobID, e.Cause)
}

func (e *RankingError) Unwrap() error {
	return e.Cause
}

// Store is the persistence the service needs. db.DB and db.MemoryStore implement it.
type Store interface {
	CreateJob(ctx context.Context, job *types.Job) error
	GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error)
	CreateCandidate(ctx context.Context, c *types.Candidate) error
	GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error)
	ListPool(ctx context.Context, exclude uuid.UUID) ([]types.PoolEntry, error)
	CreateApplication(ctx context.Context, app *types.Application) error
	GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error)
	ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error)
	ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*types.Application, error)
	Rerank(ctx context.Context, jobID uuid.UUID, assign func([]*types.Application)) ([]*types.Application, error)
	UpdateDecision(ctx context.Context, id uuid.UUID, decision types.Decision, reason, status string) error
	InsertAuditEvent(ctx context.Context, event *types.AuditEvent) error
	ListAuditEvents(ctx context.Context, entityType string, entityID uuid.UUID) ([]types.AuditEvent, error)
	ListAuditEventsBetween(ctx context.Context, start, end time.Time) ([]types.AuditEvent, error)
}

// Pipeline stages reported through ProgressEvent
const (
	StagePrepare  = "prepare"
	StageEvaluate = "evaluate"
	StagePersist  = "persist"
	StageRank     = "rank"
)

// ProgressEvent represents a progress update during a submission
type ProgressEvent struct {
	Stage    string `json:"stage"`
	Message  string `json:"message"`
	EntityID string `json:"entity_id,omitempty"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when submission progress occurs
type ProgressCallback func(event ProgressEvent)

const (
	// defaultRegistrationConcurrency bounds RegisterCandidates.
	defaultRegistrationConcurrency = 4
	maxLoggedReason                = 160
)

// Options holds the collaborators of a Service.
type Options struct {
	Store     Store
	Embedder  llm.Embedder
	Evaluator *Evaluator
	Logger    *zap.Logger
	// Audit receives events in addition to the store. Optional.
	Audit       audit.Sink
	Concurrency int
	OnProgress  ProgressCallback
	Now         func() time.Time
}

// Service registers jobs and candidates, evaluates submissions and keeps ranks current.
type Service struct {
	store       Store
	embedder    llm.Embedder
	evaluator   *Evaluator
	logger      *zap.Logger
	recorder    *audit.Recorder
	concurrency int
	onProgress  ProgressCallback
	now         func() time.Time
}

// NewService wires a Service. Store, Embedder and Evaluator are required.
func NewService(opts Options) (*Service, error) {
	if opts.Store == nil {
		return nil, errors.New("store is required")
	}
	if opts.Embedder == nil {
		return nil, errors.New("embedder is required")
	}
	if opts.Evaluator == nil {
		return nil, errors.New("evaluator is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	var sink audit.Sink = audit.NewStoreSink(opts.Store)
	if opts.Audit != nil {
		sink = audit.MultiSink{sink, opts.Audit}
	}

	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = defaultRegistrationConcurrency
	}
	now := opts.Now
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}

	return &Service{
		store:       opts.Store,
		embedder:    opts.Embedder,
		evaluator:   opts.Evaluator,
		logger:      logger,
		recorder:    audit.NewRecorder(sink, logger),
		concurrency: concurrency,
		onProgress:  opts.OnProgress,
		now:         now,
	}, nil
}

func (s *Service) emitProgress(stage, message string, id uuid.UUID, content any) {
	if s.onProgress == nil {
		return
	}
	event := ProgressEvent{Stage: stage, Message: message, Content: content}
	if id != uuid.Nil {
		event.EntityID = id.String()
	}
	s.onProgress(event)
}

// RegisterJob validates in, extracts skills, embeds the description and stores the job.
func (s *Service) RegisterJob(ctx context.Context, in types.JobInput) (*types.Job, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	job := &types.Job{
		Company:            in.Company,
		Role:               in.Role,
		Text:               in.Text,
		RequiredExperience: in.RequiredExperience,
	}
	if err := prepareJob(ctx, s.embedder, job); err != nil {
		return nil, fmt.Errorf("failed to prepare job: %w", err)
	}
	if err := s.store.CreateJob(ctx, job); err != nil {
		return nil, fmt.Errorf("failed to store job: %w", err)
	}

	s.logger.Info("job registered",
		zap.String("job_id", job.ID.String()),
		zap.String("role", job.Role),
		zap.Int("skills", job.Skills.SkillCount),
	)
	s.recorder.Record(ctx, audit.JobCreated(job, s.now()))
	return job, nil
}

// RegisterCandidate validates in, extracts skills, embeds the resume and stores the candidate.
func (s *Service) RegisterCandidate(ctx context.Context, in types.CandidateInput) (*types.Candidate, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	candidate := &types.Candidate{
		Name:       in.Name,
		Email:      in.Email,
		Phone:      in.Phone,
		ResumeText: in.ResumeText,
		Experience: in.Experience,
	}
	if err := prepareCandidate(ctx, s.embedder, candidate); err != nil {
		return nil, fmt.Errorf("failed to prepare candidate: %w", err)
	}
	if err := s.store.CreateCandidate(ctx, candidate); err != nil {
		return nil, fmt.Errorf("failed to store candidate: %w", err)
	}

	s.logger.Info("candidate registered",
		zap.String("candidate_id", candidate.ID.String()),
		zap.Int("skills", candidate.Skills.SkillCount),
	)
	s.recorder.Record(ctx, audit.CandidateRegistered(candidate, s.now()))
	return candidate, nil
}

// RegisterCandidates registers inputs concurrently and returns them in input order.
// The first failure cancels the remaining registrations; candidates already stored stay.
func (s *Service) RegisterCandidates(ctx context.Context, inputs []types.CandidateInput) ([]*types.Candidate, error) {
	out := make([]*types.Candidate, len(inputs))

	g, gCtx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i := range inputs {
		i := i
		g.Go(func() error {
			c, err := s.RegisterCandidate(gCtx, inputs[i])
			if err != nil {
				return fmt.Errorf("candidate %d: %w", i, err)
			}
			out[i] = c
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Submit evaluates candidateID against jobID and stores the application, then recomputes
// the job's ranks. Nothing is written when evaluation fails. When ranking fails after the
// application is stored, the application is returned together with a *RankingError.
func (s *Service) Submit(ctx context.Context, jobID, candidateID uuid.UUID) (*types.Application, error) {
	log := s.logger.With(zap.String("job_id", jobID.String()), zap.String("candidate_id", candidateID.String()))
	log.Info("evaluating application")

	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}
	candidate, err := s.store.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate: %w", err)
	}
	if candidate == nil {
		return nil, fmt.Errorf("%w: %s", ErrCandidateNotFound, candidateID)
	}

	exists, err := s.store.ApplicationExists(ctx, jobID, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to check for existing application: %w", err)
	}
	if exists {
		return nil, ErrDuplicateApplication
	}

	s.emitProgress(StagePrepare, "loaded job and candidate", candidateID, nil)
	if err := s.ensureEmbeddings(ctx, job, candidate); err != nil {
		return nil, err
	}

	pool, err := s.store.ListPool(ctx, candidateID)
	if err != nil {
		return nil, fmt.Errorf("failed to load candidate pool: %w", err)
	}

	ev, err := s.evaluator.Evaluate(job, candidate, pool)
	if err != nil {
		return nil, fmt.Errorf("evaluation failed: %w", err)
	}
	log.Info("scores computed",
		zap.Float64("rfs", ev.Scores.RFS),
		zap.Float64("dcs", ev.Scores.DCS),
		zap.Float64("elc", ev.Scores.ELC),
		zap.Float64("composite", ev.Scores.Composite),
	)
	log.Info("fraud check",
		zap.Bool("fraud_flag", ev.Fraud.FraudFlag),
		zap.String("overall_risk", string(ev.Fraud.OverallRisk)),
		zap.Float64("similarity_index", ev.Fraud.SimilarityIndex),
		zap.Int("pool_size", len(pool)),
	)
	log.Info("decision", zap.String("decision", ev.Decision.String()), zap.String("reason", logging.TruncateForLog(ev.Reason, maxLoggedReason)))
	s.emitProgress(StageEvaluate, fmt.Sprintf("decision: %s", ev.Decision), candidateID, ev.Scores)

	app := ev.Application(jobID, candidateID)
	if err := s.store.CreateApplication(ctx, app); err != nil {
		if errors.Is(err, db.ErrDuplicate) {
			return nil, ErrDuplicateApplication
		}
		return nil, fmt.Errorf("failed to store application: %w", err)
	}
	s.emitProgress(StagePersist, "application stored", app.ID, nil)

	at := s.now()
	s.recorder.Record(ctx, audit.Evaluation(app, at))
	if app.Fraud.FraudFlag {
		s.recorder.Record(ctx, audit.FraudDetection(candidateID, app.Fraud, at))
	}

	ranked, err := s.RecomputeRanks(ctx, jobID)
	if err != nil {
		log.Error("ranking failed after commit", zap.String("application_id", app.ID.String()), zap.Error(err))
		return app, &RankingError{ApplicationID: app.ID, JobID: jobID, Cause: err}
	}
	for _, r := range ranked {
		if r.ID == app.ID {
			app.Rank = r.Rank
			app.UpdatedAt = r.UpdatedAt
			break
		}
	}
	s.emitProgress(StageRank, "ranks updated", app.ID, app.Rank)
	return app, nil
}

// ensureEmbeddings embeds records stored without one. The result is used for this
// evaluation only and not written back.
func (s *Service) ensureEmbeddings(ctx context.Context, job *types.Job, candidate *types.Candidate) error {
	if len(job.Embedding) == 0 {
		set, embedding, err := analyze(ctx, s.embedder, job.Text)
		if err != nil {
			return fmt.Errorf("failed to embed job: %w", err)
		}
		job.Embedding = embedding
		if job.Skills == nil {
			job.Skills = set
		}
	}
	if len(candidate.Embedding) == 0 {
		set, embedding, err := analyze(ctx, s.embedder, candidate.ResumeText)
		if err != nil {
			return fmt.Errorf("failed to embed resume: %w", err)
		}
		candidate.Embedding = embedding
		if candidate.Skills == nil {
			candidate.Skills = set
		}
	}
	return nil
}

// RecomputeRanks reranks every application to jobID. It is idempotent.
func (s *Service) RecomputeRanks(ctx context.Context, jobID uuid.UUID) ([]*types.Application, error) {
	apps, err := s.store.Rerank(ctx, jobID, ranking.AssignRanks)
	if err != nil {
		return nil, fmt.Errorf("failed to rerank job %s: %w", jobID, err)
	}
	s.logger.Info("ranks updated", zap.String("job_id", jobID.String()), zap.Int("applications", len(apps)))
	return ranking.Ranked(apps), nil
}

// OverrideDecision replaces an application's decision by hand. Scores are untouched.
func (s *Service) OverrideDecision(ctx context.Context, req types.OverrideRequest) (*types.Application, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	app, err := s.store.GetApplication(ctx, req.ApplicationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load application: %w", err)
	}
	if app == nil {
		return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, req.ApplicationID)
	}

	original := app.Decision
	reason := fmt.Sprintf("Overridden by %s: %s", req.Actor, req.Reason)
	if err := s.store.UpdateDecision(ctx, app.ID, req.Decision, reason, types.StatusOverridden); err != nil {
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApplicationNotFound, req.ApplicationID)
		}
		return nil, fmt.Errorf("failed to override decision: %w", err)
	}

	s.logger.Info("decision overridden",
		zap.String("application_id", app.ID.String()),
		zap.String("from", original.String()),
		zap.String("to", req.Decision.String()),
		zap.String("actor", req.Actor),
	)
	s.recorder.Record(ctx, audit.DecisionOverride(app.ID, original, req.Decision, req.Actor, req.Reason, s.now()))

	app.Decision = req.Decision
	app.DecisionReason = reason
	app.Status = types.StatusOverridden
	return app, nil
}

// JobReport summarizes every application to jobID.
func (s *Service) JobReport(ctx context.Context, jobID uuid.UUID) (*types.JobReport, error) {
	job, err := s.store.GetJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load job: %w", err)
	}
	if job == nil {
		return nil, fmt.Errorf("%w: %s", ErrJobNotFound, jobID)
	}

	apps, err := s.store.ListApplicationsByJob(ctx, jobID)
	if err != nil {
		return nil, fmt.Errorf("failed to load applications: %w", err)
	}
	return ranking.BuildJobReport(jobID, apps), nil
}

// History returns the audit events for one entity, newest first.
func (s *Service) History(ctx context.Context, entityType string, entityID uuid.UUID) ([]types.AuditEvent, error) {
	events, err := s.store.ListAuditEvents(ctx, entityType, entityID)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	return events, nil
}

// AuditReport aggregates the audit trail between start and end inclusive.
func (s *Service) AuditReport(ctx context.Context, start, end time.Time) (types.AuditReport, error) {
	if end.Before(start) {
		return types.AuditReport{}, &types.ValidationError{Message: "report end is before start"}
	}
	events, err := s.store.ListAuditEventsBetween(ctx, start, end)
	if err != nil {
		return types.AuditReport{}, fmt.Errorf("failed to load audit events: %w", err)
	}
	return audit.Summarize(events, start, end), nil
}
