package pipeline

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/skills"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ScreenRequest is a one-off evaluation that is never persisted.
type ScreenRequest struct {
	JobText             string
	ResumeText          string
	RequiredExperience  int
	CandidateExperience int
	Email               string
	Pool                []types.PoolEntry
}

// Screen prepares both texts concurrently and evaluates them. Any embedding failure
// aborts the whole screen.
func Screen(ctx context.Context, embedder llm.Embedder, evaluator *Evaluator, req ScreenRequest) (*Evaluation, error) {
	if req.RequiredExperience < 0 || req.CandidateExperience < 0 {
		return nil, &types.ValidationError{Message: "experience years must not be negative"}
	}

	job := &types.Job{Text: req.JobText, RequiredExperience: req.RequiredExperience}
	candidate := &types.Candidate{ResumeText: req.ResumeText, Experience: req.CandidateExperience, Email: req.Email}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := prepareJob(gCtx, embedder, job); err != nil {
			return fmt.Errorf("job preparation failed: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := prepareCandidate(gCtx, embedder, candidate); err != nil {
			return fmt.Errorf("resume preparation failed: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return evaluator.Evaluate(job, candidate, req.Pool)
}

// prepareJob cleans the job text, extracts its skills and embeds it.
func prepareJob(ctx context.Context, embedder llm.Embedder, job *types.Job) error {
	job.Text = ingestion.CleanText(job.Text)
	set, embedding, err := analyze(ctx, embedder, job.Text)
	if err != nil {
		return err
	}
	job.Skills = set
	job.Embedding = embedding
	return nil
}

// prepareCandidate cleans the resume text, extracts its skills and embeds it.
func prepareCandidate(ctx context.Context, embedder llm.Embedder, candidate *types.Candidate) error {
	candidate.ResumeText = ingestion.CleanText(candidate.ResumeText)
	set, embedding, err := analyze(ctx, embedder, candidate.ResumeText)
	if err != nil {
		return err
	}
	candidate.Skills = set
	candidate.Embedding = embedding
	return nil
}

// analyze extracts skills from text and embeds the text enriched with them.
func analyze(ctx context.Context, embedder llm.Embedder, text string) (*types.SkillSet, []float32, error) {
	set, err := skillsOrExtract(nil, text)
	if err != nil {
		return nil, nil, err
	}
	embedding, err := embedder.Embed(ctx, skills.EnrichForEmbedding(text, set.All))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed text: %w", err)
	}
	return set, embedding, nil
}
