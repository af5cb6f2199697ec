package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// CreateJob inserts a job. ID and CreatedAt are set when zero.
func (db *DB) CreateJob(ctx context.Context, job *types.Job) error {
	if job.ID == uuid.Nil {
		job.ID = uuid.New()
	}

	skillsJSON, err := marshalSkills(job.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal job skills: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO jobs (id, company, role, jd_text, jd_embedding, required_experience, skills_extracted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING created_at`,
		job.ID, job.Company, job.Role, job.Text, job.Embedding, job.RequiredExperience, skillsJSON,
	).Scan(&job.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create job %s: %w", job.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

// GetJob retrieves a job by ID
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*types.Job, error) {
	var job types.Job
	var skillsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, company, role, jd_text, jd_embedding, required_experience, skills_extracted, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Company, &job.Role, &job.Text, &job.Embedding, &job.RequiredExperience, &skillsJSON, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}

	if err := unmarshalJSON(skillsJSON, &job.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal job skills: %w", err)
	}
	return &job, nil
}

// marshalSkills stores a missing skill set as NULL so readers fall back to live extraction.
func marshalSkills(s *types.SkillSet) ([]byte, error) {
	if s == nil {
		return nil, nil
	}
	return marshalJSON(s)
}
