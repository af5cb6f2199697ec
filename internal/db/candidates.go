package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

// CreateCandidate inserts a candidate. ID and CreatedAt are set when zero.
func (db *DB) CreateCandidate(ctx context.Context, c *types.Candidate) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	skillsJSON, err := marshalSkills(c.Skills)
	if err != nil {
		return fmt.Errorf("failed to marshal candidate skills: %w", err)
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO candidates (id, name, email, phone, resume_text, resume_embedding, experience, skills_extracted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING created_at`,
		c.ID, c.Name, c.Email, c.Phone, c.ResumeText, c.Embedding, c.Experience, skillsJSON,
	).Scan(&c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create candidate %s: %w", c.ID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

// GetCandidate retrieves a candidate by ID
func (db *DB) GetCandidate(ctx context.Context, id uuid.UUID) (*types.Candidate, error) {
	var c types.Candidate
	var skillsJSON []byte
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, email, phone, resume_text, resume_embedding, experience, skills_extracted, created_at
		 FROM candidates WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.Name, &c.Email, &c.Phone, &c.ResumeText, &c.Embedding, &c.Experience, &skillsJSON, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get candidate: %w", err)
	}

	if err := unmarshalJSON(skillsJSON, &c.Skills); err != nil {
		return nil, fmt.Errorf("failed to unmarshal candidate skills: %w", err)
	}
	return &c, nil
}

// ListPool returns the fraud-check view of every candidate except exclude.
func (db *DB) ListPool(ctx context.Context, exclude uuid.UUID) ([]types.PoolEntry, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, resume_embedding, resume_text, email
		 FROM candidates WHERE id <> $1
		 ORDER BY created_at, id`,
		exclude,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list candidate pool: %w", err)
	}
	defer rows.Close()

	var pool []types.PoolEntry
	for rows.Next() {
		var e types.PoolEntry
		if err := rows.Scan(&e.CandidateID, &e.Embedding, &e.ResumeText, &e.Email); err != nil {
			return nil, fmt.Errorf("failed to scan pool entry: %w", err)
		}
		pool = append(pool, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating candidate pool: %w", err)
	}
	return pool, nil
}
