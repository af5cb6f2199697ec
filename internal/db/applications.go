package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/candidate-screener/internal/types"
)

const applicationColumns = `id, job_id, candidate_id, scores, skill_match, experience_details, fraud_details,
	decision, decision_reason, explanation, rank, status, created_at, updated_at`

// CreateApplication inserts a fully evaluated application. A second application for the
// same job and candidate returns ErrDuplicate.
func (db *DB) CreateApplication(ctx context.Context, app *types.Application) error {
	if app.ID == uuid.Nil {
		app.ID = uuid.New()
	}

	cols, err := encodeApplication(app)
	if err != nil {
		return err
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO applications (id, job_id, candidate_id, rfs, dcs, elc, composite_score,
		                           scores, skill_match, experience_details, fraud_flag, fraud_details,
		                           decision, decision_reason, explanation, rank, status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		 RETURNING created_at, updated_at`,
		app.ID, app.JobID, app.CandidateID,
		app.Scores.RFS, app.Scores.DCS, app.Scores.ELC, app.Scores.Composite,
		cols.scores, cols.skillMatch, cols.experience, app.Fraud.FraudFlag, cols.fraud,
		string(app.Decision), app.DecisionReason, cols.evidence, app.Rank, app.Status,
	).Scan(&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("failed to create application for job %s: %w", app.JobID, ErrDuplicate)
		}
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

// GetApplication retrieves an application by ID
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*types.Application, error) {
	row := db.pool.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return app, nil
}

// ApplicationExists reports whether candidateID already applied to jobID.
func (db *DB) ApplicationExists(ctx context.Context, jobID, candidateID uuid.UUID) (bool, error) {
	var exists bool
	err := db.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM applications WHERE job_id = $1 AND candidate_id = $2)`,
		jobID, candidateID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check application: %w", err)
	}
	return exists, nil
}

// ListApplicationsByJob returns a job's applications, ranked first in rank order, then
// unranked by creation time.
func (db *DB) ListApplicationsByJob(ctx context.Context, jobID uuid.UUID) ([]*types.Application, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1
		 ORDER BY rank ASC NULLS LAST, created_at, id`,
		jobID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	return collectApplications(rows)
}

// Rerank locks every application to jobID, lets assign set their ranks and writes the
// ranks back, all in one transaction. Concurrent reranks of the same job serialize on the
// row locks, so each sees the other's committed applications.
func (db *DB) Rerank(ctx context.Context, jobID uuid.UUID, assign func([]*types.Application)) ([]*types.Application, error) {
	var apps []*types.Application
	err := db.withTx(ctx, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx,
			`SELECT `+applicationColumns+` FROM applications WHERE job_id = $1
			 ORDER BY created_at, id FOR UPDATE`,
			jobID,
		)
		if err != nil {
			return fmt.Errorf("failed to lock applications: %w", err)
		}
		apps, err = collectApplications(rows)
		rows.Close()
		if err != nil {
			return err
		}

		assign(apps)

		batch := &pgx.Batch{}
		for _, app := range apps {
			batch.Queue(`UPDATE applications SET rank = $1, updated_at = NOW() WHERE id = $2`, app.Rank, app.ID)
		}
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return fmt.Errorf("failed to update ranks: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return apps, nil
}

// UpdateDecision replaces an application's decision, reason and status.
func (db *DB) UpdateDecision(ctx context.Context, id uuid.UUID, decision types.Decision, reason, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET decision = $1, decision_reason = $2, status = $3, updated_at = NOW() WHERE id = $4`,
		string(decision), reason, status, id,
	)
	if err != nil {
		return fmt.Errorf("failed to update decision: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("failed to update decision for application %s: %w", id, ErrNotFound)
	}
	return nil
}

type applicationJSON struct {
	scores, skillMatch, experience, fraud, evidence []byte
}

func encodeApplication(app *types.Application) (*applicationJSON, error) {
	var cols applicationJSON
	var err error
	if cols.scores, err = marshalJSON(app.Scores); err != nil {
		return nil, fmt.Errorf("failed to marshal scores: %w", err)
	}
	if cols.skillMatch, err = marshalJSON(app.SkillMatch); err != nil {
		return nil, fmt.Errorf("failed to marshal skill match: %w", err)
	}
	if cols.experience, err = marshalJSON(app.Experience); err != nil {
		return nil, fmt.Errorf("failed to marshal experience: %w", err)
	}
	if cols.fraud, err = marshalJSON(app.Fraud); err != nil {
		return nil, fmt.Errorf("failed to marshal fraud details: %w", err)
	}
	if cols.evidence, err = marshalJSON(app.Evidence); err != nil {
		return nil, fmt.Errorf("failed to marshal explanation: %w", err)
	}
	return &cols, nil
}

func scanApplication(row pgx.Row) (*types.Application, error) {
	var app types.Application
	var cols applicationJSON
	var decision string
	err := row.Scan(&app.ID, &app.JobID, &app.CandidateID,
		&cols.scores, &cols.skillMatch, &cols.experience, &cols.fraud,
		&decision, &app.DecisionReason, &cols.evidence, &app.Rank, &app.Status,
		&app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, err
	}
	app.Decision = types.Decision(decision)

	for _, f := range []struct {
		data []byte
		dst  any
		name string
	}{
		{cols.scores, &app.Scores, "scores"},
		{cols.skillMatch, &app.SkillMatch, "skill match"},
		{cols.experience, &app.Experience, "experience"},
		{cols.fraud, &app.Fraud, "fraud details"},
		{cols.evidence, &app.Evidence, "explanation"},
	} {
		if err := unmarshalJSON(f.data, f.dst); err != nil {
			return nil, fmt.Errorf("failed to unmarshal %s: %w", f.name, err)
		}
	}
	return &app, nil
}

func collectApplications(rows pgx.Rows) ([]*types.Application, error) {
	var apps []*types.Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating applications: %w", err)
	}
	return apps, nil
}
