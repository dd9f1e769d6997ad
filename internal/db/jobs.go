package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// JobCreateInput holds the fields for creating a job
type JobCreateInput struct {
	Title            string
	Description      string
	Requirements     []string
	Responsibilities []string
	Questions        []string
	PassingThreshold float64
}

// CreateJob inserts a new open job
func (db *DB) CreateJob(ctx context.Context, input *JobCreateInput) (*Job, error) {
	threshold := input.PassingThreshold
	if threshold == 0 {
		threshold = 5.0
	}

	var job Job
	err := db.pool.QueryRow(ctx,
		`INSERT INTO jobs (title, description, requirements, responsibilities, questions, passing_threshold)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, title, description, requirements, responsibilities, questions,
		           status, passing_threshold, created_at`,
		input.Title, input.Description, input.Requirements, input.Responsibilities,
		input.Questions, threshold,
	).Scan(&job.ID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
		&job.Questions, &job.Status, &job.PassingThreshold, &job.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create job: %w", err)
	}
	return &job, nil
}

// GetJob retrieves a job by ID; nil if absent
func (db *DB) GetJob(ctx context.Context, id uuid.UUID) (*Job, error) {
	var job Job
	err := db.pool.QueryRow(ctx,
		`SELECT id, title, description, requirements, responsibilities, questions,
		        status, passing_threshold, created_at
		 FROM jobs WHERE id = $1`,
		id,
	).Scan(&job.ID, &job.Title, &job.Description, &job.Requirements, &job.Responsibilities,
		&job.Questions, &job.Status, &job.PassingThreshold, &job.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job: %w", err)
	}
	return &job, nil
}

// ListJobs retrieves jobs, optionally filtered to a status
func (db *DB) ListJobs(ctx context.Context, status string, limit int) ([]Job, error) {
	if limit == 0 {
		limit = 50
	}

	query := `SELECT id, title, description, requirements, responsibilities, questions,
	                 status, passing_threshold, created_at
	          FROM jobs`
	args := []any{}
	if status != "" {
		query += " WHERE status = $1 ORDER BY created_at DESC LIMIT $2"
		args = append(args, status, limit)
	} else {
		query += " ORDER BY created_at DESC LIMIT $1"
		args = append(args, limit)
	}

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list jobs: %w", err)
	}
	defer rows.Close()

	var jobs []Job
	for rows.Next() {
		var job Job
		if err := rows.Scan(&job.ID, &job.Title, &job.Description, &job.Requirements,
			&job.Responsibilities, &job.Questions, &job.Status, &job.PassingThreshold, &job.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan job: %w", err)
		}
		jobs = append(jobs, job)
	}
	return jobs, nil
}

// CloseJob marks a job closed; closed jobs are excluded from suggestions
func (db *DB) CloseJob(ctx context.Context, id uuid.UUID) error {
	tag, err := db.pool.Exec(ctx, `UPDATE jobs SET status = $1 WHERE id = $2`, JobClosed, id)
	if err != nil {
		return fmt.Errorf("failed to close job: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("job not found: %s", id)
	}
	return nil
}
