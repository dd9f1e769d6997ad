package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateApplication inserts a new application in the submitted status
func (db *DB) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumeText string) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`INSERT INTO applications (job_id, candidate_id, resume_text)
		 VALUES ($1, $2, $3)
		 RETURNING id, job_id, candidate_id, status, current_stage, overall_score,
		           ai_summary, resume_text, created_at, updated_at`,
		jobID, candidateID, resumeText,
	).Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.CurrentStage,
		&app.OverallScore, &app.AISummary, &app.ResumeText, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}
	return &app, nil
}

// GetApplication retrieves an application by ID; nil if absent
func (db *DB) GetApplication(ctx context.Context, id uuid.UUID) (*Application, error) {
	var app Application
	err := db.pool.QueryRow(ctx,
		`SELECT id, job_id, candidate_id, status, current_stage, overall_score,
		        ai_summary, resume_text, created_at, updated_at
		 FROM applications WHERE id = $1`,
		id,
	).Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.CurrentStage,
		&app.OverallScore, &app.AISummary, &app.ResumeText, &app.CreatedAt, &app.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get application: %w", err)
	}
	return &app, nil
}

// ApplyTransitionTx rewrites the full {status, current_stage, overall_score}
// tuple inside the caller's transaction. Whole-tuple writes give
// last-writer-wins semantics when a webhook and an HR override race; partial
// state is never merged.
func (db *DB) ApplyTransitionTx(ctx context.Context, tx pgx.Tx, appID uuid.UUID, status string, currentStage int, overallScore *float64, aiSummary string) error {
	tag, err := tx.Exec(ctx,
		`UPDATE applications
		 SET status = $1, current_stage = $2, overall_score = $3,
		     ai_summary = COALESCE(NULLIF($4, ''), ai_summary), updated_at = NOW()
		 WHERE id = $5`,
		status, currentStage, overallScore, aiSummary, appID,
	)
	if err != nil {
		return fmt.Errorf("failed to apply transition: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", appID)
	}
	return nil
}

// SetStatus updates only the status for non-stage transitions (hired,
// rejected, withdrawn). Stage transitions must use ApplyTransitionTx.
func (db *DB) SetStatus(ctx context.Context, appID uuid.UUID, status string) error {
	tag, err := db.pool.Exec(ctx,
		`UPDATE applications SET status = $1, updated_at = NOW() WHERE id = $2`,
		status, appID,
	)
	if err != nil {
		return fmt.Errorf("failed to set status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("application not found: %s", appID)
	}
	return nil
}

// ListApplicationsOptions holds optional filters for listing applications
type ListApplicationsOptions struct {
	JobID  *uuid.UUID
	Status string
	Limit  int
}

// ListApplications retrieves applications with optional filters
func (db *DB) ListApplications(ctx context.Context, opts ListApplicationsOptions) ([]Application, error) {
	if opts.Limit == 0 {
		opts.Limit = 50
	}

	query := `SELECT id, job_id, candidate_id, status, current_stage, overall_score,
	                 ai_summary, resume_text, created_at, updated_at
	          FROM applications WHERE 1=1`
	args := []any{}
	argNum := 1

	if opts.JobID != nil {
		query += fmt.Sprintf(" AND job_id = $%d", argNum)
		args = append(args, *opts.JobID)
		argNum++
	}
	if opts.Status != "" {
		query += fmt.Sprintf(" AND status = $%d", argNum)
		args = append(args, opts.Status)
		argNum++
	}

	query += fmt.Sprintf(" ORDER BY created_at DESC LIMIT $%d", argNum)
	args = append(args, opts.Limit)

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list applications: %w", err)
	}
	defer rows.Close()

	var apps []Application
	for rows.Next() {
		var app Application
		if err := rows.Scan(&app.ID, &app.JobID, &app.CandidateID, &app.Status, &app.CurrentStage,
			&app.OverallScore, &app.AISummary, &app.ResumeText, &app.CreatedAt, &app.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan application: %w", err)
		}
		apps = append(apps, app)
	}
	return apps, nil
}
