package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// CreateNotification stores a candidate-facing notification
func (db *DB) CreateNotification(ctx context.Context, candidateID uuid.UUID, title, message, link string) (*Notification, error) {
	var n Notification
	err := db.pool.QueryRow(ctx,
		`INSERT INTO notifications (candidate_id, title, message, link)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, candidate_id, title, message, link, read_at, created_at`,
		candidateID, title, message, link,
	).Scan(&n.ID, &n.CandidateID, &n.Title, &n.Message, &n.Link, &n.ReadAt, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create notification: %w", err)
	}
	return &n, nil
}

// ListNotifications returns a candidate's notifications, newest first
func (db *DB) ListNotifications(ctx context.Context, candidateID uuid.UUID, limit int) ([]Notification, error) {
	if limit == 0 {
		limit = 50
	}
	rows, err := db.pool.Query(ctx,
		`SELECT id, candidate_id, title, message, link, read_at, created_at
		 FROM notifications WHERE candidate_id = $1
		 ORDER BY created_at DESC LIMIT $2`,
		candidateID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []Notification
	for rows.Next() {
		var n Notification
		if err := rows.Scan(&n.ID, &n.CandidateID, &n.Title, &n.Message, &n.Link, &n.ReadAt, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, nil
}

// CreateSuggestionsForOpenJobs inserts one HR suggestion per open job other
// than the one the candidate just failed. Returns the number created.
func (db *DB) CreateSuggestionsForOpenJobs(ctx context.Context, applicationID, candidateID, failedJobID uuid.UUID, failedStage int) (int, error) {
	tag, err := db.pool.Exec(ctx,
		`INSERT INTO job_suggestions (application_id, candidate_id, suggested_job_id, failed_stage)
		 SELECT $1, $2, j.id, $3
		 FROM jobs j
		 WHERE j.status = $4 AND j.id <> $5`,
		applicationID, candidateID, failedStage, JobOpen, failedJobID,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to create job suggestions: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// ListSuggestions returns HR suggestions for an application
func (db *DB) ListSuggestions(ctx context.Context, applicationID uuid.UUID) ([]JobSuggestion, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, candidate_id, suggested_job_id, failed_stage, created_at
		 FROM job_suggestions WHERE application_id = $1
		 ORDER BY created_at DESC`,
		applicationID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list suggestions: %w", err)
	}
	defer rows.Close()

	var suggestions []JobSuggestion
	for rows.Next() {
		var s JobSuggestion
		if err := rows.Scan(&s.ID, &s.ApplicationID, &s.CandidateID, &s.SuggestedJobID, &s.FailedStage, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan suggestion: %w", err)
		}
		suggestions = append(suggestions, s)
	}
	return suggestions, nil
}
