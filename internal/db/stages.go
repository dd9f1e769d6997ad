package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// CreateStageAttempt appends a new attempt for (application, stage). The
// attempt number is assigned in SQL from the existing maximum, so re-running
// a stage never mutates a prior attempt.
func (db *DB) CreateStageAttempt(ctx context.Context, appID uuid.UUID, stageNumber int, threshold float64) (*ScreeningStage, error) {
	var stage ScreeningStage
	err := db.pool.QueryRow(ctx,
		`INSERT INTO screening_stages (application_id, stage_number, attempt, passing_threshold)
		 VALUES ($1, $2,
		         (SELECT COALESCE(MAX(attempt), 0) + 1
		          FROM screening_stages WHERE application_id = $1 AND stage_number = $2),
		         $3)
		 RETURNING id, application_id, stage_number, attempt, status, score,
		           passing_threshold, evaluation, started_at, completed_at, created_at`,
		appID, stageNumber, threshold,
	).Scan(&stage.ID, &stage.ApplicationID, &stage.StageNumber, &stage.Attempt, &stage.Status,
		&stage.Score, &stage.PassingThreshold, &stage.Evaluation, &stage.StartedAt,
		&stage.CompletedAt, &stage.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create stage attempt: %w", err)
	}
	return &stage, nil
}

// FinishStageAttemptTx writes the attempt's terminal state inside the
// caller's transaction: status, score and the full evaluation payload.
func (db *DB) FinishStageAttemptTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, status string, score *float64, evaluation any) error {
	var payload []byte
	if evaluation != nil {
		var err error
		payload, err = json.Marshal(evaluation)
		if err != nil {
			return fmt.Errorf("failed to marshal evaluation payload: %w", err)
		}
	}

	tag, err := tx.Exec(ctx,
		`UPDATE screening_stages
		 SET status = $1, score = $2, evaluation = $3, completed_at = NOW()
		 WHERE id = $4`,
		status, score, payload, stageID,
	)
	if err != nil {
		return fmt.Errorf("failed to finish stage attempt: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stage attempt not found: %s", stageID)
	}
	return nil
}

// CurrentStageAttempt returns the latest attempt for (application, stage);
// nil if the stage has never run. "Latest" is always max(attempt).
func (db *DB) CurrentStageAttempt(ctx context.Context, appID uuid.UUID, stageNumber int) (*ScreeningStage, error) {
	var stage ScreeningStage
	err := db.pool.QueryRow(ctx,
		`SELECT id, application_id, stage_number, attempt, status, score,
		        passing_threshold, evaluation, started_at, completed_at, created_at
		 FROM screening_stages
		 WHERE application_id = $1 AND stage_number = $2
		 ORDER BY attempt DESC LIMIT 1`,
		appID, stageNumber,
	).Scan(&stage.ID, &stage.ApplicationID, &stage.StageNumber, &stage.Attempt, &stage.Status,
		&stage.Score, &stage.PassingThreshold, &stage.Evaluation, &stage.StartedAt,
		&stage.CompletedAt, &stage.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get current stage attempt: %w", err)
	}
	return &stage, nil
}

// ListStageAttempts returns every attempt for an application, oldest first
func (db *DB) ListStageAttempts(ctx context.Context, appID uuid.UUID) ([]ScreeningStage, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, application_id, stage_number, attempt, status, score,
		        passing_threshold, evaluation, started_at, completed_at, created_at
		 FROM screening_stages
		 WHERE application_id = $1
		 ORDER BY stage_number ASC, attempt ASC`,
		appID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list stage attempts: %w", err)
	}
	defer rows.Close()

	var stages []ScreeningStage
	for rows.Next() {
		var stage ScreeningStage
		if err := rows.Scan(&stage.ID, &stage.ApplicationID, &stage.StageNumber, &stage.Attempt,
			&stage.Status, &stage.Score, &stage.PassingThreshold, &stage.Evaluation,
			&stage.StartedAt, &stage.CompletedAt, &stage.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan stage attempt: %w", err)
		}
		stages = append(stages, stage)
	}
	return stages, nil
}

// SaveResumeAnalysisTx writes the stage 1 detail record in the caller's
// transaction
func (db *DB) SaveResumeAnalysisTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, analysis *ResumeAnalysis) error {
	_, err := tx.Exec(ctx,
		`INSERT INTO resume_analyses
		   (stage_id, skills_score, experience_score, education_score, rationale,
		    strengths, concerns, fit_rating, skills_match, experience_match)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		stageID, analysis.SkillsScore, analysis.ExperienceScore, analysis.EducationScore,
		analysis.Rationale, analysis.Strengths, analysis.Concerns, analysis.FitRating,
		analysis.SkillsMatch, analysis.ExperienceMatch,
	)
	if err != nil {
		return fmt.Errorf("failed to save resume analysis: %w", err)
	}
	return nil
}

// SaveAnswerEvaluationsTx writes the stage 2 per-answer rows in order,
// in the caller's transaction
func (db *DB) SaveAnswerEvaluationsTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, rows []AnswerEvaluationRow) error {
	for i, row := range rows {
		_, err := tx.Exec(ctx,
			`INSERT INTO answer_evaluations (stage_id, position, question, answer, ai_score, ai_feedback)
			 VALUES ($1, $2, $3, $4, $5, $6)`,
			stageID, i+1, row.Question, row.Answer, row.AIScore, row.AIFeedback,
		)
		if err != nil {
			return fmt.Errorf("failed to save answer evaluation %d: %w", i+1, err)
		}
	}
	return nil
}

// GetAnswerEvaluations returns the stage 2 rows for an attempt, by position
func (db *DB) GetAnswerEvaluations(ctx context.Context, stageID uuid.UUID) ([]AnswerEvaluationRow, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT id, stage_id, position, question, answer, ai_score, ai_feedback, created_at
		 FROM answer_evaluations WHERE stage_id = $1 ORDER BY position ASC`,
		stageID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get answer evaluations: %w", err)
	}
	defer rows.Close()

	var result []AnswerEvaluationRow
	for rows.Next() {
		var row AnswerEvaluationRow
		if err := rows.Scan(&row.ID, &row.StageID, &row.Position, &row.Question, &row.Answer,
			&row.AIScore, &row.AIFeedback, &row.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan answer evaluation: %w", err)
		}
		result = append(result, row)
	}
	return result, nil
}

// CreateInterviewDetail pre-creates the stage 3 detail record when the call
// is configured. The end-of-call webhook later updates it in place.
func (db *DB) CreateInterviewDetail(ctx context.Context, stageID uuid.UUID, assistantID string) (*InterviewDetail, error) {
	var detail InterviewDetail
	err := db.pool.QueryRow(ctx,
		`INSERT INTO interview_details (stage_id, assistant_id)
		 VALUES ($1, $2)
		 RETURNING id, stage_id, assistant_id, call_id, transcript, recording_url,
		           duration_seconds, communication_score, problem_solving_score,
		           role_understanding_score, rationale, strengths, weaknesses,
		           created_at, updated_at`,
		stageID, assistantID,
	).Scan(&detail.ID, &detail.StageID, &detail.AssistantID, &detail.CallID, &detail.Transcript,
		&detail.RecordingURL, &detail.DurationSeconds, &detail.CommunicationScore,
		&detail.ProblemSolvingScore, &detail.RoleUnderstandingScore, &detail.Rationale,
		&detail.Strengths, &detail.Weaknesses, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create interview detail: %w", err)
	}
	return &detail, nil
}

// InterviewResolution is the assistant-id -> interview -> stage -> application
// chain resolved in one query
type InterviewResolution struct {
	InterviewID   uuid.UUID
	StageID       uuid.UUID
	ApplicationID uuid.UUID
	StageStatus   string
	Threshold     float64
}

// ResolveInterviewByAssistant maps an end-of-call event to its application.
// Returns nil when any hop of the chain is missing; the caller drops the
// event in that case.
func (db *DB) ResolveInterviewByAssistant(ctx context.Context, assistantID string) (*InterviewResolution, error) {
	var res InterviewResolution
	err := db.pool.QueryRow(ctx,
		`SELECT i.id, s.id, s.application_id, s.status, s.passing_threshold
		 FROM interview_details i
		 JOIN screening_stages s ON s.id = i.stage_id
		 WHERE i.assistant_id = $1
		 ORDER BY i.created_at DESC LIMIT 1`,
		assistantID,
	).Scan(&res.InterviewID, &res.StageID, &res.ApplicationID, &res.StageStatus, &res.Threshold)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to resolve interview: %w", err)
	}
	return &res, nil
}

// UpdateInterviewDetailTx persists call artifacts and scores onto the
// existing interview record in the caller's transaction. Stage 3 never
// creates a second detail row.
func (db *DB) UpdateInterviewDetailTx(ctx context.Context, tx pgx.Tx, interviewID uuid.UUID, update *InterviewDetail) error {
	tag, err := tx.Exec(ctx,
		`UPDATE interview_details
		 SET call_id = $1, transcript = $2, recording_url = $3, duration_seconds = $4,
		     communication_score = $5, problem_solving_score = $6, role_understanding_score = $7,
		     rationale = $8, strengths = $9, weaknesses = $10, updated_at = NOW()
		 WHERE id = $11`,
		update.CallID, update.Transcript, update.RecordingURL, update.DurationSeconds,
		update.CommunicationScore, update.ProblemSolvingScore, update.RoleUnderstandingScore,
		update.Rationale, update.Strengths, update.Weaknesses, interviewID,
	)
	if err != nil {
		return fmt.Errorf("failed to update interview detail: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("interview detail not found: %s", interviewID)
	}
	return nil
}

// GetInterviewDetailByStage returns the interview record for a stage attempt;
// nil if absent
func (db *DB) GetInterviewDetailByStage(ctx context.Context, stageID uuid.UUID) (*InterviewDetail, error) {
	var detail InterviewDetail
	err := db.pool.QueryRow(ctx,
		`SELECT id, stage_id, assistant_id, call_id, transcript, recording_url,
		        duration_seconds, communication_score, problem_solving_score,
		        role_understanding_score, rationale, strengths, weaknesses,
		        created_at, updated_at
		 FROM interview_details WHERE stage_id = $1`,
		stageID,
	).Scan(&detail.ID, &detail.StageID, &detail.AssistantID, &detail.CallID, &detail.Transcript,
		&detail.RecordingURL, &detail.DurationSeconds, &detail.CommunicationScore,
		&detail.ProblemSolvingScore, &detail.RoleUnderstandingScore, &detail.Rationale,
		&detail.Strengths, &detail.Weaknesses, &detail.CreatedAt, &detail.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get interview detail: %w", err)
	}
	return &detail, nil
}
