package db

import (
	"time"

	"github.com/google/uuid"
)

// Job statuses
const (
	JobOpen   = "open"
	JobClosed = "closed"
)

// Candidate is a person who applies to jobs
type Candidate struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

// Job is an open position with its screening configuration
type Job struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	Requirements     []string  `json:"requirements"`
	Responsibilities []string  `json:"responsibilities"`
	Questions        []string  `json:"questions"`
	Status           string    `json:"status"`
	PassingThreshold float64   `json:"passing_threshold"`
	CreatedAt        time.Time `json:"created_at"`
}

// Application is one candidate's application to one job. Status and
// current_stage are only ever written together by a gate transition.
type Application struct {
	ID           uuid.UUID  `json:"id"`
	JobID        uuid.UUID  `json:"job_id"`
	CandidateID  uuid.UUID  `json:"candidate_id"`
	Status       string     `json:"status"`
	CurrentStage *int       `json:"current_stage,omitempty"`
	OverallScore *float64   `json:"overall_score,omitempty"`
	AISummary    string     `json:"ai_summary,omitempty"`
	ResumeText   string     `json:"resume_text,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// ScreeningStage is one attempt at one stage for an application. Attempts are
// append-only: a re-run inserts a new row with the next attempt number and
// consumers read the latest attempt, never assume one row per stage.
type ScreeningStage struct {
	ID               uuid.UUID  `json:"id"`
	ApplicationID    uuid.UUID  `json:"application_id"`
	StageNumber      int        `json:"stage_number"`
	Attempt          int        `json:"attempt"`
	Status           string     `json:"status"`
	Score            *float64   `json:"score,omitempty"`
	PassingThreshold float64    `json:"passing_threshold"`
	Evaluation       []byte     `json:"evaluation,omitempty"`
	StartedAt        time.Time  `json:"started_at"`
	CompletedAt      *time.Time `json:"completed_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

// ResumeAnalysis is the stage 1 detail record, owned by its stage attempt
type ResumeAnalysis struct {
	ID              uuid.UUID `json:"id"`
	StageID         uuid.UUID `json:"stage_id"`
	SkillsScore     float64   `json:"skills_score"`
	ExperienceScore float64   `json:"experience_score"`
	EducationScore  float64   `json:"education_score"`
	Rationale       string    `json:"rationale"`
	Strengths       []string  `json:"strengths"`
	Concerns        []string  `json:"concerns"`
	FitRating       string    `json:"fit_rating"`
	SkillsMatch     []byte    `json:"skills_match,omitempty"`
	ExperienceMatch []byte    `json:"experience_match,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// AnswerEvaluationRow is one stage 2 question/answer with its score, ordered
// by position
type AnswerEvaluationRow struct {
	ID         uuid.UUID `json:"id"`
	StageID    uuid.UUID `json:"stage_id"`
	Position   int       `json:"position"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	AIScore    *float64  `json:"ai_score,omitempty"`
	AIFeedback string    `json:"ai_feedback"`
	CreatedAt  time.Time `json:"created_at"`
}

// InterviewDetail is the stage 3 detail record. It is created when the call
// is configured and updated in place when the call ends.
type InterviewDetail struct {
	ID                     uuid.UUID `json:"id"`
	StageID                uuid.UUID `json:"stage_id"`
	AssistantID            string    `json:"assistant_id"`
	CallID                 *string   `json:"call_id,omitempty"`
	Transcript             *string   `json:"transcript,omitempty"`
	RecordingURL           *string   `json:"recording_url,omitempty"`
	DurationSeconds        *float64  `json:"duration_seconds,omitempty"`
	CommunicationScore     *float64  `json:"communication_score,omitempty"`
	ProblemSolvingScore    *float64  `json:"problem_solving_score,omitempty"`
	RoleUnderstandingScore *float64  `json:"role_understanding_score,omitempty"`
	Rationale              string    `json:"rationale"`
	Strengths              []string  `json:"strengths"`
	Weaknesses             []string  `json:"weaknesses"`
	CreatedAt              time.Time `json:"created_at"`
	UpdatedAt              time.Time `json:"updated_at"`
}

// Notification is a candidate-facing message about a stage outcome
type Notification struct {
	ID          uuid.UUID  `json:"id"`
	CandidateID uuid.UUID  `json:"candidate_id"`
	Title       string     `json:"title"`
	Message     string     `json:"message"`
	Link        string     `json:"link"`
	ReadAt      *time.Time `json:"read_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// JobSuggestion links a failed candidate to another open job they might fit
type JobSuggestion struct {
	ID             uuid.UUID `json:"id"`
	ApplicationID  uuid.UUID `json:"application_id"`
	CandidateID    uuid.UUID `json:"candidate_id"`
	SuggestedJobID uuid.UUID `json:"suggested_job_id"`
	FailedStage    int       `json:"failed_stage"`
	CreatedAt      time.Time `json:"created_at"`
}

// HRUser is a recruiter account for the HR API surface
type HRUser struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
