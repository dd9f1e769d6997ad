package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CreateApplicationRequest is a candidate submission for a job
type CreateApplicationRequest struct {
	JobID       uuid.UUID `json:"job_id" validate:"required"`
	CandidateID uuid.UUID `json:"candidate_id" validate:"required"`
	ResumeText  string    `json:"resume_text"`
}

// SubmitAnswersRequest carries the complete written answer set. Completeness
// against the job's configured questions is enforced by the handler before
// the evaluator runs.
type SubmitAnswersRequest struct {
	Answers []string `json:"answers" validate:"required,min=1,dive,required"`
}

// OverrideRequest is the HR force pass/fail command
type OverrideRequest struct {
	Action string `json:"action" validate:"required,oneof=pass fail"`
	Stage  int    `json:"stage" validate:"required,min=1,max=3"`
}

// CallEndedRequest is the inbound stage 3 webhook body
type CallEndedRequest struct {
	AssistantID     string  `json:"assistant_id" validate:"required"`
	CallID          string  `json:"call_id" validate:"required"`
	Transcript      string  `json:"transcript"`
	RecordingURL    string  `json:"recording_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}

// LoginRequest is an HR login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the signed token for subsequent HR requests
type LoginResponse struct {
	Token string `json:"token"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Validate validates the CreateApplicationRequest using the validator.
func (r *CreateApplicationRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the SubmitAnswersRequest using the validator.
func (r *SubmitAnswersRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the OverrideRequest using the validator.
func (r *OverrideRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the CallEndedRequest using the validator.
func (r *CallEndedRequest) Validate() error {
	return validator.New().Struct(r)
}

// Validate validates the LoginRequest using the validator.
func (r *LoginRequest) Validate() error {
	return validator.New().Struct(r)
}

// Event converts the webhook body into the internal event shape
func (r *CallEndedRequest) Event() CallEndedEvent {
	return CallEndedEvent{
		AssistantID:     r.AssistantID,
		CallID:          r.CallID,
		Transcript:      r.Transcript,
		RecordingURL:    r.RecordingURL,
		DurationSeconds: r.DurationSeconds,
	}
}
