// Package types provides type definitions for structured data used throughout
// the candidate screener.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "github.com/jonathan/candidate-screener/internal/matrix"

// QuestionAnswer is one written screening question with the candidate's answer
type QuestionAnswer struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// SkillsMatch is the keyword-level skill comparison from resume screening
type SkillsMatch struct {
	Required []string `json:"required"`
	Found    []string `json:"found"`
	Missing  []string `json:"missing"`
}

// ExperienceMatch compares the experience a posting asks for with what the
// resume shows
type ExperienceMatch struct {
	Required string `json:"required"`
	Found    string `json:"found"`
	Match    bool   `json:"match"`
}

// ResumeEvaluation is the normalized result of the stage 1 evaluator
type ResumeEvaluation struct {
	SkillsScore     float64          `json:"skills_score"`
	ExperienceScore float64          `json:"experience_score"`
	EducationScore  float64          `json:"education_score"`
	Rationale       string           `json:"rationale"`
	SkillsMatch     SkillsMatch      `json:"skills_match"`
	ExperienceMatch ExperienceMatch  `json:"experience_match"`
	Strengths       []string         `json:"strengths"`
	Concerns        []string         `json:"concerns"`
	Matrix          *matrix.Matrix   `json:"matrix"`
}

// AnswerEvaluation is the score and feedback for a single written answer
type AnswerEvaluation struct {
	Score    float64 `json:"score"`
	Feedback string  `json:"feedback"`
}

// AnswerSetEvaluation is the normalized result of the stage 2 evaluator:
// per-answer scores plus a whole-set matrix. The per-answer scores are
// context for the matrix call, never direct inputs to its weighted formula.
type AnswerSetEvaluation struct {
	PerAnswer []AnswerEvaluation `json:"per_answer"`
	Rationale string             `json:"rationale"`
	Matrix    *matrix.Matrix     `json:"matrix"`
}

// InterviewEvaluation is the normalized result of the stage 3 evaluator
type InterviewEvaluation struct {
	CommunicationScore     float64        `json:"communication_score"`
	ProblemSolvingScore    float64        `json:"problem_solving_score"`
	RoleUnderstandingScore float64        `json:"role_understanding_score"`
	Rationale              string         `json:"rationale"`
	Strengths              []string       `json:"strengths"`
	Weaknesses             []string       `json:"weaknesses"`
	Matrix                 *matrix.Matrix `json:"matrix"`
}

// CallEndedEvent is the end-of-call webhook payload for stage 3. It is keyed
// by the interview assistant identifier, not the application id; resolution
// happens inside the screener.
type CallEndedEvent struct {
	AssistantID     string  `json:"assistant_id"`
	CallID          string  `json:"call_id"`
	Transcript      string  `json:"transcript"`
	RecordingURL    string  `json:"recording_url,omitempty"`
	DurationSeconds float64 `json:"duration_seconds,omitempty"`
}
