package evaluate

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/matrix"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// MaxTranscriptChars is the character budget for the stage 3 inference call.
// Longer transcripts are truncated before prompting.
const MaxTranscriptChars = 16000

// rawInterviewEvaluation mirrors the interview_evaluation schema
type rawInterviewEvaluation struct {
	CommunicationScore     int      `json:"communication_score"`
	ProblemSolvingScore    int      `json:"problem_solving_score"`
	RoleUnderstandingScore int      `json:"role_understanding_score"`
	Rationale              string   `json:"rationale"`
	Strengths              []string `json:"strengths"`
	Weaknesses             []string `json:"weaknesses"`
}

// EvaluateInterview runs the stage 3 evaluation over a call transcript
func EvaluateInterview(ctx context.Context, client llm.Client, job JobContext, transcript string) (*types.InterviewEvaluation, error) {
	if transcript == "" {
		return nil, fmt.Errorf("transcript is empty")
	}

	prompt := prompts.Format(prompts.MustGet("screening.json", "evaluate-interview"), map[string]string{
		"JobTitle":       job.Title,
		"JobDescription": job.Description,
		"Transcript":     ingestion.Truncate(transcript, MaxTranscriptChars),
	})

	// Transcripts need the most capable tier: long context, conversational nuance
	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Message: "interview evaluation", Cause: err}
	}

	if err := schemas.Validate(schemas.InterviewEvaluation, responseText); err != nil {
		return nil, &ParseError{Message: "interview evaluation response", Cause: err}
	}

	var raw rawInterviewEvaluation
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return nil, &ParseError{Message: "failed to decode interview evaluation", Cause: err}
	}

	m, err := matrix.Compute(matrix.Stage3Weights, []matrix.Input{
		{Name: "communication", Score: float64(raw.CommunicationScore), Rationale: raw.Rationale},
		{Name: "problem_solving", Score: float64(raw.ProblemSolvingScore)},
		{Name: "role_understanding", Score: float64(raw.RoleUnderstandingScore)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build interview matrix: %w", err)
	}

	return &types.InterviewEvaluation{
		CommunicationScore:     matrix.Clamp(float64(raw.CommunicationScore)),
		ProblemSolvingScore:    matrix.Clamp(float64(raw.ProblemSolvingScore)),
		RoleUnderstandingScore: matrix.Clamp(float64(raw.RoleUnderstandingScore)),
		Rationale:              raw.Rationale,
		Strengths:              raw.Strengths,
		Weaknesses:             raw.Weaknesses,
		Matrix:                 m,
	}, nil
}
