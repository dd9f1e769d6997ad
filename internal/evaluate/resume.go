// Package evaluate implements the three stage evaluators. Each calls the
// inference client with a stage-specific prompt, validates the raw response
// against its JSON Schema, and normalizes the result into dimension scores,
// rationales and stage artifacts. Evaluators never touch application status.
package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/matrix"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// JobContext carries the job posting fields the evaluators prompt with
type JobContext struct {
	Title            string
	Description      string
	Requirements     []string
	Responsibilities []string
}

// rawResumeEvaluation mirrors the resume_evaluation schema
type rawResumeEvaluation struct {
	SkillsScore     int                   `json:"skills_score"`
	ExperienceScore int                   `json:"experience_score"`
	EducationScore  int                   `json:"education_score"`
	Rationale       string                `json:"rationale"`
	SkillsMatch     types.SkillsMatch     `json:"skills_match"`
	ExperienceMatch types.ExperienceMatch `json:"experience_match"`
}

// educationStrengthFloor is the education dimension score at or above which
// the candidate's education is listed as a strength
const educationStrengthFloor = 5

// EvaluateResume runs the stage 1 evaluation over resume text. The caller is
// responsible for the empty-resume fast path; resumeText here must be
// non-empty, normalized text.
func EvaluateResume(ctx context.Context, client llm.Client, job JobContext, resumeText string) (*types.ResumeEvaluation, error) {
	prompt := prompts.Format(prompts.MustGet("screening.json", "evaluate-resume"), map[string]string{
		"JobTitle":         job.Title,
		"JobDescription":   job.Description,
		"Requirements":     bulletList(job.Requirements),
		"Responsibilities": bulletList(job.Responsibilities),
		"ResumeText":       resumeText,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "resume evaluation", Cause: err}
	}

	if err := schemas.Validate(schemas.ResumeEvaluation, responseText); err != nil {
		return nil, &ParseError{Message: "resume evaluation response", Cause: err}
	}

	var raw rawResumeEvaluation
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return nil, &ParseError{Message: "failed to decode resume evaluation", Cause: err}
	}

	m, err := matrix.Compute(matrix.Stage1Weights, []matrix.Input{
		{Name: "skills", Score: float64(raw.SkillsScore), Rationale: raw.Rationale},
		{Name: "experience", Score: float64(raw.ExperienceScore)},
		{Name: "education", Score: float64(raw.EducationScore)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build resume matrix: %w", err)
	}

	eval := &types.ResumeEvaluation{
		SkillsScore:     matrix.Clamp(float64(raw.SkillsScore)),
		ExperienceScore: matrix.Clamp(float64(raw.ExperienceScore)),
		EducationScore:  matrix.Clamp(float64(raw.EducationScore)),
		Rationale:       raw.Rationale,
		SkillsMatch:     raw.SkillsMatch,
		ExperienceMatch: raw.ExperienceMatch,
		Matrix:          m,
	}
	eval.Strengths, eval.Concerns = summarizeResume(eval)

	return eval, nil
}

// summarizeResume builds the human-readable strengths/concerns lists from
// found skills, the experience match flag, and the education score.
func summarizeResume(eval *types.ResumeEvaluation) (strengths, concerns []string) {
	for _, skill := range eval.SkillsMatch.Found {
		strengths = append(strengths, fmt.Sprintf("Has required skill: %s", skill))
	}
	if eval.ExperienceMatch.Match {
		strengths = append(strengths, fmt.Sprintf("Experience matches: %s", eval.ExperienceMatch.Found))
	}
	if eval.EducationScore >= educationStrengthFloor {
		strengths = append(strengths, "Relevant educational background")
	}
	if len(strengths) == 0 {
		strengths = append(strengths, "Resume submitted")
	}

	for _, skill := range eval.SkillsMatch.Missing {
		concerns = append(concerns, fmt.Sprintf("Missing required skill: %s", skill))
	}
	if !eval.ExperienceMatch.Match && eval.ExperienceMatch.Required != "" {
		concerns = append(concerns, fmt.Sprintf("Experience gap: requires %s", eval.ExperienceMatch.Required))
	}
	return strengths, concerns
}

// bulletList renders a string slice as prompt-friendly bullets
func bulletList(items []string) string {
	if len(items) == 0 {
		return "(none listed)"
	}
	var sb strings.Builder
	for _, item := range items {
		sb.WriteString("- ")
		sb.WriteString(item)
		sb.WriteString("\n")
	}
	return strings.TrimSuffix(sb.String(), "\n")
}
