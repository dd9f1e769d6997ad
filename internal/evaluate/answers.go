package evaluate

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/candidate-screener/internal/llm"
	"github.com/jonathan/candidate-screener/internal/matrix"
	"github.com/jonathan/candidate-screener/internal/prompts"
	"github.com/jonathan/candidate-screener/internal/schemas"
	"github.com/jonathan/candidate-screener/internal/types"
)

// rawAnswerEvaluations mirrors the answer_evaluations schema
type rawAnswerEvaluations struct {
	Evaluations []struct {
		Score    int    `json:"score"`
		Feedback string `json:"feedback"`
	} `json:"evaluations"`
}

// rawAnswerSetEvaluation mirrors the answer_set_evaluation schema
type rawAnswerSetEvaluation struct {
	RelevanceScore int    `json:"relevance_score"`
	ClarityScore   int    `json:"clarity_score"`
	RoleFitScore   int    `json:"role_fit_score"`
	Rationale      string `json:"rationale"`
}

// EvaluateAnswers runs the stage 2 evaluation over a complete answer set.
// Two independent inference calls are issued concurrently: per-answer
// score+feedback, and a whole-set matrix over relevance/clarity/role_fit.
// The per-answer response is strictly ordered and count-checked against the
// submitted answers.
func EvaluateAnswers(ctx context.Context, client llm.Client, job JobContext, answers []types.QuestionAnswer) (*types.AnswerSetEvaluation, error) {
	if len(answers) == 0 {
		return nil, fmt.Errorf("answer set is empty")
	}

	answerSet := renderAnswerSet(answers)

	var (
		perAnswer []types.AnswerEvaluation
		setEval   rawAnswerSetEvaluation
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		evals, err := evaluatePerAnswer(gctx, client, job, answerSet, len(answers))
		if err != nil {
			return err
		}
		perAnswer = evals
		return nil
	})

	g.Go(func() error {
		raw, err := evaluateAnswerSet(gctx, client, job, answerSet)
		if err != nil {
			return err
		}
		setEval = raw
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	m, err := matrix.Compute(matrix.Stage2Weights, []matrix.Input{
		{Name: "relevance", Score: float64(setEval.RelevanceScore), Rationale: setEval.Rationale},
		{Name: "clarity", Score: float64(setEval.ClarityScore)},
		{Name: "role_fit", Score: float64(setEval.RoleFitScore)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build answer set matrix: %w", err)
	}

	return &types.AnswerSetEvaluation{
		PerAnswer: perAnswer,
		Rationale: setEval.Rationale,
		Matrix:    m,
	}, nil
}

// evaluatePerAnswer scores every answer individually, enforcing order and count
func evaluatePerAnswer(ctx context.Context, client llm.Client, job JobContext, answerSet string, want int) ([]types.AnswerEvaluation, error) {
	prompt := prompts.Format(prompts.MustGet("screening.json", "evaluate-answers"), map[string]string{
		"JobTitle":       job.Title,
		"JobDescription": job.Description,
		"AnswerSet":      answerSet,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Message: "per-answer evaluation", Cause: err}
	}

	if err := schemas.Validate(schemas.AnswerEvaluations, responseText); err != nil {
		return nil, &ParseError{Message: "per-answer evaluation response", Cause: err}
	}

	var raw rawAnswerEvaluations
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return nil, &ParseError{Message: "failed to decode per-answer evaluations", Cause: err}
	}

	if len(raw.Evaluations) != want {
		return nil, &CountMismatchError{Expected: want, Got: len(raw.Evaluations)}
	}

	evals := make([]types.AnswerEvaluation, len(raw.Evaluations))
	for i, e := range raw.Evaluations {
		evals[i] = types.AnswerEvaluation{
			Score:    matrix.Clamp(float64(e.Score)),
			Feedback: e.Feedback,
		}
	}
	return evals, nil
}

// evaluateAnswerSet scores the answer set as a whole on the stage 2 dimensions
func evaluateAnswerSet(ctx context.Context, client llm.Client, job JobContext, answerSet string) (rawAnswerSetEvaluation, error) {
	prompt := prompts.Format(prompts.MustGet("screening.json", "evaluate-answer-set"), map[string]string{
		"JobTitle":       job.Title,
		"JobDescription": job.Description,
		"AnswerSet":      answerSet,
	})

	responseText, err := client.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return rawAnswerSetEvaluation{}, &APICallError{Message: "answer set evaluation", Cause: err}
	}

	if err := schemas.Validate(schemas.AnswerSetEvaluation, responseText); err != nil {
		return rawAnswerSetEvaluation{}, &ParseError{Message: "answer set evaluation response", Cause: err}
	}

	var raw rawAnswerSetEvaluation
	if err := json.Unmarshal([]byte(responseText), &raw); err != nil {
		return rawAnswerSetEvaluation{}, &ParseError{Message: "failed to decode answer set evaluation", Cause: err}
	}
	return raw, nil
}

// renderAnswerSet formats Q&A pairs for prompting, numbered in order
func renderAnswerSet(answers []types.QuestionAnswer) string {
	var sb strings.Builder
	for i, qa := range answers {
		fmt.Fprintf(&sb, "Q%d: %s\nA%d: %s\n\n", i+1, qa.Question, i+1, qa.Answer)
	}
	return strings.TrimSpace(sb.String())
}
