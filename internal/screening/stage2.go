package screening

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/evaluate"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/types"
)

// SubmitAnswers runs the stage 2 (written Q&A) evaluation. The submission is
// rejected before anything is written if the application is not at
// stage1_passed, or if the answer set does not cover every configured
// question. The evaluator itself assumes a complete set.
func (s *Service) SubmitAnswers(ctx context.Context, appID uuid.UUID, answers []string) (*StageResult, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}

	if gate.Status(c.App.Status) != gate.EntryStatus(types.StageAnswers) {
		return nil, &InvalidStateError{Operation: "submit answers", Status: c.App.Status}
	}
	if len(answers) != len(c.Job.Questions) {
		return nil, &IncompleteAnswersError{Expected: len(c.Job.Questions), Got: len(answers)}
	}
	for i, a := range answers {
		if strings.TrimSpace(a) == "" {
			return nil, &IncompleteAnswersError{Expected: len(c.Job.Questions), Got: i}
		}
	}

	pairs := make([]types.QuestionAnswer, len(answers))
	for i, q := range c.Job.Questions {
		pairs[i] = types.QuestionAnswer{Question: q, Answer: answers[i]}
	}

	attempt, err := s.db.CreateStageAttempt(ctx, appID, types.StageAnswers, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.markPending(ctx, appID, types.StageAnswers); err != nil {
		return nil, err
	}

	return s.evaluateAnswerSet(ctx, c, attempt, pairs)
}

// evaluateAnswerSet is the shared back half of stage 2, also entered by an
// HR re-run that replays the previously submitted answers.
func (s *Service) evaluateAnswerSet(ctx context.Context, c *appContext, attempt *db.ScreeningStage, pairs []types.QuestionAnswer) (*StageResult, error) {
	eval, err := evaluate.EvaluateAnswers(ctx, s.llm, jobContext(c.Job), pairs)
	if err != nil {
		s.log.Warn("answer evaluation failed",
			zap.String("application_id", c.App.ID.String()),
			zap.Error(err))
		v, _ := gate.DecideFailure(types.StageAnswers, gate.StageFailed)
		if err := s.commitVerdict(ctx, attempt.ID, c.App.ID, v, nil, map[string]string{"error": err.Error()}, "", nil); err != nil {
			return nil, err
		}
		return s.finish(ctx, c, attempt.ID, v, nil)
	}

	score := eval.Matrix.OverallScore
	v, err := gate.Decide(types.StageAnswers, score, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}

	rows := make([]db.AnswerEvaluationRow, len(pairs))
	for i := range pairs {
		aiScore := eval.PerAnswer[i].Score
		rows[i] = db.AnswerEvaluationRow{
			Question:   pairs[i].Question,
			Answer:     pairs[i].Answer,
			AIScore:    &aiScore,
			AIFeedback: eval.PerAnswer[i].Feedback,
		}
	}

	err = s.commitVerdict(ctx, attempt.ID, c.App.ID, v, &score, eval, eval.Rationale, func(tx pgx.Tx) error {
		return s.db.SaveAnswerEvaluationsTx(ctx, tx, attempt.ID, rows)
	})
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, c, attempt.ID, v, &score)
}
