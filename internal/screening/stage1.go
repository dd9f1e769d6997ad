package screening

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/evaluate"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ScreenResume runs the stage 1 (resume) evaluation for an application.
// An empty resume is recorded as a skipped attempt and routed straight to
// stage1_failed without an inference call. An evaluator error is a candidate
// failure, not a pipeline error: the attempt is marked failed and the
// application transitions the same way a low score would.
func (s *Service) ScreenResume(ctx context.Context, appID uuid.UUID) (*StageResult, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}
	return s.runResumeStage(ctx, c)
}

// runResumeStage is the shared body of stage 1, also entered by an HR re-run
func (s *Service) runResumeStage(ctx context.Context, c *appContext) (*StageResult, error) {
	appID := c.App.ID
	attempt, err := s.db.CreateStageAttempt(ctx, appID, types.StageResume, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.markPending(ctx, appID, types.StageResume); err != nil {
		return nil, err
	}

	if strings.TrimSpace(c.App.ResumeText) == "" {
		v, _ := gate.DecideFailure(types.StageResume, gate.StageSkipped)
		s.log.Info("resume is empty, skipping evaluation",
			zap.String("application_id", appID.String()))
		if err := s.commitVerdict(ctx, attempt.ID, appID, v, nil, nil, "No resume text was provided.", nil); err != nil {
			return nil, err
		}
		return s.finish(ctx, c, attempt.ID, v, nil)
	}

	eval, err := evaluate.EvaluateResume(ctx, s.llm, jobContext(c.Job), c.App.ResumeText)
	if err != nil {
		s.log.Warn("resume evaluation failed",
			zap.String("application_id", appID.String()),
			zap.Error(err))
		v, _ := gate.DecideFailure(types.StageResume, gate.StageFailed)
		if err := s.commitVerdict(ctx, attempt.ID, appID, v, nil, map[string]string{"error": err.Error()}, "", nil); err != nil {
			return nil, err
		}
		return s.finish(ctx, c, attempt.ID, v, nil)
	}

	score := eval.Matrix.OverallScore
	v, err := gate.Decide(types.StageResume, score, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}

	detail := resumeAnalysisRow(eval)
	err = s.commitVerdict(ctx, attempt.ID, appID, v, &score, eval, eval.Rationale, func(tx pgx.Tx) error {
		return s.db.SaveResumeAnalysisTx(ctx, tx, attempt.ID, detail)
	})
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, c, attempt.ID, v, &score)
}

func resumeAnalysisRow(eval *types.ResumeEvaluation) *db.ResumeAnalysis {
	skillsMatch, _ := json.Marshal(eval.SkillsMatch)
	experienceMatch, _ := json.Marshal(eval.ExperienceMatch)
	return &db.ResumeAnalysis{
		SkillsScore:     eval.SkillsScore,
		ExperienceScore: eval.ExperienceScore,
		EducationScore:  eval.EducationScore,
		Rationale:       eval.Rationale,
		Strengths:       eval.Strengths,
		Concerns:        eval.Concerns,
		FitRating:       string(eval.Matrix.FitRating),
		SkillsMatch:     skillsMatch,
		ExperienceMatch: experienceMatch,
	}
}
