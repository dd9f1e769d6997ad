package screening

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/evaluate"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/types"
)

// ScheduleInterview provisions stage 3 for an application: a new stage
// attempt plus the interview record that the end-of-call webhook will later
// update in place. The assistant id is the key the webhook resolves by.
func (s *Service) ScheduleInterview(ctx context.Context, appID uuid.UUID, assistantID string) (*db.InterviewDetail, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}
	if gate.Status(c.App.Status) != gate.EntryStatus(types.StageInterview) {
		return nil, &InvalidStateError{Operation: "schedule interview", Status: c.App.Status}
	}

	attempt, err := s.db.CreateStageAttempt(ctx, appID, types.StageInterview, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}
	detail, err := s.db.CreateInterviewDetail(ctx, attempt.ID, assistantID)
	if err != nil {
		return nil, err
	}
	if err := s.markPending(ctx, appID, types.StageInterview); err != nil {
		return nil, err
	}

	s.log.Info("interview scheduled",
		zap.String("application_id", appID.String()),
		zap.String("assistant_id", assistantID))
	return detail, nil
}

// HandleCallEnded runs the stage 3 evaluation off an end-of-call event. The
// event is keyed by assistant id, not application id: the chain
// assistant -> interview -> stage -> application is resolved first, and if
// any hop is missing the event is dropped and logged, never retried.
// Returns (nil, nil) for a dropped event.
func (s *Service) HandleCallEnded(ctx context.Context, event types.CallEndedEvent) (*StageResult, error) {
	res, err := s.db.ResolveInterviewByAssistant(ctx, event.AssistantID)
	if err != nil {
		return nil, err
	}
	if res == nil {
		s.log.Warn("dropping call-ended event: assistant not resolvable",
			zap.String("assistant_id", event.AssistantID),
			zap.String("call_id", event.CallID))
		return nil, nil
	}

	c, err := s.loadContext(ctx, res.ApplicationID)
	if err != nil {
		s.log.Warn("dropping call-ended event: application chain broken",
			zap.String("assistant_id", event.AssistantID),
			zap.Error(err))
		return nil, nil
	}

	return s.evaluateCall(ctx, c, res.StageID, res.InterviewID, res.Threshold, event)
}

// evaluateCall is the shared body of stage 3, also entered by an HR re-run
// that replays a previously recorded transcript onto a fresh attempt.
func (s *Service) evaluateCall(ctx context.Context, c *appContext, stageID, interviewID uuid.UUID, threshold float64, event types.CallEndedEvent) (*StageResult, error) {
	// The full transcript is persisted; only the inference call sees the
	// truncated version.
	update := &db.InterviewDetail{
		CallID:          &event.CallID,
		Transcript:      &event.Transcript,
		RecordingURL:    optString(event.RecordingURL),
		DurationSeconds: optFloat(event.DurationSeconds),
	}

	eval, err := evaluate.EvaluateInterview(ctx, s.llm, jobContext(c.Job), event.Transcript)
	if err != nil {
		s.log.Warn("interview evaluation failed",
			zap.String("application_id", c.App.ID.String()),
			zap.Error(err))
		v, _ := gate.DecideFailure(types.StageInterview, gate.StageFailed)
		commitErr := s.commitVerdict(ctx, stageID, c.App.ID, v, nil, map[string]string{"error": err.Error()}, "", func(tx pgx.Tx) error {
			return s.db.UpdateInterviewDetailTx(ctx, tx, interviewID, update)
		})
		if commitErr != nil {
			return nil, commitErr
		}
		return s.finish(ctx, c, stageID, v, nil)
	}

	update.CommunicationScore = &eval.CommunicationScore
	update.ProblemSolvingScore = &eval.ProblemSolvingScore
	update.RoleUnderstandingScore = &eval.RoleUnderstandingScore
	update.Rationale = eval.Rationale
	update.Strengths = eval.Strengths
	update.Weaknesses = eval.Weaknesses

	score := eval.Matrix.OverallScore
	v, err := gate.Decide(types.StageInterview, score, threshold)
	if err != nil {
		return nil, err
	}

	err = s.commitVerdict(ctx, stageID, c.App.ID, v, &score, eval, eval.Rationale, func(tx pgx.Tx) error {
		return s.db.UpdateInterviewDetailTx(ctx, tx, interviewID, update)
	})
	if err != nil {
		return nil, err
	}
	return s.finish(ctx, c, stageID, v, &score)
}

func optString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optFloat(f float64) *float64 {
	if f == 0 {
		return nil
	}
	return &f
}
