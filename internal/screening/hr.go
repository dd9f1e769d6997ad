package screening

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/types"
)

// overrideRecord is stored as the attempt's evaluation payload so an
// overridden attempt is distinguishable from a scored one
type overrideRecord struct {
	Override bool   `json:"override"`
	Action   string `json:"action"`
	By       string `json:"by,omitempty"`
}

// Override is the HR force pass/fail path. It bypasses the evaluators but
// goes through the same gate transition table as the automatic path; a
// request from a disallowed source status returns a GuardViolationError and
// writes nothing. The forced attempt carries no score.
func (s *Service) Override(ctx context.Context, appID uuid.UUID, stage int, pass bool, hrEmail string) (*StageResult, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}

	v, err := gate.DecideForced(gate.Status(c.App.Status), stage, pass)
	if err != nil {
		return nil, err
	}

	attempt, err := s.db.CreateStageAttempt(ctx, appID, stage, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}

	action := "fail"
	if pass {
		action = "pass"
	}
	record := overrideRecord{Override: true, Action: action, By: hrEmail}
	if err := s.commitVerdict(ctx, attempt.ID, appID, v, nil, record, "", nil); err != nil {
		return nil, err
	}

	s.log.Info("stage overridden",
		zap.String("application_id", appID.String()),
		zap.Int("stage", stage),
		zap.String("action", action),
		zap.String("by", hrEmail))

	return s.finish(ctx, c, attempt.ID, v, nil)
}

// MarkHired is the explicit HR action that moves a stage3_passed application
// to hired. There is no automatic hire.
func (s *Service) MarkHired(ctx context.Context, appID uuid.UUID) (*db.Application, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}

	newStatus, err := gate.DecideHire(gate.Status(c.App.Status))
	if err != nil {
		return nil, err
	}
	if err := s.db.SetStatus(ctx, appID, newStatus.String()); err != nil {
		return nil, err
	}

	app, err := s.db.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	s.dispatcher.Hired(ctx, app, c.Candidate, c.Job)

	s.log.Info("application marked hired",
		zap.String("application_id", appID.String()))
	return app, nil
}

// Withdraw moves a non-terminal application to withdrawn at the candidate's
// request
func (s *Service) Withdraw(ctx context.Context, appID uuid.UUID) (*db.Application, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}
	if gate.Status(c.App.Status).IsTerminal() {
		return nil, &InvalidStateError{Operation: "withdraw", Status: c.App.Status}
	}
	if err := s.db.SetStatus(ctx, appID, gate.StatusWithdrawn.String()); err != nil {
		return nil, err
	}
	return s.db.GetApplication(ctx, appID)
}

// RerunStage creates a brand-new attempt for a stage the application has
// already reached and re-enters the gate from scratch. Stage 1 re-screens
// the stored resume; stage 2 replays the previously submitted answers;
// stage 3 re-evaluates the recorded transcript onto a fresh attempt.
func (s *Service) RerunStage(ctx context.Context, appID uuid.UUID, stage int) (*StageResult, error) {
	c, err := s.loadContext(ctx, appID)
	if err != nil {
		return nil, err
	}
	if !gate.CanRerun(gate.Status(c.App.Status), stage) {
		return nil, &gate.GuardViolationError{Action: "re-run", Stage: stage, Current: gate.Status(c.App.Status)}
	}

	switch stage {
	case types.StageResume:
		return s.runResumeStage(ctx, c)
	case types.StageAnswers:
		return s.rerunAnswers(ctx, c)
	case types.StageInterview:
		return s.rerunInterview(ctx, c)
	}
	return nil, &gate.GuardViolationError{Action: "re-run", Stage: stage, Current: gate.Status(c.App.Status)}
}

func (s *Service) rerunAnswers(ctx context.Context, c *appContext) (*StageResult, error) {
	prior, err := s.db.CurrentStageAttempt(ctx, c.App.ID, types.StageAnswers)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, &InvalidStateError{Operation: "re-run answers", Status: c.App.Status}
	}
	rows, err := s.db.GetAnswerEvaluations(ctx, prior.ID)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, &InvalidStateError{Operation: "re-run answers", Status: c.App.Status}
	}

	pairs := make([]types.QuestionAnswer, len(rows))
	for i, r := range rows {
		pairs[i] = types.QuestionAnswer{Question: r.Question, Answer: r.Answer}
	}

	attempt, err := s.db.CreateStageAttempt(ctx, c.App.ID, types.StageAnswers, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}
	if err := s.markPending(ctx, c.App.ID, types.StageAnswers); err != nil {
		return nil, err
	}
	return s.evaluateAnswerSet(ctx, c, attempt, pairs)
}

func (s *Service) rerunInterview(ctx context.Context, c *appContext) (*StageResult, error) {
	prior, err := s.db.CurrentStageAttempt(ctx, c.App.ID, types.StageInterview)
	if err != nil {
		return nil, err
	}
	if prior == nil {
		return nil, &InvalidStateError{Operation: "re-run interview", Status: c.App.Status}
	}
	detail, err := s.db.GetInterviewDetailByStage(ctx, prior.ID)
	if err != nil {
		return nil, err
	}
	if detail == nil || detail.Transcript == nil || *detail.Transcript == "" {
		return nil, &InvalidStateError{Operation: "re-run interview", Status: c.App.Status}
	}

	attempt, err := s.db.CreateStageAttempt(ctx, c.App.ID, types.StageInterview, c.Job.PassingThreshold)
	if err != nil {
		return nil, err
	}
	fresh, err := s.db.CreateInterviewDetail(ctx, attempt.ID, detail.AssistantID)
	if err != nil {
		return nil, err
	}
	if err := s.markPending(ctx, c.App.ID, types.StageInterview); err != nil {
		return nil, err
	}

	event := types.CallEndedEvent{
		AssistantID: detail.AssistantID,
		Transcript:  *detail.Transcript,
	}
	if detail.CallID != nil {
		event.CallID = *detail.CallID
	}
	if detail.RecordingURL != nil {
		event.RecordingURL = *detail.RecordingURL
	}
	if detail.DurationSeconds != nil {
		event.DurationSeconds = *detail.DurationSeconds
	}
	return s.evaluateCall(ctx, c, attempt.ID, fresh.ID, c.Job.PassingThreshold, event)
}
