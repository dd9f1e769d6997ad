// Package screening orchestrates the three-stage candidate pipeline:
// evaluator call, matrix compute, gate transition, side effects. Each stage
// commits its detail record, its stage attempt, and the application status
// as one transaction, then fires the dispatcher outside it.
package screening

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/dispatch"
	"github.com/jonathan/candidate-screener/internal/evaluate"
	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/ingestion"
	"github.com/jonathan/candidate-screener/internal/llm"
)

// Store is the persistence surface the pipeline drives. *db.DB implements it;
// the indirection exists so the pipeline can be exercised without Postgres.
type Store interface {
	GetApplication(ctx context.Context, id uuid.UUID) (*db.Application, error)
	CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumeText string) (*db.Application, error)
	GetJob(ctx context.Context, id uuid.UUID) (*db.Job, error)
	GetCandidate(ctx context.Context, id uuid.UUID) (*db.Candidate, error)
	CreateStageAttempt(ctx context.Context, appID uuid.UUID, stageNumber int, threshold float64) (*db.ScreeningStage, error)
	CurrentStageAttempt(ctx context.Context, appID uuid.UUID, stageNumber int) (*db.ScreeningStage, error)
	ListStageAttempts(ctx context.Context, appID uuid.UUID) ([]db.ScreeningStage, error)
	GetAnswerEvaluations(ctx context.Context, stageID uuid.UUID) ([]db.AnswerEvaluationRow, error)
	CreateInterviewDetail(ctx context.Context, stageID uuid.UUID, assistantID string) (*db.InterviewDetail, error)
	GetInterviewDetailByStage(ctx context.Context, stageID uuid.UUID) (*db.InterviewDetail, error)
	ResolveInterviewByAssistant(ctx context.Context, assistantID string) (*db.InterviewResolution, error)
	SetStatus(ctx context.Context, appID uuid.UUID, status string) error
	WithTx(ctx context.Context, fn func(tx pgx.Tx) error) error
	FinishStageAttemptTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, status string, score *float64, evaluation any) error
	ApplyTransitionTx(ctx context.Context, tx pgx.Tx, appID uuid.UUID, status string, currentStage int, overallScore *float64, aiSummary string) error
	SaveResumeAnalysisTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, analysis *db.ResumeAnalysis) error
	SaveAnswerEvaluationsTx(ctx context.Context, tx pgx.Tx, stageID uuid.UUID, rows []db.AnswerEvaluationRow) error
	UpdateInterviewDetailTx(ctx context.Context, tx pgx.Tx, interviewID uuid.UUID, update *db.InterviewDetail) error
}

// Service is the screening pipeline entry point. One instance serves all
// applications; there is no cross-application state.
type Service struct {
	db         Store
	llm        llm.Client
	dispatcher *dispatch.Dispatcher
	log        *zap.Logger
}

func NewService(database Store, client llm.Client, dispatcher *dispatch.Dispatcher, log *zap.Logger) *Service {
	return &Service{
		db:         database,
		llm:        client,
		dispatcher: dispatcher,
		log:        log,
	}
}

// StageResult is what a stage run hands back to the caller: the refreshed
// application, the attempt row, and the gate's verdict.
type StageResult struct {
	Application *db.Application    `json:"application"`
	Stage       *db.ScreeningStage `json:"stage"`
	Verdict     gate.Verdict       `json:"verdict"`
}

// appContext bundles the three rows every stage run needs
type appContext struct {
	App       *db.Application
	Job       *db.Job
	Candidate *db.Candidate
}

func (s *Service) loadContext(ctx context.Context, appID uuid.UUID) (*appContext, error) {
	app, err := s.db.GetApplication(ctx, appID)
	if err != nil {
		return nil, err
	}
	if app == nil {
		return nil, &NotFoundError{Kind: "application", ID: appID.String()}
	}
	job, err := s.db.GetJob(ctx, app.JobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Kind: "job", ID: app.JobID.String()}
	}
	candidate, err := s.db.GetCandidate(ctx, app.CandidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, &NotFoundError{Kind: "candidate", ID: app.CandidateID.String()}
	}
	return &appContext{App: app, Job: job, Candidate: candidate}, nil
}

func jobContext(job *db.Job) evaluate.JobContext {
	return evaluate.JobContext{
		Title:            job.Title,
		Description:      job.Description,
		Requirements:     job.Requirements,
		Responsibilities: job.Responsibilities,
	}
}

// CreateApplication records a new application and immediately runs the
// resume stage. The resume text is normalized (HTML stripped, whitespace
// collapsed) before it is stored, so the empty-resume fast path sees the
// text the evaluator would see.
func (s *Service) CreateApplication(ctx context.Context, jobID, candidateID uuid.UUID, resumeText string) (*StageResult, error) {
	job, err := s.db.GetJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if job == nil {
		return nil, &NotFoundError{Kind: "job", ID: jobID.String()}
	}
	if job.Status != db.JobOpen {
		return nil, &ClosedJobError{JobID: jobID.String()}
	}
	candidate, err := s.db.GetCandidate(ctx, candidateID)
	if err != nil {
		return nil, err
	}
	if candidate == nil {
		return nil, &NotFoundError{Kind: "candidate", ID: candidateID.String()}
	}

	app, err := s.db.CreateApplication(ctx, jobID, candidateID, ingestion.Normalize(resumeText))
	if err != nil {
		return nil, err
	}

	s.log.Info("application created",
		zap.String("application_id", app.ID.String()),
		zap.String("job_id", jobID.String()),
		zap.String("candidate_id", candidateID.String()))

	return s.ScreenResume(ctx, app.ID)
}

// markPending moves the application into the stage's pending status before
// the evaluator runs, so HR can see (and force-fail) an in-flight stage.
func (s *Service) markPending(ctx context.Context, appID uuid.UUID, stage int) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		return s.db.ApplyTransitionTx(ctx, tx, appID, gate.PendingStatus(stage).String(), stage, nil, "")
	})
}

// commitVerdict applies the triple write for a stage attempt: the detail
// record (written by detailTx, which may be nil when there is none), the
// attempt's terminal state, and the application's {status, currentStage,
// overallScore} tuple. All-or-nothing; a crash between them cannot leave
// the application status disagreeing with its latest attempt.
func (s *Service) commitVerdict(ctx context.Context, stageID, appID uuid.UUID, v gate.Verdict, score *float64, evaluation any, summary string, detailTx func(tx pgx.Tx) error) error {
	return s.db.WithTx(ctx, func(tx pgx.Tx) error {
		if detailTx != nil {
			if err := detailTx(tx); err != nil {
				return err
			}
		}
		if err := s.db.FinishStageAttemptTx(ctx, tx, stageID, string(v.StageStatus), score, evaluation); err != nil {
			return err
		}
		return s.db.ApplyTransitionTx(ctx, tx, appID, v.Status.String(), v.Stage, score, summary)
	})
}

// finish reloads the application, fires the dispatcher, and packages the
// result. Dispatch failures are logged inside the dispatcher and never
// surface here; the transition is already committed.
func (s *Service) finish(ctx context.Context, c *appContext, stageID uuid.UUID, v gate.Verdict, score *float64) (*StageResult, error) {
	app, err := s.db.GetApplication(ctx, c.App.ID)
	if err != nil {
		return nil, err
	}
	stage, err := s.db.CurrentStageAttempt(ctx, c.App.ID, v.Stage)
	if err != nil {
		return nil, err
	}

	s.dispatcher.StageCompleted(ctx, dispatch.StageOutcome{
		Application: app,
		Candidate:   c.Candidate,
		Job:         c.Job,
		Stage:       v.Stage,
		Passed:      v.Passed,
		Score:       score,
	})

	s.log.Info("stage completed",
		zap.String("application_id", c.App.ID.String()),
		zap.Int("stage", v.Stage),
		zap.Bool("passed", v.Passed),
		zap.String("status", v.Status.String()))

	return &StageResult{Application: app, Stage: stage, Verdict: v}, nil
}

// GetApplication returns an application with its stage history
func (s *Service) GetApplication(ctx context.Context, appID uuid.UUID) (*db.Application, []db.ScreeningStage, error) {
	app, err := s.db.GetApplication(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	if app == nil {
		return nil, nil, &NotFoundError{Kind: "application", ID: appID.String()}
	}
	stages, err := s.db.ListStageAttempts(ctx, appID)
	if err != nil {
		return nil, nil, err
	}
	return app, stages, nil
}
