package dispatch

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
)

// Notifier stores a candidate-facing notification.
type Notifier interface {
	Notify(ctx context.Context, candidateID uuid.UUID, title, message, link string) error
}

// Emailer delivers a stage-result email to the candidate.
type Emailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// Suggester generates HR-visible alternate-job suggestions after a failed
// stage. Returns the number of suggestions created.
type Suggester interface {
	Suggest(ctx context.Context, applicationID, candidateID, failedJobID uuid.UUID, failedStage int) (int, error)
}

// StageOutcome carries everything the dispatcher needs about a finished
// stage attempt. Score is nil when the stage failed without a computed
// score (evaluator error or skipped stage).
type StageOutcome struct {
	Application *db.Application
	Candidate   *db.Candidate
	Job         *db.Job
	Stage       int
	Passed      bool
	Score       *float64
}

// Dispatcher fires the side effects that follow a committed status
// transition. Effects are independent: a failure in one is logged and the
// rest still run. Nothing here retries and nothing here can roll back the
// transition that already happened.
type Dispatcher struct {
	notifier  Notifier
	emailer   Emailer
	suggester Suggester
	log       *zap.Logger
}

func New(notifier Notifier, emailer Emailer, suggester Suggester, log *zap.Logger) *Dispatcher {
	return &Dispatcher{
		notifier:  notifier,
		emailer:   emailer,
		suggester: suggester,
		log:       log,
	}
}

// StageCompleted runs the notification, email, and (on failure) suggestion
// effects for a terminal stage outcome.
func (d *Dispatcher) StageCompleted(ctx context.Context, o StageOutcome) {
	title, message := stageResultCopy(o)
	link := applicationLink(o.Application.ID)

	if err := d.notifier.Notify(ctx, o.Candidate.ID, title, message, link); err != nil {
		d.log.Error("failed to create stage notification",
			zap.String("application_id", o.Application.ID.String()),
			zap.Int("stage", o.Stage),
			zap.Error(err))
	}

	if err := d.emailer.Send(ctx, o.Candidate.Email, title, message); err != nil {
		d.log.Error("failed to send stage email",
			zap.String("application_id", o.Application.ID.String()),
			zap.Int("stage", o.Stage),
			zap.Error(err))
	}

	if !o.Passed {
		n, err := d.suggester.Suggest(ctx, o.Application.ID, o.Candidate.ID, o.Job.ID, o.Stage)
		if err != nil {
			d.log.Error("failed to create job suggestions",
				zap.String("application_id", o.Application.ID.String()),
				zap.Int("stage", o.Stage),
				zap.Error(err))
		} else if n > 0 {
			d.log.Info("created alternate job suggestions",
				zap.String("application_id", o.Application.ID.String()),
				zap.Int("count", n))
		}
	}
}

// Hired fires the candidate-facing effects for an HR hire decision.
// Onboarding provisioning itself is handled outside this service.
func (d *Dispatcher) Hired(ctx context.Context, app *db.Application, candidate *db.Candidate, job *db.Job) {
	title := "Congratulations, you're hired!"
	message := fmt.Sprintf("You have been selected for the %s position. Our team will reach out with next steps.", job.Title)
	link := applicationLink(app.ID)

	if err := d.notifier.Notify(ctx, candidate.ID, title, message, link); err != nil {
		d.log.Error("failed to create hire notification",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
	if err := d.emailer.Send(ctx, candidate.Email, title, message); err != nil {
		d.log.Error("failed to send hire email",
			zap.String("application_id", app.ID.String()),
			zap.Error(err))
	}
}

func applicationLink(applicationID uuid.UUID) string {
	return "/applications/" + applicationID.String()
}

func stageResultCopy(o StageOutcome) (title, message string) {
	stageName := [4]string{"", "resume screening", "written assessment", "voice interview"}[o.Stage]

	if o.Passed {
		title = fmt.Sprintf("You passed the %s", stageName)
		switch o.Stage {
		case 1:
			message = fmt.Sprintf("Your resume for the %s position passed our screening. The next step is a short written assessment.", o.Job.Title)
		case 2:
			message = fmt.Sprintf("Your written answers for the %s position passed our review. The next step is a voice interview.", o.Job.Title)
		case 3:
			message = fmt.Sprintf("Your interview for the %s position went well. Our hiring team will review your application shortly.", o.Job.Title)
		}
		return title, message
	}

	title = fmt.Sprintf("Update on your %s application", o.Job.Title)
	message = fmt.Sprintf("Unfortunately your application for the %s position did not pass the %s. Thank you for your interest; we may suggest other open roles that fit your profile.", o.Job.Title, stageName)
	return title, message
}
