package dispatch

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/db"
)

// DBNotifier persists notifications through the database layer.
type DBNotifier struct {
	DB *db.DB
}

func (n *DBNotifier) Notify(ctx context.Context, candidateID uuid.UUID, title, message, link string) error {
	_, err := n.DB.CreateNotification(ctx, candidateID, title, message, link)
	return err
}

// DBSuggester generates alternate-job suggestions through the database layer.
type DBSuggester struct {
	DB *db.DB
}

func (s *DBSuggester) Suggest(ctx context.Context, applicationID, candidateID, failedJobID uuid.UUID, failedStage int) (int, error) {
	return s.DB.CreateSuggestionsForOpenJobs(ctx, applicationID, candidateID, failedJobID, failedStage)
}

// LogEmailer writes the email to the log instead of delivering it. Stands in
// until an outbound mail provider is wired up.
type LogEmailer struct {
	Log *zap.Logger
}

func (e *LogEmailer) Send(_ context.Context, to, subject, body string) error {
	e.Log.Info("email dispatched",
		zap.String("to", to),
		zap.String("subject", subject),
		zap.String("body", body))
	return nil
}
