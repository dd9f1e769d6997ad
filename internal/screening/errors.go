package screening

import "fmt"

// NotFoundError reports a missing entity referenced by an operation
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.ID)
}

// InvalidStateError rejects a candidate-path operation requested while the
// application is in a status that does not allow it
type InvalidStateError struct {
	Operation string
	Status    string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("cannot %s while application status is %q", e.Operation, e.Status)
}

// IncompleteAnswersError rejects an answer submission that does not cover
// every configured question for the job
type IncompleteAnswersError struct {
	Expected int
	Got      int
}

func (e *IncompleteAnswersError) Error() string {
	return fmt.Sprintf("job requires %d answers, got %d", e.Expected, e.Got)
}

// ClosedJobError rejects an application to a job that is no longer open
type ClosedJobError struct {
	JobID string
}

func (e *ClosedJobError) Error() string {
	return fmt.Sprintf("job is not open for applications: %s", e.JobID)
}
