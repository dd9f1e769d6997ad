package server

import (
	"net/http"

	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/screening"
)

// ErrInvalidCredentials indicates invalid login credentials
type ErrInvalidCredentials struct{}

func (e *ErrInvalidCredentials) Error() string {
	return "invalid email or password"
}

// HTTPStatus returns the appropriate HTTP status code for an error.
// Guard violations and out-of-order candidate actions are conflicts: the
// request was well-formed but the application's current status forbids it.
func HTTPStatus(err error) int {
	switch err.(type) {
	case *ErrInvalidCredentials:
		return http.StatusUnauthorized
	case *screening.NotFoundError:
		return http.StatusNotFound
	case *screening.IncompleteAnswersError:
		return http.StatusBadRequest
	case *screening.InvalidStateError, *screening.ClosedJobError, *gate.GuardViolationError:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
