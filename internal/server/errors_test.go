package server

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jonathan/candidate-screener/internal/gate"
	"github.com/jonathan/candidate-screener/internal/screening"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "invalid credentials",
			err:  &ErrInvalidCredentials{},
			want: http.StatusUnauthorized,
		},
		{
			name: "not found",
			err:  &screening.NotFoundError{Kind: "application", ID: "x"},
			want: http.StatusNotFound,
		},
		{
			name: "incomplete answers",
			err:  &screening.IncompleteAnswersError{Expected: 3, Got: 1},
			want: http.StatusBadRequest,
		},
		{
			name: "invalid state",
			err:  &screening.InvalidStateError{Operation: "submit answers", Status: "submitted"},
			want: http.StatusConflict,
		},
		{
			name: "closed job",
			err:  &screening.ClosedJobError{JobID: "x"},
			want: http.StatusConflict,
		},
		{
			name: "guard violation",
			err:  &gate.GuardViolationError{Action: "force-pass", Stage: 2, Current: gate.StatusSubmitted},
			want: http.StatusConflict,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, HTTPStatus(tt.err))
		})
	}
}
