package server

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jonathan/candidate-screener/internal/types"
)

// pathUUID parses a UUID path segment; writes a 400 and returns false on
// a malformed value.
func (s *Server) pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue(name))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid "+name)
		return uuid.Nil, false
	}
	return id, true
}

// serviceError maps a screening/gate error onto the response
func (s *Server) serviceError(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.log.Error("request failed", zap.Error(err))
		s.errorResponse(w, status, "internal error")
		return
	}
	s.errorResponse(w, status, err.Error())
}

// handleCreateApplication creates an application and runs the resume stage
// synchronously; the response carries the stage 1 verdict.
func (s *Server) handleCreateApplication(w http.ResponseWriter, r *http.Request) {
	var req types.CreateApplicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.screener.CreateApplication(r.Context(), req.JobID, req.CandidateID, req.ResumeText)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result)
}

// handleSubmitAnswers runs stage 2 over a complete answer set
func (s *Server) handleSubmitAnswers(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req types.SubmitAnswersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.screener.SubmitAnswers(r.Context(), appID, req.Answers)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleWithdraw moves an application to withdrawn
func (s *Server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.screener.Withdraw(r.Context(), appID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleGetApplication returns one application
func (s *Server) handleGetApplication(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, _, err := s.screener.GetApplication(r.Context(), appID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// handleListStages returns every stage attempt for an application, in
// stage/attempt order
func (s *Server) handleListStages(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	_, stages, err := s.screener.GetApplication(r.Context(), appID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"stages": stages})
}
