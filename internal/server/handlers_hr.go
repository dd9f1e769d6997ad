package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jonathan/candidate-screener/internal/db"
	"github.com/jonathan/candidate-screener/internal/types"
)

// handleOverride is the HR force pass/fail path. The gate applies the same
// transition table as the automatic path; a disallowed source status comes
// back as a conflict and nothing is written.
func (s *Server) handleOverride(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req types.OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.screener.Override(r.Context(), appID, req.Stage, req.Action == "pass", s.requesterEmail(r))
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleHire marks a stage3_passed application hired
func (s *Server) handleHire(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	app, err := s.screener.MarkHired(r.Context(), appID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, app)
}

// ScheduleInterviewRequest assigns the voice assistant for stage 3
type ScheduleInterviewRequest struct {
	AssistantID string `json:"assistant_id"`
}

// handleScheduleInterview provisions the stage 3 attempt and its interview
// record ahead of the call
func (s *Server) handleScheduleInterview(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	var req ScheduleInterviewRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.AssistantID == "" {
		s.errorResponse(w, http.StatusBadRequest, "assistant_id is required")
		return
	}

	detail, err := s.screener.ScheduleInterview(r.Context(), appID, req.AssistantID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, detail)
}

// handleRerunStage creates a fresh attempt for an already-reached stage
func (s *Server) handleRerunStage(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}
	stage, err := strconv.Atoi(r.PathValue("stage"))
	if err != nil || stage < 1 || stage > 3 {
		s.errorResponse(w, http.StatusBadRequest, "invalid stage number")
		return
	}

	result, err := s.screener.RerunStage(r.Context(), appID, stage)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleListSuggestions returns the alternate-job suggestions generated for
// a failed application
func (s *Server) handleListSuggestions(w http.ResponseWriter, r *http.Request) {
	appID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	suggestions, err := s.db.ListSuggestions(r.Context(), appID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"suggestions": suggestions})
}

// handleListApplications lists applications with optional job/status filters
func (s *Server) handleListApplications(w http.ResponseWriter, r *http.Request) {
	opts := db.ListApplicationsOptions{
		Status: r.URL.Query().Get("status"),
	}
	if jobIDStr := r.URL.Query().Get("job_id"); jobIDStr != "" {
		jobID, err := uuid.Parse(jobIDStr)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, "invalid job_id")
			return
		}
		opts.JobID = &jobID
	}
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			opts.Limit = limit
		}
	}

	apps, err := s.db.ListApplications(r.Context(), opts)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"applications": apps})
}

// requesterEmail reads the authenticated HR user's email off the bearer
// token. The middleware has already validated it by the time this runs.
func (s *Server) requesterEmail(r *http.Request) string {
	parts := strings.Fields(r.Header.Get("Authorization"))
	if len(parts) != 2 {
		return ""
	}
	claims, err := s.jwtService.ValidateToken(parts[1])
	if err != nil {
		return ""
	}
	return claims.Email
}
