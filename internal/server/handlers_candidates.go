package server

import (
	"encoding/json"
	"net/http"
)

// CreateCandidateRequest registers (or re-uses) a candidate by email
type CreateCandidateRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// handleCreateCandidate is an upsert on email: re-registering an existing
// candidate returns the existing record
func (s *Server) handleCreateCandidate(w http.ResponseWriter, r *http.Request) {
	var req CreateCandidateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Name == "" || req.Email == "" {
		s.errorResponse(w, http.StatusBadRequest, "name and email are required")
		return
	}

	candidate, err := s.db.FindOrCreateCandidate(r.Context(), req.Name, req.Email)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, candidate)
}

// handleListNotifications returns a candidate's notifications, newest first
func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	candidateID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	notifications, err := s.db.ListNotifications(r.Context(), candidateID, 0)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"notifications": notifications})
}
