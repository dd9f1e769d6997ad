package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/db"
)

// CreateJobRequest is the HR job-creation body
type CreateJobRequest struct {
	Title            string   `json:"title"`
	Description      string   `json:"description"`
	Requirements     []string `json:"requirements"`
	Responsibilities []string `json:"responsibilities"`
	Questions        []string `json:"questions"`
	PassingThreshold float64  `json:"passing_threshold,omitempty"`
}

// handleCreateJob creates an open job with its screening configuration
func (s *Server) handleCreateJob(w http.ResponseWriter, r *http.Request) {
	var req CreateJobRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" || req.Description == "" {
		s.errorResponse(w, http.StatusBadRequest, "title and description are required")
		return
	}
	if req.PassingThreshold < 0 || req.PassingThreshold > 10 {
		s.errorResponse(w, http.StatusBadRequest, "passing_threshold must be within [0,10]")
		return
	}

	job, err := s.db.CreateJob(r.Context(), &db.JobCreateInput{
		Title:            req.Title,
		Description:      req.Description,
		Requirements:     req.Requirements,
		Responsibilities: req.Responsibilities,
		Questions:        req.Questions,
		PassingThreshold: req.PassingThreshold,
	})
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, job)
}

// handleListJobs lists jobs, by default only open ones
func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")
	if status == "" {
		status = db.JobOpen
	}
	if status == "all" {
		status = ""
	}

	jobs, err := s.db.ListJobs(r.Context(), status, 0)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"jobs": jobs})
}

// handleGetJob returns one job
func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	job, err := s.db.GetJob(r.Context(), jobID)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if job == nil {
		s.errorResponse(w, http.StatusNotFound, "job not found")
		return
	}
	s.jsonResponse(w, http.StatusOK, job)
}

// handleCloseJob closes a job; closed jobs stop accepting applications and
// drop out of alternate-job suggestions
func (s *Server) handleCloseJob(w http.ResponseWriter, r *http.Request) {
	jobID, ok := s.pathUUID(w, r, "id")
	if !ok {
		return
	}

	if err := s.db.CloseJob(r.Context(), jobID); err != nil {
		s.serviceError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": db.JobClosed})
}
