package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/types"
)

// handleCallEnded receives the voice platform's end-of-call event. An event
// that cannot be resolved to an application is acknowledged with 200 and
// dropped: the platform must not retry deliveries we will never be able to
// attribute.
func (s *Server) handleCallEnded(w http.ResponseWriter, r *http.Request) {
	var req types.CallEndedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := s.screener.HandleCallEnded(r.Context(), req.Event())
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if result == nil {
		s.jsonResponse(w, http.StatusOK, map[string]string{"status": "dropped"})
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}
