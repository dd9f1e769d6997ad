package server

import (
	"encoding/json"
	"net/http"

	"github.com/jonathan/candidate-screener/internal/types"
)

// handleLogin authenticates an HR user and issues a JWT. Unknown emails and
// wrong passwords are indistinguishable in the response.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req types.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		s.errorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := s.db.GetHRUserByEmail(r.Context(), req.Email)
	if err != nil {
		s.serviceError(w, err)
		return
	}
	if user == nil || !s.password.VerifyPassword(req.Password, user.PasswordHash) {
		credErr := &ErrInvalidCredentials{}
		s.errorResponse(w, HTTPStatus(credErr), credErr.Error())
		return
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Email)
	if err != nil {
		s.serviceError(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, types.LoginResponse{
		Token: token,
		Email: user.Email,
		Name:  user.Name,
	})
}
