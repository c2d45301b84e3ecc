package server

import (
	"encoding/json"
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// loginRequest is the body of POST /auth/login
type loginRequest struct {
	AccessCode string `json:"access_code"`
}

// handleLogin exchanges the deployment access code for a session token.
// The access code is stored only as a bcrypt hash (ACCESS_CODE_HASH).
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if s.accessCodeHash == "" {
		s.errorResponse(w, http.StatusNotFound, "authentication is not configured")
		return
	}

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if bcrypt.CompareHashAndPassword([]byte(s.accessCodeHash), []byte(req.AccessCode)) != nil {
		s.errorResponse(w, http.StatusUnauthorized, "invalid access code")
		return
	}

	token, err := s.jwtService.GenerateToken()
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"token": token})
}

// withAuth requires a valid bearer token when authentication is configured.
// Deployments without ACCESS_CODE_HASH run open (local development).
func (s *Server) withAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.accessCodeHash == "" || s.jwtService == nil {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			s.errorResponse(w, http.StatusUnauthorized, "missing bearer token")
			return
		}
		if _, err := s.jwtService.ValidateToken(token); err != nil {
			s.errorResponse(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}
