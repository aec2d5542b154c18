package rest

import (
	"errors"
	"net/http"
	"time"

	"github.com/kingtech/dboptima/internal/audit"
	"github.com/kingtech/dboptima/internal/auth"
)

// loginRequest is the POST /api/v1/auth/login body.
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse mirrors the shape the dashboard's login page consumes.
type loginResponse struct {
	Success bool      `json:"success"`
	Token   string    `json:"token"`
	User    auth.User `json:"user"`
}

// handleLogin responds to POST /api/v1/auth/login.
//
// Returns HTTP 400 for a malformed body, HTTP 401 with a generic
// "Invalid credentials" message for any authentication failure (unknown
// email and wrong password are deliberately indistinguishable), and
// HTTP 200 with a signed token and the user profile on success.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeBody(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "request body must be JSON with 'email' and 'password'")
		return
	}

	user, err := s.users.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			if aerr := s.trail.Append(audit.Event{Actor: "anonymous", Action: "login_failed", Detail: req.Email}); aerr != nil {
				s.logger.Warn("audit append failed", "error", aerr)
			}
			writeError(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	token, err := s.issuer.Issue(user)
	if err != nil {
		s.logger.Error("token issue failed", "error", err)
		writeError(w, http.StatusInternalServerError, "Login failed")
		return
	}

	if aerr := s.trail.Append(audit.Event{Actor: user.Email, Action: "login"}); aerr != nil {
		s.logger.Warn("audit append failed", "error", aerr)
	}

	writeJSON(w, http.StatusOK, loginResponse{Success: true, Token: token, User: user})
}

// healthPayload is the fixed-shape status body served by both health
// routes. The per-service statuses are nominal values, not live probes.
type healthPayload struct {
	Status    string            `json:"status"`
	Timestamp string            `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// handleHealthz responds to GET /healthz with a minimal liveness body for
// load balancers.
func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleHealth responds to GET /api/v1/health with the dashboard's service
// status payload.
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, healthPayload{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Services: map[string]string{
			"database":   "connected",
			"ai_service": "connected",
			"cache":      "connected",
		},
	})
}
