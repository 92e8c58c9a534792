package service

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/mnakagawa/kakei/internal/auth"
	"github.com/mnakagawa/kakei/internal/middleware"
)

// AuthService handles PIN login.
type AuthService struct {
	pins     *auth.PINAuthenticator
	sessions *auth.SessionManager
	now      func() time.Time
}

// NewAuthService creates an AuthService.
func NewAuthService(pins *auth.PINAuthenticator, sessions *auth.SessionManager) *AuthService {
	return &AuthService{pins: pins, sessions: sessions, now: time.Now}
}

type loginRequest struct {
	PIN string `json:"pin"`
}

type loginResponse struct {
	Token          string `json:"token"`
	TimeoutMinutes int    `json:"timeout_minutes"`
}

// Login checks the PIN and hands out a session token, both as JSON and as
// a cookie for form clients. A wrong PIN is a plain 401; deliberately no
// lockout and no attempt counting.
func (s *AuthService) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := s.pins.Authenticate(req.PIN); err != nil {
		slog.Warn("Login rejected", "remote_addr", r.RemoteAddr)
		writeError(w, http.StatusUnauthorized, "wrong PIN")
		return
	}

	now := s.now()
	token, err := s.sessions.Issue(now)
	if err != nil {
		slog.Error("Failed to issue session token", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to create session")
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		Expires:  now.Add(s.sessions.Timeout()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	slog.Info("Login successful", "remote_addr", r.RemoteAddr)
	writeJSON(w, http.StatusOK, loginResponse{
		Token:          token,
		TimeoutMinutes: int(s.sessions.Timeout() / time.Minute),
	})
}
