package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mnakagawa/kakei/internal/auth"
	"github.com/mnakagawa/kakei/internal/session"
)

func newProtectedHandler(t *testing.T, sessions *auth.SessionManager) (http.Handler, *session.Context) {
	t.Helper()
	var seen session.Context
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetSession(r.Context())
		w.WriteHeader(http.StatusOK)
	})
	return RequireAuth(sessions)(inner), &seen
}

func TestRequireAuth(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret-key-at-least-32-bytes!!", 30*time.Minute)
	handler, seen := newProtectedHandler(t, sessions)

	token, err := sessions.Issue(time.Now())
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	tests := []struct {
		name     string
		decorate func(*http.Request)
		want     int
	}{
		{
			name:     "no token",
			decorate: func(r *http.Request) {},
			want:     http.StatusUnauthorized,
		},
		{
			name: "bearer token",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer "+token)
			},
			want: http.StatusOK,
		},
		{
			name: "session cookie",
			decorate: func(r *http.Request) {
				r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
			},
			want: http.StatusOK,
		},
		{
			name: "malformed authorization header",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", token)
			},
			want: http.StatusUnauthorized,
		},
		{
			name: "garbage token",
			decorate: func(r *http.Request) {
				r.Header.Set("Authorization", "Bearer not.a.token")
			},
			want: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
			tt.decorate(req)
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}

	// A request that passed carries an authenticated session context.
	if !seen.Authenticated {
		t.Error("inner handler saw an unauthenticated session")
	}
}

func TestRequireAuthRejectsExpiredToken(t *testing.T) {
	sessions := auth.NewSessionManager("test-secret-key-at-least-32-bytes!!", 30*time.Minute)
	handler, _ := newProtectedHandler(t, sessions)

	token, err := sessions.Issue(time.Now().Add(-time.Hour))
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("expired session passed with status %d", w.Code)
	}
}

func TestGetSessionWithoutMiddleware(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if s := GetSession(req.Context()); s.Authenticated {
		t.Error("bare request context reports an authenticated session")
	}
}
