package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/mnakagawa/kakei/internal/auth"
	"github.com/mnakagawa/kakei/internal/session"
)

// SessionCookie is the cookie the session token is carried in when the
// client is a browser form rather than an API consumer.
const SessionCookie = "kakei_session"

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const sessionKey contextKey = "session"

// GetSession extracts the session context from the request context.
// Returns a zero (unauthenticated) context if not found.
func GetSession(ctx context.Context) session.Context {
	s, _ := ctx.Value(sessionKey).(session.Context)
	return s
}

// RequireAuth validates the session token from the Authorization header
// or the session cookie and attaches the decoded session context to the
// request. Requests without a valid, unexpired session get a 401 with a
// visible message; nothing else happens to them.
func RequireAuth(sessions *auth.SessionManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := tokenFromRequest(r)
			if token == "" {
				unauthorized(w, auth.ErrMissingToken.Error())
				return
			}

			sess, err := sessions.Validate(token)
			if err != nil {
				unauthorized(w, auth.ErrInvalidToken.Error())
				return
			}
			if session.IsExpired(sess, time.Now(), sessions.Timeout()) {
				unauthorized(w, "session timed out, please log in again")
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, sess)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func tokenFromRequest(r *http.Request) string {
	if header := r.Header.Get("Authorization"); header != "" {
		parts := strings.Split(header, " ")
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}
	if cookie, err := r.Cookie(SessionCookie); err == nil {
		return cookie.Value
	}
	return ""
}

func unauthorized(w http.ResponseWriter, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
