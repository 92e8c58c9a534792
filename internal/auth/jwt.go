package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/mnakagawa/kakei/internal/session"
)

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingToken = errors.New("authorization token required")
)

// SessionManager issues and validates the JWT session tokens handed out
// after a successful PIN login. Token lifetime equals the configured
// session timeout, so an expired token and a timed-out session are the
// same event seen from two sides.
type SessionManager struct {
	secretKey []byte
	timeout   time.Duration
}

// Claims carries the login instant alongside the registered claims.
type Claims struct {
	AuthTime int64 `json:"auth_time"`
	jwt.RegisteredClaims
}

// NewSessionManager creates a manager signing with the given secret.
// secretKey should be a strong random string (e.g. 32 bytes).
func NewSessionManager(secretKey string, timeout time.Duration) *SessionManager {
	return &SessionManager{
		secretKey: []byte(secretKey),
		timeout:   timeout,
	}
}

// Timeout returns the configured session timeout.
func (m *SessionManager) Timeout() time.Duration {
	return m.timeout
}

// Issue creates a session token for a login at the given instant.
func (m *SessionManager) Issue(now time.Time) (string, error) {
	claims := &Claims{
		AuthTime: now.Unix(),
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(m.timeout)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

// Validate parses a session token and returns the session context it
// encodes.
func (m *SessionManager) Validate(tokenString string) (session.Context, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
			}
			return m.secretKey, nil
		},
	)
	if err != nil {
		return session.Context{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return session.Context{}, ErrInvalidToken
	}

	return session.Context{
		Authenticated: true,
		AuthTime:      time.Unix(claims.AuthTime, 0),
	}, nil
}
