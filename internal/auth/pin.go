// Package auth implements PIN login and the JWT session tokens issued
// after it.
package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidPIN is returned when the entered PIN does not match. There is
// no lockout, rate limiting or attempt counting; the caller just shows a
// rejection.
var ErrInvalidPIN = errors.New("invalid PIN")

// PINAuthenticator checks the entered PIN against a bcrypt hash. The hash
// lives in configuration so the PIN itself is never stored.
type PINAuthenticator struct {
	hash []byte
}

// NewPINAuthenticator creates an authenticator from a bcrypt hash string.
func NewPINAuthenticator(bcryptHash string) (*PINAuthenticator, error) {
	if _, err := bcrypt.Cost([]byte(bcryptHash)); err != nil {
		return nil, fmt.Errorf("invalid PIN hash: %w", err)
	}
	return &PINAuthenticator{hash: []byte(bcryptHash)}, nil
}

// Authenticate verifies the entered PIN.
func (a *PINAuthenticator) Authenticate(pin string) error {
	if err := bcrypt.CompareHashAndPassword(a.hash, []byte(pin)); err != nil {
		return ErrInvalidPIN
	}
	return nil
}

// HashPIN produces the bcrypt hash to put in the configuration.
func HashPIN(pin string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(pin), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash PIN: %w", err)
	}
	return string(hash), nil
}
