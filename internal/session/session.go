// Package session models the per-request authentication state as an
// explicit value instead of ambient mutable globals.
package session

import "time"

// Context is the authentication state attached to one request.
type Context struct {
	// Authenticated reports whether the request carries a valid login.
	Authenticated bool

	// AuthTime is the instant the login happened. Zero when
	// unauthenticated.
	AuthTime time.Time
}

// IsExpired reports whether an authenticated session has outlived the
// configured timeout at the given instant. Only an authenticated session
// can time out; an unauthenticated one is simply not logged in.
func IsExpired(c Context, now time.Time, timeout time.Duration) bool {
	if !c.Authenticated || c.AuthTime.IsZero() {
		return false
	}
	return now.Sub(c.AuthTime) > timeout
}
