// Package auth implements the authentication core: password hashing,
// credential verification, signed session tokens with revocation, and
// per-session CSRF tokens.
package auth

import "errors"

var (
	// ErrAuthFailed is returned for any failed credential check.
	// It deliberately doesn't distinguish an unknown username from a
	// wrong password so the login endpoint can't be used to probe for
	// existing accounts.
	ErrAuthFailed = errors.New("invalid username or password")

	// ErrInvalidSession is returned when a session token is missing,
	// malformed, tampered with, expired, or revoked.
	ErrInvalidSession = errors.New("invalid session")
)
