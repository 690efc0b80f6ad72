package auth

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidCredentials covers both unknown-username and wrong-password:
	// the two must be indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrUsernameTaken = errors.New("username already exists")
	ErrEmailTaken    = errors.New("email already exists")

	// ErrUnknownRole signals a misconfigured role name. Not user-facing.
	ErrUnknownRole = errors.New("unknown role")

	// ErrInvalidOrExpiredToken covers not-found, expired and revoked refresh
	// tokens uniformly, so token state never leaks to a probing caller.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired refresh token")

	// ErrInvalidToken is an access-token verification failure: bad signature,
	// expired or malformed, uniformly.
	ErrInvalidToken = errors.New("invalid token")
)

// ValidationError reports malformed input, field by field. Recoverable by the
// caller correcting the request.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for field, tag := range e.Fields {
		parts = append(parts, fmt.Sprintf("%s: %s", field, tag))
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
