package service

import (
	"errors"
	"fmt"
)

// ErrAuth is the family of token verification failures. Every token error
// below wraps it.
var ErrAuth = errors.New("authentication failed")

var (
	// ErrTokenMalformed is returned when the token cannot be parsed into the
	// expected structure.
	ErrTokenMalformed = fmt.Errorf("%w: malformed token", ErrAuth)
	// ErrTokenSignatureInvalid is returned when the signature does not match
	// or the token uses an unexpected algorithm.
	ErrTokenSignatureInvalid = fmt.Errorf("%w: invalid token signature", ErrAuth)
	// ErrTokenExpired is returned once the current time reaches the expiry.
	ErrTokenExpired = fmt.Errorf("%w: token is expired", ErrAuth)
	// ErrTokenRevoked is returned for a token that was logged out.
	ErrTokenRevoked = fmt.Errorf("%w: token was revoked", ErrAuth)
)

var (
	ErrWrongCredentials      = errors.New("wrong identity or secret")
	ErrTokenCreationFailed   = errors.New("token creation failed")
	ErrVersionIsNotSpecified = errors.New("app version is not specified")
)
