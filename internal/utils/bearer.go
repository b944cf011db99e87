package utils

import (
	"errors"
	"strings"
)

var (
	// ErrNoAuthorizationHeader is returned when the Authorization header is empty.
	ErrNoAuthorizationHeader = errors.New("no authorization header")
	// ErrInvalidAuthorizationHeader is returned when the header is not of the
	// form "Bearer <token>".
	ErrInvalidAuthorizationHeader = errors.New("invalid authorization header")
)

const bearerScheme = "Bearer"

// ParseBearerToken extracts the token from an "Authorization: Bearer <token>"
// header value. The scheme is matched case-insensitively.
func ParseBearerToken(authorizationHeader string) (string, error) {
	header := strings.TrimSpace(authorizationHeader)
	if header == "" {
		return "", ErrNoAuthorizationHeader
	}

	parts := strings.Fields(header)
	if len(parts) != 2 || !strings.EqualFold(parts[0], bearerScheme) {
		return "", ErrInvalidAuthorizationHeader
	}

	return parts[1], nil
}

// BearerHeader formats a token as an Authorization header value.
func BearerHeader(token string) string {
	return bearerScheme + " " + token
}
