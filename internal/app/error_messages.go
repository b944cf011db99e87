// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package app contains shared application-layer constants used across the
// book-collections handlers and middleware.
//
// Msg* constants are human-readable strings written into error response
// bodies. Code* constants are the stable machine-readable codes attached to
// token verification failures; clients may branch on them.
package app

const (
	// MsgLoginRequired is returned when a protected route is called without
	// an Authorization header.
	MsgLoginRequired = "Login required to access this route"

	// MsgInternalServerError replaces the details of every server-side
	// failure.
	MsgInternalServerError = "internal server error"

	// MsgNotFound is returned for unknown paths and unsupported methods.
	MsgNotFound = "Not Found"
)

const (
	// CodeTokenMalformed marks a token that is not a well-formed signed
	// token or carries the wrong issuer.
	CodeTokenMalformed = "token_malformed"

	CodeTokenSignatureInvalid = "token_signature_invalid"
	CodeTokenExpired          = "token_expired"

	// CodeTokenRevoked marks a token presented after logout.
	CodeTokenRevoked = "token_revoked"
)
