// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import "errors"

var (
	// ErrInvalidInput is returned for an empty secret or one exceeding the
	// 72-byte bcrypt limit.
	ErrInvalidInput = errors.New("invalid secret provided")

	// ErrMalformedHash is returned by Verify when the stored hash cannot be parsed.
	ErrMalformedHash = errors.New("malformed password hash")
)
