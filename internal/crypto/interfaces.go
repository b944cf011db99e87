// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package crypto holds the one-way password hashing used for stored
// credentials.
package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher derives and checks password hashes.
//
// Hash is randomized: two calls with the same secret return different strings,
// and both verify. Neither method performs I/O.
type PasswordHasher interface {
	// Hash returns a salted, work-factor-bound hash of secret.
	// It fails with ErrInvalidInput when secret is empty or too long.
	Hash(secret string) (string, error)

	// Verify reports whether secret matches hashed. A mismatch is (false, nil);
	// a malformed hash is reported as an error.
	Verify(secret, hashed string) (bool, error)
}
