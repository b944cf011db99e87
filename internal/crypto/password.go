// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// maxSecretLength is the number of bytes bcrypt takes into account.
const maxSecretLength = 72

type bcryptHasher struct {
	cost int
}

// NewPasswordHasher returns a bcrypt-backed PasswordHasher. A cost outside
// [bcrypt.MinCost, bcrypt.MaxCost] falls back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(secret string) (string, error) {
	if err := checkSecret(secret); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(secret), h.cost)
	if err != nil {
		return "", fmt.Errorf("error hashing secret: %w", err)
	}

	return string(hashed), nil
}

func (h *bcryptHasher) Verify(secret, hashed string) (bool, error) {
	if err := checkSecret(secret); err != nil {
		return false, err
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(secret))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, fmt.Errorf("%w: %w", ErrMalformedHash, err)
	}
}

func checkSecret(secret string) error {
	if secret == "" {
		return fmt.Errorf("%w: empty secret", ErrInvalidInput)
	}
	if len(secret) > maxSecretLength {
		return fmt.Errorf("%w: secret longer than %d bytes", ErrInvalidInput, maxSecretLength)
	}

	return nil
}
