// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// User is a stored credential: a unique identity and the hash of its secret.
// SecretHash is never serialized; it must not leave the server.
type User struct {
	// ID is the internal identifier, used as the token subject.
	ID string `json:"id"`

	// Identity is the unique login (an e-mail address).
	Identity string `json:"identity"`

	// SecretHash is the bcrypt hash of the user's password.
	SecretHash string `json:"-"`

	// CreatedAt is the registration timestamp.
	CreatedAt time.Time `json:"createdAt"`
}

// Credentials is the body of registration and login requests.
//
// The HTML form field names (email, password) are accepted as aliases
// and only consulted when the primary fields are empty.
type Credentials struct {
	Identity string `json:"identity" validate:"required,email"`
	Secret   string `json:"secret" validate:"required,notblank"`

	Email    string `json:"email,omitempty" validate:"-"`
	Password string `json:"password,omitempty" validate:"-"`
}

// Normalize folds the alias fields into Identity and Secret.
func (c Credentials) Normalize() Credentials {
	if c.Identity == "" {
		c.Identity = c.Email
	}
	if c.Secret == "" {
		c.Secret = c.Password
	}
	c.Email, c.Password = "", ""
	return c
}
