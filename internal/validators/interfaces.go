// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package validators provides input validation for client-supplied
// payloads.
//
// Core concepts:
//   - Validator: generic interface to validate arbitrary values or structures.
//     Supports optional field-level scoping for targeted validation.
//   - ValidationError: the first failing field, reported by its JSON name.
//
// Rules are declared with `validate` struct tags on the models and enforced
// with go-playground/validator.
package validators

import "context"

// Validator defines a generic validation interface for arbitrary input values.
type Validator interface {

	// Validate validates the provided input and optionally
	// restricts validation to specific named struct fields. Fields are
	// checked in the given order and the first failure is returned.
	Validate(context.Context, any, ...string) error
}
