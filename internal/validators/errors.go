// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package validators

import (
	"errors"
	"fmt"
)

var (
	ErrUnsupportedType = errors.New("unsupported type for validation")
	ErrUnknownField    = errors.New("unknown field for validation")
)

// ValidationError reports a single invalid field of a client payload.
type ValidationError struct {
	// Field is the JSON name of the offending field.
	Field string
	// Rule is the validation tag that failed, e.g. "required".
	Rule string
}

func (e *ValidationError) Error() string {
	switch e.Rule {
	case "required", ruleNotBlank:
		return fmt.Sprintf("%s is required", e.Field)
	case "email":
		return fmt.Sprintf("%s must be a valid email address", e.Field)
	default:
		return fmt.Sprintf("%s is invalid", e.Field)
	}
}
