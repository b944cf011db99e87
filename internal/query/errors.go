// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import "errors"

// ErrInvalidQuery is returned when a parameter that takes a single value is
// supplied more than once.
var ErrInvalidQuery = errors.New("invalid query")
