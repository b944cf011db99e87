// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package query

import (
	"fmt"
	"net/url"

	"github.com/MKhiriev/book-collections/models"
)

const (
	paramDescription = "description"
	paramBook        = "book"
	paramBookTitle   = "booktitle"
	paramTitle       = "title"
)

// Build converts raw query parameters into a FilterSet. params is never
// modified. An empty or nil params yields an empty FilterSet.
func Build(params url.Values) (models.FilterSet, error) {
	filters := make(models.FilterSet)

	description, err := single(params, paramDescription)
	if err != nil {
		return nil, err
	}
	if description != "" {
		filters.Add(models.FilterCriterion{
			Field:     models.FieldDescription,
			Predicate: models.RegexCaseInsensitive,
			Value:     description,
		})
	}

	book, err := single(params, paramBook)
	if err != nil {
		return nil, err
	}
	if book == "" {
		if book, err = single(params, paramBookTitle); err != nil {
			return nil, err
		}
	}
	if book != "" {
		filters.Add(models.FilterCriterion{
			Field:     models.FieldBook,
			Predicate: models.Membership,
			Value:     []string{book},
		})
	}

	title, err := single(params, paramTitle)
	if err != nil {
		return nil, err
	}
	if title != "" {
		filters.Add(models.FilterCriterion{
			Field:     models.FieldTitle,
			Predicate: models.Exact,
			Value:     title,
		})
	}

	return filters, nil
}

// single returns the only value of key, or "" when the key is absent.
func single(params url.Values, key string) (string, error) {
	values := params[key]
	switch len(values) {
	case 0:
		return "", nil
	case 1:
		return values[0], nil
	default:
		return "", fmt.Errorf("%w: parameter %q given %d times", ErrInvalidQuery, key, len(values))
	}
}
