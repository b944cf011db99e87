// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"regexp"
	"slices"
)

// Predicate is the comparison applied by a FilterCriterion.
type Predicate int

const (
	// Exact matches when the field equals the value.
	Exact Predicate = iota
	// RegexCaseInsensitive matches when the field contains the value,
	// ignoring case. The value is always matched literally.
	RegexCaseInsensitive
	// Membership matches when the array field contains every listed value.
	Membership
)

// String implements fmt.Stringer.
func (p Predicate) String() string {
	switch p {
	case Exact:
		return "exact"
	case RegexCaseInsensitive:
		return "regex_ci"
	case Membership:
		return "membership"
	default:
		return "unknown"
	}
}

// Filterable field names.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldBook        = "book"
)

// FilterCriterion is one match condition of a FilterSet.
//
// Value is a string for Exact and RegexCaseInsensitive and a []string for
// Membership.
type FilterCriterion struct {
	Field     string
	Predicate Predicate
	Value     any
}

// FilterSet is a conjunctive set of criteria keyed by field name.
// An empty FilterSet matches every record.
type FilterSet map[string]FilterCriterion

// Add stores c under its field, replacing any previous criterion for it.
func (f FilterSet) Add(c FilterCriterion) {
	f[c.Field] = c
}

// Matches reports whether b satisfies every criterion in f.
func (f FilterSet) Matches(b Book) bool {
	for _, c := range f {
		if !c.Matches(b) {
			return false
		}
	}
	return true
}

// Matches reports whether b satisfies the criterion. Unknown fields and
// values of an unexpected type never match.
func (c FilterCriterion) Matches(b Book) bool {
	switch c.Predicate {
	case Exact:
		v, ok := c.Value.(string)
		if !ok {
			return false
		}
		field, ok := scalarField(b, c.Field)
		return ok && field == v
	case RegexCaseInsensitive:
		v, ok := c.Value.(string)
		if !ok {
			return false
		}
		field, ok := scalarField(b, c.Field)
		if !ok {
			return false
		}
		return LiteralPattern(v).MatchString(field)
	case Membership:
		values, ok := c.Value.([]string)
		if !ok || c.Field != FieldBook {
			return false
		}
		for _, v := range values {
			if !slices.Contains(b.Book, v) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// LiteralPattern compiles a case-insensitive pattern that matches s as a
// literal substring. Metacharacters in s carry no meaning.
func LiteralPattern(s string) *regexp.Regexp {
	return regexp.MustCompile("(?i)" + regexp.QuoteMeta(s))
}

func scalarField(b Book, field string) (string, bool) {
	switch field {
	case FieldTitle:
		return b.Title, true
	case FieldDescription:
		return b.Description, true
	case "id":
		return b.ID, true
	default:
		return "", false
	}
}
