// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"slices"
	"time"
)

// Book is a single book collection record.
//
// ID is assigned by the store on creation and never changes afterwards.
// Book lists the titles grouped in the collection and is the field targeted
// by membership filters (?book=...).
type Book struct {
	// ID is the store-assigned identifier (uuid v7).
	ID string `json:"id"`

	// Title is the collection name. Required.
	Title string `json:"title"`

	// Description is a free-text description. Required.
	Description string `json:"description"`

	// PublishedAt is the publication timestamp of the collection.
	PublishedAt time.Time `json:"publishedAt"`

	// Book holds the titles contained in the collection.
	Book []string `json:"book,omitempty"`

	// CreatedAt is set by the store when the record is inserted.
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is refreshed by the store on every modifying update.
	UpdatedAt time.Time `json:"updatedAt"`
}

// SameContent reports whether b and other carry identical mutable fields.
// Store-managed fields (ID, CreatedAt, UpdatedAt) are ignored.
func (b Book) SameContent(other Book) bool {
	return b.Title == other.Title &&
		b.Description == other.Description &&
		b.PublishedAt.Equal(other.PublishedAt) &&
		slices.Equal(b.Book, other.Book)
}

// BookPayload is the client-supplied body of create and update requests.
//
// PublishedAt is optional; when nil the current time is used. Datetime is
// the legacy name of the same field and is only read when PublishedAt is nil.
type BookPayload struct {
	Title       string     `json:"title" validate:"required,notblank"`
	Description string     `json:"description" validate:"required,notblank"`
	PublishedAt *time.Time `json:"publishedAt,omitempty"`
	Datetime    *time.Time `json:"datetime,omitempty"`
	Book        []string   `json:"book,omitempty"`
}

// ToBook converts the payload into a Book, resolving the publication date
// against now when the client omitted it.
func (p BookPayload) ToBook(now time.Time) Book {
	publishedAt := now
	switch {
	case p.PublishedAt != nil:
		publishedAt = *p.PublishedAt
	case p.Datetime != nil:
		publishedAt = *p.Datetime
	}

	return Book{
		Title:       p.Title,
		Description: p.Description,
		PublishedAt: publishedAt.UTC(),
		Book:        slices.Clone(p.Book),
	}
}

// UpdateResult mirrors the document store's update acknowledgement.
// A miss is reported as MatchedCount == 0, never as an error.
type UpdateResult struct {
	MatchedCount  int64 `json:"matchedCount"`
	ModifiedCount int64 `json:"modifiedCount"`
}

// DeleteResult mirrors the document store's delete acknowledgement.
type DeleteResult struct {
	DeletedCount int64 `json:"deletedCount"`
}
