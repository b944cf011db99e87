// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// ErrorResponse is the JSON body of every error reply.
// Code is set for authentication failures only.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ListBooksResponse is returned by GET /book-collections.
type ListBooksResponse struct {
	Collections []Book `json:"collections"`
}

// BookResponse is returned by POST /book-collections.
type BookResponse struct {
	Collection Book `json:"collection"`
}

// LoginResponse is returned by POST /login.
type LoginResponse struct {
	AccessToken string `json:"accessToken"`
}

// RegisterResponse is returned by POST /user.
type RegisterResponse struct {
	ID       string `json:"id"`
	Identity string `json:"identity"`
}

// ProfileResponse is returned by GET /profile.
type ProfileResponse struct {
	Claims Claims `json:"claims"`
}
