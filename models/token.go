// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import "time"

// Claims is the decoded content of a verified session token: the
// authenticated principal of a request.
type Claims struct {
	SubjectID       string    `json:"subjectId"`
	SubjectIdentity string    `json:"subjectIdentity"`
	TokenID         string    `json:"tokenId"`
	IssuedAt        time.Time `json:"issuedAt"`
	ExpiresAt       time.Time `json:"expiresAt"`
}

// Token is an issued session token together with the claims it carries.
type Token struct {
	// SignedString is the compact JWS form sent to clients.
	SignedString string

	Claims Claims
}

// String returns the compact serialization of the token.
func (t Token) String() string {
	return t.SignedString
}
