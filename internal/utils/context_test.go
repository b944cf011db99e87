// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"context"
	"testing"
	"time"

	"github.com/MKhiriev/book-collections/models"
)

func TestContextKeyString(t *testing.T) {
	key := contextKey("testKey")
	if key.String() != "testKey" {
		t.Errorf("expected 'testKey', got '%s'", key.String())
	}
}

func TestClaimsCtxKey(t *testing.T) {
	if ClaimsCtxKey.String() != "claims" {
		t.Errorf("expected 'claims', got '%s'", ClaimsCtxKey.String())
	}
}

func TestGetClaimsFromContext_Success(t *testing.T) {
	want := models.Claims{
		SubjectID:       "0192c8a4-0000-7000-8000-000000000001",
		SubjectIdentity: "a@b.com",
		TokenID:         "jti",
		IssuedAt:        time.Unix(1700000000, 0).UTC(),
		ExpiresAt:       time.Unix(1700259200, 0).UTC(),
	}
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, want)

	got, ok := GetClaimsFromContext(ctx)

	if !ok {
		t.Fatal("expected ok=true, got false")
	}
	if got != want {
		t.Errorf("expected %+v, got %+v", want, got)
	}
}

func TestGetClaimsFromContext_Missing(t *testing.T) {
	claims, ok := GetClaimsFromContext(context.Background())

	if ok {
		t.Fatal("expected ok=false, got true")
	}
	if claims != (models.Claims{}) {
		t.Errorf("expected zero claims, got %+v", claims)
	}
}

func TestGetClaimsFromContext_WrongType(t *testing.T) {
	ctx := context.WithValue(context.Background(), ClaimsCtxKey, "not-claims")

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for wrong type, got true")
	}
}

func TestGetClaimsFromContext_DifferentKey(t *testing.T) {
	ctx := context.WithValue(context.Background(), contextKey("otherKey"), models.Claims{SubjectID: "x"})

	if _, ok := GetClaimsFromContext(ctx); ok {
		t.Fatal("expected ok=false for different key, got true")
	}
}

func TestGetTokenFromContext(t *testing.T) {
	ctx := context.WithValue(context.Background(), TokenCtxKey, "abc.def.ghi")

	token, ok := GetTokenFromContext(ctx)
	if !ok || token != "abc.def.ghi" {
		t.Errorf("expected token 'abc.def.ghi', got %q (ok=%v)", token, ok)
	}

	if _, ok := GetTokenFromContext(context.WithValue(context.Background(), TokenCtxKey, "")); ok {
		t.Error("expected ok=false for empty token")
	}
}
