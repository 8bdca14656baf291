package jwtauth

import (
	"context"
	"strings"
	"testing"
	"time"

	"woofpoint-backend/internal/ports/auth"
)

func TestIssueVerify_RoundTrip(t *testing.T) {
	svc := NewService("test-secret", TokenTTL)

	token, err := svc.Issue(context.Background(), auth.Claims{
		UserID: "user-1",
		Role:   "owner",
		Email:  "owner@example.com",
	})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	claims, err := svc.Verify(context.Background(), token)
	if err != nil {
		t.Fatalf("Verify error: %v", err)
	}
	if claims.UserID != "user-1" || claims.Role != "owner" || claims.Email != "owner@example.com" {
		t.Fatalf("claims mismatch: %#v", claims)
	}
}

func TestVerify_RejectsWrongSecret(t *testing.T) {
	issuer := NewService("secret-a", TokenTTL)
	verifier := NewService("secret-b", TokenTTL)

	token, err := issuer.Issue(context.Background(), auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	if _, err := verifier.Verify(context.Background(), token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestVerify_RejectsExpired(t *testing.T) {
	svc := NewService("test-secret", TokenTTL)

	issuedAt := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return issuedAt }

	token, err := svc.Issue(context.Background(), auth.Claims{UserID: "user-1"})
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	// 7 días + 1 minuto después
	svc.now = func() time.Time { return issuedAt.Add(TokenTTL + time.Minute) }

	if _, err := svc.Verify(context.Background(), token); err != ErrTokenInvalid {
		t.Fatalf("expected ErrTokenInvalid for expired token, got %v", err)
	}
}

func TestVerify_RejectsGarbage(t *testing.T) {
	svc := NewService("test-secret", TokenTTL)

	for _, tok := range []string{"", "   ", "not.a.jwt", strings.Repeat("x", 300)} {
		_, err := svc.Verify(context.Background(), tok)
		if err == nil {
			t.Fatalf("expected error for token %q", tok)
		}
	}
}
