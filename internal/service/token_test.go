package service

import (
	"strings"
	"testing"
	"time"

	"github.com/Naseebullah-Wali/MoProject/internal/constants"
)

func TestTokenService_SessionRoundTrip(t *testing.T) {
	svc := NewTokenService("secret", 24*time.Hour)

	token, issued, err := svc.GenerateSessionToken(7, "user@example.com", "Editor")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}
	if issued.JTI == "" {
		t.Error("Expected a jti on issued claims")
	}

	claims, err := svc.ValidateSessionToken(token)
	if err != nil {
		t.Fatalf("ValidateSessionToken failed: %v", err)
	}
	if claims.UserID != 7 {
		t.Errorf("Expected user_id 7, got %d", claims.UserID)
	}
	if claims.Email != "user@example.com" {
		t.Errorf("Expected email claim, got %s", claims.Email)
	}
	if claims.Role != "Editor" {
		t.Errorf("Expected role claim, got %s", claims.Role)
	}
	if claims.JTI != issued.JTI {
		t.Errorf("Expected jti %s, got %s", issued.JTI, claims.JTI)
	}

	remaining := time.Until(claims.ExpiresAt)
	if remaining < 23*time.Hour || remaining > 24*time.Hour {
		t.Errorf("Expected roughly 24h expiry, got %s", remaining)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)

	_, issued, err := svc.GenerateSessionToken(1, "a@example.com", "Admin")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	remaining := time.Until(issued.ExpiresAt)
	if remaining < constants.SessionTokenTTL-time.Minute || remaining > constants.SessionTokenTTL {
		t.Errorf("Expected the default session TTL, got %s", remaining)
	}
}

func TestTokenService_WrongSecretRejected(t *testing.T) {
	issuer := NewTokenService("secret-a", time.Hour)
	verifier := NewTokenService("secret-b", time.Hour)

	token, _, err := issuer.GenerateSessionToken(1, "a@example.com", "Admin")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := verifier.ValidateSessionToken(token); err == nil {
		t.Error("Expected validation to fail with wrong secret")
	}
}

func TestTokenService_ExpiredRejected(t *testing.T) {
	svc := &TokenService{secretKey: "secret", sessionTTL: -time.Minute}

	token, _, err := svc.GenerateSessionToken(1, "a@example.com", "Admin")
	if err != nil {
		t.Fatalf("GenerateSessionToken failed: %v", err)
	}

	if _, err := svc.ValidateSessionToken(token); err == nil {
		t.Error("Expected validation to fail for expired token")
	}
}

func TestTokenService_GarbageRejected(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.ValidateSessionToken(token); err == nil {
			t.Errorf("Expected validation to fail for %q", token)
		}
	}
}

func TestTokenService_OpaqueTokens(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := svc.GenerateOpaqueToken()
		if err != nil {
			t.Fatalf("GenerateOpaqueToken failed: %v", err)
		}
		if seen[token] {
			t.Fatal("Expected opaque tokens to be unique")
		}
		seen[token] = true

		// URL-safe: the token goes into a query parameter unescaped.
		if strings.ContainsAny(token, "+/=") {
			t.Errorf("Expected URL-safe token, got %q", token)
		}
	}
}

func TestTokenService_TempPasswordLength(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	password, err := svc.GenerateTempPassword(12)
	if err != nil {
		t.Fatalf("GenerateTempPassword failed: %v", err)
	}
	if len(password) != 12 {
		t.Errorf("Expected 12 characters, got %d", len(password))
	}

	other, err := svc.GenerateTempPassword(12)
	if err != nil {
		t.Fatalf("GenerateTempPassword failed: %v", err)
	}
	if password == other {
		t.Error("Expected temporary passwords to differ")
	}
}
