package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func TestVerifyValidToken(t *testing.T) {
	v := NewVerifier("test-secret")
	tok := signToken(t, "test-secret", jwt.MapClaims{
		"sub":   "user-123",
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})

	claims, err := v.Verify(tok)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if claims.Sub != "user-123" {
		t.Fatalf("expected sub user-123, got %q", claims.Sub)
	}
	if claims.Email != "user@example.com" {
		t.Fatalf("expected email claim, got %q", claims.Email)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	v := NewVerifier("right-secret")
	tok := signToken(t, "wrong-secret", jwt.MapClaims{"sub": "user-123"})

	if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsMissingSub(t *testing.T) {
	v := NewVerifier("test-secret")
	tok := signToken(t, "test-secret", jwt.MapClaims{"email": "user@example.com"})

	if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	v := NewVerifier("test-secret")
	tok := signToken(t, "test-secret", jwt.MapClaims{
		"sub": "user-123",
		"exp": time.Now().Add(-time.Hour).Unix(),
	})

	if _, err := v.Verify(tok); !errors.Is(err, ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestVerifyMissingSecret(t *testing.T) {
	v := NewVerifier("")
	if _, err := v.Verify("anything"); !errors.Is(err, ErrMissingSecret) {
		t.Fatalf("expected ErrMissingSecret, got %v", err)
	}
}

func TestEmailBestEffort(t *testing.T) {
	v := NewVerifier("test-secret")

	withEmail := signToken(t, "test-secret", jwt.MapClaims{"sub": "u1", "email": "u1@example.com"})
	if email, ok := v.Email(withEmail); !ok || email != "u1@example.com" {
		t.Fatalf("expected email, got %q ok=%v", email, ok)
	}

	withoutEmail := signToken(t, "test-secret", jwt.MapClaims{"sub": "u1"})
	if _, ok := v.Email(withoutEmail); ok {
		t.Fatal("expected ok=false when email claim is absent")
	}

	unconfigured := NewVerifier("")
	if _, ok := unconfigured.Email(withEmail); ok {
		t.Fatal("expected ok=false when secret is missing")
	}
}
