package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/devconnector/connector-api/internal/core/domain"
)

func TestTokenService_RoundTrip(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)

	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if tok.SubjectID != "u1" || !tok.ExpiresAt.Equal(tok.IssuedAt.Add(time.Hour)) {
		t.Fatalf("unexpected token: %+v", tok)
	}

	sub, err := svc.Verify(tok.Signed)
	if err != nil {
		t.Fatalf("Verify returned error: %v", err)
	}
	if sub != "u1" {
		t.Fatalf("expected subject u1, got %s", sub)
	}
}

func TestTokenService_DefaultTTL(t *testing.T) {
	svc := NewTokenService("secret", 0)
	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}
	if got := tok.ExpiresAt.Sub(tok.IssuedAt); got != defaultTokenTTL {
		t.Fatalf("expected %v ttl, got %v", defaultTokenTTL, got)
	}
}

func TestTokenService_Expired(t *testing.T) {
	svc := NewTokenService("secret", time.Minute)
	tok, err := svc.Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	later := tok.ExpiresAt.Add(time.Second)
	svc.now = func() time.Time { return later }

	if _, err := svc.Verify(tok.Signed); !errors.Is(err, domain.ErrExpiredToken) {
		t.Fatalf("expected ErrExpiredToken, got %v", err)
	}
}

func TestTokenService_WrongSecret(t *testing.T) {
	tok, err := NewTokenService("secret", time.Hour).Issue("u1")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	if _, err := NewTokenService("other", time.Hour).Verify(tok.Signed); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	claims := jwt.RegisteredClaims{
		Subject:   "u1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(unsigned); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_MissingExpiry(t *testing.T) {
	raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: "u1"}).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}

	if _, err := NewTokenService("secret", time.Hour).Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestTokenService_Garbage(t *testing.T) {
	svc := NewTokenService("secret", time.Hour)
	for _, raw := range []string{"", "   ", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(raw); !errors.Is(err, domain.ErrInvalidToken) {
			t.Fatalf("%q: expected ErrInvalidToken, got %v", raw, err)
		}
	}
}
