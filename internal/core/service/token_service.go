package service

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/devconnector/connector-api/internal/core/domain"
)

const defaultTokenTTL = 100 * time.Hour

// TokenService signs and verifies HS256 identity tokens. The secret is
// injected once at startup and never changes afterwards.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// Issue produces a token for subjectID that expires after the configured TTL.
func (s *TokenService) Issue(subjectID string) (domain.Token, error) {
	if subjectID == "" {
		return domain.Token{}, errors.New("issue token: empty subject")
	}
	if len(s.secret) == 0 {
		return domain.Token{}, errors.New("issue token: signing secret not configured")
	}

	issued := s.now().UTC().Truncate(time.Second)
	expires := issued.Add(s.ttl)
	claims := jwt.RegisteredClaims{
		ID:        uuid.NewString(),
		Subject:   subjectID,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(expires),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return domain.Token{}, fmt.Errorf("issue token: %w", err)
	}

	return domain.Token{
		SubjectID: subjectID,
		IssuedAt:  issued,
		ExpiresAt: expires,
		Signed:    signed,
	}, nil
}

// Verify returns the subject of a valid token. A bad signature or malformed
// token yields domain.ErrInvalidToken; a token at or past its expiry yields
// domain.ErrExpiredToken.
func (s *TokenService) Verify(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" || len(s.secret) == 0 {
		return "", domain.ErrInvalidToken
	}

	var claims jwt.RegisteredClaims
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	_, err := parser.ParseWithClaims(raw, &claims, func(_ *jwt.Token) (any, error) {
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", domain.ErrExpiredToken
		}
		return "", domain.ErrInvalidToken
	}
	if claims.Subject == "" {
		return "", domain.ErrInvalidToken
	}
	return claims.Subject, nil
}
