package service

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
)

const minPasswordLen = 6

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	tokens ports.TokenCodec
	log    zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, tokens ports.TokenCodec, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, log: log}
}

func (s *AuthService) Register(ctx context.Context, name, email, password string) (domain.Token, *domain.Identity, error) {
	name = strings.TrimSpace(name)
	email = normalizeEmail(email)
	if name == "" || email == "" || len(password) < minPasswordLen {
		return domain.Token{}, nil, fmt.Errorf("register: %w", domain.ErrValidation)
	}

	if _, err := s.repo.FindByEmail(ctx, email); err == nil {
		return domain.Token{}, nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.Token{}, nil, fmt.Errorf("register: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return domain.Token{}, nil, fmt.Errorf("register: hash password: %w", err)
	}

	user, err := s.repo.Create(ctx, &domain.Identity{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Avatar:       avatarURL(email),
		Date:         time.Now().UTC(),
	})
	if err != nil {
		return domain.Token{}, nil, err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.Token{}, nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("user registered")
	return token, user, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (domain.Token, *domain.Identity, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return domain.Token{}, nil, domain.ErrInvalidCredentials
	}

	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Token{}, nil, domain.ErrInvalidCredentials
		}
		return domain.Token{}, nil, fmt.Errorf("login: %w", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return domain.Token{}, nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return domain.Token{}, nil, err
	}
	return token, user, nil
}

// Me returns the identity behind a verified token.
func (s *AuthService) Me(ctx context.Context, identityID string) (*domain.Identity, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByID(ctx, identityID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// avatarURL builds the Gravatar URL for an email: 200px, pg rated, mystery-man fallback.
func avatarURL(email string) string {
	sum := md5.Sum([]byte(normalizeEmail(email)))
	return "https://www.gravatar.com/avatar/" + hex.EncodeToString(sum[:]) + "?s=200&r=pg&d=mm"
}
