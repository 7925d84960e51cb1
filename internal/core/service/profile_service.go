package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
)

// ProfileService manages profiles. Every mutation targets the caller's own
// profile: the parent is always looked up by the authenticated identity.
type ProfileService struct {
	repo ports.ProfileRepository
	log  zerolog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log zerolog.Logger) *ProfileService {
	return &ProfileService{repo: repo, log: log}
}

func (s *ProfileService) Me(ctx context.Context, identityID string) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	return s.repo.FindByOwner(ctx, identityID)
}

// Upsert creates the caller's profile or updates its fields. The owner of an
// existing profile is never rewritten.
func (s *ProfileService) Upsert(ctx context.Context, identityID string, fields domain.ProfileFields) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}

	_, err := s.repo.FindByOwner(ctx, identityID)
	switch {
	case err == nil:
		updated, err := s.repo.Update(ctx, identityID, fields)
		if err != nil {
			return nil, fmt.Errorf("update profile: %w", err)
		}
		return updated, nil
	case !errors.Is(err, domain.ErrProfileNotFound):
		return nil, fmt.Errorf("upsert profile: %w", err)
	}

	p := &domain.Profile{
		OwnerID:    identityID,
		Skills:     []string{},
		Experience: []domain.ExperienceEntry{},
		Education:  []domain.EducationEntry{},
		Date:       time.Now().UTC(),
	}
	fields.Apply(p)

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		if errors.Is(err, domain.ErrProfileExists) {
			return nil, err
		}
		return nil, fmt.Errorf("create profile: %w", err)
	}

	s.log.Info().Str("user_id", identityID).Str("profile_id", created.ID).Msg("profile created")
	return created, nil
}

func (s *ProfileService) List(ctx context.Context) ([]*domain.Profile, error) {
	return s.repo.List(ctx)
}

func (s *ProfileService) GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error) {
	return s.repo.FindByOwner(ctx, ownerID)
}

func (s *ProfileService) AddExperience(ctx context.Context, identityID string, in domain.ExperienceEntry) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.ID = ""
	return s.repo.PrependExperience(ctx, identityID, in.Normalize())
}

func (s *ProfileService) RemoveExperience(ctx context.Context, identityID, entryID string) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	p, removed, err := s.repo.RemoveExperience(ctx, identityID, entryID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrEntryNotFound
	}
	return p, nil
}

func (s *ProfileService) AddEducation(ctx context.Context, identityID string, in domain.EducationEntry) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	in.ID = ""
	return s.repo.PrependEducation(ctx, identityID, in.Normalize())
}

func (s *ProfileService) RemoveEducation(ctx context.Context, identityID, entryID string) (*domain.Profile, error) {
	if identityID == "" {
		return nil, domain.ErrUnauthorized
	}
	p, removed, err := s.repo.RemoveEducation(ctx, identityID, entryID)
	if err != nil {
		return nil, err
	}
	if !removed {
		return nil, domain.ErrEntryNotFound
	}
	return p, nil
}
