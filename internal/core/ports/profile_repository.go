package ports

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// ProfileRepository persists profiles. Every sub-collection mutation is a
// single atomic read-modify-write on the owner's document.
type ProfileRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	// Create stores a new profile. A second profile for the same owner yields
	// domain.ErrProfileExists.
	Create(ctx context.Context, p *domain.Profile) (*domain.Profile, error)
	// Update applies the non-empty fields; the owner is never rewritten.
	Update(ctx context.Context, ownerID string, fields domain.ProfileFields) (*domain.Profile, error)
	// DeleteByOwner reports whether a profile existed.
	DeleteByOwner(ctx context.Context, ownerID string) (bool, error)

	PrependExperience(ctx context.Context, ownerID string, e domain.ExperienceEntry) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, ownerID, entryID string) (*domain.Profile, bool, error)
	PrependEducation(ctx context.Context, ownerID string, e domain.EducationEntry) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, ownerID, entryID string) (*domain.Profile, bool, error)
}
