package ports

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// TokenCodec issues and verifies identity tokens.
type TokenCodec interface {
	Issue(subjectID string) (domain.Token, error)
	TokenVerifier
}

// TokenVerifier resolves a raw token to the identity id it was issued for.
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// AuthService handles registration, login and the current-identity lookup.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (domain.Token, *domain.Identity, error)
	Login(ctx context.Context, email, password string) (domain.Token, *domain.Identity, error)
	Me(ctx context.Context, identityID string) (*domain.Identity, error)
}

// ProfileService covers profile reads and owner-only mutations.
type ProfileService interface {
	Me(ctx context.Context, identityID string) (*domain.Profile, error)
	Upsert(ctx context.Context, identityID string, fields domain.ProfileFields) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	GetByOwner(ctx context.Context, ownerID string) (*domain.Profile, error)
	AddExperience(ctx context.Context, identityID string, in domain.ExperienceEntry) (*domain.Profile, error)
	RemoveExperience(ctx context.Context, identityID, entryID string) (*domain.Profile, error)
	AddEducation(ctx context.Context, identityID string, in domain.EducationEntry) (*domain.Profile, error)
	RemoveEducation(ctx context.Context, identityID, entryID string) (*domain.Profile, error)
}

// PostService covers the feed.
type PostService interface {
	Create(ctx context.Context, identityID, text string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	Get(ctx context.Context, postID string) (*domain.Post, error)
	Delete(ctx context.Context, identityID, postID string) error
	Like(ctx context.Context, identityID, postID string) ([]domain.Like, error)
	Unlike(ctx context.Context, identityID, postID string) ([]domain.Like, error)
	Comment(ctx context.Context, identityID, postID, text string) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, identityID, postID, commentID string) ([]domain.Comment, error)
}

// AccountService deletes an identity together with what it owns.
type AccountService interface {
	DeleteAccount(ctx context.Context, identityID string) error
}
