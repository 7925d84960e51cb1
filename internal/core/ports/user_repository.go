package ports

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// UserRepository persists identities.
type UserRepository interface {
	// Create stores a new identity, assigning its ID. A taken email yields
	// domain.ErrUserExists.
	Create(ctx context.Context, user *domain.Identity) (*domain.Identity, error)
	FindByID(ctx context.Context, id string) (*domain.Identity, error)
	FindByEmail(ctx context.Context, email string) (*domain.Identity, error)
	// Delete removes the identity or returns domain.ErrUserNotFound.
	Delete(ctx context.Context, id string) error
}
