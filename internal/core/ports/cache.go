package ports

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// AuthorCache holds author snapshots keyed by identity id.
type AuthorCache interface {
	Get(ctx context.Context, id string) (*domain.AuthorSnapshot, bool, error)
	Set(ctx context.Context, id string, s domain.AuthorSnapshot) error
	Invalidate(ctx context.Context, id string) error
}
