package ports

import "context"

// PurgeJob asks for the authored content of a deleted identity to be removed.
type PurgeJob struct {
	IdentityID string
}

// AuthorPurger removes posts, likes and comments left by an identity.
type AuthorPurger interface {
	PurgeAuthor(ctx context.Context, identityID string) error
}

// PurgeScheduler accepts purge jobs for later execution.
type PurgeScheduler interface {
	Enqueue(job PurgeJob)
}
