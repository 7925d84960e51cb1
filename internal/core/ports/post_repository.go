package ports

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// PostRepository persists posts. Like and comment mutations are applied as a
// single atomic read-modify-write per post, never as a read followed by an
// unconditional write.
type PostRepository interface {
	Create(ctx context.Context, p *domain.Post) (*domain.Post, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	// List returns every post, newest first.
	List(ctx context.Context) ([]*domain.Post, error)
	Delete(ctx context.Context, id string) error

	AddLike(ctx context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error)
	RemoveLike(ctx context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error)
	PrependComment(ctx context.Context, postID string, c domain.Comment) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, postID, commentID string) ([]domain.Comment, bool, error)

	// DeleteByAuthor removes every post written by authorID.
	DeleteByAuthor(ctx context.Context, authorID string) (int64, error)
	// PullActivity strips authorID's likes and comments from all posts.
	PullActivity(ctx context.Context, authorID string) (int64, error)
}
