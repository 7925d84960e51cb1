package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
)

// PostService implements the feed: posts, likes and comments.
type PostService struct {
	posts ports.PostRepository
	users ports.UserRepository
	cache ports.AuthorCache
	log   zerolog.Logger
}

// NewPostService wires the feed. cache may be nil.
func NewPostService(posts ports.PostRepository, users ports.UserRepository, cache ports.AuthorCache, log zerolog.Logger) *PostService {
	if cache == nil {
		cache = nopCache{}
	}
	return &PostService{posts: posts, users: users, cache: cache, log: log}
}

func (s *PostService) Create(ctx context.Context, identityID, text string) (*domain.Post, error) {
	if !domain.MayEngage(identityID) {
		return nil, domain.ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("create post: %w", domain.ErrValidation)
	}

	author, err := s.author(ctx, identityID)
	if err != nil {
		return nil, err
	}

	post, err := s.posts.Create(ctx, &domain.Post{
		AuthorID: identityID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Likes:    []domain.Like{},
		Comments: []domain.Comment{},
		Date:     time.Now().UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}

	s.log.Info().Str("post_id", post.ID).Str("user_id", identityID).Msg("post created")
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) Get(ctx context.Context, postID string) (*domain.Post, error) {
	return s.posts.FindByID(ctx, postID)
}

// Delete removes a post. Only its author may.
func (s *PostService) Delete(ctx context.Context, identityID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if err := domain.Authorize(identityID, post); err != nil {
		return err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	s.log.Info().Str("post_id", postID).Str("user_id", identityID).Msg("post deleted")
	return nil
}

// Like adds the caller to the like set. A repeated like returns
// domain.ErrAlreadyLiked and leaves the set unchanged.
func (s *PostService) Like(ctx context.Context, identityID, postID string) ([]domain.Like, error) {
	if err := s.engage(ctx, identityID); err != nil {
		return nil, err
	}
	likes, res, err := s.posts.AddLike(ctx, postID, identityID)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return likes, nil
}

// Unlike removes the caller from the like set, or returns domain.ErrNotLiked.
func (s *PostService) Unlike(ctx context.Context, identityID, postID string) ([]domain.Like, error) {
	if err := s.engage(ctx, identityID); err != nil {
		return nil, err
	}
	likes, res, err := s.posts.RemoveLike(ctx, postID, identityID)
	if err != nil {
		return nil, err
	}
	if err := res.Err(); err != nil {
		return nil, err
	}
	return likes, nil
}

func (s *PostService) Comment(ctx context.Context, identityID, postID, text string) ([]domain.Comment, error) {
	if !domain.MayEngage(identityID) {
		return nil, domain.ErrUnauthorized
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("comment: %w", domain.ErrValidation)
	}

	author, err := s.author(ctx, identityID)
	if err != nil {
		return nil, err
	}

	return s.posts.PrependComment(ctx, postID, domain.Comment{
		AuthorID: identityID,
		Text:     text,
		Name:     author.Name,
		Avatar:   author.Avatar,
		Date:     time.Now().UTC(),
	})
}

// RemoveComment deletes a comment. The comment's author and the post's
// author are both allowed to.
func (s *PostService) RemoveComment(ctx context.Context, identityID, postID, commentID string) ([]domain.Comment, error) {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	c, ok := post.FindComment(commentID)
	if !ok {
		return nil, domain.ErrCommentNotFound
	}
	if !domain.MayRemoveComment(identityID, post, c) {
		return nil, domain.ErrForbidden
	}

	comments, removed, err := s.posts.RemoveComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if !removed {
		// Lost a race with another removal.
		return nil, domain.ErrCommentNotFound
	}
	return comments, nil
}

// PurgeAuthor deletes identityID's posts and strips its likes and comments
// from everyone else's.
func (s *PostService) PurgeAuthor(ctx context.Context, identityID string) error {
	deleted, err := s.posts.DeleteByAuthor(ctx, identityID)
	if err != nil {
		return fmt.Errorf("purge author posts: %w", err)
	}
	touched, err := s.posts.PullActivity(ctx, identityID)
	if err != nil {
		return fmt.Errorf("purge author activity: %w", err)
	}

	s.log.Info().
		Str("user_id", identityID).
		Int64("posts_deleted", deleted).
		Int64("posts_touched", touched).
		Msg("author content purged")
	return nil
}

// author resolves the snapshot copied onto new posts and comments.
func (s *PostService) author(ctx context.Context, identityID string) (domain.AuthorSnapshot, error) {
	snap, ok, err := s.cache.Get(ctx, identityID)
	if err != nil {
		s.log.Warn().Err(err).Str("user_id", identityID).Msg("author cache read failed")
	} else if ok {
		return *snap, nil
	}

	user, err := s.users.FindByID(ctx, identityID)
	if err != nil {
		return domain.AuthorSnapshot{}, identityErr(err)
	}
	fresh := user.Snapshot()
	if err := s.cache.Set(ctx, identityID, fresh); err != nil {
		s.log.Warn().Err(err).Str("user_id", identityID).Msg("author cache write failed")
	}
	return fresh, nil
}

// engage refuses identities that may not engage or no longer exist. Tokens
// outlive account deletion, so a deleted identity still holds a valid one.
func (s *PostService) engage(ctx context.Context, identityID string) error {
	if !domain.MayEngage(identityID) {
		return domain.ErrUnauthorized
	}
	if _, err := s.users.FindByID(ctx, identityID); err != nil {
		return identityErr(err)
	}
	return nil
}

func identityErr(err error) error {
	if errors.Is(err, domain.ErrUserNotFound) {
		return domain.ErrUnauthorized
	}
	return fmt.Errorf("resolve identity: %w", err)
}
