package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/infrastructure/db/memory"
)

// mapCache is a map-backed AuthorCache that can be told to fail.
type mapCache struct {
	entries map[string]domain.AuthorSnapshot
	gets    int
	err     error
}

func newMapCache() *mapCache {
	return &mapCache{entries: make(map[string]domain.AuthorSnapshot)}
}

func (c *mapCache) Get(_ context.Context, id string) (*domain.AuthorSnapshot, bool, error) {
	c.gets++
	if c.err != nil {
		return nil, false, c.err
	}
	s, ok := c.entries[id]
	if !ok {
		return nil, false, nil
	}
	return &s, true, nil
}

func (c *mapCache) Set(_ context.Context, id string, s domain.AuthorSnapshot) error {
	if c.err != nil {
		return c.err
	}
	c.entries[id] = s
	return nil
}

func (c *mapCache) Invalidate(_ context.Context, id string) error {
	if c.err != nil {
		return c.err
	}
	delete(c.entries, id)
	return nil
}

type feedFixture struct {
	svc   *PostService
	store *memory.Store
	cache *mapCache
	u1    string
	u2    string
}

func newFeedFixture(t *testing.T) *feedFixture {
	t.Helper()
	store := memory.NewStore()
	ctx := context.Background()

	u1, err := store.Users().Create(ctx, &domain.Identity{Name: "one", Email: "one@example.com", Avatar: "a1"})
	if err != nil {
		t.Fatalf("create u1: %v", err)
	}
	u2, err := store.Users().Create(ctx, &domain.Identity{Name: "two", Email: "two@example.com", Avatar: "a2"})
	if err != nil {
		t.Fatalf("create u2: %v", err)
	}

	cache := newMapCache()
	return &feedFixture{
		svc:   NewPostService(store.Posts(), store.Users(), cache, zerolog.Nop()),
		store: store,
		cache: cache,
		u1:    u1.ID,
		u2:    u2.ID,
	}
}

func TestPostService_Create_SnapshotsAuthor(t *testing.T) {
	f := newFeedFixture(t)

	post, err := f.svc.Create(context.Background(), f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.AuthorID != f.u1 || post.Name != "one" || post.Avatar != "a1" {
		t.Fatalf("unexpected post: %+v", post)
	}
	if _, ok := f.cache.entries[f.u1]; !ok {
		t.Fatalf("author snapshot not cached")
	}
}

func TestPostService_Create_CacheFailureFallsBackToStore(t *testing.T) {
	f := newFeedFixture(t)
	f.cache.err = errors.New("redis down")

	post, err := f.svc.Create(context.Background(), f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if post.Name != "one" {
		t.Fatalf("expected snapshot from the store, got %+v", post)
	}
}

func TestPostService_Create_EmptyText(t *testing.T) {
	f := newFeedFixture(t)
	if _, err := f.svc.Create(context.Background(), f.u1, "   "); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected ErrValidation, got %v", err)
	}
}

// Scenario A: u1 posts, u2 likes twice; the like set holds u2 exactly once.
func TestPostService_Like_Idempotent(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	likes, err := f.svc.Like(ctx, f.u2, post.ID)
	if err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if len(likes) != 1 || likes[0].UserID != f.u2 {
		t.Fatalf("expected {u2}, got %+v", likes)
	}

	if _, err := f.svc.Like(ctx, f.u2, post.ID); !errors.Is(err, domain.ErrAlreadyLiked) {
		t.Fatalf("expected ErrAlreadyLiked, got %v", err)
	}

	got, err := f.svc.Get(ctx, post.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Likes) != 1 {
		t.Fatalf("like set changed on repeat: %+v", got.Likes)
	}
}

func TestPostService_Unlike(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.svc.Unlike(ctx, f.u2, post.ID); !errors.Is(err, domain.ErrNotLiked) {
		t.Fatalf("expected ErrNotLiked, got %v", err)
	}
	if _, err := f.svc.Like(ctx, f.u2, post.ID); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	likes, err := f.svc.Unlike(ctx, f.u2, post.ID)
	if err != nil {
		t.Fatalf("Unlike returned error: %v", err)
	}
	if len(likes) != 0 {
		t.Fatalf("expected empty like set, got %+v", likes)
	}
}

func TestPostService_Like_UnknownPost(t *testing.T) {
	f := newFeedFixture(t)
	if _, err := f.svc.Like(context.Background(), f.u2, "missing"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

// Scenario C: only the author deletes a post.
func TestPostService_Delete_OnlyAuthor(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if err := f.svc.Delete(ctx, f.u2, post.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, err := f.svc.Get(ctx, post.ID); err != nil {
		t.Fatalf("post must survive a forbidden delete: %v", err)
	}

	if err := f.svc.Delete(ctx, f.u1, post.ID); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if _, err := f.svc.Get(ctx, post.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostService_Comments(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	if _, err := f.svc.Comment(ctx, f.u2, post.ID, "first"); err != nil {
		t.Fatalf("Comment returned error: %v", err)
	}
	comments, err := f.svc.Comment(ctx, f.u1, post.ID, "second")
	if err != nil {
		t.Fatalf("Comment returned error: %v", err)
	}
	if len(comments) != 2 || comments[0].Text != "second" || comments[1].Name != "two" {
		t.Fatalf("expected newest first with snapshots, got %+v", comments)
	}
	first := comments[1]

	outsider, err := f.store.Users().Create(ctx, &domain.Identity{Name: "three", Email: "three@example.com"})
	if err != nil {
		t.Fatalf("create outsider: %v", err)
	}
	if _, err := f.svc.RemoveComment(ctx, outsider.ID, post.ID, first.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}

	// The post author may remove someone else's comment.
	comments, err = f.svc.RemoveComment(ctx, f.u1, post.ID, first.ID)
	if err != nil {
		t.Fatalf("RemoveComment returned error: %v", err)
	}
	if len(comments) != 1 || comments[0].Text != "second" {
		t.Fatalf("unexpected comments: %+v", comments)
	}

	if _, err := f.svc.RemoveComment(ctx, f.u1, post.ID, first.ID); !errors.Is(err, domain.ErrCommentNotFound) {
		t.Fatalf("expected ErrCommentNotFound, got %v", err)
	}
}

func TestPostService_PurgeAuthor(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	own, err := f.svc.Create(ctx, f.u2, "mine")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	other, err := f.svc.Create(ctx, f.u1, "theirs")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := f.svc.Like(ctx, f.u2, other.ID); err != nil {
		t.Fatalf("Like returned error: %v", err)
	}
	if _, err := f.svc.Comment(ctx, f.u2, other.ID, "hi"); err != nil {
		t.Fatalf("Comment returned error: %v", err)
	}
	if _, err := f.svc.Comment(ctx, f.u1, other.ID, "reply"); err != nil {
		t.Fatalf("Comment returned error: %v", err)
	}

	if err := f.svc.PurgeAuthor(ctx, f.u2); err != nil {
		t.Fatalf("PurgeAuthor returned error: %v", err)
	}

	if _, err := f.svc.Get(ctx, own.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("authored post survived: %v", err)
	}
	got, err := f.svc.Get(ctx, other.ID)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.Likes) != 0 || len(got.Comments) != 1 || got.Comments[0].AuthorID != f.u1 {
		t.Fatalf("activity not purged: %+v", got)
	}
}

func TestPostService_DeletedIdentityCannotEngage(t *testing.T) {
	f := newFeedFixture(t)
	ctx := context.Background()

	post, err := f.svc.Create(ctx, f.u1, "hello")
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if err := f.store.Users().Delete(ctx, f.u2); err != nil {
		t.Fatalf("delete u2: %v", err)
	}

	if _, err := f.svc.Like(ctx, f.u2, post.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Like: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Unlike(ctx, f.u2, post.ID); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Unlike: expected ErrUnauthorized, got %v", err)
	}
	if _, err := f.svc.Comment(ctx, f.u2, post.ID, "ghost"); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("Comment: expected ErrUnauthorized, got %v", err)
	}

	got, err := f.store.Posts().FindByID(ctx, post.ID)
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if len(got.Likes) != 0 || len(got.Comments) != 0 {
		t.Fatalf("deleted identity changed the post: %+v", got)
	}
}
