package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/devconnector/connector-api/internal/core/domain"
)

func seqIDs() domain.IDSource {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return fmt.Sprintf("id%03d", n)
	}
}

func TestPostRepository_ConcurrentLikesAreNotLost(t *testing.T) {
	store := NewStoreWithIDs(seqIDs())
	posts := store.Posts()
	ctx := context.Background()

	p, err := posts.Create(ctx, &domain.Post{AuthorID: "u1", Text: "hello"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	const users = 50
	var wg sync.WaitGroup
	for i := 0; i < users; i++ {
		wg.Add(2)
		uid := fmt.Sprintf("user-%d", i)
		// Each user likes twice concurrently; exactly one must win.
		for j := 0; j < 2; j++ {
			go func() {
				defer wg.Done()
				if _, _, err := posts.AddLike(ctx, p.ID, uid); err != nil {
					t.Errorf("like: %v", err)
				}
			}()
		}
	}
	wg.Wait()

	got, err := posts.FindByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(got.Likes) != users {
		t.Fatalf("expected %d likes, got %d", users, len(got.Likes))
	}
}

func TestPostRepository_LikeUnknownPost(t *testing.T) {
	posts := NewStore().Posts()
	if _, _, err := posts.AddLike(context.Background(), "missing", "u1"); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("expected ErrPostNotFound, got %v", err)
	}
}

func TestPostRepository_ReturnedValuesDoNotAlias(t *testing.T) {
	posts := NewStore().Posts()
	ctx := context.Background()
	p, _ := posts.Create(ctx, &domain.Post{AuthorID: "u1"})

	likes, _, _ := posts.AddLike(ctx, p.ID, "u2")
	likes[0].UserID = "tampered"

	got, _ := posts.FindByID(ctx, p.ID)
	if got.Likes[0].UserID != "u2" {
		t.Fatalf("stored like mutated through returned slice: %+v", got.Likes)
	}
}

func TestPostRepository_ListNewestFirst(t *testing.T) {
	posts := NewStoreWithIDs(seqIDs()).Posts()
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		if _, err := posts.Create(ctx, &domain.Post{Text: fmt.Sprint(i), Date: base.Add(time.Duration(i) * time.Hour)}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	list, _ := posts.List(ctx)
	if len(list) != 3 || list[0].Text != "2" || list[2].Text != "0" {
		t.Fatalf("unexpected order: %v %v %v", list[0].Text, list[1].Text, list[2].Text)
	}
}

func TestPostRepository_PurgeAuthor(t *testing.T) {
	posts := NewStoreWithIDs(seqIDs()).Posts()
	ctx := context.Background()

	own, _ := posts.Create(ctx, &domain.Post{AuthorID: "gone"})
	other, _ := posts.Create(ctx, &domain.Post{AuthorID: "stay"})
	_, _, _ = posts.AddLike(ctx, other.ID, "gone")
	_, _ = posts.PrependComment(ctx, other.ID, domain.Comment{AuthorID: "gone", Text: "bye"})
	_, _ = posts.PrependComment(ctx, other.ID, domain.Comment{AuthorID: "stay", Text: "hi"})

	n, err := posts.DeleteByAuthor(ctx, "gone")
	if err != nil || n != 1 {
		t.Fatalf("DeleteByAuthor: n=%d err=%v", n, err)
	}
	if _, err := posts.FindByID(ctx, own.ID); !errors.Is(err, domain.ErrPostNotFound) {
		t.Fatalf("own post should be gone, got %v", err)
	}

	n, err = posts.PullActivity(ctx, "gone")
	if err != nil || n != 1 {
		t.Fatalf("PullActivity: n=%d err=%v", n, err)
	}
	got, _ := posts.FindByID(ctx, other.ID)
	if len(got.Likes) != 0 || len(got.Comments) != 1 || got.Comments[0].AuthorID != "stay" {
		t.Fatalf("unexpected remaining activity: %+v", got)
	}
}

func TestProfileRepository_OnePerOwner(t *testing.T) {
	profiles := NewStore().Profiles()
	ctx := context.Background()

	if _, err := profiles.Create(ctx, &domain.Profile{OwnerID: "u1"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := profiles.Create(ctx, &domain.Profile{OwnerID: "u1"}); !errors.Is(err, domain.ErrProfileExists) {
		t.Fatalf("expected ErrProfileExists, got %v", err)
	}
}

func TestProfileRepository_RemoveMissingEntryLeavesProfile(t *testing.T) {
	profiles := NewStoreWithIDs(seqIDs()).Profiles()
	ctx := context.Background()
	_, _ = profiles.Create(ctx, &domain.Profile{OwnerID: "u1"})
	before, _ := profiles.PrependExperience(ctx, "u1", domain.ExperienceEntry{Title: "a", Company: "b"})

	after, removed, err := profiles.RemoveExperience(ctx, "u1", "nope")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed {
		t.Fatalf("expected removed=false")
	}
	if len(after.Experience) != 1 || after.Experience[0] != before.Experience[0] {
		t.Fatalf("experience changed: %+v -> %+v", before.Experience, after.Experience)
	}
}

func TestUserRepository_UniqueEmail(t *testing.T) {
	users := NewStore().Users()
	ctx := context.Background()
	if _, err := users.Create(ctx, &domain.Identity{Email: "a@x.io"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := users.Create(ctx, &domain.Identity{Email: "a@x.io"}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}
