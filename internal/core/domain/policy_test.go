package domain

import (
	"errors"
	"testing"
)

func TestMayMutate_OwnerOnly(t *testing.T) {
	ids := []string{"u1", "u2", "u3"}
	for _, owner := range ids {
		profile := &Profile{OwnerID: owner}
		post := &Post{AuthorID: owner}
		for _, actor := range ids {
			want := actor == owner
			if got := MayMutate(actor, profile); got != want {
				t.Fatalf("profile owner=%s actor=%s: expected %v, got %v", owner, actor, want, got)
			}
			if got := MayMutate(actor, post); got != want {
				t.Fatalf("post author=%s actor=%s: expected %v, got %v", owner, actor, want, got)
			}
		}
	}
}

func TestMayMutate_EmptyIdentityOrResource(t *testing.T) {
	if MayMutate("", &Post{AuthorID: ""}) {
		t.Fatalf("empty identity must never match")
	}
	var p *Profile
	if MayMutate("u1", p) {
		t.Fatalf("nil profile must be denied")
	}
	if MayMutate("u1", nil) {
		t.Fatalf("nil resource must be denied")
	}
}

func TestAuthorize(t *testing.T) {
	if err := Authorize("u1", &Post{AuthorID: "u1"}); err != nil {
		t.Fatalf("expected nil, got %v", err)
	}
	if err := Authorize("u2", &Post{AuthorID: "u1"}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMayEngage(t *testing.T) {
	if !MayEngage("u9") {
		t.Fatalf("any verified identity may engage")
	}
	if MayEngage("") {
		t.Fatalf("empty identity may not engage")
	}
}

func TestMayRemoveComment(t *testing.T) {
	post := &Post{AuthorID: "author"}
	c := Comment{ID: "c1", AuthorID: "commenter"}

	if !MayRemoveComment("commenter", post, c) {
		t.Fatalf("comment author must be allowed")
	}
	if !MayRemoveComment("author", post, c) {
		t.Fatalf("post author must be allowed")
	}
	if MayRemoveComment("stranger", post, c) {
		t.Fatalf("stranger must be denied")
	}
	if MayRemoveComment("", post, Comment{}) {
		t.Fatalf("empty identity must be denied")
	}
}
