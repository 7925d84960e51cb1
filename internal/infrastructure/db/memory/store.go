// Package memory is an in-process document store. Each operation runs under
// one lock, which gives the same per-document atomicity the Mongo store gets
// from its update expressions. Values are cloned on the way in and out so
// callers never alias stored state.
package memory

import (
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/devconnector/connector-api/internal/core/domain"
)

// Store holds users, profiles and posts.
type Store struct {
	mu       sync.Mutex
	ids      domain.IDSource
	users    map[string]*domain.Identity
	profiles map[string]*domain.Profile // by owner id
	posts    map[string]*domain.Post
}

// NewStore returns an empty store that mints ObjectID-style hex ids.
func NewStore() *Store {
	return NewStoreWithIDs(func() string { return primitive.NewObjectID().Hex() })
}

// NewStoreWithIDs returns an empty store using ids for every new identifier.
func NewStoreWithIDs(ids domain.IDSource) *Store {
	return &Store{
		ids:      ids,
		users:    make(map[string]*domain.Identity),
		profiles: make(map[string]*domain.Profile),
		posts:    make(map[string]*domain.Post),
	}
}

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Profiles() *ProfileRepository { return &ProfileRepository{s: s} }
func (s *Store) Posts() *PostRepository       { return &PostRepository{s: s} }

func sortPostsNewestFirst(posts []*domain.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if posts[i].Date.Equal(posts[j].Date) {
			return posts[i].ID > posts[j].ID
		}
		return posts[i].Date.After(posts[j].Date)
	})
}
