package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/devconnector/connector-api/internal/core/domain"
)

const defaultAuthorTTL = 10 * time.Minute

// AuthorCache keeps author snapshots (name, avatar) so post and comment
// creation does not hit the user store on every write.
// Key format: author:<identity_id>
type AuthorCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewAuthorCache wraps client. A non-positive ttl falls back to defaultAuthorTTL.
func NewAuthorCache(client redis.Cmdable, ttl time.Duration) *AuthorCache {
	if ttl <= 0 {
		ttl = defaultAuthorTTL
	}
	return &AuthorCache{client: client, ttl: ttl}
}

// Get returns the cached snapshot and whether it was present.
func (c *AuthorCache) Get(ctx context.Context, id string) (*domain.AuthorSnapshot, bool, error) {
	raw, err := c.client.Get(ctx, authorKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("author cache get: %w", err)
	}

	var s domain.AuthorSnapshot
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, false, fmt.Errorf("author cache decode: %w", err)
	}
	return &s, true, nil
}

func (c *AuthorCache) Set(ctx context.Context, id string, s domain.AuthorSnapshot) error {
	raw, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("author cache encode: %w", err)
	}
	return c.client.Set(ctx, authorKey(id), raw, c.ttl).Err()
}

// Invalidate drops the snapshot; called when the identity is deleted.
func (c *AuthorCache) Invalidate(ctx context.Context, id string) error {
	return c.client.Del(ctx, authorKey(id)).Err()
}

func authorKey(id string) string {
	return "author:" + id
}
