package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/devconnector/connector-api/internal/core/domain"
	"github.com/devconnector/connector-api/internal/core/ports"
)

// AccountService runs the self-deletion cascade.
type AccountService struct {
	profiles ports.ProfileRepository
	users    ports.UserRepository
	cache    ports.AuthorCache
	purges   ports.PurgeScheduler
	log      zerolog.Logger
}

// NewAccountService wires the cascade. cache may be nil. A nil purges keeps
// the departing identity's posts and comments in place (orphan-and-keep).
func NewAccountService(
	profiles ports.ProfileRepository,
	users ports.UserRepository,
	cache ports.AuthorCache,
	purges ports.PurgeScheduler,
	log zerolog.Logger,
) *AccountService {
	if cache == nil {
		cache = nopCache{}
	}
	return &AccountService{profiles: profiles, users: users, cache: cache, purges: purges, log: log}
}

// DeleteAccount removes the profile, then the identity, then schedules the
// purge of authored content. A failure stops the sequence before the next
// step runs.
func (s *AccountService) DeleteAccount(ctx context.Context, identityID string) error {
	if identityID == "" {
		return domain.ErrUnauthorized
	}

	hadProfile, err := s.profiles.DeleteByOwner(ctx, identityID)
	if err != nil {
		return fmt.Errorf("delete account: profile: %w", err)
	}

	if err := s.users.Delete(ctx, identityID); err != nil {
		return fmt.Errorf("delete account: user: %w", err)
	}

	if err := s.cache.Invalidate(ctx, identityID); err != nil {
		s.log.Warn().Err(err).Str("user_id", identityID).Msg("author cache invalidation failed")
	}

	if s.purges != nil {
		s.purges.Enqueue(ports.PurgeJob{IdentityID: identityID})
	}

	s.log.Info().
		Str("user_id", identityID).
		Bool("had_profile", hadProfile).
		Bool("purge_scheduled", s.purges != nil).
		Msg("account deleted")
	return nil
}
