package memory

import (
	"context"
	"sort"

	"github.com/devconnector/connector-api/internal/core/domain"
)

type ProfileRepository struct {
	s *Store
}

func (r *ProfileRepository) FindByOwner(_ context.Context, ownerID string) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.profiles[ownerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	return p.Clone(), nil
}

func (r *ProfileRepository) List(_ context.Context) ([]*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Profile, 0, len(r.s.profiles))
	for _, p := range r.s.profiles {
		out = append(out, p.Clone())
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (r *ProfileRepository) Create(_ context.Context, p *domain.Profile) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, exists := r.s.profiles[p.OwnerID]; exists {
		return nil, domain.ErrProfileExists
	}
	stored := p.Clone()
	stored.ID = r.s.ids()
	r.s.profiles[stored.OwnerID] = stored
	return stored.Clone(), nil
}

func (r *ProfileRepository) Update(_ context.Context, ownerID string, fields domain.ProfileFields) (*domain.Profile, error) {
	return r.mutate(ownerID, func(p *domain.Profile) { fields.Apply(p) })
}

func (r *ProfileRepository) DeleteByOwner(_ context.Context, ownerID string) (bool, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	_, ok := r.s.profiles[ownerID]
	delete(r.s.profiles, ownerID)
	return ok, nil
}

func (r *ProfileRepository) PrependExperience(_ context.Context, ownerID string, e domain.ExperienceEntry) (*domain.Profile, error) {
	return r.mutate(ownerID, func(p *domain.Profile) { p.AddExperience(e, r.s.ids) })
}

func (r *ProfileRepository) RemoveExperience(_ context.Context, ownerID, entryID string) (*domain.Profile, bool, error) {
	var removed bool
	p, err := r.mutate(ownerID, func(p *domain.Profile) { removed = p.RemoveExperience(entryID) })
	return p, removed, err
}

func (r *ProfileRepository) PrependEducation(_ context.Context, ownerID string, e domain.EducationEntry) (*domain.Profile, error) {
	return r.mutate(ownerID, func(p *domain.Profile) { p.AddEducation(e, r.s.ids) })
}

func (r *ProfileRepository) RemoveEducation(_ context.Context, ownerID, entryID string) (*domain.Profile, bool, error) {
	var removed bool
	p, err := r.mutate(ownerID, func(p *domain.Profile) { removed = p.RemoveEducation(entryID) })
	return p, removed, err
}

// mutate applies fn to a copy of the owner's profile and stores the result,
// all under the store lock.
func (r *ProfileRepository) mutate(ownerID string, fn func(*domain.Profile)) (*domain.Profile, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.profiles[ownerID]
	if !ok {
		return nil, domain.ErrProfileNotFound
	}
	next := current.Clone()
	fn(next)
	next.OwnerID = current.OwnerID
	r.s.profiles[ownerID] = next
	return next.Clone(), nil
}
