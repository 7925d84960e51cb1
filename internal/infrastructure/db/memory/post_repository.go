package memory

import (
	"context"

	"github.com/devconnector/connector-api/internal/core/domain"
)

type PostRepository struct {
	s *Store
}

func (r *PostRepository) Create(_ context.Context, p *domain.Post) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored := p.Clone()
	stored.ID = r.s.ids()
	r.s.posts[stored.ID] = stored
	return stored.Clone(), nil
}

func (r *PostRepository) FindByID(_ context.Context, id string) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	p, ok := r.s.posts[id]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return p.Clone(), nil
}

func (r *PostRepository) List(_ context.Context) ([]*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	out := make([]*domain.Post, 0, len(r.s.posts))
	for _, p := range r.s.posts {
		out = append(out, p.Clone())
	}
	sortPostsNewestFirst(out)
	return out, nil
}

func (r *PostRepository) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[id]; !ok {
		return domain.ErrPostNotFound
	}
	delete(r.s.posts, id)
	return nil
}

func (r *PostRepository) AddLike(_ context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error) {
	var res domain.LikeResult
	p, err := r.mutate(postID, func(p *domain.Post) { res = p.ToggleLike(userID) })
	if err != nil {
		return nil, 0, err
	}
	return p.Likes, res, nil
}

func (r *PostRepository) RemoveLike(_ context.Context, postID, userID string) ([]domain.Like, domain.LikeResult, error) {
	var res domain.LikeResult
	p, err := r.mutate(postID, func(p *domain.Post) { res = p.Unlike(userID) })
	if err != nil {
		return nil, 0, err
	}
	return p.Likes, res, nil
}

func (r *PostRepository) PrependComment(_ context.Context, postID string, c domain.Comment) ([]domain.Comment, error) {
	p, err := r.mutate(postID, func(p *domain.Post) { p.AddComment(c, r.s.ids) })
	if err != nil {
		return nil, err
	}
	return p.Comments, nil
}

func (r *PostRepository) RemoveComment(_ context.Context, postID, commentID string) ([]domain.Comment, bool, error) {
	var removed bool
	p, err := r.mutate(postID, func(p *domain.Post) { removed = p.RemoveComment(commentID) })
	if err != nil {
		return nil, false, err
	}
	return p.Comments, removed, nil
}

func (r *PostRepository) DeleteByAuthor(_ context.Context, authorID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, p := range r.s.posts {
		if p.AuthorID == authorID {
			delete(r.s.posts, id)
			n++
		}
	}
	return n, nil
}

func (r *PostRepository) PullActivity(_ context.Context, authorID string) (int64, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	var n int64
	for id, p := range r.s.posts {
		next := p.Clone()
		if next.PurgeActivity(authorID) {
			r.s.posts[id] = next
			n++
		}
	}
	return n, nil
}

// mutate applies fn to a copy of the post and stores the result under the
// store lock.
func (r *PostRepository) mutate(postID string, fn func(*domain.Post)) (*domain.Post, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	current, ok := r.s.posts[postID]
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	next := current.Clone()
	fn(next)
	r.s.posts[postID] = next
	return next.Clone(), nil
}
