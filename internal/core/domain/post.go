package domain

import (
	"slices"
	"time"
)

// LikeResult reports the outcome of a like or unlike.
type LikeResult int

const (
	LikeAdded LikeResult = iota + 1
	LikeAlreadyPresent
	LikeRemoved
	LikeNotPresent
)

func (r LikeResult) String() string {
	switch r {
	case LikeAdded:
		return "added"
	case LikeAlreadyPresent:
		return "already_liked"
	case LikeRemoved:
		return "removed"
	case LikeNotPresent:
		return "not_liked"
	default:
		return "unknown"
	}
}

// Err maps the no-op outcomes to their conflict errors and returns nil for
// the ones that changed the post.
func (r LikeResult) Err() error {
	switch r {
	case LikeAlreadyPresent:
		return ErrAlreadyLiked
	case LikeNotPresent:
		return ErrNotLiked
	default:
		return nil
	}
}

// Like is one membership record in a post's like set, keyed by user.
type Like struct {
	UserID string `json:"user" bson:"user"`
}

func (l Like) EntryID() string { return l.UserID }

// Comment is a reply on a post with the author's snapshot at comment time.
type Comment struct {
	ID       string    `json:"_id" bson:"_id"`
	AuthorID string    `json:"user" bson:"user"`
	Text     string    `json:"text" bson:"text"`
	Name     string    `json:"name" bson:"name"`
	Avatar   string    `json:"avatar" bson:"avatar"`
	Date     time.Time `json:"date" bson:"date"`
}

func (c Comment) EntryID() string { return c.ID }

func (c Comment) WithID(id string) Comment {
	c.ID = id
	return c
}

// Post is a feed item. Name and Avatar are the author snapshot taken when
// the post was created.
type Post struct {
	ID       string    `json:"_id" bson:"_id,omitempty"`
	AuthorID string    `json:"user" bson:"user"`
	Text     string    `json:"text" bson:"text"`
	Name     string    `json:"name" bson:"name"`
	Avatar   string    `json:"avatar" bson:"avatar"`
	Likes    []Like    `json:"likes" bson:"likes"`
	Comments []Comment `json:"comments" bson:"comments"`
	Date     time.Time `json:"date" bson:"date"`
}

// Owner implements Owned.
func (p *Post) Owner() string {
	if p == nil {
		return ""
	}
	return p.AuthorID
}

// HasLiked reports whether userID is in the like set.
func (p *Post) HasLiked(userID string) bool {
	return IndexOf(p.Likes, userID) >= 0
}

// ToggleLike adds userID to the like set unless it is already there.
func (p *Post) ToggleLike(userID string) LikeResult {
	if p.HasLiked(userID) {
		return LikeAlreadyPresent
	}
	likes := make([]Like, 0, len(p.Likes)+1)
	likes = append(likes, Like{UserID: userID})
	p.Likes = append(likes, p.Likes...)
	return LikeAdded
}

// Unlike removes exactly one membership record for userID.
func (p *Post) Unlike(userID string) LikeResult {
	var removed bool
	p.Likes, removed = RemoveByID(p.Likes, userID)
	if !removed {
		return LikeNotPresent
	}
	return LikeRemoved
}

// AddComment prepends c with a fresh id and returns the stored comment.
func (p *Post) AddComment(c Comment, next IDSource) Comment {
	var stamped Comment
	p.Comments, stamped = InsertFront(p.Comments, c, next)
	return stamped
}

// FindComment returns the comment with the given id.
func (p *Post) FindComment(id string) (Comment, bool) {
	i := IndexOf(p.Comments, id)
	if i < 0 {
		return Comment{}, false
	}
	return p.Comments[i], true
}

// RemoveComment deletes the comment with the given id.
func (p *Post) RemoveComment(id string) bool {
	var removed bool
	p.Comments, removed = RemoveByID(p.Comments, id)
	return removed
}

// PurgeActivity drops every like and comment left by userID and reports
// whether anything changed.
func (p *Post) PurgeActivity(userID string) bool {
	changed := p.Unlike(userID) == LikeRemoved
	kept := make([]Comment, 0, len(p.Comments))
	for _, c := range p.Comments {
		if c.AuthorID == userID {
			changed = true
			continue
		}
		kept = append(kept, c)
	}
	p.Comments = kept
	return changed
}

// Clone returns a deep copy so callers never alias the stored sequences.
func (p *Post) Clone() *Post {
	c := *p
	c.Likes = slices.Clone(p.Likes)
	c.Comments = slices.Clone(p.Comments)
	return &c
}
