package domain

// Owned is a resource with exactly one owning identity.
type Owned interface {
	Owner() string
}

// MayMutate reports whether identityID owns r. Profiles are owned through
// OwnerID and posts through AuthorID.
func MayMutate(identityID string, r Owned) bool {
	if identityID == "" || r == nil {
		return false
	}
	return r.Owner() == identityID
}

// Authorize returns ErrForbidden unless identityID owns r.
func Authorize(identityID string, r Owned) error {
	if !MayMutate(identityID, r) {
		return ErrForbidden
	}
	return nil
}

// MayEngage reports whether identityID may like, unlike or comment.
// Any verified identity may.
func MayEngage(identityID string) bool {
	return identityID != ""
}

// MayRemoveComment allows the comment's author and the post's author.
func MayRemoveComment(identityID string, post *Post, c Comment) bool {
	if identityID == "" {
		return false
	}
	return c.AuthorID == identityID || MayMutate(identityID, post)
}
