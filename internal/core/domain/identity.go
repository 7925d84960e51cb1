package domain

import "time"

// Identity is a registered user account.
type Identity struct {
	ID           string    `json:"id" bson:"_id,omitempty"`
	Name         string    `json:"name" bson:"name"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password"`
	Avatar       string    `json:"avatar" bson:"avatar"`
	Date         time.Time `json:"date" bson:"date"`
}

// AuthorSnapshot is the name and avatar copied onto posts and comments at
// creation time. It is never resynced with the Identity afterwards.
type AuthorSnapshot struct {
	Name   string `json:"name"`
	Avatar string `json:"avatar"`
}

// Snapshot returns the identity's current author snapshot.
func (i *Identity) Snapshot() AuthorSnapshot {
	return AuthorSnapshot{Name: i.Name, Avatar: i.Avatar}
}

// Token is a signed, time-limited credential for one identity.
type Token struct {
	SubjectID string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Signed    string
}
