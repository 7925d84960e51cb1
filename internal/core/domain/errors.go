package domain

import "errors"

// Authentication.
var (
	ErrUnauthorized       = errors.New("no token, authorization denied")
	ErrInvalidToken       = errors.New("token is not valid")
	ErrExpiredToken       = errors.New("token has expired")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Authorization.
var ErrForbidden = errors.New("user is not authorized")

// Missing resources and sub-entries.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrProfileNotFound = errors.New("there is no profile for this user")
	ErrPostNotFound    = errors.New("post not found")
	ErrEntryNotFound   = errors.New("entry not found")
	ErrCommentNotFound = errors.New("comment does not exist")
)

// Conflicts with existing state.
var (
	ErrUserExists    = errors.New("user already exists")
	ErrProfileExists = errors.New("profile already exists for this user")
	ErrAlreadyLiked  = errors.New("post already liked")
	ErrNotLiked      = errors.New("post has not yet been liked")
)

var (
	ErrValidation       = errors.New("validation failed")
	ErrStoreUnavailable = errors.New("store unavailable")
)
