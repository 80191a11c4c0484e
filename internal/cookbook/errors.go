package cookbook

import "errors"

var (
	// Validation failures: missing or malformed input. Wrapped with the offending field.
	ErrValidation = errors.New("validation failed")

	// Identity errors.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")

	// Authorization errors.
	ErrNotAuthenticated = errors.New("not logged in")
	ErrForbidden        = errors.New("permission denied")
	ErrProtectedAccount = errors.New("account is protected")

	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Friend request errors.
	ErrDuplicateRequest = errors.New("friend request already pending")
	ErrAlreadyFriends   = errors.New("already friends")
	ErrRequestResolved  = errors.New("friend request already resolved")
)
