package services

import "errors"

// Sentinel errors shared across services and the HTTP error mapping.
var (
	// Validation
	ErrMissingFields      = errors.New("missing required fields")
	ErrTeamNameRequired   = errors.New("field 'name' is required and cannot be empty")
	ErrTeamNameLength     = errors.New("team name must be between 2 and 255 characters")
	ErrDescriptionTooLong = errors.New("description cannot exceed 350 characters")
	ErrNotesTooLong       = errors.New("notes cannot exceed 350 characters")
	ErrCaptainInvalid     = errors.New("captain must reference an existing user")
	ErrImageKindInvalid   = errors.New("image kind must be 'profile' or 'banner'")
	ErrNoFieldsToUpdate   = errors.New("no fields provided for update")

	// Conflicts
	ErrUserEmailConflict  = errors.New("email already in use")
	ErrTeamNameConflict   = errors.New("team name is already in use")
	ErrTeamPlayerConflict = errors.New("player is already on this team")

	// Not found
	ErrUserNotFound = errors.New("user not found")
	ErrTeamNotFound = errors.New("team not found")

	// Authentication
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrTokenExpired       = errors.New("token has expired")
	ErrTokenInvalid       = errors.New("token is invalid")

	// Infrastructure
	ErrImageStorageUnavailable = errors.New("image storage is not configured")
)
