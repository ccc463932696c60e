package model

import "errors"

// Common errors used across the application
var (
	// Role errors
	ErrAlreadyConfigured     = errors.New("authority shard already configured")
	ErrNoAuthorityConfigured = errors.New("no authority shard configured")
	ErrNotAuthority          = errors.New("operation restricted to the authority shard")

	// Session errors
	ErrNoActiveSession = errors.New("no active game session")
	ErrSessionNotFound = errors.New("session not found")

	// Stats errors
	ErrStatsNotFound = errors.New("player stats not found")
)
