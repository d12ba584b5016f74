package gamedb

import "errors"

var (
	// ErrNotFound is returned when no game matches.
	ErrNotFound = errors.New("game not found")
	// ErrVersionConflict is returned when a write carries a stale version.
	ErrVersionConflict = errors.New("game was modified by another request")
	// ErrInvalidReference is returned when a season or team id does not exist.
	ErrInvalidReference = errors.New("game references an unknown season or team")
)
