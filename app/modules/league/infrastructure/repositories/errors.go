package leaguedb

import "errors"

var (
	// ErrNotFound indicates the requested season, team or player does not exist.
	ErrNotFound = errors.New("league record not found")

	// ErrDuplicate indicates a uniqueness constraint (team abbreviation, jersey number) was hit.
	ErrDuplicate = errors.New("league record already exists")
)
