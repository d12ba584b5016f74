package statsdb

import "errors"

// ErrNotFound indicates no line exists for the game and player.
var ErrNotFound = errors.New("stat line not found")

// ErrInvalidReference indicates the game or player does not exist.
var ErrInvalidReference = errors.New("stat line references a missing game or player")
