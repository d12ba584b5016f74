package availabilitydb

import "errors"

// ErrNotFound indicates the player has not answered for the game.
var ErrNotFound = errors.New("availability not found")
