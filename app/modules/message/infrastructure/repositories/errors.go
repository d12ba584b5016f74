package messagedb

import "errors"

var (
	ErrNotFound = errors.New("message not found")
	// ErrCursorNotFound means the before/after message does not exist in the channel.
	ErrCursorNotFound = errors.New("cursor message not found")
)
