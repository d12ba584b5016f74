package userdb

import "errors"

var (
	// ErrNotFound indicates the requested user does not exist.
	ErrNotFound = errors.New("user record not found")

	// ErrEmailTaken indicates another user already has the email address.
	ErrEmailTaken = errors.New("email already registered")
)
