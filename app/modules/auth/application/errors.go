package authservice

import "github.com/Black-And-White-Club/dugout/app/shared/apperr"

var (
	// ErrInvalidCredentials is returned for an unknown email or wrong password.
	ErrInvalidCredentials = apperr.Unauthenticated("invalid email or password")

	// ErrInvalidSession is returned for a missing, malformed or expired token.
	ErrInvalidSession = apperr.Unauthenticated("invalid or expired session")

	// ErrEmailTaken is returned when registering an email that already exists.
	ErrEmailTaken = apperr.Validation("email is already registered")
)
