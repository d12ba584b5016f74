package authjwt

import (
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
)

// Provider defines the interface for JWT token operations.
type Provider interface {
	// GenerateToken creates a signed session token.
	GenerateToken(sess *authdomain.Session, ttl time.Duration) (string, error)

	// ValidateToken validates a session token and returns the session if valid.
	ValidateToken(tokenString string) (*authdomain.Session, error)
}
