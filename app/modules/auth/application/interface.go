package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the authentication service interface.
type Service interface {
	// Login checks credentials and issues a session token.
	Login(ctx context.Context, email, password string) (*LoginResult, error)

	// ValidateToken decodes a session token and refreshes its role and team.
	ValidateToken(ctx context.Context, token string) (*authdomain.Session, error)

	// Register creates an account. Only admins and commissioners may register users,
	// and only a commissioner may create another commissioner.
	Register(ctx context.Context, sess *authdomain.Session, req RegisterRequest) (*userdb.User, error)

	// Me returns the caller's account.
	Me(ctx context.Context, sess *authdomain.Session) (*userdb.User, error)

	// ListUsers lists accounts, optionally filtered by team or role.
	ListUsers(ctx context.Context, sess *authdomain.Session, filter userdb.ListFilter) ([]userdb.User, error)

	// AssignRole changes a user's role and team.
	AssignRole(ctx context.Context, sess *authdomain.Session, userID uuid.UUID, role authdomain.Role, teamID *uuid.UUID) (*userdb.User, error)
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expiresAt"`
	User      *userdb.User `json:"user"`
}

// RegisterRequest is the body of a registration.
type RegisterRequest struct {
	Email       string          `json:"email"`
	DisplayName string          `json:"displayName"`
	Password    string          `json:"password"`
	Role        authdomain.Role `json:"role"`
	TeamID      *uuid.UUID      `json:"teamId,omitempty"`
}

// Config holds the configuration for the auth service.
type Config struct {
	TokenTTL time.Duration
}
