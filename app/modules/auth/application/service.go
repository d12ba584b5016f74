package authservice

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
	"golang.org/x/crypto/bcrypt"
)

const (
	DefaultTokenTTL   = 24 * time.Hour
	minPasswordLength = 8
)

// dummyHash is compared against when the email is unknown so both paths cost a bcrypt round.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("dugout-timing-equaliser"), bcrypt.DefaultCost)

// AuthService implements the Service interface.
type AuthService struct {
	run         operation.Runner
	repo        userdb.Repository
	jwtProvider authjwt.Provider
	config      Config
	clock       clockwork.Clock
}

// NewService creates a new auth service.
func NewService(
	run operation.Runner,
	repo userdb.Repository,
	jwtProvider authjwt.Provider,
	config Config,
	clock clockwork.Clock,
) *AuthService {
	if config.TokenTTL == 0 {
		config.TokenTTL = DefaultTokenTTL
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AuthService{
		run:         run,
		repo:        repo,
		jwtProvider: jwtProvider,
		config:      config,
		clock:       clock,
	}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

// Login checks credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Login", email, func(ctx context.Context) (result[*LoginResult], error) {
		user, err := s.repo.GetByEmail(ctx, nil, strings.TrimSpace(email))
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(password))
				return failure[*LoginResult](ErrInvalidCredentials)
			}
			return result[*LoginResult]{}, fmt.Errorf("failed to load user: %w", err)
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
			return failure[*LoginResult](ErrInvalidCredentials)
		}

		role, err := authdomain.ParseRole(user.Role)
		if err != nil {
			return result[*LoginResult]{}, fmt.Errorf("stored role for user %s: %w", user.ID, err)
		}

		sess := &authdomain.Session{UserID: user.ID, Role: role, TeamID: user.TeamID}
		token, err := s.jwtProvider.GenerateToken(sess, s.config.TokenTTL)
		if err != nil {
			return result[*LoginResult]{}, fmt.Errorf("failed to generate token: %w", err)
		}

		return success(&LoginResult{
			Token:     token,
			ExpiresAt: s.clock.Now().Add(s.config.TokenTTL),
			User:      user,
		})
	}))
}

// ValidateToken decodes a session token and refreshes its role and team from
// the stored user, so role changes apply to tokens already issued. Decoding
// problems and deleted users map to ErrInvalidSession.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*authdomain.Session, error) {
	if token == "" {
		return nil, ErrInvalidSession
	}
	sess, err := s.jwtProvider.ValidateToken(token)
	if err != nil {
		return nil, ErrInvalidSession
	}

	user, err := s.repo.GetByID(ctx, nil, sess.UserID)
	if err != nil {
		if errors.Is(err, userdb.ErrNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, fmt.Errorf("failed to load session user: %w", err)
	}
	role, err := authdomain.ParseRole(user.Role)
	if err != nil {
		return nil, fmt.Errorf("stored role for user %s: %w", user.ID, err)
	}
	sess.Role = role
	sess.TeamID = user.TeamID
	return sess, nil
}

// Register creates an account.
func (s *AuthService) Register(ctx context.Context, sess *authdomain.Session, req RegisterRequest) (*userdb.User, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Register", req.Email, func(ctx context.Context) (result[*userdb.User], error) {
		if !sess.Can(authdomain.RoleAdmin) {
			return failure[*userdb.User](apperr.Forbidden("only admins can register users"))
		}
		if req.Role == authdomain.RoleUnknown {
			req.Role = authdomain.RolePlayer
		}
		if f := validateRegistration(req); f != nil {
			return failure[*userdb.User](f)
		}
		if !authdomain.HasPermission(sess.Role, req.Role) {
			return failure[*userdb.User](apperr.Forbidden("cannot grant a role above your own"))
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
		if err != nil {
			return result[*userdb.User]{}, fmt.Errorf("failed to hash password: %w", err)
		}

		user := &userdb.User{
			Email:        strings.TrimSpace(req.Email),
			DisplayName:  strings.TrimSpace(req.DisplayName),
			PasswordHash: string(hash),
			Role:         req.Role.String(),
			TeamID:       req.TeamID,
		}
		if err := s.repo.Create(ctx, nil, user); err != nil {
			if errors.Is(err, userdb.ErrEmailTaken) {
				return failure[*userdb.User](ErrEmailTaken)
			}
			return result[*userdb.User]{}, err
		}
		return success(user)
	}))
}

func validateRegistration(req RegisterRequest) *apperr.Failure {
	if _, err := mail.ParseAddress(req.Email); err != nil {
		return apperr.Validation("email is not a valid address")
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		return apperr.Validation("displayName is required")
	}
	if len(req.Password) < minPasswordLength {
		return apperr.Validation(fmt.Sprintf("password must be at least %d characters", minPasswordLength))
	}
	if !req.Role.IsValid() {
		return apperr.Validation("role is not valid")
	}
	if req.Role == authdomain.RoleManager && req.TeamID == nil {
		return apperr.Validation("managers must be assigned a team")
	}
	return nil
}

// Me returns the caller's account.
func (s *AuthService) Me(ctx context.Context, sess *authdomain.Session) (*userdb.User, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Me", sess.UserID.String(), func(ctx context.Context) (result[*userdb.User], error) {
		user, err := s.repo.GetByID(ctx, nil, sess.UserID)
		if err != nil {
			if errors.Is(err, userdb.ErrNotFound) {
				return failure[*userdb.User](ErrInvalidSession)
			}
			return result[*userdb.User]{}, err
		}
		return success(user)
	}))
}

// ListUsers lists accounts. Managers only see their own team.
func (s *AuthService) ListUsers(ctx context.Context, sess *authdomain.Session, filter userdb.ListFilter) ([]userdb.User, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListUsers", sess.UserID.String(), func(ctx context.Context) (result[[]userdb.User], error) {
		switch {
		case sess.IsPrivileged():
		case sess.Can(authdomain.RoleManager) && sess.TeamID != nil:
			filter.TeamID = sess.TeamID
		default:
			return failure[[]userdb.User](apperr.Forbidden("managers and admins only"))
		}
		users, err := s.repo.List(ctx, nil, filter)
		if err != nil {
			return result[[]userdb.User]{}, err
		}
		return success(users)
	}))
}

// AssignRole changes a user's role and team inside one transaction.
func (s *AuthService) AssignRole(ctx context.Context, sess *authdomain.Session, userID uuid.UUID, role authdomain.Role, teamID *uuid.UUID) (*userdb.User, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "AssignRole", userID.String(), func(ctx context.Context) (result[*userdb.User], error) {
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*userdb.User], error) {
			if !sess.Can(authdomain.RoleAdmin) {
				return failure[*userdb.User](apperr.Forbidden("only admins can change roles"))
			}
			if !role.IsValid() {
				return failure[*userdb.User](apperr.Validation("role is not valid"))
			}
			if !authdomain.HasPermission(sess.Role, role) {
				return failure[*userdb.User](apperr.Forbidden("cannot grant a role above your own"))
			}
			if role == authdomain.RoleManager && teamID == nil {
				return failure[*userdb.User](apperr.Validation("managers must be assigned a team"))
			}

			target, err := s.repo.GetByID(ctx, db, userID)
			if err != nil {
				if errors.Is(err, userdb.ErrNotFound) {
					return failure[*userdb.User](apperr.NotFound("user not found"))
				}
				return result[*userdb.User]{}, err
			}
			if current, _ := authdomain.ParseRole(target.Role); !authdomain.HasPermission(sess.Role, current) {
				return failure[*userdb.User](apperr.Forbidden("cannot change the role of a higher-ranked user"))
			}

			if err := s.repo.UpdateRoleAndTeam(ctx, db, userID, role.String(), teamID); err != nil {
				return result[*userdb.User]{}, err
			}
			target.Role = role.String()
			target.TeamID = teamID
			return success(target)
		})
	}))
}

var _ Service = (*AuthService)(nil)
