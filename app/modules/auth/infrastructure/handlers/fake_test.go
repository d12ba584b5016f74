package authhandlers

import (
	"context"

	authservice "github.com/Black-And-White-Club/dugout/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

// FakeService implements authservice.Service for handler tests.
type FakeService struct {
	trace []string

	LoginFunc         func(ctx context.Context, email, password string) (*authservice.LoginResult, error)
	ValidateTokenFunc func(ctx context.Context, token string) (*authdomain.Session, error)
	RegisterFunc      func(ctx context.Context, sess *authdomain.Session, req authservice.RegisterRequest) (*userdb.User, error)
	MeFunc            func(ctx context.Context, sess *authdomain.Session) (*userdb.User, error)
	ListUsersFunc     func(ctx context.Context, sess *authdomain.Session, filter userdb.ListFilter) ([]userdb.User, error)
	AssignRoleFunc    func(ctx context.Context, sess *authdomain.Session, userID uuid.UUID, role authdomain.Role, teamID *uuid.UUID) (*userdb.User, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) Login(ctx context.Context, email, password string) (*authservice.LoginResult, error) {
	f.record("Login")
	if f.LoginFunc != nil {
		return f.LoginFunc(ctx, email, password)
	}
	return nil, authservice.ErrInvalidCredentials
}

func (f *FakeService) ValidateToken(ctx context.Context, token string) (*authdomain.Session, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(ctx, token)
	}
	return nil, authservice.ErrInvalidSession
}

func (f *FakeService) Register(ctx context.Context, sess *authdomain.Session, req authservice.RegisterRequest) (*userdb.User, error) {
	f.record("Register")
	if f.RegisterFunc != nil {
		return f.RegisterFunc(ctx, sess, req)
	}
	return nil, apperr.Forbidden("not configured")
}

func (f *FakeService) Me(ctx context.Context, sess *authdomain.Session) (*userdb.User, error) {
	f.record("Me")
	if f.MeFunc != nil {
		return f.MeFunc(ctx, sess)
	}
	return &userdb.User{ID: sess.UserID}, nil
}

func (f *FakeService) ListUsers(ctx context.Context, sess *authdomain.Session, filter userdb.ListFilter) ([]userdb.User, error) {
	f.record("ListUsers")
	if f.ListUsersFunc != nil {
		return f.ListUsersFunc(ctx, sess, filter)
	}
	return nil, nil
}

func (f *FakeService) AssignRole(ctx context.Context, sess *authdomain.Session, userID uuid.UUID, role authdomain.Role, teamID *uuid.UUID) (*userdb.User, error) {
	f.record("AssignRole")
	if f.AssignRoleFunc != nil {
		return f.AssignRoleFunc(ctx, sess, userID, role, teamID)
	}
	return nil, nil
}

var _ authservice.Service = (*FakeService)(nil)
