package authservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authjwt "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake JWT Provider
// ------------------------

type FakeJWTProvider struct {
	trace []string

	GenerateTokenFunc func(sess *authdomain.Session, ttl time.Duration) (string, error)
	ValidateTokenFunc func(tokenString string) (*authdomain.Session, error)
}

func (f *FakeJWTProvider) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeJWTProvider) Trace() []string { return f.trace }

func (f *FakeJWTProvider) GenerateToken(sess *authdomain.Session, ttl time.Duration) (string, error) {
	f.record("GenerateToken")
	if f.GenerateTokenFunc != nil {
		return f.GenerateTokenFunc(sess, ttl)
	}
	return "fake-token", nil
}

func (f *FakeJWTProvider) ValidateToken(tokenString string) (*authdomain.Session, error) {
	f.record("ValidateToken")
	if f.ValidateTokenFunc != nil {
		return f.ValidateTokenFunc(tokenString)
	}
	return &authdomain.Session{UserID: uuid.New(), Role: authdomain.RolePlayer}, nil
}

var _ authjwt.Provider = (*FakeJWTProvider)(nil)

// ------------------------
// Fake User Repo
// ------------------------

type FakeUserRepo struct {
	trace []string

	GetByIDFunc           func(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error)
	GetByEmailFunc        func(ctx context.Context, db bun.IDB, email string) (*userdb.User, error)
	CreateFunc            func(ctx context.Context, db bun.IDB, user *userdb.User) error
	UpdateRoleAndTeamFunc func(ctx context.Context, db bun.IDB, id uuid.UUID, role string, teamID *uuid.UUID) error
	ListFunc              func(ctx context.Context, db bun.IDB, filter userdb.ListFilter) ([]userdb.User, error)
}

func NewFakeUserRepo() *FakeUserRepo {
	return &FakeUserRepo{trace: []string{}}
}

func (f *FakeUserRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeUserRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeUserRepo) GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*userdb.User, error) {
	f.record("GetByID")
	if f.GetByIDFunc != nil {
		return f.GetByIDFunc(ctx, db, id)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) GetByEmail(ctx context.Context, db bun.IDB, email string) (*userdb.User, error) {
	f.record("GetByEmail")
	if f.GetByEmailFunc != nil {
		return f.GetByEmailFunc(ctx, db, email)
	}
	return nil, userdb.ErrNotFound
}

func (f *FakeUserRepo) Create(ctx context.Context, db bun.IDB, user *userdb.User) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, user)
	}
	return nil
}

func (f *FakeUserRepo) UpdateRoleAndTeam(ctx context.Context, db bun.IDB, id uuid.UUID, role string, teamID *uuid.UUID) error {
	f.record("UpdateRoleAndTeam")
	if f.UpdateRoleAndTeamFunc != nil {
		return f.UpdateRoleAndTeamFunc(ctx, db, id, role, teamID)
	}
	return nil
}

func (f *FakeUserRepo) List(ctx context.Context, db bun.IDB, filter userdb.ListFilter) ([]userdb.User, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, filter)
	}
	return nil, nil
}

var _ userdb.Repository = (*FakeUserRepo)(nil)
