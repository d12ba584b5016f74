package userdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for user persistence.
type Repository interface {
	GetByID(ctx context.Context, db bun.IDB, id uuid.UUID) (*User, error)
	GetByEmail(ctx context.Context, db bun.IDB, email string) (*User, error)
	Create(ctx context.Context, db bun.IDB, user *User) error
	UpdateRoleAndTeam(ctx context.Context, db bun.IDB, id uuid.UUID, role string, teamID *uuid.UUID) error
	List(ctx context.Context, db bun.IDB, filter ListFilter) ([]User, error)
}
