package user

import (
	"context"

	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
)

// Module owns user persistence. Sign-in, sessions and role management are
// served by the auth module on top of this repository.
type Module struct {
	repo userdb.Repository
}

// NewModule creates the user module.
func NewModule(ctx context.Context, deps platform.Deps) *Module {
	deps.Logger.InfoContext(ctx, "Initializing user module")
	return &Module{repo: userdb.NewRepository(deps.DB)}
}

// Repository returns the user repository.
func (m *Module) Repository() userdb.Repository { return m.repo }
