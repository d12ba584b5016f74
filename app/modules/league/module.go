package league

import (
	"context"

	leagueservice "github.com/Black-And-White-Club/dugout/app/modules/league/application"
	leaguehandlers "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/handlers"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the league module: seasons, teams and rosters.
type Module struct {
	repo     leaguedb.Repository
	service  *leagueservice.LeagueService
	handlers *leaguehandlers.LeagueHandlers
}

// NewModule creates the league module.
func NewModule(ctx context.Context, deps platform.Deps) *Module {
	deps.Logger.InfoContext(ctx, "Initializing league module")

	repo := leaguedb.NewRepository(deps.DB)
	service := leagueservice.NewService(deps.Runner("LeagueService"), repo)

	return &Module{
		repo:     repo,
		service:  service,
		handlers: leaguehandlers.NewLeagueHandlers(service, deps.Logger, deps.Tracer),
	}
}

// Routes mounts the season, team and player API.
func (m *Module) Routes(r chi.Router) {
	m.handlers.Routes(r)
}

// Service returns the league service for use by other modules.
func (m *Module) Service() leagueservice.Service { return m.service }

// Repository returns the league repository. Other modules read teams and
// players through it.
func (m *Module) Repository() leaguedb.Repository { return m.repo }
