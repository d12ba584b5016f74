package standings

import (
	"context"

	standingsservice "github.com/Black-And-White-Club/dugout/app/modules/standings/application"
	standingshandlers "github.com/Black-And-White-Club/dugout/app/modules/standings/infrastructure/handlers"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the standings module. It reads seasons, teams and games
// owned by other modules and stores nothing itself.
type Module struct {
	handlers *standingshandlers.StandingsHandlers
}

func NewModule(ctx context.Context, deps platform.Deps, league standingsservice.LeagueReader, games standingsservice.GameLister) *Module {
	deps.Logger.InfoContext(ctx, "Initializing standings module")
	service := standingsservice.NewService(deps.Runner("StandingsService"), league, games)
	return &Module{handlers: standingshandlers.NewStandingsHandlers(service, deps.Logger, deps.Tracer)}
}

func (m *Module) Routes(r chi.Router) { m.handlers.Routes(r) }
