package stats

import (
	"context"

	statsservice "github.com/Black-And-White-Club/dugout/app/modules/stats/application"
	statshandlers "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/handlers"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the stats module.
type Module struct {
	service  *statsservice.StatsService
	handlers *statshandlers.StatsHandlers
}

// NewModule creates the stats module. Games and players are read through the
// game and league repositories.
func NewModule(ctx context.Context, deps platform.Deps, games statsservice.GameReader, players statsservice.PlayerReader) *Module {
	deps.Logger.InfoContext(ctx, "Initializing stats module")

	service := statsservice.NewService(
		deps.Runner("StatsService"),
		statsdb.NewRepository(deps.DB),
		games,
		players,
		statsservice.Config{RegulationInnings: deps.Config.League.RegulationInnings},
	)
	return &Module{
		service:  service,
		handlers: statshandlers.NewStatsHandlers(service, deps.Logger, deps.Tracer),
	}
}

func (m *Module) Routes(r chi.Router) { m.handlers.Routes(r) }

func (m *Module) Service() statsservice.Service { return m.service }
