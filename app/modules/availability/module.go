package availability

import (
	"context"

	availabilityservice "github.com/Black-And-White-Club/dugout/app/modules/availability/application"
	availabilityhandlers "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/handlers"
	availabilitydb "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the game attendance module.
type Module struct {
	handlers *availabilityhandlers.AvailabilityHandlers
}

func NewModule(ctx context.Context, deps platform.Deps, games availabilityservice.GameReader, rosters availabilityservice.RosterReader) *Module {
	deps.Logger.InfoContext(ctx, "Initializing availability module")

	service := availabilityservice.NewService(deps.Runner("AvailabilityService"), availabilitydb.NewRepository(deps.DB), games, rosters, deps.Clock)
	return &Module{handlers: availabilityhandlers.NewAvailabilityHandlers(service, deps.Logger, deps.Tracer)}
}

func (m *Module) Routes(r chi.Router) { m.handlers.Routes(r) }
