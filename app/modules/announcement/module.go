package announcement

import (
	"context"
	"fmt"
	"time"

	announcementservice "github.com/Black-And-White-Club/dugout/app/modules/announcement/application"
	announcementhandlers "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/handlers"
	announcementdb "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the notice board module.
type Module struct {
	service  *announcementservice.AnnouncementService
	handlers *announcementhandlers.AnnouncementHandlers
}

// NewModule creates the announcement module. Reminders are rendered in the
// league timezone.
func NewModule(ctx context.Context, deps platform.Deps, teams announcementservice.TeamReader) (*Module, error) {
	deps.Logger.InfoContext(ctx, "Initializing announcement module")

	loc, err := time.LoadLocation(deps.Config.League.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load league timezone: %w", err)
	}

	service := announcementservice.NewService(
		deps.Runner("AnnouncementService"),
		announcementdb.NewRepository(deps.DB),
		teams,
		announcementservice.Config{Location: loc},
		deps.Clock,
	)
	return &Module{
		service:  service,
		handlers: announcementhandlers.NewAnnouncementHandlers(service, deps.Logger, deps.Tracer),
	}, nil
}

func (m *Module) Routes(r chi.Router) { m.handlers.Routes(r) }

// Service returns the announcement service. The game module hands reminder
// jobs to it.
func (m *Module) Service() announcementservice.Service { return m.service }
