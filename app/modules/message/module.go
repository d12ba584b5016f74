package message

import (
	"context"

	messageservice "github.com/Black-And-White-Club/dugout/app/modules/message/application"
	messagehandlers "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/handlers"
	messagedb "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
)

// Module represents the team chat module.
type Module struct {
	service  *messageservice.MessageService
	handlers *messagehandlers.MessageHandlers
}

func NewModule(ctx context.Context, deps platform.Deps, teams messageservice.TeamReader) *Module {
	deps.Logger.InfoContext(ctx, "Initializing message module")

	service := messageservice.NewService(deps.Runner("MessageService"), messagedb.NewRepository(deps.DB), teams, deps.Clock)
	return &Module{
		service:  service,
		handlers: messagehandlers.NewMessageHandlers(service, deps.Logger, deps.Tracer),
	}
}

func (m *Module) Routes(r chi.Router) { m.handlers.Routes(r) }
