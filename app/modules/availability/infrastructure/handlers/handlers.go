package availabilityhandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	availabilityservice "github.com/Black-And-White-Club/dugout/app/modules/availability/application"
	availabilitydomain "github.com/Black-And-White-Club/dugout/app/modules/availability/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// AvailabilityHandlers serves game attendance.
type AvailabilityHandlers struct {
	service availabilityservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewAvailabilityHandlers(service availabilityservice.Service, logger *slog.Logger, tracer trace.Tracer) *AvailabilityHandlers {
	return &AvailabilityHandlers{service: service, logger: logger, tracer: tracer}
}

func (h *AvailabilityHandlers) Routes(r chi.Router) {
	r.Get("/api/availability/games/{gameID}", authhandlers.Authenticated(h.HandleSummary))
	r.Put("/api/availability/games/{gameID}/players/{playerID}", authhandlers.Authenticated(h.HandleSet))
	r.Delete("/api/availability/games/{gameID}/players/{playerID}", authhandlers.Authenticated(h.HandleClear))
}

func (h *AvailabilityHandlers) HandleSummary(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	sums, err := h.service.Summary(r.Context(), sess, gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, sums)
}

func (h *AvailabilityHandlers) HandleSet(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	playerID, f := httpapi.UUIDParam(r, "playerID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in availabilitydomain.Input
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	row, err := h.service.Set(r.Context(), sess, gameID, playerID, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *AvailabilityHandlers) HandleClear(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	playerID, f := httpapi.UUIDParam(r, "playerID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if err := h.service.Clear(r.Context(), sess, gameID, playerID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}
