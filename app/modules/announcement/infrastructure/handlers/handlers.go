package announcementhandlers

import (
	"log/slog"
	"net/http"

	announcementservice "github.com/Black-And-White-Club/dugout/app/modules/announcement/application"
	announcementdomain "github.com/Black-And-White-Club/dugout/app/modules/announcement/domain"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// AnnouncementHandlers serves the notice board.
type AnnouncementHandlers struct {
	service announcementservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewAnnouncementHandlers(service announcementservice.Service, logger *slog.Logger, tracer trace.Tracer) *AnnouncementHandlers {
	return &AnnouncementHandlers{service: service, logger: logger, tracer: tracer}
}

func (h *AnnouncementHandlers) Routes(r chi.Router) {
	r.Route("/api/announcements", func(r chi.Router) {
		r.Get("/", authhandlers.Authenticated(h.HandleList))
		r.Post("/", authhandlers.Require(authdomain.RoleManager, h.HandleCreate))
		r.Get("/{announcementID}", authhandlers.Authenticated(h.HandleGet))
		r.Put("/{announcementID}", authhandlers.Require(authdomain.RoleManager, h.HandleUpdate))
		r.Delete("/{announcementID}", authhandlers.Require(authdomain.RoleManager, h.HandleDelete))
	})
}

// HandleList serves ?team&includeExpired&limit.
func (h *AnnouncementHandlers) HandleList(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.OptionalUUIDQuery(r, "team")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	includeExpired, f := httpapi.BoolQuery(r, "includeExpired")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	limit, f := httpapi.IntQuery(r, "limit", 0)
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	rows, err := h.service.List(r.Context(), sess, announcementservice.ListQuery{
		TeamID:         teamID,
		IncludeExpired: includeExpired,
		Limit:          limit,
	})
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, rows)
}

func (h *AnnouncementHandlers) HandleGet(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "announcementID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	a, err := h.service.Get(r.Context(), sess, id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, a)
}

func (h *AnnouncementHandlers) HandleCreate(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	var in announcementdomain.Input
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	a, err := h.service.Create(r.Context(), sess, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, a)
}

func (h *AnnouncementHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "announcementID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in announcementdomain.Input
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	a, err := h.service.Update(r.Context(), sess, id, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, a)
}

func (h *AnnouncementHandlers) HandleDelete(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "announcementID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if err := h.service.Delete(r.Context(), sess, id); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}
