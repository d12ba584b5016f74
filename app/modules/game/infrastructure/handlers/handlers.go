package gamehandlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	gameservice "github.com/Black-And-White-Club/dugout/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamequeue "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/queue"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// maxUploadBytes bounds schedule uploads.
const maxUploadBytes = 5 << 20

// ReminderLister reads the reminder jobs queued for a game.
type ReminderLister interface {
	GetScheduledJobs(ctx context.Context, gameID uuid.UUID) ([]gamequeue.JobInfo, error)
}

// GameHandlers serves /api/games.
type GameHandlers struct {
	service   gameservice.Service
	reminders ReminderLister
	logger    *slog.Logger
	tracer    trace.Tracer
}

// NewGameHandlers creates a new GameHandlers instance. reminders may be nil
// when the queue is disabled.
func NewGameHandlers(service gameservice.Service, reminders ReminderLister, logger *slog.Logger, tracer trace.Tracer) *GameHandlers {
	return &GameHandlers{service: service, reminders: reminders, logger: logger, tracer: tracer}
}

// Routes mounts the handlers. The router must already run AuthMiddleware.
func (h *GameHandlers) Routes(r chi.Router) {
	r.Route("/api/games", func(r chi.Router) {
		r.Get("/", authhandlers.Authenticated(h.HandleList))
		r.Get("/live", authhandlers.Authenticated(h.HandleLive))
		r.Post("/", authhandlers.Require(authdomain.RoleAdmin, h.HandleCreate))
		r.Post("/series", authhandlers.Require(authdomain.RoleAdmin, h.HandleCreateSeries))
		r.Post("/import", authhandlers.Require(authdomain.RoleAdmin, h.HandleImport))

		r.Route("/{gameID}", func(r chi.Router) {
			r.Get("/", authhandlers.Authenticated(h.HandleGet))
			r.Patch("/", authhandlers.Require(authdomain.RoleAdmin, h.HandleUpdate))
			r.Delete("/", authhandlers.Require(authdomain.RoleAdmin, h.HandleDelete))
			r.Get("/reminders", authhandlers.Require(authdomain.RoleAdmin, h.HandleReminders))

			r.Post("/start", authhandlers.Require(authdomain.RoleManager, h.HandleStart))
			r.Post("/score", authhandlers.Require(authdomain.RoleManager, h.HandleScore))
			r.Post("/out", authhandlers.Require(authdomain.RoleManager, h.HandleOut))
			r.Post("/advance", authhandlers.Require(authdomain.RoleManager, h.HandleAdvance))
			r.Post("/end", authhandlers.Require(authdomain.RoleManager, h.HandleEnd))
		})
	})
}

func (h *GameHandlers) HandleGet(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	game, err := h.service.GetGame(r.Context(), gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, game)
}

// HandleReminders lists the reminder jobs for a game in any state.
func (h *GameHandlers) HandleReminders(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if _, err := h.service.GetGame(r.Context(), gameID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	jobs := []gamequeue.JobInfo{}
	if h.reminders != nil {
		found, err := h.reminders.GetScheduledJobs(r.Context(), gameID)
		if err != nil {
			httpapi.WriteError(w, r, h.logger, err)
			return
		}
		jobs = append(jobs, found...)
	}
	httpapi.WriteJSON(w, http.StatusOK, jobs)
}

func (h *GameHandlers) HandleList(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	filter, f := listFilterFromQuery(r)
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	games, err := h.service.ListGames(r.Context(), filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, games)
}

func (h *GameHandlers) HandleLive(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	games, err := h.service.LiveGames(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, games)
}

func listFilterFromQuery(r *http.Request) (gamedb.ListFilter, *apperr.Failure) {
	var filter gamedb.ListFilter
	var f *apperr.Failure

	if filter.SeasonID, f = httpapi.OptionalUUIDQuery(r, "season"); f != nil {
		return filter, f
	}
	if filter.TeamID, f = httpapi.OptionalUUIDQuery(r, "team"); f != nil {
		return filter, f
	}
	if filter.From, f = httpapi.OptionalTimeQuery(r, "from"); f != nil {
		return filter, f
	}
	if filter.To, f = httpapi.OptionalTimeQuery(r, "to"); f != nil {
		return filter, f
	}
	if filter.Limit, f = httpapi.IntQuery(r, "limit", 0); f != nil {
		return filter, f
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			status := gamedomain.Status(strings.TrimSpace(part))
			if !status.IsValid() {
				return filter, apperr.BadRequest("invalid status: " + part)
			}
			filter.Statuses = append(filter.Statuses, status)
		}
	}
	return filter, nil
}
