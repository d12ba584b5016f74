package statshandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	statsservice "github.com/Black-And-White-Club/dugout/app/modules/stats/application"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// StatsHandlers serves box scores, season lines and leaderboards.
type StatsHandlers struct {
	service statsservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewStatsHandlers(service statsservice.Service, logger *slog.Logger, tracer trace.Tracer) *StatsHandlers {
	return &StatsHandlers{service: service, logger: logger, tracer: tracer}
}

// Routes keeps box-score entry under /api/stats so it does not collide with
// the /api/games subrouter.
func (h *StatsHandlers) Routes(r chi.Router) {
	r.Get("/api/stats/games/{gameID}", authhandlers.Authenticated(h.HandleBoxScore))
	r.Put("/api/stats/games/{gameID}/batting/{playerID}", authhandlers.Require(authdomain.RoleManager, h.HandleRecordBatting))
	r.Delete("/api/stats/games/{gameID}/batting/{playerID}", authhandlers.Require(authdomain.RoleManager, h.HandleDeleteBatting))
	r.Put("/api/stats/games/{gameID}/pitching/{playerID}", authhandlers.Require(authdomain.RoleManager, h.HandleRecordPitching))
	r.Delete("/api/stats/games/{gameID}/pitching/{playerID}", authhandlers.Require(authdomain.RoleManager, h.HandleDeletePitching))

	r.Get("/api/seasons/{seasonID}/stats/batting", authhandlers.Authenticated(h.HandleSeasonBatting))
	r.Get("/api/seasons/{seasonID}/stats/pitching", authhandlers.Authenticated(h.HandleSeasonPitching))
	r.Get("/api/seasons/{seasonID}/leaders/{category}", authhandlers.Authenticated(h.HandleLeaders))
}

func (h *StatsHandlers) HandleBoxScore(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	box, err := h.service.BoxScore(r.Context(), gameID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, box)
}

func (h *StatsHandlers) HandleRecordBatting(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, playerID, ok := h.lineParams(w, r)
	if !ok {
		return
	}
	var line statsdomain.BattingLine
	if f := httpapi.DecodeJSON(r, &line); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	row, err := h.service.RecordBatting(r.Context(), sess, gameID, playerID, line)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *StatsHandlers) HandleRecordPitching(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, playerID, ok := h.lineParams(w, r)
	if !ok {
		return
	}
	var line statsdomain.PitchingLine
	if f := httpapi.DecodeJSON(r, &line); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	row, err := h.service.RecordPitching(r.Context(), sess, gameID, playerID, line)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, row)
}

func (h *StatsHandlers) HandleDeleteBatting(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, playerID, ok := h.lineParams(w, r)
	if !ok {
		return
	}
	if err := h.service.DeleteBatting(r.Context(), sess, gameID, playerID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}

func (h *StatsHandlers) HandleDeletePitching(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, playerID, ok := h.lineParams(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePitching(r.Context(), sess, gameID, playerID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}

func (h *StatsHandlers) lineParams(w http.ResponseWriter, r *http.Request) (uuid.UUID, uuid.UUID, bool) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return uuid.Nil, uuid.Nil, false
	}
	playerID, f := httpapi.UUIDParam(r, "playerID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return uuid.Nil, uuid.Nil, false
	}
	return gameID, playerID, true
}
