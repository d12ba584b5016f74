package leaguehandlers

import (
	"log/slog"
	"net/http"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	leagueservice "github.com/Black-And-White-Club/dugout/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// LeagueHandlers serves seasons, teams and rosters.
type LeagueHandlers struct {
	service leagueservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

// NewLeagueHandlers creates a new LeagueHandlers instance.
func NewLeagueHandlers(service leagueservice.Service, logger *slog.Logger, tracer trace.Tracer) *LeagueHandlers {
	return &LeagueHandlers{service: service, logger: logger, tracer: tracer}
}

// Routes mounts the handlers with full paths so other modules can add
// sub-resources under /api/seasons and /api/teams.
func (h *LeagueHandlers) Routes(r chi.Router) {
	r.Get("/api/seasons", authhandlers.Authenticated(h.HandleListSeasons))
	r.Post("/api/seasons", authhandlers.Require(authdomain.RoleAdmin, h.HandleCreateSeason))
	r.Get("/api/seasons/active", authhandlers.Authenticated(h.HandleActiveSeason))
	r.Get("/api/seasons/{seasonID}", authhandlers.Authenticated(h.HandleGetSeason))
	r.Put("/api/seasons/{seasonID}", authhandlers.Require(authdomain.RoleAdmin, h.HandleUpdateSeason))
	r.Get("/api/seasons/{seasonID}/teams", authhandlers.Authenticated(h.HandleListTeams))
	r.Post("/api/seasons/{seasonID}/teams", authhandlers.Require(authdomain.RoleAdmin, h.HandleCreateTeam))

	r.Get("/api/teams/{teamID}", authhandlers.Authenticated(h.HandleGetTeam))
	r.Put("/api/teams/{teamID}", authhandlers.Require(authdomain.RoleAdmin, h.HandleUpdateTeam))
	r.Delete("/api/teams/{teamID}", authhandlers.Require(authdomain.RoleAdmin, h.HandleDeleteTeam))
	r.Get("/api/teams/{teamID}/players", authhandlers.Authenticated(h.HandleRoster))
	r.Post("/api/teams/{teamID}/players", authhandlers.Require(authdomain.RoleManager, h.HandleCreatePlayer))

	r.Get("/api/players/{playerID}", authhandlers.Authenticated(h.HandleGetPlayer))
	r.Put("/api/players/{playerID}", authhandlers.Require(authdomain.RoleManager, h.HandleUpdatePlayer))
}

// seasonRequest accepts dates as YYYY-MM-DD or RFC3339.
type seasonRequest struct {
	Name      string `json:"name"`
	Year      int    `json:"year"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
	Active    bool   `json:"active"`
}

func (req seasonRequest) toInput() (leaguedomain.SeasonInput, *apperr.Failure) {
	start, f := parseDate("startDate", req.StartDate)
	if f != nil {
		return leaguedomain.SeasonInput{}, f
	}
	end, f := parseDate("endDate", req.EndDate)
	if f != nil {
		return leaguedomain.SeasonInput{}, f
	}
	return leaguedomain.SeasonInput{Name: req.Name, Year: req.Year, StartDate: start, EndDate: end, Active: req.Active}, nil
}

func parseDate(field, raw string) (time.Time, *apperr.Failure) {
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.DateOnly, time.RFC3339} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperr.Validation(field + " must be YYYY-MM-DD")
}

func (h *LeagueHandlers) HandleListSeasons(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	seasons, err := h.service.ListSeasons(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, seasons)
}

func (h *LeagueHandlers) HandleActiveSeason(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	season, err := h.service.ActiveSeason(r.Context())
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, season)
}

func (h *LeagueHandlers) HandleGetSeason(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	season, err := h.service.GetSeason(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, season)
}

func (h *LeagueHandlers) HandleCreateSeason(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	var req seasonRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	in, f := req.toInput()
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	season, err := h.service.CreateSeason(r.Context(), sess, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, season)
}

func (h *LeagueHandlers) HandleUpdateSeason(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var req seasonRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	in, f := req.toInput()
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	season, err := h.service.UpdateSeason(r.Context(), sess, id, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, season)
}
