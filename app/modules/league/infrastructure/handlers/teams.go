package leaguehandlers

import (
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
)

func (h *LeagueHandlers) HandleListTeams(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	teams, err := h.service.ListTeams(r.Context(), seasonID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, teams)
}

func (h *LeagueHandlers) HandleGetTeam(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	team, err := h.service.GetTeam(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, team)
}

func (h *LeagueHandlers) HandleCreateTeam(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	seasonID, f := httpapi.UUIDParam(r, "seasonID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in leaguedomain.TeamInput
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	team, err := h.service.CreateTeam(r.Context(), sess, seasonID, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, team)
}

func (h *LeagueHandlers) HandleUpdateTeam(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in leaguedomain.TeamInput
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	team, err := h.service.UpdateTeam(r.Context(), sess, id, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, team)
}

func (h *LeagueHandlers) HandleDeleteTeam(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if err := h.service.DeleteTeam(r.Context(), sess, id); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}

func (h *LeagueHandlers) HandleRoster(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	teamID, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	players, err := h.service.Roster(r.Context(), teamID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, players)
}

func (h *LeagueHandlers) HandleGetPlayer(w http.ResponseWriter, r *http.Request, _ *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "playerID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	player, err := h.service.GetPlayer(r.Context(), id)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, player)
}

func (h *LeagueHandlers) HandleCreatePlayer(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in leaguedomain.PlayerInput
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	player, err := h.service.CreatePlayer(r.Context(), sess, teamID, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, player)
}

func (h *LeagueHandlers) HandleUpdatePlayer(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "playerID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in leaguedomain.PlayerInput
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	player, err := h.service.UpdatePlayer(r.Context(), sess, id, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, player)
}
