package gamehandlers

import (
	"io"
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gameservice "github.com/Black-And-White-Club/dugout/app/modules/game/application"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/google/uuid"
)

func (h *GameHandlers) HandleCreate(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	var req gameservice.CreateGameRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	game, err := h.service.CreateGame(r.Context(), sess, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, game)
}

func (h *GameHandlers) HandleCreateSeries(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	var req gameservice.CreateSeriesRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	games, err := h.service.CreateSeries(r.Context(), sess, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, games)
}

// HandleImport accepts a multipart form with a "file" part and a "seasonId" field.
func (h *GameHandlers) HandleImport(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		httpapi.WriteFailure(w, apperr.BadRequest("expected a multipart upload under 5MB"))
		return
	}
	seasonID, err := uuid.Parse(r.FormValue("seasonId"))
	if err != nil {
		httpapi.WriteFailure(w, apperr.Validation("seasonId is required"))
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		httpapi.WriteFailure(w, apperr.Validation("file is required"))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		httpapi.WriteFailure(w, apperr.BadRequest("failed to read upload"))
		return
	}

	games, err := h.service.ImportSchedule(r.Context(), sess, seasonID, header.Filename, data)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, games)
}

func (h *GameHandlers) HandleUpdate(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var req gameservice.UpdateGameRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	game, err := h.service.UpdateGame(r.Context(), sess, gameID, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, game)
}

func (h *GameHandlers) HandleDelete(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if err := h.service.DeleteGame(r.Context(), sess, gameID); err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteNoContent(w)
}
