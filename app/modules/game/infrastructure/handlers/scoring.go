package gamehandlers

import (
	"context"
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
)

// scoringCall invokes one scoring operation with the decoded body.
type scoringCall[Req any] func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req Req) (*gamedomain.Transition, error)

// handleScoring decodes the body, runs call and writes {previousState, newState}.
func handleScoring[Req any](h *GameHandlers, op string, w http.ResponseWriter, r *http.Request, sess *authdomain.Session, call scoringCall[Req]) {
	ctx, span := h.tracer.Start(r.Context(), "GameHandlers."+op)
	defer span.End()

	gameID, f := httpapi.UUIDParam(r, "gameID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var req Req
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}

	transition, err := call(ctx, sess, gameID, req)
	if err != nil {
		h.logger.InfoContext(ctx, "Scoring request refused",
			attr.String("operation", op),
			attr.String("game_id", gameID.String()),
			attr.String("user_id", sess.UserID.String()),
			attr.Error(err),
		)
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, transition)
}

func (h *GameHandlers) HandleStart(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	handleScoring(h, "StartGame", w, r, sess, h.service.StartGame)
}

func (h *GameHandlers) HandleScore(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	handleScoring(h, "RecordScore", w, r, sess, h.service.RecordScore)
}

func (h *GameHandlers) HandleOut(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	handleScoring(h, "RecordOut", w, r, sess, h.service.RecordOut)
}

func (h *GameHandlers) HandleAdvance(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	handleScoring(h, "AdvanceInning", w, r, sess, h.service.AdvanceInning)
}

func (h *GameHandlers) HandleEnd(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	handleScoring(h, "EndGame", w, r, sess, h.service.EndGame)
}
