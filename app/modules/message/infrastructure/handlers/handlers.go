package messagehandlers

import (
	"log/slog"
	"net/http"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	messageservice "github.com/Black-And-White-Club/dugout/app/modules/message/application"
	messagedomain "github.com/Black-And-White-Club/dugout/app/modules/message/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/trace"
)

// MessageHandlers serves team chat.
type MessageHandlers struct {
	service messageservice.Service
	logger  *slog.Logger
	tracer  trace.Tracer
}

func NewMessageHandlers(service messageservice.Service, logger *slog.Logger, tracer trace.Tracer) *MessageHandlers {
	return &MessageHandlers{service: service, logger: logger, tracer: tracer}
}

// Routes registers chat endpoints. Membership checks happen in the service.
func (h *MessageHandlers) Routes(r chi.Router) {
	r.Get("/api/teams/{teamID}/messages", authhandlers.Authenticated(h.HandleList))
	r.Post("/api/teams/{teamID}/messages", authhandlers.Authenticated(h.HandlePost))
	r.Get("/api/teams/{teamID}/messages/pinned", authhandlers.Authenticated(h.HandlePinned))

	r.Patch("/api/messages/{messageID}", authhandlers.Authenticated(h.HandleEdit))
	r.Delete("/api/messages/{messageID}", authhandlers.Authenticated(h.HandleDelete))
	r.Post("/api/messages/{messageID}/pin", authhandlers.Require(authdomain.RoleManager, h.HandlePin))
	r.Delete("/api/messages/{messageID}/pin", authhandlers.Require(authdomain.RoleManager, h.HandleUnpin))
}

// HandleList serves ?channel&before&after&limit.
func (h *MessageHandlers) HandleList(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	channel, f := messagedomain.ParseChannel(r.URL.Query().Get("channel"))
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	before, f := httpapi.OptionalUUIDQuery(r, "before")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	after, f := httpapi.OptionalUUIDQuery(r, "after")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	limit, f := httpapi.IntQuery(r, "limit", messageservice.DefaultPageSize)
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}

	page, err := h.service.List(r.Context(), sess, teamID, messageservice.ListQuery{
		Channel: channel,
		Before:  before,
		After:   after,
		Limit:   limit,
	})
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, page)
}

func (h *MessageHandlers) HandlePinned(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	msgs, err := h.service.Pinned(r.Context(), sess, teamID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, msgs)
}

func (h *MessageHandlers) HandlePost(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.UUIDParam(r, "teamID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var in messageservice.PostInput
	if f := httpapi.DecodeJSON(r, &in); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	m, err := h.service.Post(r.Context(), sess, teamID, in)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, m)
}

type editRequest struct {
	Content string `json:"content"`
}

func (h *MessageHandlers) HandleEdit(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "messageID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var req editRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	m, err := h.service.Edit(r.Context(), sess, id, req.Content)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, m)
}

func (h *MessageHandlers) HandleDelete(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	id, f := httpapi.UUIDParam(r, "messageID")
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

func (h *MessageHandlers) HandlePin(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	h.setPinned(w, r, sess, true)
}

func (h *MessageHandlers) HandleUnpin(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	h.setPinned(w, r, sess, false)
}

func (h *MessageHandlers) setPinned(w http.ResponseWriter, r *http.Request, sess *authdomain.Session, pinned bool) {
	id, f := httpapi.UUIDParam(r, "messageID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	m, err := h.service.SetPinned(r.Context(), sess, id, pinned)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, m)
}
