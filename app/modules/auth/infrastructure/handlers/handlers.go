package authhandlers

import (
	"log/slog"
	"net/http"
	"time"

	authservice "github.com/Black-And-White-Club/dugout/app/modules/auth/application"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/trace"
)

// AuthHandlers serves the /api/auth and /api/users routes.
type AuthHandlers struct {
	service       authservice.Service
	logger        *slog.Logger
	tracer        trace.Tracer
	secureCookies bool
}

// NewAuthHandlers creates a new AuthHandlers instance.
func NewAuthHandlers(service authservice.Service, logger *slog.Logger, tracer trace.Tracer, secureCookies bool) *AuthHandlers {
	return &AuthHandlers{
		service:       service,
		logger:        logger,
		tracer:        tracer,
		secureCookies: secureCookies,
	}
}

// Routes mounts the handlers. The router must already run AuthMiddleware.
func (h *AuthHandlers) Routes(r chi.Router, limiter *IPRateLimiter) {
	r.Route("/api/auth", func(r chi.Router) {
		r.With(RateLimitMiddleware(limiter)).Post("/login", h.HandleLogin)
		r.Post("/logout", h.HandleLogout)
		r.Get("/me", Authenticated(h.HandleMe))
		r.Post("/register", Require(authdomain.RoleAdmin, h.HandleRegister))
	})
	r.Route("/api/users", func(r chi.Router) {
		r.Get("/", Require(authdomain.RoleManager, h.HandleListUsers))
		r.Put("/{userID}/role", Require(authdomain.RoleAdmin, h.HandleAssignRole))
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandlers) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	if req.Email == "" || req.Password == "" {
		httpapi.WriteFailure(w, apperr.Validation("email and password are required"))
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.WarnContext(r.Context(), "HTTP login failed", attr.String("email", req.Email), attr.Error(err))
		httpapi.WriteError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    res.Token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		SameSite: http.SameSiteStrictMode,
		Expires:  res.ExpiresAt,
	})
	httpapi.WriteJSON(w, http.StatusOK, res)
}

func (h *AuthHandlers) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   h.secureCookies,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	httpapi.WriteNoContent(w)
}

func (h *AuthHandlers) HandleMe(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	user, err := h.service.Me(r.Context(), sess)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, user)
}

func (h *AuthHandlers) HandleRegister(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	var req authservice.RegisterRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	user, err := h.service.Register(r.Context(), sess, req)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusCreated, user)
}

func (h *AuthHandlers) HandleListUsers(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	teamID, f := httpapi.OptionalUUIDQuery(r, "team")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	filter := userdb.ListFilter{TeamID: teamID}
	if role := r.URL.Query().Get("role"); role != "" {
		if _, err := authdomain.ParseRole(role); err != nil {
			httpapi.WriteFailure(w, apperr.BadRequest("invalid role: "+role))
			return
		}
		filter.Role = role
	}

	users, err := h.service.ListUsers(r.Context(), sess, filter)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, users)
}

type assignRoleRequest struct {
	Role   authdomain.Role `json:"role"`
	TeamID *uuid.UUID      `json:"teamId,omitempty"`
}

func (h *AuthHandlers) HandleAssignRole(w http.ResponseWriter, r *http.Request, sess *authdomain.Session) {
	userID, f := httpapi.UUIDParam(r, "userID")
	if f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	var req assignRoleRequest
	if f := httpapi.DecodeJSON(r, &req); f != nil {
		httpapi.WriteFailure(w, f)
		return
	}
	user, err := h.service.AssignRole(r.Context(), sess, userID, req.Role, req.TeamID)
	if err != nil {
		httpapi.WriteError(w, r, h.logger, err)
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, user)
}
