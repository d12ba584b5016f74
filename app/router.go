package app

import (
	"context"
	"net/http"
	"time"

	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/httpapi"
	"github.com/Black-And-White-Club/dugout/app/shared/logging"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"golang.org/x/time/rate"
)

const readyTimeout = 2 * time.Second

// Router builds the public API handler.
func (a *App) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	if a.Config.HTTP.TrustProxyHeaders {
		r.Use(middleware.RealIP)
	}
	r.Use(middleware.Recoverer)
	r.Use(logging.AccessLog(a.Logger))
	r.Use(a.Metrics.Middleware)
	r.Use(cors.New(cors.Options{
		AllowedOrigins:   a.Config.HTTP.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	r.Get("/healthz", a.handleHealthz)
	r.Get("/readyz", a.handleReadyz)

	limiter := authhandlers.NewIPRateLimiter(rate.Limit(a.Config.HTTP.RateLimitRPS), a.Config.HTTP.RateLimitBurst)

	r.Group(func(r chi.Router) {
		r.Use(authhandlers.RateLimitMiddleware(limiter))
		r.Use(a.Modules.Auth.Middleware())

		a.Modules.Auth.Routes(r)
		a.Modules.League.Routes(r)
		a.Modules.Game.Routes(r)
		a.Modules.Stats.Routes(r)
		a.Modules.Standings.Routes(r)
		a.Modules.Message.Routes(r)
		a.Modules.Announcement.Routes(r)
		a.Modules.Availability.Routes(r)
	})

	return r
}

func (a *App) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (a *App) handleReadyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
	defer cancel()

	if err := a.DB.PingContext(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Readiness check failed", attr.Error(err))
		httpapi.WriteFailure(w, &apperr.Failure{Kind: apperr.KindUnavailable, Message: "database unavailable"})
		return
	}
	if err := a.Modules.Game.HealthCheck(ctx); err != nil {
		a.Logger.WarnContext(ctx, "Readiness check failed", attr.Error(err))
		httpapi.WriteFailure(w, &apperr.Failure{Kind: apperr.KindUnavailable, Message: "reminder queue unavailable"})
		return
	}
	httpapi.WriteJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}
