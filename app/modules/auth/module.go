package auth

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	authservice "github.com/Black-And-White-Club/dugout/app/modules/auth/application"
	authhandlers "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/handlers"
	authjwt "github.com/Black-And-White-Club/dugout/app/modules/auth/infrastructure/jwt"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// loginRate bounds login attempts per IP.
const (
	loginRate  = rate.Limit(5)
	loginBurst = 10
)

// Module represents the unified auth module.
type Module struct {
	service  *authservice.AuthService
	handlers *authhandlers.AuthHandlers
	limiter  *authhandlers.IPRateLimiter
	logger   *slog.Logger
}

// NewModule creates a new auth module.
func NewModule(ctx context.Context, deps platform.Deps, userRepo userdb.Repository) *Module {
	cfg := deps.Config
	deps.Logger.InfoContext(ctx, "Initializing auth module")

	provider := authjwt.NewProvider(cfg.JWT.Secret, cfg.JWT.Issuer, deps.Clock)
	service := authservice.NewService(
		deps.Runner("AuthService"),
		userRepo,
		provider,
		authservice.Config{TokenTTL: cfg.JWT.DefaultTTL},
		deps.Clock,
	)

	// Use secure cookies unless running locally.
	secureCookies := cfg.Observability.Environment != "development"
	for _, origin := range cfg.HTTP.AllowedOrigins {
		if strings.Contains(origin, "localhost") {
			secureCookies = false
		}
	}

	return &Module{
		service:  service,
		handlers: authhandlers.NewAuthHandlers(service, deps.Logger, deps.Tracer, secureCookies),
		limiter:  authhandlers.NewIPRateLimiter(loginRate, loginBurst),
		logger:   deps.Logger,
	}
}

// Middleware attaches sessions to every request.
func (m *Module) Middleware() func(http.Handler) http.Handler {
	return authhandlers.AuthMiddleware(m.service, m.logger)
}

// Routes mounts /api/auth and /api/users.
func (m *Module) Routes(r chi.Router) {
	m.handlers.Routes(r, m.limiter)
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() authservice.Service { return m.service }
