// Package app assembles the dugout modules into one process.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/Black-And-White-Club/dugout/app/eventbus"
	"github.com/Black-And-White-Club/dugout/app/modules/announcement"
	"github.com/Black-And-White-Club/dugout/app/modules/auth"
	"github.com/Black-And-White-Club/dugout/app/modules/availability"
	"github.com/Black-And-White-Club/dugout/app/modules/game"
	"github.com/Black-And-White-Club/dugout/app/modules/league"
	"github.com/Black-And-White-Club/dugout/app/modules/livefeed"
	"github.com/Black-And-White-Club/dugout/app/modules/message"
	"github.com/Black-And-White-Club/dugout/app/modules/standings"
	"github.com/Black-And-White-Club/dugout/app/modules/stats"
	"github.com/Black-And-White-Club/dugout/app/modules/user"
	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
)

// Modules holds every constructed module.
type Modules struct {
	User         *user.Module
	League       *league.Module
	Auth         *auth.Module
	Announcement *announcement.Module
	Game         *game.Module
	Stats        *stats.Module
	Standings    *standings.Module
	Message      *message.Module
	Availability *availability.Module
	LiveFeed     *livefeed.Module
}

// App owns the shared infrastructure and the modules built on it.
type App struct {
	Config  *config.Config
	Logger  *slog.Logger
	DB      *bun.DB
	Bus     *eventbus.Bus
	Metrics *metrics.Registry
	Modules Modules

	wg      sync.WaitGroup
	servers []*http.Server
}

// New builds every module on an open connection. Modules that read another
// module's data receive its repository, so construction order matters.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, db *bun.DB, clock clockwork.Clock) (*App, error) {
	bus, err := eventbus.New(logger)
	if err != nil {
		return nil, err
	}

	registry := metrics.NewRegistry()
	deps := platform.Deps{
		Config:  cfg,
		Logger:  logger,
		Tracer:  otel.Tracer("dugout"),
		Metrics: registry,
		DB:      db,
		Bus:     bus,
		Clock:   clock,
	}

	app := &App{Config: cfg, Logger: logger, DB: db, Bus: bus, Metrics: registry}
	if err := app.initModules(ctx, deps); err != nil {
		_ = bus.Close()
		return nil, err
	}
	return app, nil
}

func (a *App) initModules(ctx context.Context, deps platform.Deps) error {
	m := &a.Modules
	var err error

	m.League = league.NewModule(ctx, deps)
	leagueRepo := m.League.Repository()

	m.User = user.NewModule(ctx, deps)
	m.Auth = auth.NewModule(ctx, deps, m.User.Repository())

	m.Announcement, err = announcement.NewModule(ctx, deps, leagueRepo)
	if err != nil {
		return fmt.Errorf("failed to initialize announcement module: %w", err)
	}

	m.Game, err = game.NewModule(ctx, deps, leagueRepo, m.Announcement.Service())
	if err != nil {
		return fmt.Errorf("failed to initialize game module: %w", err)
	}
	gameRepo := m.Game.Repository()

	m.Stats = stats.NewModule(ctx, deps, gameRepo, leagueRepo)
	m.Standings = standings.NewModule(ctx, deps, leagueRepo, gameRepo)
	m.Message = message.NewModule(ctx, deps, leagueRepo)
	m.Availability = availability.NewModule(ctx, deps, gameRepo, leagueRepo)

	// The relay subscribes to game topics, so it must exist before the bus runs.
	m.LiveFeed, err = livefeed.NewModule(ctx, deps)
	if err != nil {
		return fmt.Errorf("failed to initialize live feed module: %w", err)
	}
	return nil
}
