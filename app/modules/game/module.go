package game

import (
	"context"
	"fmt"
	"sync"

	gameservice "github.com/Black-And-White-Club/dugout/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gameevents "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/events"
	gamehandlers "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/handlers"
	"github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/parsers"
	gamequeue "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/queue"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	gametime "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/timeparse"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/go-chi/chi/v5"
)

// Module represents the game module.
type Module struct {
	deps       platform.Deps
	repo       gamedb.Repository
	service    *gameservice.GameService
	handlers   *gamehandlers.GameHandlers
	queue      *gamequeue.Service
	cancelFunc context.CancelFunc
}

// NewModule creates the game module. notifier receives reminder jobs and may
// be nil, in which case the River queue is not started.
func NewModule(ctx context.Context, deps platform.Deps, league gameservice.LeagueReader, notifier gamequeue.ReminderNotifier) (*Module, error) {
	logger := deps.Logger
	cfg := deps.Config

	logger.InfoContext(ctx, "Initializing game module")

	repo := gamedb.NewRepository(deps.DB)

	times, err := gametime.NewParser(cfg.League.Timezone, deps.Clock)
	if err != nil {
		return nil, fmt.Errorf("failed to create time parser: %w", err)
	}

	m := &Module{deps: deps, repo: repo}

	var reminders gameservice.ReminderScheduler
	if cfg.Queue.Enabled && notifier != nil {
		worker := gamequeue.NewGameReminderWorker(logger, repo, notifier)
		m.queue, err = gamequeue.NewService(ctx, deps.DB, logger, cfg.Postgres.DSN, deps.Metrics, deps.Clock, worker)
		if err != nil {
			return nil, fmt.Errorf("failed to create reminder queue: %w", err)
		}
		reminders = m.queue
	}

	rules := gamedomain.Rules{
		RegulationInnings: cfg.League.RegulationInnings,
		MercyRuns:         cfg.League.MercyRuleRuns,
		MercyInning:       cfg.League.MercyRuleInning,
	}

	m.service = gameservice.NewService(
		deps.Runner("GameService"),
		repo,
		league,
		gameevents.NewPublisher(deps.Bus, deps.Clock),
		reminders,
		times,
		parsers.NewFactory(),
		deps.Metrics,
		gameservice.Config{Rules: rules, ReminderLeadTime: cfg.Queue.ReminderLeadTime},
		deps.Clock,
	)
	var lister gamehandlers.ReminderLister
	if m.queue != nil {
		lister = m.queue
	}
	m.handlers = gamehandlers.NewGameHandlers(m.service, lister, logger, deps.Tracer)

	return m, nil
}

// Routes mounts the game API.
func (m *Module) Routes(r chi.Router) {
	m.handlers.Routes(r)
}

// Run starts the reminder queue and blocks until ctx is done.
func (m *Module) Run(ctx context.Context, wg *sync.WaitGroup) {
	logger := m.deps.Logger
	logger.InfoContext(ctx, "Starting game module")

	ctx, cancel := context.WithCancel(ctx)
	m.cancelFunc = cancel
	defer cancel()

	if wg != nil {
		defer wg.Done()
	}

	if m.queue != nil {
		if err := m.queue.Start(ctx); err != nil {
			logger.ErrorContext(ctx, "Failed to start reminder queue", attr.Error(err))
		}
	}

	<-ctx.Done()
	logger.InfoContext(ctx, "Game module goroutine stopped")
}

// Close stops the reminder queue.
func (m *Module) Close() error {
	logger := m.deps.Logger
	logger.Info("Stopping game module")

	if m.cancelFunc != nil {
		m.cancelFunc()
	}

	if m.queue != nil {
		if err := m.queue.Stop(context.Background()); err != nil {
			logger.Error("Error stopping reminder queue", attr.Error(err))
			return fmt.Errorf("error stopping reminder queue: %w", err)
		}
	}

	logger.Info("Game module stopped")
	return nil
}

// Service returns the game service for use by other modules.
func (m *Module) Service() gameservice.Service { return m.service }

// Repository returns the game repository for read-only use by other modules.
func (m *Module) Repository() gamedb.Repository { return m.repo }

// Queue returns the reminder queue, or nil when disabled.
func (m *Module) Queue() *gamequeue.Service { return m.queue }

// HealthCheck reports whether the reminder queue is reachable. A disabled
// queue is healthy.
func (m *Module) HealthCheck(ctx context.Context) error {
	if m.queue == nil {
		return nil
	}
	return m.queue.HealthCheck(ctx)
}
