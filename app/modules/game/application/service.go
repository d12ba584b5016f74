package gameservice

import (
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/jonboulle/clockwork"
)

const DefaultReminderLeadTime = 24 * time.Hour

// GameService implements the Service interface.
type GameService struct {
	run       operation.Runner
	repo      gamedb.Repository
	league    LeagueReader
	events    EventPublisher
	reminders ReminderScheduler
	times     TimeParser
	parsers   ParserFactory
	scoring   metrics.ScoringMetrics
	config    Config
	clock     clockwork.Clock
}

// NewService creates a new game service. events and reminders may be nil.
func NewService(
	run operation.Runner,
	repo gamedb.Repository,
	league LeagueReader,
	events EventPublisher,
	reminders ReminderScheduler,
	times TimeParser,
	parserFactory ParserFactory,
	scoring metrics.ScoringMetrics,
	config Config,
	clock clockwork.Clock,
) *GameService {
	if config.Rules.RegulationInnings == 0 {
		config.Rules = gamedomain.DefaultRules
	}
	if config.ReminderLeadTime == 0 {
		config.ReminderLeadTime = DefaultReminderLeadTime
	}
	if scoring == nil {
		scoring = metrics.NewNoop()
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &GameService{
		run:       run,
		repo:      repo,
		league:    league,
		events:    events,
		reminders: reminders,
		times:     times,
		parsers:   parserFactory,
		scoring:   scoring,
		config:    config,
		clock:     clock,
	}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}
