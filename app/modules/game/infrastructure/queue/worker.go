package gamequeue

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// ReminderNotifier delivers the reminder for a game.
type ReminderNotifier interface {
	NotifyGameReminder(ctx context.Context, game gamedomain.Game) error
}

// GameReminderWorker handles game_reminder jobs.
type GameReminderWorker struct {
	river.WorkerDefaults[GameReminderJob]

	logger   *slog.Logger
	games    gamedb.Repository
	notifier ReminderNotifier
}

func NewGameReminderWorker(logger *slog.Logger, games gamedb.Repository, notifier ReminderNotifier) *GameReminderWorker {
	return &GameReminderWorker{logger: logger, games: games, notifier: notifier}
}

// Work sends the reminder if the game is still on the schedule. Missing or
// no-longer-scheduled games complete the job without sending anything.
func (w *GameReminderWorker) Work(ctx context.Context, job *river.Job[GameReminderJob]) error {
	gameID, err := uuid.Parse(job.Args.GameID)
	if err != nil {
		return river.JobCancel(fmt.Errorf("invalid game id %q: %w", job.Args.GameID, err))
	}

	game, err := w.games.Get(ctx, nil, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			w.logger.InfoContext(ctx, "Skipping reminder for deleted game", attr.String("game_id", job.Args.GameID))
			return nil
		}
		return fmt.Errorf("failed to load game: %w", err)
	}
	if game.Status != gamedomain.StatusScheduled {
		w.logger.InfoContext(ctx, "Skipping reminder for game that is no longer scheduled",
			attr.String("game_id", job.Args.GameID),
			attr.String("status", string(game.Status)),
		)
		return nil
	}

	if err := w.notifier.NotifyGameReminder(ctx, game); err != nil {
		return fmt.Errorf("failed to send game reminder: %w", err)
	}
	w.logger.InfoContext(ctx, "Game reminder sent", attr.String("game_id", job.Args.GameID))
	return nil
}
