package gamequeue

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

type fakeGames struct {
	gamedb.Repository
	game gamedomain.Game
	err  error
}

func (f *fakeGames) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	return f.game, f.err
}

type fakeNotifier struct {
	sent []uuid.UUID
	err  error
}

func (f *fakeNotifier) NotifyGameReminder(ctx context.Context, game gamedomain.Game) error {
	f.sent = append(f.sent, game.ID)
	return f.err
}

func TestGameReminderWorker_Work(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	gameID := uuid.New()

	tests := []struct {
		name     string
		args     GameReminderJob
		games    *fakeGames
		notifier *fakeNotifier
		wantSent int
		wantErr  bool
	}{
		{
			name:     "scheduled game is announced",
			args:     GameReminderJob{GameID: gameID.String()},
			games:    &fakeGames{game: gamedomain.Game{ID: gameID, Status: gamedomain.StatusScheduled}},
			notifier: &fakeNotifier{},
			wantSent: 1,
		},
		{
			name:     "postponed game is skipped",
			args:     GameReminderJob{GameID: gameID.String()},
			games:    &fakeGames{game: gamedomain.Game{ID: gameID, Status: gamedomain.StatusPostponed}},
			notifier: &fakeNotifier{},
		},
		{
			name:     "deleted game is skipped",
			args:     GameReminderJob{GameID: gameID.String()},
			games:    &fakeGames{err: gamedb.ErrNotFound},
			notifier: &fakeNotifier{},
		},
		{
			name:     "storage error retries",
			args:     GameReminderJob{GameID: gameID.String()},
			games:    &fakeGames{err: errors.New("connection reset")},
			notifier: &fakeNotifier{},
			wantErr:  true,
		},
		{
			name:     "bad id cancels",
			args:     GameReminderJob{GameID: "nope"},
			games:    &fakeGames{},
			notifier: &fakeNotifier{},
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := NewGameReminderWorker(logger, tt.games, tt.notifier)
			err := w.Work(context.Background(), &river.Job[GameReminderJob]{Args: tt.args})
			if tt.wantErr {
				require.Error(t, err)
			} else {
				require.NoError(t, err)
			}
			assert.Len(t, tt.notifier.sent, tt.wantSent)
		})
	}
}
