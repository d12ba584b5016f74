package scoreclient

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type FakeAPI struct {
	mu    sync.Mutex
	trace []string

	GameFunc func(ctx context.Context, gameID uuid.UUID) (gamedomain.Game, error)
	SendFunc func(ctx context.Context, gameID uuid.UUID, cmd gamedomain.Command) (gamedomain.Transition, error)
}

func (f *FakeAPI) record(step string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.trace = append(f.trace, step)
}

func (f *FakeAPI) Trace() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.trace...)
}

func (f *FakeAPI) Game(ctx context.Context, gameID uuid.UUID) (gamedomain.Game, error) {
	f.record("Game")
	return f.GameFunc(ctx, gameID)
}

func (f *FakeAPI) Send(ctx context.Context, gameID uuid.UUID, cmd gamedomain.Command) (gamedomain.Transition, error) {
	f.record("Send:" + string(cmd.Action))
	return f.SendFunc(ctx, gameID, cmd)
}

func liveGame(version int64) gamedomain.Game {
	inning, half, outs := 2, gamedomain.HalfTop, 1
	return gamedomain.Game{
		ID:                uuid.New(),
		Status:            gamedomain.StatusInProgress,
		CurrentInning:     &inning,
		CurrentHalf:       &half,
		Outs:              &outs,
		AwayInningScores:  []int{0, 0},
		HomeInningScores:  []int{1},
		HomeScore:         1,
		RegulationInnings: 7,
		Version:           version,
	}
}

func newPanel(api API, g gamedomain.Game, clock clockwork.Clock, onChange func(gamedomain.Game)) *Panel {
	return NewPanel(api, g, Config{OnChange: onChange, PollInterval: time.Second}, clock, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestPanel_OptimisticThenConfirmed(t *testing.T) {
	g := liveGame(4)
	release := make(chan struct{})
	sent := make(chan gamedomain.Command, 1)
	api := &FakeAPI{SendFunc: func(_ context.Context, _ uuid.UUID, cmd gamedomain.Command) (gamedomain.Transition, error) {
		sent <- cmd
		<-release
		confirmed := liveGame(5)
		confirmed.ID = g.ID
		confirmed.AwayScore = 2
		return gamedomain.Transition{Action: cmd.Action, NewState: confirmed}, nil
	}}
	p := newPanel(api, g, clockwork.NewFakeClock(), nil)

	done := make(chan error, 1)
	go func() { done <- p.Score(context.Background(), 2) }()

	cmd := <-sent
	require.NotNil(t, cmd.ExpectedVersion)
	assert.Equal(t, int64(4), *cmd.ExpectedVersion)
	assert.Equal(t, 2, p.State().AwayScore, "shown before the server answers")
	assert.Equal(t, int64(4), p.State().Version)

	close(release)
	require.NoError(t, <-done)
	assert.Equal(t, int64(5), p.State().Version)
	assert.Equal(t, 2, p.State().AwayScore)
}

func TestPanel_RollbackOnRefusal(t *testing.T) {
	g := liveGame(4)
	api := &FakeAPI{SendFunc: func(context.Context, uuid.UUID, gamedomain.Command) (gamedomain.Transition, error) {
		return gamedomain.Transition{}, apperr.Blocked("game is not in progress")
	}}
	var shown []int
	p := newPanel(api, g, clockwork.NewFakeClock(), func(s gamedomain.Game) { shown = append(shown, s.OutCount()) })

	err := p.Out(context.Background(), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindActionBlocked))
	assert.Equal(t, []int{2, 1}, shown)
	assert.Equal(t, g, p.State())
}

func TestPanel_LocalRefusalIsNotSent(t *testing.T) {
	api := &FakeAPI{}
	p := newPanel(api, liveGame(1), clockwork.NewFakeClock(), nil)

	err := p.Score(context.Background(), 0)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation))
	err = p.Out(context.Background(), 3)
	assert.True(t, apperr.IsKind(err, apperr.KindValidation), "only two outs remain")
	assert.Empty(t, api.Trace())
}

func TestPanel_ConflictAdoptsServerState(t *testing.T) {
	g := liveGame(4)
	server := liveGame(6)
	server.ID = g.ID
	server.HomeScore = 5
	api := &FakeAPI{
		SendFunc: func(context.Context, uuid.UUID, gamedomain.Command) (gamedomain.Transition, error) {
			return gamedomain.Transition{}, apperr.Conflict("game was updated by someone else")
		},
		GameFunc: func(context.Context, uuid.UUID) (gamedomain.Game, error) { return server, nil },
	}
	p := newPanel(api, g, clockwork.NewFakeClock(), nil)

	err := p.Score(context.Background(), 1)
	assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	assert.Equal(t, []string{"Send:score", "Game"}, api.Trace())
	assert.Equal(t, int64(6), p.State().Version)
	assert.Equal(t, 5, p.State().HomeScore)
}

func TestPanel_RunReconcilesUntilFinal(t *testing.T) {
	g := liveGame(4)
	clock := clockwork.NewFakeClock()

	var mu sync.Mutex
	polls := 0
	api := &FakeAPI{GameFunc: func(context.Context, uuid.UUID) (gamedomain.Game, error) {
		mu.Lock()
		defer mu.Unlock()
		polls++
		switch polls {
		case 1:
			// Older than what the panel shows.
			return liveGame(3), nil
		case 2:
			newer := liveGame(7)
			newer.ID = g.ID
			newer.AwayScore = 4
			return newer, nil
		default:
			final := liveGame(8)
			final.ID = g.ID
			final.Status = gamedomain.StatusFinal
			return final, nil
		}
	}}
	p := newPanel(api, g, clock, nil)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	require.NoError(t, clock.BlockUntilContext(context.Background(), 1))
	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return len(api.Trace()) == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, int64(4), p.State().Version)

	clock.Advance(time.Second)
	assert.Eventually(t, func() bool { return p.State().Version == 7 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 4, p.State().AwayScore)

	clock.Advance(time.Second)
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not stop after the game went final")
	}
	assert.Equal(t, gamedomain.StatusFinal, p.State().Status)
}

func TestPanel_RunStopsOnCancel(t *testing.T) {
	api := &FakeAPI{}
	p := newPanel(api, liveGame(1), clockwork.NewFakeClock(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Run(ctx), context.Canceled)
	assert.Empty(t, api.Trace())
}
