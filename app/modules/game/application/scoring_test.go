package gameservice

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/parsers"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel/trace/noop"
)

var (
	testNow  = time.Date(2026, 6, 20, 23, 0, 0, 0, time.UTC)
	homeID   = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	awayID   = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	otherID  = uuid.MustParse("44444444-4444-4444-4444-444444444444")
	seasonID = uuid.MustParse("55555555-5555-5555-5555-555555555555")
)

type testDeps struct {
	repo      *FakeGameRepo
	league    *FakeLeagueReader
	events    *FakeEvents
	reminders *FakeReminders
	times     *FakeTimeParser
}

func newDeps() *testDeps {
	return &testDeps{
		repo:      &FakeGameRepo{},
		league:    &FakeLeagueReader{},
		events:    &FakeEvents{},
		reminders: &FakeReminders{},
		times:     &FakeTimeParser{},
	}
}

func (d *testDeps) service() *GameService {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	run := operation.NewRunner("GameService", logger, noop.NewTracerProvider().Tracer("test"), nil, nil)
	return NewService(run, d.repo, d.league, d.events, d.reminders, d.times, parsers.NewFactory(), nil,
		Config{Rules: gamedomain.DefaultRules, ReminderLeadTime: 24 * time.Hour},
		clockwork.NewFakeClockAt(testNow))
}

func managerOf(team uuid.UUID) *authdomain.Session {
	return &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleManager, TeamID: &team}
}

func liveGame() gamedomain.Game {
	inning, half, outs := 5, gamedomain.HalfTop, 2
	return gamedomain.Game{
		ID:                uuid.New(),
		SeasonID:          seasonID,
		HomeTeamID:        homeID,
		AwayTeamID:        awayID,
		Status:            gamedomain.StatusInProgress,
		CurrentInning:     &inning,
		CurrentHalf:       &half,
		Outs:              &outs,
		HomeInningScores:  []int{0, 1, 0, 0},
		AwayInningScores:  []int{0, 0, 0, 0, 0},
		HomeScore:         1,
		RegulationInnings: 7,
		Version:           4,
	}
}

func (d *testDeps) withGame(g gamedomain.Game) {
	d.repo.GetForUpdateFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
		return g, nil
	}
}

func TestScoring_AuthorizationBlocksMutation(t *testing.T) {
	tests := []struct {
		name     string
		sess     *authdomain.Session
		wantKind apperr.Kind
	}{
		{"unauthenticated", nil, apperr.KindUnauthenticated},
		{"player", &authdomain.Session{UserID: uuid.New(), Role: authdomain.RolePlayer, TeamID: &homeID}, apperr.KindForbidden},
		{"manager of neither team", managerOf(otherID), apperr.KindForbidden},
		{"manager without a team", &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleManager}, apperr.KindForbidden},
	}

	ops := map[string]func(s *GameService, sess *authdomain.Session, id uuid.UUID) error{
		"start": func(s *GameService, sess *authdomain.Session, id uuid.UUID) error {
			_, err := s.StartGame(context.Background(), sess, id, StartRequest{})
			return err
		},
		"score": func(s *GameService, sess *authdomain.Session, id uuid.UUID) error {
			_, err := s.RecordScore(context.Background(), sess, id, ScoreRequest{Runs: 1})
			return err
		},
		"out": func(s *GameService, sess *authdomain.Session, id uuid.UUID) error {
			_, err := s.RecordOut(context.Background(), sess, id, OutRequest{Count: 1})
			return err
		},
		"advance": func(s *GameService, sess *authdomain.Session, id uuid.UUID) error {
			_, err := s.AdvanceInning(context.Background(), sess, id, AdvanceRequest{})
			return err
		},
		"end": func(s *GameService, sess *authdomain.Session, id uuid.UUID) error {
			_, err := s.EndGame(context.Background(), sess, id, EndRequest{Status: gamedomain.StatusSuspended})
			return err
		},
	}

	for _, tt := range tests {
		for opName, op := range ops {
			t.Run(tt.name+"/"+opName, func(t *testing.T) {
				d := newDeps()
				g := liveGame()
				d.withGame(g)

				err := op(d.service(), tt.sess, g.ID)
				require.Error(t, err)
				assert.True(t, apperr.IsKind(err, tt.wantKind), "got %v", err)
				assert.NotContains(t, d.repo.Trace(), "Update")
				assert.Empty(t, d.events.Transitions)
			})
		}
	}
}

func TestRecordScore_TopHalfCreditsAway(t *testing.T) {
	d := newDeps()
	g := liveGame()
	d.withGame(g)

	tr, err := d.service().RecordScore(context.Background(), managerOf(homeID), g.ID, ScoreRequest{Runs: 3})
	require.NoError(t, err)

	assert.Equal(t, 0, tr.PreviousState.AwayScore)
	assert.Equal(t, 3, tr.NewState.AwayScore)
	assert.Equal(t, 3, tr.NewState.AwayInningScores[4])
	assert.Equal(t, int64(5), tr.NewState.Version)
	assert.Equal(t, []string{"GetForUpdate", "Update"}, d.repo.Trace())
	require.Len(t, d.events.Transitions, 1)
	assert.Equal(t, gamedomain.ActionScore, d.events.Transitions[0].Action)
}

func TestRecordOut_EndsHalfInning(t *testing.T) {
	d := newDeps()
	g := liveGame()
	d.withGame(g)

	tr, err := d.service().RecordOut(context.Background(), managerOf(awayID), g.ID, OutRequest{})
	require.NoError(t, err)
	assert.Equal(t, 0, *tr.NewState.Outs)
	assert.Equal(t, gamedomain.HalfBottom, *tr.NewState.CurrentHalf)
	assert.Equal(t, 5, *tr.NewState.CurrentInning)
}

func TestScoring_Failures(t *testing.T) {
	stale := int64(3)

	tests := []struct {
		name     string
		setup    func(d *testDeps)
		run      func(s *GameService) error
		wantKind apperr.Kind
	}{
		{
			name: "stale expected version",
			setup: func(d *testDeps) {
				d.withGame(liveGame())
			},
			run: func(s *GameService) error {
				_, err := s.RecordScore(context.Background(), managerOf(homeID), uuid.New(), ScoreRequest{Runs: 1, ExpectedVersion: &stale})
				return err
			},
			wantKind: apperr.KindConflict,
		},
		{
			name: "concurrent write detected by repository",
			setup: func(d *testDeps) {
				d.withGame(liveGame())
				d.repo.UpdateFunc = func(ctx context.Context, db bun.IDB, g *gamedomain.Game) error {
					return gamedb.ErrVersionConflict
				}
			},
			run: func(s *GameService) error {
				_, err := s.RecordScore(context.Background(), managerOf(homeID), uuid.New(), ScoreRequest{Runs: 1})
				return err
			},
			wantKind: apperr.KindConflict,
		},
		{
			name: "score on a scheduled game is blocked",
			setup: func(d *testDeps) {
				g := liveGame()
				g.Status = gamedomain.StatusScheduled
				d.withGame(g)
			},
			run: func(s *GameService) error {
				_, err := s.RecordScore(context.Background(), managerOf(homeID), uuid.New(), ScoreRequest{Runs: 1})
				return err
			},
			wantKind: apperr.KindActionBlocked,
		},
		{
			name: "final before regulation is blocked",
			setup: func(d *testDeps) {
				d.withGame(liveGame())
			},
			run: func(s *GameService) error {
				_, err := s.EndGame(context.Background(), &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleCommissioner}, uuid.New(), EndRequest{})
				return err
			},
			wantKind: apperr.KindActionBlocked,
		},
		{
			name:  "missing game",
			setup: func(d *testDeps) {},
			run: func(s *GameService) error {
				_, err := s.StartGame(context.Background(), managerOf(homeID), uuid.New(), StartRequest{})
				return err
			},
			wantKind: apperr.KindNotFound,
		},
		{
			name: "runs out of range",
			setup: func(d *testDeps) {
				d.withGame(liveGame())
			},
			run: func(s *GameService) error {
				_, err := s.RecordScore(context.Background(), managerOf(homeID), uuid.New(), ScoreRequest{Runs: 0})
				return err
			},
			wantKind: apperr.KindValidation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newDeps()
			tt.setup(d)

			err := tt.run(d.service())
			require.Error(t, err)
			assert.True(t, apperr.IsKind(err, tt.wantKind), "got %v", err)
			assert.Empty(t, d.events.Transitions)
		})
	}
}

func TestScoring_StorageErrorIsNotAFailure(t *testing.T) {
	d := newDeps()
	d.repo.GetForUpdateFunc = func(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
		return gamedomain.Game{}, errors.New("connection reset")
	}

	_, err := d.service().RecordScore(context.Background(), managerOf(homeID), uuid.New(), ScoreRequest{Runs: 1})
	require.Error(t, err)
	_, isFailure := apperr.As(err)
	assert.False(t, isFailure)
}

func TestStartThenSuspend_CancelsNothingAndKeepsScore(t *testing.T) {
	d := newDeps()
	g := liveGame()
	g.Status = gamedomain.StatusScheduled
	g.CurrentInning, g.CurrentHalf, g.Outs = nil, nil, nil
	g.HomeScore = 0
	g.HomeInningScores, g.AwayInningScores = []int{}, []int{}
	d.withGame(g)
	svc := d.service()
	admin := &authdomain.Session{UserID: uuid.New(), Role: authdomain.RoleAdmin}

	started, err := svc.StartGame(context.Background(), admin, g.ID, StartRequest{})
	require.NoError(t, err)
	d.withGame(started.NewState)

	suspended, err := svc.EndGame(context.Background(), admin, g.ID, EndRequest{Status: gamedomain.StatusSuspended})
	require.NoError(t, err)

	s := suspended.NewState
	assert.Equal(t, gamedomain.StatusSuspended, s.Status)
	assert.Equal(t, 0, s.HomeScore+s.AwayScore)
	require.NotNil(t, s.StartedAt)
	require.NotNil(t, s.EndedAt)
	assert.Equal(t, testNow, *s.StartedAt)
	assert.Empty(t, d.reminders.Cancelled, "suspension keeps the game resumable")
}

func TestEndGame_CancelledGameDropsReminders(t *testing.T) {
	d := newDeps()
	g := liveGame()
	g.Status = gamedomain.StatusScheduled
	d.withGame(g)

	_, err := d.service().EndGame(context.Background(), managerOf(homeID), g.ID, EndRequest{Status: gamedomain.StatusCancelled, Notes: "field flooded"})
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{g.ID}, d.reminders.Cancelled)
}
