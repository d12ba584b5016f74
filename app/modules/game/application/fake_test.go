package gameservice

import (
	"context"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Game Repo
// ------------------------

type FakeGameRepo struct {
	trace []string

	GetFunc          func(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
	GetForUpdateFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
	ListFunc         func(ctx context.Context, db bun.IDB, filter gamedb.ListFilter) ([]gamedomain.Game, error)
	CreateFunc       func(ctx context.Context, db bun.IDB, games ...*gamedomain.Game) error
	UpdateFunc       func(ctx context.Context, db bun.IDB, g *gamedomain.Game) error
	DeleteFunc       func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

func (f *FakeGameRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeGameRepo) Trace() []string { return f.trace }

func (f *FakeGameRepo) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, id)
	}
	return gamedomain.Game{}, gamedb.ErrNotFound
}

func (f *FakeGameRepo) GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	f.record("GetForUpdate")
	if f.GetForUpdateFunc != nil {
		return f.GetForUpdateFunc(ctx, db, id)
	}
	return gamedomain.Game{}, gamedb.ErrNotFound
}

func (f *FakeGameRepo) List(ctx context.Context, db bun.IDB, filter gamedb.ListFilter) ([]gamedomain.Game, error) {
	f.record("List")
	if f.ListFunc != nil {
		return f.ListFunc(ctx, db, filter)
	}
	return nil, nil
}

func (f *FakeGameRepo) Create(ctx context.Context, db bun.IDB, games ...*gamedomain.Game) error {
	f.record("Create")
	if f.CreateFunc != nil {
		return f.CreateFunc(ctx, db, games...)
	}
	for _, g := range games {
		g.Version = 1
	}
	return nil
}

func (f *FakeGameRepo) Update(ctx context.Context, db bun.IDB, g *gamedomain.Game) error {
	f.record("Update")
	if f.UpdateFunc != nil {
		return f.UpdateFunc(ctx, db, g)
	}
	g.Version++
	return nil
}

func (f *FakeGameRepo) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("Delete")
	if f.DeleteFunc != nil {
		return f.DeleteFunc(ctx, db, id)
	}
	return nil
}

var _ gamedb.Repository = (*FakeGameRepo)(nil)

// ------------------------
// Fake League Reader
// ------------------------

type FakeLeagueReader struct {
	Seasons map[uuid.UUID]*leaguedb.Season
	Teams   map[uuid.UUID]*leaguedb.Team
}

func (f *FakeLeagueReader) GetSeason(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Season, error) {
	if s, ok := f.Seasons[id]; ok {
		return s, nil
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueReader) GetTeam(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Team, error) {
	if t, ok := f.Teams[id]; ok {
		return t, nil
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueReader) ListTeams(_ context.Context, _ bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error) {
	var out []leaguedb.Team
	for _, t := range f.Teams {
		if t.SeasonID == seasonID {
			out = append(out, *t)
		}
	}
	return out, nil
}

// ------------------------
// Fake Event Publisher
// ------------------------

type FakeEvents struct {
	Transitions []gamedomain.Transition
	Scheduled   [][]gamedomain.Game
	Err         error
}

func (f *FakeEvents) PublishTransition(_ context.Context, _ uuid.UUID, t gamedomain.Transition) error {
	f.Transitions = append(f.Transitions, t)
	return f.Err
}

func (f *FakeEvents) PublishScheduled(_ context.Context, games []gamedomain.Game) error {
	f.Scheduled = append(f.Scheduled, games)
	return f.Err
}

// ------------------------
// Fake Reminder Scheduler
// ------------------------

type FakeReminders struct {
	Scheduled map[uuid.UUID]time.Time
	Cancelled []uuid.UUID
}

func (f *FakeReminders) ScheduleReminder(_ context.Context, gameID uuid.UUID, remindAt time.Time) error {
	if f.Scheduled == nil {
		f.Scheduled = map[uuid.UUID]time.Time{}
	}
	f.Scheduled[gameID] = remindAt
	return nil
}

func (f *FakeReminders) CancelGameJobs(_ context.Context, gameID uuid.UUID) error {
	f.Cancelled = append(f.Cancelled, gameID)
	return nil
}

// ------------------------
// Fake Time Parser
// ------------------------

type FakeTimeParser struct {
	Times map[string]time.Time
}

func (f *FakeTimeParser) Parse(input string) (time.Time, error) {
	if t, ok := f.Times[input]; ok {
		return t, nil
	}
	return time.Parse(time.RFC3339, input)
}

func (f *FakeTimeParser) Location() *time.Location { return time.UTC }
