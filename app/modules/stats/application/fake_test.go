package statsservice

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ------------------------
// Fake Stats Repo
// ------------------------

type lineKey struct{ game, player uuid.UUID }

type FakeStatsRepo struct {
	trace    []string
	batting  map[lineKey]statsdb.BattingRow
	pitching map[lineKey]statsdb.PitchingRow

	UpsertBattingFunc func(ctx context.Context, db bun.IDB, row *statsdb.BattingRow) error
}

func NewFakeStatsRepo() *FakeStatsRepo {
	return &FakeStatsRepo{
		batting:  map[lineKey]statsdb.BattingRow{},
		pitching: map[lineKey]statsdb.PitchingRow{},
	}
}

func (f *FakeStatsRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeStatsRepo) Trace() []string { return f.trace }

func (f *FakeStatsRepo) UpsertBatting(ctx context.Context, db bun.IDB, row *statsdb.BattingRow) error {
	f.record("UpsertBatting")
	if f.UpsertBattingFunc != nil {
		return f.UpsertBattingFunc(ctx, db, row)
	}
	f.batting[lineKey{row.GameID, row.PlayerID}] = *row
	return nil
}

func (f *FakeStatsRepo) UpsertPitching(ctx context.Context, db bun.IDB, row *statsdb.PitchingRow) error {
	f.record("UpsertPitching")
	f.pitching[lineKey{row.GameID, row.PlayerID}] = *row
	return nil
}

func (f *FakeStatsRepo) DeleteBatting(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	f.record("DeleteBatting")
	k := lineKey{gameID, playerID}
	if _, ok := f.batting[k]; !ok {
		return statsdb.ErrNotFound
	}
	delete(f.batting, k)
	return nil
}

func (f *FakeStatsRepo) DeletePitching(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	f.record("DeletePitching")
	k := lineKey{gameID, playerID}
	if _, ok := f.pitching[k]; !ok {
		return statsdb.ErrNotFound
	}
	delete(f.pitching, k)
	return nil
}

func (f *FakeStatsRepo) ListBattingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]statsdb.BattingRow, error) {
	f.record("ListBattingByGame")
	var out []statsdb.BattingRow
	for k, row := range f.batting {
		if k.game == gameID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *FakeStatsRepo) ListPitchingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]statsdb.PitchingRow, error) {
	f.record("ListPitchingByGame")
	var out []statsdb.PitchingRow
	for k, row := range f.pitching {
		if k.game == gameID {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *FakeStatsRepo) ListBattingBySeason(ctx context.Context, db bun.IDB, filter statsdb.SeasonFilter) ([]statsdb.BattingRow, error) {
	f.record("ListBattingBySeason")
	var out []statsdb.BattingRow
	for _, row := range f.batting {
		if row.SeasonID == filter.SeasonID && (filter.TeamID == nil || *filter.TeamID == row.TeamID) {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *FakeStatsRepo) ListPitchingBySeason(ctx context.Context, db bun.IDB, filter statsdb.SeasonFilter) ([]statsdb.PitchingRow, error) {
	f.record("ListPitchingBySeason")
	var out []statsdb.PitchingRow
	for _, row := range f.pitching {
		if row.SeasonID == filter.SeasonID && (filter.TeamID == nil || *filter.TeamID == row.TeamID) {
			out = append(out, row)
		}
	}
	return out, nil
}

// ------------------------
// Fake Game Reader
// ------------------------

type FakeGames struct {
	games map[uuid.UUID]gamedomain.Game
}

func (f *FakeGames) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	g, ok := f.games[id]
	if !ok {
		return gamedomain.Game{}, gamedb.ErrNotFound
	}
	return g, nil
}

// ------------------------
// Fake Player Reader
// ------------------------

type FakePlayers struct {
	teams   []leaguedb.Team
	players map[uuid.UUID]leaguedb.Player
}

func (f *FakePlayers) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Player, error) {
	p, ok := f.players[id]
	if !ok {
		return nil, leaguedb.ErrNotFound
	}
	return &p, nil
}

func (f *FakePlayers) ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error) {
	var out []leaguedb.Team
	for _, t := range f.teams {
		if t.SeasonID == seasonID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *FakePlayers) ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]leaguedb.Player, error) {
	var out []leaguedb.Player
	for _, p := range f.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

var (
	_ statsdb.Repository = (*FakeStatsRepo)(nil)
	_ GameReader         = (*FakeGames)(nil)
	_ PlayerReader       = (*FakePlayers)(nil)
)
