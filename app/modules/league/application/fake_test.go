package leagueservice

import (
	"context"

	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// FakeLeagueRepo keeps rows in maps. Func fields override individual calls.
type FakeLeagueRepo struct {
	trace []string

	Seasons map[uuid.UUID]*leaguedb.Season
	Teams   map[uuid.UUID]*leaguedb.Team
	Players map[uuid.UUID]*leaguedb.Player

	SaveTeamFunc   func(ctx context.Context, db bun.IDB, team *leaguedb.Team) error
	SavePlayerFunc func(ctx context.Context, db bun.IDB, player *leaguedb.Player) error
	DeleteTeamFunc func(ctx context.Context, db bun.IDB, id uuid.UUID) error
}

func NewFakeLeagueRepo() *FakeLeagueRepo {
	return &FakeLeagueRepo{
		trace:   []string{},
		Seasons: map[uuid.UUID]*leaguedb.Season{},
		Teams:   map[uuid.UUID]*leaguedb.Team{},
		Players: map[uuid.UUID]*leaguedb.Player{},
	}
}

func (f *FakeLeagueRepo) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeLeagueRepo) Trace() []string { return f.trace }

func (f *FakeLeagueRepo) GetSeason(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Season, error) {
	f.record("GetSeason")
	if s, ok := f.Seasons[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) GetActiveSeason(_ context.Context, _ bun.IDB) (*leaguedb.Season, error) {
	f.record("GetActiveSeason")
	for _, s := range f.Seasons {
		if s.Active {
			cp := *s
			return &cp, nil
		}
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) ListSeasons(_ context.Context, _ bun.IDB) ([]leaguedb.Season, error) {
	f.record("ListSeasons")
	out := make([]leaguedb.Season, 0, len(f.Seasons))
	for _, s := range f.Seasons {
		out = append(out, *s)
	}
	return out, nil
}

func (f *FakeLeagueRepo) SaveSeason(_ context.Context, _ bun.IDB, season *leaguedb.Season) error {
	f.record("SaveSeason")
	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	cp := *season
	f.Seasons[season.ID] = &cp
	return nil
}

func (f *FakeLeagueRepo) DeactivateOtherSeasons(_ context.Context, _ bun.IDB, keep uuid.UUID) error {
	f.record("DeactivateOtherSeasons")
	for id, s := range f.Seasons {
		if id != keep {
			s.Active = false
		}
	}
	return nil
}

func (f *FakeLeagueRepo) GetTeam(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Team, error) {
	f.record("GetTeam")
	if t, ok := f.Teams[id]; ok {
		cp := *t
		return &cp, nil
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) ListTeams(_ context.Context, _ bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error) {
	f.record("ListTeams")
	var out []leaguedb.Team
	for _, t := range f.Teams {
		if t.SeasonID == seasonID {
			out = append(out, *t)
		}
	}
	return out, nil
}

func (f *FakeLeagueRepo) SaveTeam(ctx context.Context, db bun.IDB, team *leaguedb.Team) error {
	f.record("SaveTeam")
	if f.SaveTeamFunc != nil {
		return f.SaveTeamFunc(ctx, db, team)
	}
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	cp := *team
	f.Teams[team.ID] = &cp
	return nil
}

func (f *FakeLeagueRepo) DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	f.record("DeleteTeam")
	if f.DeleteTeamFunc != nil {
		return f.DeleteTeamFunc(ctx, db, id)
	}
	if _, ok := f.Teams[id]; !ok {
		return leaguedb.ErrNotFound
	}
	delete(f.Teams, id)
	return nil
}

func (f *FakeLeagueRepo) GetPlayer(_ context.Context, _ bun.IDB, id uuid.UUID) (*leaguedb.Player, error) {
	f.record("GetPlayer")
	if p, ok := f.Players[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) GetPlayerByUser(_ context.Context, _ bun.IDB, seasonID, userID uuid.UUID) (*leaguedb.Player, error) {
	f.record("GetPlayerByUser")
	for _, p := range f.Players {
		if p.SeasonID == seasonID && p.UserID != nil && *p.UserID == userID {
			cp := *p
			return &cp, nil
		}
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeLeagueRepo) ListPlayers(_ context.Context, _ bun.IDB, teamID uuid.UUID) ([]leaguedb.Player, error) {
	f.record("ListPlayers")
	var out []leaguedb.Player
	for _, p := range f.Players {
		if p.TeamID == teamID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *FakeLeagueRepo) SavePlayer(ctx context.Context, db bun.IDB, player *leaguedb.Player) error {
	f.record("SavePlayer")
	if f.SavePlayerFunc != nil {
		return f.SavePlayerFunc(ctx, db, player)
	}
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	cp := *player
	f.Players[player.ID] = &cp
	return nil
}

var _ leaguedb.Repository = (*FakeLeagueRepo)(nil)
