package availabilityservice

import (
	"context"

	availabilitydb "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/repositories"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

type key struct{ game, player uuid.UUID }

type FakeAvailabilityRepo struct {
	trace []string
	rows  map[key]availabilitydb.Availability
}

func NewFakeAvailabilityRepo() *FakeAvailabilityRepo {
	return &FakeAvailabilityRepo{rows: map[key]availabilitydb.Availability{}}
}

func (f *FakeAvailabilityRepo) Trace() []string { return f.trace }

func (f *FakeAvailabilityRepo) Upsert(ctx context.Context, db bun.IDB, row *availabilitydb.Availability) error {
	f.trace = append(f.trace, "Upsert")
	f.rows[key{row.GameID, row.PlayerID}] = *row
	return nil
}

func (f *FakeAvailabilityRepo) Delete(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	f.trace = append(f.trace, "Delete")
	k := key{gameID, playerID}
	if _, ok := f.rows[k]; !ok {
		return availabilitydb.ErrNotFound
	}
	delete(f.rows, k)
	return nil
}

func (f *FakeAvailabilityRepo) ListByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]availabilitydb.Availability, error) {
	f.trace = append(f.trace, "ListByGame")
	var out []availabilitydb.Availability
	for k, row := range f.rows {
		if k.game == gameID {
			out = append(out, row)
		}
	}
	return out, nil
}

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

type FakeRosters struct {
	players []leaguedb.Player
}

func (f *FakeRosters) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Player, error) {
	for i := range f.players {
		if f.players[i].ID == id {
			p := f.players[i]
			return &p, nil
		}
	}
	return nil, leaguedb.ErrNotFound
}

func (f *FakeRosters) ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]leaguedb.Player, error) {
	var out []leaguedb.Player
	for _, p := range f.players {
		if p.TeamID == teamID {
			out = append(out, p)
		}
	}
	return out, nil
}

var (
	_ availabilitydb.Repository = (*FakeAvailabilityRepo)(nil)
	_ GameReader                = (*FakeGames)(nil)
	_ RosterReader              = (*FakeRosters)(nil)
)
