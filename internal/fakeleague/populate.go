package fakeleague

import (
	"context"
	"fmt"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Stores are the repositories Populate writes through.
type Stores struct {
	Users  userdb.Repository
	League leaguedb.Repository
	Games  gamedb.Repository
}

// Options shape a populated league.
type Options struct {
	Year         int
	Teams        int
	Roster       int
	AdminEmail   string
	PasswordHash string
	Rules        gamedomain.Rules
	// FirstGame defaults to 10:00 UTC on the first Saturday of the season.
	FirstGame time.Time
}

// League is everything Populate created.
type League struct {
	Admin    userdb.User
	Season   leaguedb.Season
	Teams    []leaguedb.Team
	Managers map[uuid.UUID]userdb.User
	Players  map[uuid.UUID][]leaguedb.Player
	Games    []gamedomain.Game
}

// Populate writes an active season with teams, rosters, accounts and a full
// schedule. Every team gets a manager login tied to its first player and a
// player login tied to its second.
func (g *Generator) Populate(ctx context.Context, db bun.IDB, stores Stores, opts Options) (*League, error) {
	if opts.Teams < 2 {
		return nil, fmt.Errorf("need at least two teams, got %d", opts.Teams)
	}
	out := &League{
		Managers: make(map[uuid.UUID]userdb.User, opts.Teams),
		Players:  make(map[uuid.UUID][]leaguedb.Player, opts.Teams),
	}

	createUser := func(u userdb.User) (userdb.User, error) {
		u.PasswordHash = opts.PasswordHash
		if err := stores.Users.Create(ctx, db, &u); err != nil {
			return u, fmt.Errorf("create user %s: %w", u.Email, err)
		}
		return u, nil
	}

	admin := g.User("League", "Admin", authdomain.RoleCommissioner, nil)
	if opts.AdminEmail != "" {
		admin.Email = opts.AdminEmail
	}
	var err error
	if out.Admin, err = createUser(admin); err != nil {
		return nil, err
	}

	out.Season = g.Season(opts.Year)
	if err := stores.League.SaveSeason(ctx, db, &out.Season); err != nil {
		return nil, fmt.Errorf("save season: %w", err)
	}
	if err := stores.League.DeactivateOtherSeasons(ctx, db, out.Season.ID); err != nil {
		return nil, fmt.Errorf("deactivate seasons: %w", err)
	}

	out.Teams = g.Teams(out.Season.ID, opts.Teams)
	for i := range out.Teams {
		team := &out.Teams[i]
		if err := stores.League.SaveTeam(ctx, db, team); err != nil {
			return nil, fmt.Errorf("save team %s: %w", team.Name, err)
		}

		players := g.Roster(*team, max(opts.Roster, 2))
		manager, err := createUser(g.User(players[0].FirstName, players[0].LastName, authdomain.RoleManager, &team.ID))
		if err != nil {
			return nil, err
		}
		team.ManagerUserID = &manager.ID
		if err := stores.League.SaveTeam(ctx, db, team); err != nil {
			return nil, fmt.Errorf("assign manager for %s: %w", team.Name, err)
		}
		out.Managers[team.ID] = manager

		player, err := createUser(g.User(players[1].FirstName, players[1].LastName, authdomain.RolePlayer, &team.ID))
		if err != nil {
			return nil, err
		}
		players[0].UserID = &manager.ID
		players[1].UserID = &player.ID
		for j := range players {
			if err := stores.League.SavePlayer(ctx, db, &players[j]); err != nil {
				return nil, fmt.Errorf("save player: %w", err)
			}
		}
		out.Players[team.ID] = players
	}

	first := opts.FirstGame
	if first.IsZero() {
		first = firstSaturday(out.Season.StartDate).Add(10 * time.Hour)
	}
	if out.Games, err = g.Schedule(out.Season.ID, out.Teams, first, opts.Rules); err != nil {
		return nil, fmt.Errorf("build schedule: %w", err)
	}
	games := make([]*gamedomain.Game, len(out.Games))
	for i := range out.Games {
		games[i] = &out.Games[i]
	}
	if err := stores.Games.Create(ctx, db, games...); err != nil {
		return nil, fmt.Errorf("save schedule: %w", err)
	}
	return out, nil
}

func firstSaturday(t time.Time) time.Time {
	for t.Weekday() != time.Saturday {
		t = t.AddDate(0, 0, 1)
	}
	return t
}
