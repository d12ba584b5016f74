package leagueservice

import (
	"context"
	"errors"
	"fmt"
	"strings"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (s *LeagueService) Roster(ctx context.Context, teamID uuid.UUID) ([]leaguedb.Player, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Roster", teamID.String(), func(ctx context.Context) (result[[]leaguedb.Player], error) {
		if _, err := s.repo.GetTeam(ctx, nil, teamID); err != nil {
			return lookup[[]leaguedb.Player](err, ErrTeamNotFound, "team")
		}
		players, err := s.repo.ListPlayers(ctx, nil, teamID)
		if err != nil {
			return result[[]leaguedb.Player]{}, err
		}
		return success(players)
	}))
}

func (s *LeagueService) GetPlayer(ctx context.Context, id uuid.UUID) (*leaguedb.Player, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "GetPlayer", id.String(), func(ctx context.Context) (result[*leaguedb.Player], error) {
		player, err := s.repo.GetPlayer(ctx, nil, id)
		if err != nil {
			return lookup[*leaguedb.Player](err, ErrPlayerNotFound, "player")
		}
		return success(player)
	}))
}

// CreatePlayer adds a player to a team's roster for the team's season.
func (s *LeagueService) CreatePlayer(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "CreatePlayer", teamID.String(), func(ctx context.Context) (result[*leaguedb.Player], error) {
		if !sess.CanManageTeam(teamID) {
			return failure[*leaguedb.Player](ErrNotTeamManager)
		}
		in.Normalize()
		if err := in.Validate(); err != nil {
			return failure[*leaguedb.Player](validationFailure(err))
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*leaguedb.Player], error) {
			team, err := s.repo.GetTeam(ctx, db, teamID)
			if err != nil {
				return lookup[*leaguedb.Player](err, ErrTeamNotFound, "team")
			}
			player := &leaguedb.Player{TeamID: team.ID, SeasonID: team.SeasonID}
			applyPlayer(player, in)
			return s.savePlayer(ctx, db, player)
		})
	}))
}

// UpdatePlayer replaces a player's writable fields. The team is fixed.
func (s *LeagueService) UpdatePlayer(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "UpdatePlayer", id.String(), func(ctx context.Context) (result[*leaguedb.Player], error) {
		in.Normalize()
		if err := in.Validate(); err != nil {
			return failure[*leaguedb.Player](validationFailure(err))
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*leaguedb.Player], error) {
			player, err := s.repo.GetPlayer(ctx, db, id)
			if err != nil {
				return lookup[*leaguedb.Player](err, ErrPlayerNotFound, "player")
			}
			if !sess.CanManageTeam(player.TeamID) {
				return failure[*leaguedb.Player](ErrNotTeamManager)
			}
			applyPlayer(player, in)
			return s.savePlayer(ctx, db, player)
		})
	}))
}

func applyPlayer(p *leaguedb.Player, in leaguedomain.PlayerInput) {
	p.FirstName = strings.TrimSpace(in.FirstName)
	p.LastName = strings.TrimSpace(in.LastName)
	p.JerseyNumber = in.JerseyNumber
	p.Position = string(in.Position)
	p.Bats = string(in.Bats)
	p.Throws = string(in.Throws)
	p.Status = string(in.Status)
	p.UserID = in.UserID
}

func (s *LeagueService) savePlayer(ctx context.Context, db bun.IDB, p *leaguedb.Player) (result[*leaguedb.Player], error) {
	if err := s.repo.SavePlayer(ctx, db, p); err != nil {
		if errors.Is(err, leaguedb.ErrDuplicate) {
			return failure[*leaguedb.Player](ErrDuplicateJersey)
		}
		return result[*leaguedb.Player]{}, fmt.Errorf("failed to save player: %w", err)
	}
	return success(p)
}
