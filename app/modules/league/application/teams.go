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

func (s *LeagueService) ListTeams(ctx context.Context, seasonID uuid.UUID) ([]leaguedb.Team, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListTeams", seasonID.String(), func(ctx context.Context) (result[[]leaguedb.Team], error) {
		teams, err := s.repo.ListTeams(ctx, nil, seasonID)
		if err != nil {
			return result[[]leaguedb.Team]{}, err
		}
		return success(teams)
	}))
}

func (s *LeagueService) GetTeam(ctx context.Context, id uuid.UUID) (*leaguedb.Team, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "GetTeam", id.String(), func(ctx context.Context) (result[*leaguedb.Team], error) {
		team, err := s.repo.GetTeam(ctx, nil, id)
		if err != nil {
			return lookup[*leaguedb.Team](err, ErrTeamNotFound, "team")
		}
		return success(team)
	}))
}

func (s *LeagueService) CreateTeam(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "CreateTeam", seasonID.String(), func(ctx context.Context) (result[*leaguedb.Team], error) {
		if !sess.IsPrivileged() {
			return failure[*leaguedb.Team](ErrNotAdmin)
		}
		in.Abbreviation = strings.ToUpper(strings.TrimSpace(in.Abbreviation))
		if err := in.Validate(); err != nil {
			return failure[*leaguedb.Team](validationFailure(err))
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*leaguedb.Team], error) {
			if _, err := s.repo.GetSeason(ctx, db, seasonID); err != nil {
				return lookup[*leaguedb.Team](err, ErrSeasonNotFound, "season")
			}
			team := &leaguedb.Team{SeasonID: seasonID}
			applyTeam(team, in)
			return s.saveTeam(ctx, db, team)
		})
	}))
}

func (s *LeagueService) UpdateTeam(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "UpdateTeam", id.String(), func(ctx context.Context) (result[*leaguedb.Team], error) {
		if !sess.IsPrivileged() {
			return failure[*leaguedb.Team](ErrNotAdmin)
		}
		in.Abbreviation = strings.ToUpper(strings.TrimSpace(in.Abbreviation))
		if err := in.Validate(); err != nil {
			return failure[*leaguedb.Team](validationFailure(err))
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*leaguedb.Team], error) {
			team, err := s.repo.GetTeam(ctx, db, id)
			if err != nil {
				return lookup[*leaguedb.Team](err, ErrTeamNotFound, "team")
			}
			applyTeam(team, in)
			return s.saveTeam(ctx, db, team)
		})
	}))
}

func (s *LeagueService) DeleteTeam(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "DeleteTeam", id.String(), func(ctx context.Context) (result[struct{}], error) {
		if !sess.IsPrivileged() {
			return failure[struct{}](ErrNotAdmin)
		}
		switch err := s.repo.DeleteTeam(ctx, nil, id); {
		case err == nil:
			return success(struct{}{})
		case errors.Is(err, leaguedb.ErrNotFound):
			return failure[struct{}](ErrTeamNotFound)
		case errors.Is(err, leaguedb.ErrDuplicate):
			return failure[struct{}](ErrTeamHasGames)
		default:
			return result[struct{}]{}, err
		}
	}))
	return err
}

func applyTeam(team *leaguedb.Team, in leaguedomain.TeamInput) {
	team.Name = strings.TrimSpace(in.Name)
	team.Abbreviation = in.Abbreviation
	team.Color = in.Color
	team.ManagerUserID = in.ManagerUserID
}

func (s *LeagueService) saveTeam(ctx context.Context, db bun.IDB, team *leaguedb.Team) (result[*leaguedb.Team], error) {
	if err := s.repo.SaveTeam(ctx, db, team); err != nil {
		if errors.Is(err, leaguedb.ErrDuplicate) {
			return failure[*leaguedb.Team](ErrDuplicateTeam)
		}
		return result[*leaguedb.Team]{}, fmt.Errorf("failed to save team: %w", err)
	}
	return success(team)
}
