package leagueservice

import (
	"context"
	"fmt"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

func (s *LeagueService) ListSeasons(ctx context.Context) ([]leaguedb.Season, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListSeasons", "", func(ctx context.Context) (result[[]leaguedb.Season], error) {
		seasons, err := s.repo.ListSeasons(ctx, nil)
		if err != nil {
			return result[[]leaguedb.Season]{}, err
		}
		return success(seasons)
	}))
}

func (s *LeagueService) GetSeason(ctx context.Context, id uuid.UUID) (*leaguedb.Season, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "GetSeason", id.String(), func(ctx context.Context) (result[*leaguedb.Season], error) {
		season, err := s.repo.GetSeason(ctx, nil, id)
		if err != nil {
			return lookup[*leaguedb.Season](err, ErrSeasonNotFound, "season")
		}
		return success(season)
	}))
}

func (s *LeagueService) ActiveSeason(ctx context.Context) (*leaguedb.Season, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ActiveSeason", "", func(ctx context.Context) (result[*leaguedb.Season], error) {
		season, err := s.repo.GetActiveSeason(ctx, nil)
		if err != nil {
			return lookup[*leaguedb.Season](err, ErrSeasonNotFound, "active season")
		}
		return success(season)
	}))
}

func (s *LeagueService) CreateSeason(ctx context.Context, sess *authdomain.Session, in leaguedomain.SeasonInput) (*leaguedb.Season, error) {
	return s.saveSeason(ctx, "CreateSeason", sess, uuid.Nil, in)
}

func (s *LeagueService) UpdateSeason(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.SeasonInput) (*leaguedb.Season, error) {
	return s.saveSeason(ctx, "UpdateSeason", sess, id, in)
}

// saveSeason creates (id == uuid.Nil) or replaces a season. Activating a
// season deactivates every other one in the same transaction.
func (s *LeagueService) saveSeason(ctx context.Context, op string, sess *authdomain.Session, id uuid.UUID, in leaguedomain.SeasonInput) (*leaguedb.Season, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, op, id.String(), func(ctx context.Context) (result[*leaguedb.Season], error) {
		if !sess.IsPrivileged() {
			return failure[*leaguedb.Season](ErrNotAdmin)
		}
		if err := in.Validate(); err != nil {
			return failure[*leaguedb.Season](validationFailure(err))
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*leaguedb.Season], error) {
			season := &leaguedb.Season{ID: id}
			if id != uuid.Nil {
				existing, err := s.repo.GetSeason(ctx, db, id)
				if err != nil {
					return lookup[*leaguedb.Season](err, ErrSeasonNotFound, "season")
				}
				season = existing
			}
			season.Name = in.Name
			season.Year = in.Year
			season.StartDate = in.StartDate
			season.EndDate = in.EndDate
			season.Active = in.Active

			if err := s.repo.SaveSeason(ctx, db, season); err != nil {
				return result[*leaguedb.Season]{}, fmt.Errorf("failed to save season: %w", err)
			}
			if season.Active {
				if err := s.repo.DeactivateOtherSeasons(ctx, db, season.ID); err != nil {
					return result[*leaguedb.Season]{}, err
				}
			}
			return success(season)
		})
	}))
}
