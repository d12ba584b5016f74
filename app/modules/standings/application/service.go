package standingsservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	standingsdomain "github.com/Black-And-White-Club/dugout/app/modules/standings/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

var ErrSeasonNotFound = apperr.NotFound("season not found")

// Service computes league tables.
type Service interface {
	Standings(ctx context.Context, seasonID uuid.UUID) ([]standingsdomain.Row, error)
	Chart(ctx context.Context, seasonID uuid.UUID) ([]byte, error)
}

// LeagueReader loads the season and its teams.
type LeagueReader interface {
	GetSeason(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Season, error)
	ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error)
}

// GameLister loads the season's games.
type GameLister interface {
	List(ctx context.Context, db bun.IDB, filter gamedb.ListFilter) ([]gamedomain.Game, error)
}

// StandingsService implements Service. It has no storage of its own.
type StandingsService struct {
	run     operation.Runner
	league  LeagueReader
	games   GameLister
	palette ChartPalette
}

func NewService(run operation.Runner, league LeagueReader, games GameLister) *StandingsService {
	return &StandingsService{run: run, league: league, games: games, palette: DefaultPalette}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func (s *StandingsService) Standings(ctx context.Context, seasonID uuid.UUID) ([]standingsdomain.Row, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Standings", seasonID.String(), func(ctx context.Context) (result[[]standingsdomain.Row], error) {
		return s.compute(ctx, seasonID)
	}))
}

// Chart renders the season's run differential as a PNG bar chart.
func (s *StandingsService) Chart(ctx context.Context, seasonID uuid.UUID) ([]byte, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Chart", seasonID.String(), func(ctx context.Context) (result[[]byte], error) {
		res, err := s.compute(ctx, seasonID)
		if err != nil {
			return result[[]byte]{}, err
		}
		if res.IsFailure() {
			return results.FailureResult[[]byte, *apperr.Failure](*res.Failure), nil
		}
		png, err := RenderRunDifferential(*res.Success, s.palette)
		if err != nil {
			return result[[]byte]{}, fmt.Errorf("failed to render standings chart: %w", err)
		}
		return results.SuccessResult[[]byte, *apperr.Failure](png), nil
	}))
}

func (s *StandingsService) compute(ctx context.Context, seasonID uuid.UUID) (result[[]standingsdomain.Row], error) {
	if _, err := s.league.GetSeason(ctx, nil, seasonID); err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return results.FailureResult[[]standingsdomain.Row, *apperr.Failure](ErrSeasonNotFound), nil
		}
		return result[[]standingsdomain.Row]{}, err
	}
	teams, err := s.league.ListTeams(ctx, nil, seasonID)
	if err != nil {
		return result[[]standingsdomain.Row]{}, err
	}
	games, err := s.games.List(ctx, nil, gamedb.ListFilter{
		SeasonID: &seasonID,
		Statuses: []gamedomain.Status{gamedomain.StatusFinal},
	})
	if err != nil {
		return result[[]standingsdomain.Row]{}, err
	}

	in := make([]standingsdomain.Team, len(teams))
	for i, t := range teams {
		in[i] = standingsdomain.Team{ID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation}
	}
	return results.SuccessResult[[]standingsdomain.Row, *apperr.Failure](standingsdomain.Compute(in, games)), nil
}
