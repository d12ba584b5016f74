package availabilityservice

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	availabilitydomain "github.com/Black-And-White-Club/dugout/app/modules/availability/domain"
	availabilitydb "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/repositories"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
)

// AvailabilityService implements the Service interface.
type AvailabilityService struct {
	run     operation.Runner
	repo    availabilitydb.Repository
	games   GameReader
	rosters RosterReader
	clock   clockwork.Clock
}

func NewService(run operation.Runner, repo availabilitydb.Repository, games GameReader, rosters RosterReader, clock clockwork.Clock) *AvailabilityService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AvailabilityService{run: run, repo: repo, games: games, rosters: rosters, clock: clock}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

func (s *AvailabilityService) Set(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, in availabilitydomain.Input) (*availabilitydb.Availability, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "SetAvailability", playerID.String(), func(ctx context.Context) (result[*availabilitydb.Availability], error) {
		if f := in.Validate(); f != nil {
			return failure[*availabilitydb.Availability](f)
		}
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*availabilitydb.Availability], error) {
			player, f, err := s.authorize(ctx, db, sess, gameID, playerID)
			if err != nil {
				return result[*availabilitydb.Availability]{}, err
			}
			if f != nil {
				return failure[*availabilitydb.Availability](f)
			}
			row := &availabilitydb.Availability{
				GameID:      gameID,
				PlayerID:    playerID,
				TeamID:      player.TeamID,
				Status:      in.Status,
				Note:        in.Note,
				SetByUserID: sess.UserID,
				UpdatedAt:   s.clock.Now().UTC(),
			}
			if err := s.repo.Upsert(ctx, db, row); err != nil {
				return result[*availabilitydb.Availability]{}, err
			}
			return success(row)
		})
	}))
}

func (s *AvailabilityService) Clear(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ClearAvailability", playerID.String(), func(ctx context.Context) (result[struct{}], error) {
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[struct{}], error) {
			_, f, err := s.authorize(ctx, db, sess, gameID, playerID)
			if err != nil {
				return result[struct{}]{}, err
			}
			if f != nil {
				return failure[struct{}](f)
			}
			if err := s.repo.Delete(ctx, db, gameID, playerID); err != nil {
				if errors.Is(err, availabilitydb.ErrNotFound) {
					return failure[struct{}](ErrNoResponse)
				}
				return result[struct{}]{}, err
			}
			return success(struct{}{})
		})
	}))
	return err
}

// authorize checks the caller may answer for the player and that the game
// has not started.
func (s *AvailabilityService) authorize(ctx context.Context, db bun.IDB, sess *authdomain.Session, gameID, playerID uuid.UUID) (*leaguedb.Player, *apperr.Failure, error) {
	player, err := s.rosters.GetPlayer(ctx, db, playerID)
	if err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return nil, ErrPlayerNotFound, nil
		}
		return nil, nil, fmt.Errorf("failed to load player: %w", err)
	}
	if !availabilitydomain.CanSet(sess, player.UserID, player.TeamID) {
		return nil, ErrCannotAnswer, nil
	}
	game, f, err := s.loadGame(ctx, db, gameID)
	if err != nil || f != nil {
		return nil, f, err
	}
	if !game.HasTeam(player.TeamID) {
		return nil, ErrPlayerNotInGame, nil
	}
	switch game.Status {
	case gamedomain.StatusInProgress, gamedomain.StatusFinal, gamedomain.StatusCancelled:
		return nil, ErrAttendanceClosed, nil
	}
	return player, nil, nil
}

func (s *AvailabilityService) loadGame(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, *apperr.Failure, error) {
	game, err := s.games.Get(ctx, db, id)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return gamedomain.Game{}, ErrGameNotFound, nil
		}
		return gamedomain.Game{}, nil, fmt.Errorf("failed to load game: %w", err)
	}
	return game, nil, nil
}

func (s *AvailabilityService) Summary(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) ([]availabilitydomain.TeamSummary, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "AvailabilitySummary", gameID.String(), func(ctx context.Context) (result[[]availabilitydomain.TeamSummary], error) {
		game, f, err := s.loadGame(ctx, nil, gameID)
		if err != nil {
			return result[[]availabilitydomain.TeamSummary]{}, err
		}
		if f != nil {
			return failure[[]availabilitydomain.TeamSummary](f)
		}

		// Staff see both dugouts; players and managers see their own.
		var teams []uuid.UUID
		switch {
		case sess.IsPrivileged():
			teams = []uuid.UUID{game.AwayTeamID, game.HomeTeamID}
		case sess.BelongsTo(game.AwayTeamID, game.HomeTeamID):
			teams = []uuid.UUID{*sess.TeamID}
		default:
			return failure[[]availabilitydomain.TeamSummary](ErrCannotView)
		}

		rows, err := s.repo.ListByGame(ctx, nil, gameID)
		if err != nil {
			return result[[]availabilitydomain.TeamSummary]{}, err
		}
		byPlayer := make(map[uuid.UUID]availabilitydb.Availability, len(rows))
		for _, row := range rows {
			byPlayer[row.PlayerID] = row
		}

		out := make([]availabilitydomain.TeamSummary, 0, len(teams))
		for _, teamID := range teams {
			roster, err := s.rosters.ListPlayers(ctx, nil, teamID)
			if err != nil {
				return result[[]availabilitydomain.TeamSummary]{}, fmt.Errorf("failed to load roster: %w", err)
			}
			responses := make([]availabilitydomain.Response, 0, len(roster))
			for i := range roster {
				p := &roster[i]
				row, answered := byPlayer[p.ID]
				// Inactive players only show up if they answered anyway.
				if !answered && p.Status == string(leaguedomain.PlayerInactive) {
					continue
				}
				resp := availabilitydomain.Response{PlayerID: p.ID, Name: p.FullName()}
				if answered {
					status := row.Status
					resp.Status = &status
					resp.Note = row.Note
				}
				responses = append(responses, resp)
			}
			out = append(out, availabilitydomain.Summarize(teamID, responses))
		}
		return success(out)
	}))
}
