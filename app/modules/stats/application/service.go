package statsservice

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StatsService implements the Service interface.
type StatsService struct {
	run     operation.Runner
	repo    statsdb.Repository
	games   GameReader
	players PlayerReader
	config  Config
}

// NewService creates a new stats service.
func NewService(run operation.Runner, repo statsdb.Repository, games GameReader, players PlayerReader, config Config) *StatsService {
	if config.RegulationInnings == 0 {
		config.RegulationInnings = gamedomain.DefaultRules.RegulationInnings
	}
	return &StatsService{run: run, repo: repo, games: games, players: players, config: config}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

// entry is the player and game a stat line is being written for.
type entry struct {
	game   gamedomain.Game
	player *leaguedb.Player
}

// authorizeEntry loads the game and player and checks that sess may write a
// line for them. A nil Failure means the caller may proceed.
func (s *StatsService) authorizeEntry(ctx context.Context, db bun.IDB, sess *authdomain.Session, gameID, playerID uuid.UUID) (entry, *apperr.Failure, error) {
	player, err := s.players.GetPlayer(ctx, db, playerID)
	if err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return entry{}, ErrPlayerNotFound, nil
		}
		return entry{}, nil, fmt.Errorf("failed to load player: %w", err)
	}
	if !sess.CanManageTeam(player.TeamID) {
		return entry{}, ErrNotStatKeeper, nil
	}

	game, err := s.games.Get(ctx, db, gameID)
	if err != nil {
		if errors.Is(err, gamedb.ErrNotFound) {
			return entry{}, ErrGameNotFound, nil
		}
		return entry{}, nil, fmt.Errorf("failed to load game: %w", err)
	}
	if !game.HasTeam(player.TeamID) {
		return entry{}, ErrPlayerNotInGame, nil
	}
	switch game.Status {
	case gamedomain.StatusInProgress, gamedomain.StatusSuspended, gamedomain.StatusFinal:
	default:
		return entry{}, ErrGameNotPlayed, nil
	}
	return entry{game: game, player: player}, nil, nil
}
