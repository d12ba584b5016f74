package gameservice

import (
	"context"
	"errors"
	"fmt"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
)

const maxListLimit = 500

func (s *GameService) GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "GetGame", gameID.String(), func(ctx context.Context) (result[*gamedomain.Game], error) {
		game, err := s.repo.Get(ctx, nil, gameID)
		if err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return failure[*gamedomain.Game](ErrGameNotFound)
			}
			return result[*gamedomain.Game]{}, fmt.Errorf("failed to load game: %w", err)
		}
		return success(&game)
	}))
}

func (s *GameService) ListGames(ctx context.Context, filter gamedb.ListFilter) ([]gamedomain.Game, error) {
	if filter.Limit <= 0 || filter.Limit > maxListLimit {
		filter.Limit = maxListLimit
	}
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListGames", "", func(ctx context.Context) (result[[]gamedomain.Game], error) {
		games, err := s.repo.List(ctx, nil, filter)
		if err != nil {
			return result[[]gamedomain.Game]{}, err
		}
		return success(games)
	}))
}

// LiveGames returns games in warmup or in progress.
func (s *GameService) LiveGames(ctx context.Context) ([]gamedomain.Game, error) {
	return s.ListGames(ctx, gamedb.ListFilter{
		Statuses: []gamedomain.Status{gamedomain.StatusWarmup, gamedomain.StatusInProgress},
	})
}
