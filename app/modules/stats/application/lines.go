package statsservice

import (
	"context"
	"errors"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// RecordBatting creates or replaces a player's batting line for a game.
func (s *StatsService) RecordBatting(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.BattingLine) (*statsdb.BattingRow, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "RecordBatting", gameID.String(), func(ctx context.Context) (result[*statsdb.BattingRow], error) {
		if f := line.Validate(); f != nil {
			return failure[*statsdb.BattingRow](f)
		}
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*statsdb.BattingRow], error) {
			e, f, err := s.authorizeEntry(ctx, db, sess, gameID, playerID)
			if err != nil {
				return result[*statsdb.BattingRow]{}, err
			}
			if f != nil {
				return failure[*statsdb.BattingRow](f)
			}
			row := &statsdb.BattingRow{GameID: gameID, PlayerID: playerID, TeamID: e.player.TeamID, SeasonID: e.game.SeasonID}
			row.SetLine(line)
			if err := s.repo.UpsertBatting(ctx, db, row); err != nil {
				return result[*statsdb.BattingRow]{}, err
			}
			return success(row)
		})
	}))
}

// RecordPitching creates or replaces a pitcher's line for a game.
func (s *StatsService) RecordPitching(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.PitchingLine) (*statsdb.PitchingRow, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "RecordPitching", gameID.String(), func(ctx context.Context) (result[*statsdb.PitchingRow], error) {
		if f := line.Validate(); f != nil {
			return failure[*statsdb.PitchingRow](f)
		}
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*statsdb.PitchingRow], error) {
			e, f, err := s.authorizeEntry(ctx, db, sess, gameID, playerID)
			if err != nil {
				return result[*statsdb.PitchingRow]{}, err
			}
			if f != nil {
				return failure[*statsdb.PitchingRow](f)
			}
			row := &statsdb.PitchingRow{GameID: gameID, PlayerID: playerID, TeamID: e.player.TeamID, SeasonID: e.game.SeasonID}
			row.SetLine(line)
			if err := s.repo.UpsertPitching(ctx, db, row); err != nil {
				return result[*statsdb.PitchingRow]{}, err
			}
			return success(row)
		})
	}))
}

func (s *StatsService) DeleteBatting(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error {
	return s.deleteLine(ctx, "DeleteBatting", sess, gameID, playerID, s.repo.DeleteBatting)
}

func (s *StatsService) DeletePitching(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error {
	return s.deleteLine(ctx, "DeletePitching", sess, gameID, playerID, s.repo.DeletePitching)
}

func (s *StatsService) deleteLine(
	ctx context.Context,
	op string,
	sess *authdomain.Session,
	gameID, playerID uuid.UUID,
	del func(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error,
) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, op, gameID.String(), func(ctx context.Context) (result[struct{}], error) {
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[struct{}], error) {
			_, f, err := s.authorizeEntry(ctx, db, sess, gameID, playerID)
			if err != nil {
				return result[struct{}]{}, err
			}
			if f != nil {
				return failure[struct{}](f)
			}
			if err := del(ctx, db, gameID, playerID); err != nil {
				if errors.Is(err, statsdb.ErrNotFound) {
					return failure[struct{}](ErrLineNotFound)
				}
				return result[struct{}]{}, err
			}
			return success(struct{}{})
		})
	}))
	return err
}
