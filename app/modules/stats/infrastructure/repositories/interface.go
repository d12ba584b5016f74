package statsdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for box-score persistence.
type Repository interface {
	UpsertBatting(ctx context.Context, db bun.IDB, row *BattingRow) error
	UpsertPitching(ctx context.Context, db bun.IDB, row *PitchingRow) error
	DeleteBatting(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error
	DeletePitching(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error

	ListBattingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]BattingRow, error)
	ListPitchingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]PitchingRow, error)
	ListBattingBySeason(ctx context.Context, db bun.IDB, filter SeasonFilter) ([]BattingRow, error)
	ListPitchingBySeason(ctx context.Context, db bun.IDB, filter SeasonFilter) ([]PitchingRow, error)
}
