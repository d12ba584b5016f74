package gamedb

import (
	"context"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for game persistence.
//
// Error semantics:
//   - ErrNotFound: no game with that id
//   - ErrVersionConflict: Update saw a different version than the caller loaded
//   - ErrInvalidReference: Create named a season or team that does not exist
type Repository interface {
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
	// GetForUpdate locks the row until the surrounding transaction ends.
	GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
	List(ctx context.Context, db bun.IDB, filter ListFilter) ([]gamedomain.Game, error)
	Create(ctx context.Context, db bun.IDB, games ...*gamedomain.Game) error
	// Update writes g where the stored version equals g.Version and bumps
	// g.Version on success.
	Update(ctx context.Context, db bun.IDB, g *gamedomain.Game) error
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
