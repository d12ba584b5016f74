package availabilitydb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for availability persistence.
type Repository interface {
	Upsert(ctx context.Context, db bun.IDB, row *Availability) error
	Delete(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error
	ListByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]Availability, error)
}
