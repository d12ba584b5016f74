package messagedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for chat persistence.
type Repository interface {
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*Message, error)
	// List returns newest first for Before or no cursor, oldest first for After.
	List(ctx context.Context, db bun.IDB, filter ListFilter) ([]Message, error)
	ListPinned(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Message, error)
	Create(ctx context.Context, db bun.IDB, m *Message) error
	Update(ctx context.Context, db bun.IDB, m *Message, columns ...string) error
}
