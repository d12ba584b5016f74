package announcementdb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for announcement persistence.
type Repository interface {
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*Announcement, error)
	// List orders pinned first, then newest.
	List(ctx context.Context, db bun.IDB, filter ListFilter) ([]Announcement, error)
	Create(ctx context.Context, db bun.IDB, a *Announcement) error
	// CreateForGame inserts a game notice unless one already exists for the
	// same game and team. It reports whether a row was written.
	CreateForGame(ctx context.Context, db bun.IDB, a *Announcement) (bool, error)
	Update(ctx context.Context, db bun.IDB, a *Announcement) error
	Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error
}
