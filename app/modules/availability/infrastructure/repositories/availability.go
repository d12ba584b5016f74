package availabilitydb

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

// Upsert records the latest response for (game, player).
func (r *Impl) Upsert(ctx context.Context, db bun.IDB, row *Availability) error {
	_, err := r.resolveDB(db).NewInsert().
		Model(row).
		On("CONFLICT (game_id, player_id) DO UPDATE").
		Set("status = EXCLUDED.status").
		Set("note = EXCLUDED.note").
		Set("set_by_user_id = EXCLUDED.set_by_user_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to save availability: %w", err)
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().
		Model((*Availability)(nil)).
		Where("game_id = ?", gameID).
		Where("player_id = ?", playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete availability: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]Availability, error) {
	var rows []Availability
	err := r.resolveDB(db).NewSelect().
		Model(&rows).
		Where("av.game_id = ?", gameID).
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability: %w", err)
	}
	return rows, nil
}
