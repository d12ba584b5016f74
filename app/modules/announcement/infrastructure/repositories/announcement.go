package announcementdb

import (
	"context"
	"database/sql"
	"errors"
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

func (r *Impl) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*Announcement, error) {
	a := new(Announcement)
	if err := r.resolveDB(db).NewSelect().Model(a).Where("a.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get announcement: %w", err)
	}
	return a, nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB, filter ListFilter) ([]Announcement, error) {
	var rows []Announcement
	q := r.resolveDB(db).NewSelect().Model(&rows)
	if !filter.AllTeams {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			q = q.Where("a.team_id IS NULL")
			if len(filter.TeamIDs) > 0 {
				q = q.WhereOr("a.team_id IN (?)", bun.In(filter.TeamIDs))
			}
			return q
		})
	}
	if filter.ActiveAt != nil {
		q = q.Where("(a.expires_at IS NULL OR a.expires_at > ?)", *filter.ActiveAt)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.OrderExpr("a.pinned DESC, a.created_at DESC, a.id DESC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list announcements: %w", err)
	}
	return rows, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, a *Announcement) error {
	if _, err := r.resolveDB(db).NewInsert().Model(a).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create announcement: %w", err)
	}
	return nil
}

func (r *Impl) CreateForGame(ctx context.Context, db bun.IDB, a *Announcement) (bool, error) {
	res, err := r.resolveDB(db).NewInsert().
		Model(a).
		On("CONFLICT (game_id, team_id) WHERE game_id IS NOT NULL DO NOTHING").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to create game announcement: %w", err)
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, a *Announcement) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model(a).
		Column("title", "body", "priority", "pinned", "expires_at", "team_id", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update announcement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*Announcement)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete announcement: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
