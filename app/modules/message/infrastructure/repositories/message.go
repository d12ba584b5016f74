package messagedb

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

func (r *Impl) selectMessages(db bun.IDB, dst any) *bun.SelectQuery {
	return r.resolveDB(db).NewSelect().
		Model(dst).
		ColumnExpr("m.*").
		ColumnExpr("u.display_name AS author_name").
		Join("LEFT JOIN users AS u ON u.id = m.author_id")
}

func (r *Impl) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (*Message, error) {
	m := new(Message)
	if err := r.selectMessages(db, m).Where("m.id = ?", id).Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get message: %w", err)
	}
	return m, nil
}

// List pages on (created_at, id) so messages sharing a timestamp are
// neither skipped nor repeated.
func (r *Impl) List(ctx context.Context, db bun.IDB, filter ListFilter) ([]Message, error) {
	var rows []Message
	q := r.selectMessages(db, &rows).
		Where("m.team_id = ?", filter.TeamID).
		Where("m.channel = ?", filter.Channel)

	order := "m.created_at DESC, m.id DESC"
	switch {
	case filter.After != nil:
		cursor, err := r.cursor(ctx, db, filter, *filter.After)
		if err != nil {
			return nil, err
		}
		q = q.Where("(m.created_at, m.id) > (?, ?)", cursor.CreatedAt, cursor.ID)
		order = "m.created_at ASC, m.id ASC"
	case filter.Before != nil:
		cursor, err := r.cursor(ctx, db, filter, *filter.Before)
		if err != nil {
			return nil, err
		}
		q = q.Where("(m.created_at, m.id) < (?, ?)", cursor.CreatedAt, cursor.ID)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.OrderExpr(order).Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return rows, nil
}

func (r *Impl) cursor(ctx context.Context, db bun.IDB, filter ListFilter, id uuid.UUID) (*Message, error) {
	m := new(Message)
	err := r.resolveDB(db).NewSelect().
		Model(m).
		Column("id", "created_at").
		Where("id = ?", id).
		Where("team_id = ?", filter.TeamID).
		Where("channel = ?", filter.Channel).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCursorNotFound
		}
		return nil, fmt.Errorf("failed to load cursor message: %w", err)
	}
	return m, nil
}

func (r *Impl) ListPinned(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Message, error) {
	var rows []Message
	err := r.selectMessages(db, &rows).
		Where("m.team_id = ?", teamID).
		Where("m.pinned").
		Where("NOT m.deleted").
		OrderExpr("m.pinned_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pinned messages: %w", err)
	}
	return rows, nil
}

func (r *Impl) Create(ctx context.Context, db bun.IDB, m *Message) error {
	if _, err := r.resolveDB(db).NewInsert().Model(m).Returning("id").Exec(ctx); err != nil {
		return fmt.Errorf("failed to create message: %w", err)
	}
	return nil
}

// Update writes the named columns of m.
func (r *Impl) Update(ctx context.Context, db bun.IDB, m *Message, columns ...string) error {
	res, err := r.resolveDB(db).NewUpdate().
		Model(m).
		Column(columns...).
		WherePK().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update message: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
