package gamedb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new game repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func (r *Impl) Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	return r.get(ctx, db, id, false)
}

func (r *Impl) GetForUpdate(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error) {
	return r.get(ctx, db, id, true)
}

func (r *Impl) get(ctx context.Context, db bun.IDB, id uuid.UUID, lock bool) (gamedomain.Game, error) {
	row := new(Game)
	q := r.resolveDB(db).NewSelect().Model(row).Where("g.id = ?", id)
	if lock {
		q = q.For("UPDATE")
	}
	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return gamedomain.Game{}, ErrNotFound
		}
		return gamedomain.Game{}, fmt.Errorf("failed to get game: %w", err)
	}
	return row.ToDomain(), nil
}

func (r *Impl) List(ctx context.Context, db bun.IDB, filter ListFilter) ([]gamedomain.Game, error) {
	var rows []Game
	q := r.resolveDB(db).NewSelect().Model(&rows)
	if filter.SeasonID != nil {
		q = q.Where("g.season_id = ?", *filter.SeasonID)
	}
	if filter.TeamID != nil {
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("g.home_team_id = ?", *filter.TeamID).
				WhereOr("g.away_team_id = ?", *filter.TeamID)
		})
	}
	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		q = q.Where("g.status IN (?)", bun.In(statuses))
	}
	if filter.From != nil {
		q = q.Where("g.scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		q = q.Where("g.scheduled_at < ?", *filter.To)
	}
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if err := q.OrderExpr("g.scheduled_at ASC, g.id ASC").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list games: %w", err)
	}

	games := make([]gamedomain.Game, len(rows))
	for i := range rows {
		games[i] = rows[i].ToDomain()
	}
	return games, nil
}

// Create inserts games and fills in their ids, versions and creation times.
func (r *Impl) Create(ctx context.Context, db bun.IDB, games ...*gamedomain.Game) error {
	if len(games) == 0 {
		return nil
	}
	rows := make([]*Game, len(games))
	for i, g := range games {
		if g.ID == uuid.Nil {
			g.ID = uuid.New()
		}
		g.Version = 1
		rows[i] = FromDomain(*g)
	}

	if _, err := r.resolveDB(db).NewInsert().Model(&rows).Returning("created_at").Exec(ctx); err != nil {
		if bundb.IsForeignKeyViolation(err) {
			return ErrInvalidReference
		}
		return fmt.Errorf("failed to create games: %w", err)
	}
	for i, row := range rows {
		games[i].CreatedAt = row.CreatedAt
	}
	return nil
}

func (r *Impl) Update(ctx context.Context, db bun.IDB, g *gamedomain.Game) error {
	row := FromDomain(*g)
	row.Version = g.Version + 1
	row.UpdatedAt = time.Now().UTC()

	res, err := r.resolveDB(db).NewUpdate().Model(row).
		ExcludeColumn("id", "created_at").
		Where("g.id = ?", row.ID).
		Where("g.version = ?", g.Version).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to update game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		if _, getErr := r.Get(ctx, db, g.ID); errors.Is(getErr, ErrNotFound) {
			return ErrNotFound
		}
		return ErrVersionConflict
	}
	g.Version++
	return nil
}

func (r *Impl) Delete(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*Game)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete game: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
