package statsdb

import (
	"context"
	"fmt"
	"time"

	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Impl implements the Repository interface using Bun ORM.
type Impl struct {
	db bun.IDB
}

// NewRepository creates a new stats repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func upsertErr(err error, what string) error {
	if bundb.IsForeignKeyViolation(err) {
		return ErrInvalidReference
	}
	return fmt.Errorf("failed to save %s line: %w", what, err)
}

// UpsertBatting replaces the line for (game, player).
func (r *Impl) UpsertBatting(ctx context.Context, db bun.IDB, row *BattingRow) error {
	row.UpdatedAt = time.Now().UTC()
	_, err := r.resolveDB(db).NewInsert().
		Model(row).
		On("CONFLICT (game_id, player_id) DO UPDATE").
		Set("at_bats = EXCLUDED.at_bats").
		Set("runs = EXCLUDED.runs").
		Set("hits = EXCLUDED.hits").
		Set("doubles = EXCLUDED.doubles").
		Set("triples = EXCLUDED.triples").
		Set("home_runs = EXCLUDED.home_runs").
		Set("rbi = EXCLUDED.rbi").
		Set("walks = EXCLUDED.walks").
		Set("strikeouts = EXCLUDED.strikeouts").
		Set("stolen_bases = EXCLUDED.stolen_bases").
		Set("hit_by_pitch = EXCLUDED.hit_by_pitch").
		Set("sac_flies = EXCLUDED.sac_flies").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return upsertErr(err, "batting")
	}
	return nil
}

// UpsertPitching replaces the line for (game, player).
func (r *Impl) UpsertPitching(ctx context.Context, db bun.IDB, row *PitchingRow) error {
	row.UpdatedAt = time.Now().UTC()
	_, err := r.resolveDB(db).NewInsert().
		Model(row).
		On("CONFLICT (game_id, player_id) DO UPDATE").
		Set("outs = EXCLUDED.outs").
		Set("hits = EXCLUDED.hits").
		Set("runs = EXCLUDED.runs").
		Set("earned_runs = EXCLUDED.earned_runs").
		Set("walks = EXCLUDED.walks").
		Set("strikeouts = EXCLUDED.strikeouts").
		Set("home_runs = EXCLUDED.home_runs").
		Set("pitches = EXCLUDED.pitches").
		Set("decision = EXCLUDED.decision").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return upsertErr(err, "pitching")
	}
	return nil
}

func (r *Impl) DeleteBatting(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	return r.delete(ctx, db, (*BattingRow)(nil), gameID, playerID)
}

func (r *Impl) DeletePitching(ctx context.Context, db bun.IDB, gameID, playerID uuid.UUID) error {
	return r.delete(ctx, db, (*PitchingRow)(nil), gameID, playerID)
}

func (r *Impl) delete(ctx context.Context, db bun.IDB, model any, gameID, playerID uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().
		Model(model).
		Where("game_id = ? AND player_id = ?", gameID, playerID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete stat line: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *Impl) ListBattingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]BattingRow, error) {
	var rows []BattingRow
	if err := r.resolveDB(db).NewSelect().Model(&rows).Where("bl.game_id = ?", gameID).OrderExpr("bl.team_id, bl.player_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list batting lines: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListPitchingByGame(ctx context.Context, db bun.IDB, gameID uuid.UUID) ([]PitchingRow, error) {
	var rows []PitchingRow
	if err := r.resolveDB(db).NewSelect().Model(&rows).Where("pl.game_id = ?", gameID).OrderExpr("pl.team_id, pl.player_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list pitching lines: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListBattingBySeason(ctx context.Context, db bun.IDB, filter SeasonFilter) ([]BattingRow, error) {
	var rows []BattingRow
	q := r.resolveDB(db).NewSelect().Model(&rows).Where("bl.season_id = ?", filter.SeasonID)
	if filter.TeamID != nil {
		q = q.Where("bl.team_id = ?", *filter.TeamID)
	}
	if err := q.OrderExpr("bl.player_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list season batting: %w", err)
	}
	return rows, nil
}

func (r *Impl) ListPitchingBySeason(ctx context.Context, db bun.IDB, filter SeasonFilter) ([]PitchingRow, error) {
	var rows []PitchingRow
	q := r.resolveDB(db).NewSelect().Model(&rows).Where("pl.season_id = ?", filter.SeasonID)
	if filter.TeamID != nil {
		q = q.Where("pl.team_id = ?", *filter.TeamID)
	}
	if err := q.OrderExpr("pl.player_id").Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list season pitching: %w", err)
	}
	return rows, nil
}
