package leaguedb

import (
	"context"
	"database/sql"
	"errors"
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

// NewRepository creates a new league repository.
func NewRepository(db bun.IDB) Repository {
	return &Impl{db: db}
}

func (r *Impl) resolveDB(db bun.IDB) bun.IDB {
	if db == nil {
		return r.db
	}
	return db
}

func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to get %s: %w", what, err)
}

func saveErr(err error, what string) error {
	if bundb.IsUniqueViolation(err) {
		return ErrDuplicate
	}
	if bundb.IsForeignKeyViolation(err) {
		return ErrNotFound
	}
	return fmt.Errorf("failed to save %s: %w", what, err)
}

// --- Seasons ---

func (r *Impl) GetSeason(ctx context.Context, db bun.IDB, id uuid.UUID) (*Season, error) {
	season := new(Season)
	if err := r.resolveDB(db).NewSelect().Model(season).Where("s.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "season")
	}
	return season, nil
}

func (r *Impl) GetActiveSeason(ctx context.Context, db bun.IDB) (*Season, error) {
	season := new(Season)
	if err := r.resolveDB(db).NewSelect().Model(season).Where("s.active").Limit(1).Scan(ctx); err != nil {
		return nil, notFound(err, "active season")
	}
	return season, nil
}

func (r *Impl) ListSeasons(ctx context.Context, db bun.IDB) ([]Season, error) {
	var seasons []Season
	err := r.resolveDB(db).NewSelect().Model(&seasons).
		OrderExpr("s.year DESC, s.start_date DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list seasons: %w", err)
	}
	return seasons, nil
}

// SaveSeason inserts or updates a season by id.
func (r *Impl) SaveSeason(ctx context.Context, db bun.IDB, season *Season) error {
	if season.ID == uuid.Nil {
		season.ID = uuid.New()
	}
	season.UpdatedAt = time.Now().UTC()
	_, err := r.resolveDB(db).NewInsert().
		Model(season).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("year = EXCLUDED.year").
		Set("start_date = EXCLUDED.start_date").
		Set("end_date = EXCLUDED.end_date").
		Set("active = EXCLUDED.active").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return saveErr(err, "season")
	}
	return nil
}

// DeactivateOtherSeasons clears the active flag on every season except keep.
func (r *Impl) DeactivateOtherSeasons(ctx context.Context, db bun.IDB, keep uuid.UUID) error {
	_, err := r.resolveDB(db).NewUpdate().
		Model((*Season)(nil)).
		Set("active = FALSE").
		Set("updated_at = ?", time.Now().UTC()).
		Where("active AND id <> ?", keep).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to deactivate seasons: %w", err)
	}
	return nil
}

// --- Teams ---

func (r *Impl) GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error) {
	team := new(Team)
	if err := r.resolveDB(db).NewSelect().Model(team).Where("t.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "team")
	}
	return team, nil
}

func (r *Impl) ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]Team, error) {
	var teams []Team
	err := r.resolveDB(db).NewSelect().Model(&teams).
		Where("t.season_id = ?", seasonID).
		OrderExpr("t.name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	return teams, nil
}

// SaveTeam inserts or updates a team by id.
func (r *Impl) SaveTeam(ctx context.Context, db bun.IDB, team *Team) error {
	if team.ID == uuid.Nil {
		team.ID = uuid.New()
	}
	team.UpdatedAt = time.Now().UTC()
	_, err := r.resolveDB(db).NewInsert().
		Model(team).
		On("CONFLICT (id) DO UPDATE").
		Set("name = EXCLUDED.name").
		Set("abbreviation = EXCLUDED.abbreviation").
		Set("color = EXCLUDED.color").
		Set("manager_user_id = EXCLUDED.manager_user_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return saveErr(err, "team")
	}
	return nil
}

func (r *Impl) DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error {
	res, err := r.resolveDB(db).NewDelete().Model((*Team)(nil)).Where("id = ?", id).Exec(ctx)
	if err != nil {
		if bundb.IsForeignKeyViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("failed to delete team: %w", err)
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

// --- Players ---

func (r *Impl) GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error) {
	player := new(Player)
	if err := r.resolveDB(db).NewSelect().Model(player).Where("p.id = ?", id).Scan(ctx); err != nil {
		return nil, notFound(err, "player")
	}
	return player, nil
}

func (r *Impl) GetPlayerByUser(ctx context.Context, db bun.IDB, seasonID, userID uuid.UUID) (*Player, error) {
	player := new(Player)
	err := r.resolveDB(db).NewSelect().Model(player).
		Where("p.season_id = ? AND p.user_id = ?", seasonID, userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "player by user")
	}
	return player, nil
}

func (r *Impl) ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Player, error) {
	var players []Player
	err := r.resolveDB(db).NewSelect().Model(&players).
		Where("p.team_id = ?", teamID).
		OrderExpr("p.jersey_number ASC NULLS LAST, p.last_name ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	return players, nil
}

// SavePlayer inserts or updates a player by id.
func (r *Impl) SavePlayer(ctx context.Context, db bun.IDB, player *Player) error {
	if player.ID == uuid.Nil {
		player.ID = uuid.New()
	}
	player.UpdatedAt = time.Now().UTC()
	_, err := r.resolveDB(db).NewInsert().
		Model(player).
		On("CONFLICT (id) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Set("first_name = EXCLUDED.first_name").
		Set("last_name = EXCLUDED.last_name").
		Set("jersey_number = EXCLUDED.jersey_number").
		Set("position = EXCLUDED.position").
		Set("bats = EXCLUDED.bats").
		Set("throws = EXCLUDED.throws").
		Set("status = EXCLUDED.status").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	if err != nil {
		return saveErr(err, "player")
	}
	return nil
}
