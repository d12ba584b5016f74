package leaguedb

import (
	"context"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Repository defines the contract for season, team and player persistence.
type Repository interface {
	GetSeason(ctx context.Context, db bun.IDB, id uuid.UUID) (*Season, error)
	GetActiveSeason(ctx context.Context, db bun.IDB) (*Season, error)
	ListSeasons(ctx context.Context, db bun.IDB) ([]Season, error)
	SaveSeason(ctx context.Context, db bun.IDB, season *Season) error
	DeactivateOtherSeasons(ctx context.Context, db bun.IDB, keep uuid.UUID) error

	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*Team, error)
	ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]Team, error)
	SaveTeam(ctx context.Context, db bun.IDB, team *Team) error
	DeleteTeam(ctx context.Context, db bun.IDB, id uuid.UUID) error

	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*Player, error)
	GetPlayerByUser(ctx context.Context, db bun.IDB, seasonID, userID uuid.UUID) (*Player, error)
	ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]Player, error)
	SavePlayer(ctx context.Context, db bun.IDB, player *Player) error
}
