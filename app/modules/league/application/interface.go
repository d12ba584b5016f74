package leagueservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
)

// Service defines the season, team and roster operations.
type Service interface {
	ListSeasons(ctx context.Context) ([]leaguedb.Season, error)
	GetSeason(ctx context.Context, id uuid.UUID) (*leaguedb.Season, error)
	ActiveSeason(ctx context.Context) (*leaguedb.Season, error)
	CreateSeason(ctx context.Context, sess *authdomain.Session, in leaguedomain.SeasonInput) (*leaguedb.Season, error)
	UpdateSeason(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.SeasonInput) (*leaguedb.Season, error)

	ListTeams(ctx context.Context, seasonID uuid.UUID) ([]leaguedb.Team, error)
	GetTeam(ctx context.Context, id uuid.UUID) (*leaguedb.Team, error)
	CreateTeam(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error)
	UpdateTeam(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error)
	DeleteTeam(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error

	Roster(ctx context.Context, teamID uuid.UUID) ([]leaguedb.Player, error)
	GetPlayer(ctx context.Context, id uuid.UUID) (*leaguedb.Player, error)
	CreatePlayer(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error)
	UpdatePlayer(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error)
}
