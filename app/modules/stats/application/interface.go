package statsservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines box-score entry and season statistics.
type Service interface {
	RecordBatting(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.BattingLine) (*statsdb.BattingRow, error)
	RecordPitching(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.PitchingLine) (*statsdb.PitchingRow, error)
	DeleteBatting(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error
	DeletePitching(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error

	BoxScore(ctx context.Context, gameID uuid.UUID) (*BoxScore, error)
	SeasonBatting(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.BatterRow, error)
	SeasonPitching(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.PitcherRow, error)
	Leaders(ctx context.Context, seasonID uuid.UUID, category statsdomain.Category, opts statsdomain.LeaderOptions) ([]statsdomain.Leader, error)
}

// BoxScore is every line entered for one game.
type BoxScore struct {
	GameID   uuid.UUID             `json:"gameId"`
	Batting  []statsdb.BattingRow  `json:"batting"`
	Pitching []statsdb.PitchingRow `json:"pitching"`
}

// GameReader loads games to check that a player took part.
type GameReader interface {
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
}

// PlayerReader loads players and the season's rosters for display names.
type PlayerReader interface {
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Player, error)
	ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error)
	ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]leaguedb.Player, error)
}

// Config holds the stats settings.
type Config struct {
	// RegulationInnings scales ERA.
	RegulationInnings int
}
