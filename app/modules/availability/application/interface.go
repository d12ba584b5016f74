package availabilityservice

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	availabilitydomain "github.com/Black-And-White-Club/dugout/app/modules/availability/domain"
	availabilitydb "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/repositories"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines game attendance operations.
type Service interface {
	Set(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, in availabilitydomain.Input) (*availabilitydb.Availability, error)
	Clear(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error
	// Summary returns one roll-up per team the caller may see.
	Summary(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) ([]availabilitydomain.TeamSummary, error)
}

type GameReader interface {
	Get(ctx context.Context, db bun.IDB, id uuid.UUID) (gamedomain.Game, error)
}

type RosterReader interface {
	GetPlayer(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Player, error)
	ListPlayers(ctx context.Context, db bun.IDB, teamID uuid.UUID) ([]leaguedb.Player, error)
}
