package announcementservice

import (
	"context"

	announcementdomain "github.com/Black-And-White-Club/dugout/app/modules/announcement/domain"
	announcementdb "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines announcement operations.
type Service interface {
	List(ctx context.Context, sess *authdomain.Session, q ListQuery) ([]announcementdb.Announcement, error)
	Get(ctx context.Context, sess *authdomain.Session, id uuid.UUID) (*announcementdb.Announcement, error)
	Create(ctx context.Context, sess *authdomain.Session, in announcementdomain.Input) (*announcementdb.Announcement, error)
	Update(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in announcementdomain.Input) (*announcementdb.Announcement, error)
	Delete(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error

	// NotifyGameReminder posts a reminder to both teams of a game.
	NotifyGameReminder(ctx context.Context, game gamedomain.Game) error
}

// ListQuery narrows a listing to one team. Without TeamID the caller sees
// league-wide notices plus their own team's.
type ListQuery struct {
	TeamID         *uuid.UUID
	IncludeExpired bool
	Limit          int
}

// TeamReader resolves team names and confirms a scope exists.
type TeamReader interface {
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error)
}
