package announcementdb

import (
	"time"

	announcementdomain "github.com/Black-And-White-Club/dugout/app/modules/announcement/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Announcement is a league-wide (nil TeamID) or team notice. System notices
// such as game reminders have no author and carry the game they refer to.
type Announcement struct {
	bun.BaseModel `bun:"table:announcements,alias:a"`
	ID            uuid.UUID                   `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	TeamID        *uuid.UUID                  `bun:"team_id,type:uuid" json:"teamId,omitempty"`
	AuthorID      *uuid.UUID                  `bun:"author_id,type:uuid" json:"authorId,omitempty"`
	GameID        *uuid.UUID                  `bun:"game_id,type:uuid" json:"gameId,omitempty"`
	Title         string                      `bun:"title,notnull" json:"title"`
	Body          string                      `bun:"body,notnull" json:"body"`
	Priority      announcementdomain.Priority `bun:"priority,notnull" json:"priority"`
	Pinned        bool                        `bun:"pinned,notnull" json:"pinned"`
	ExpiresAt     *time.Time                  `bun:"expires_at" json:"expiresAt,omitempty"`
	CreatedAt     time.Time                   `bun:"created_at,notnull" json:"createdAt"`
	UpdatedAt     time.Time                   `bun:"updated_at,notnull" json:"updatedAt"`
}

// ListFilter selects notices visible in a scope. League-wide notices are
// always included; TeamIDs adds team notices. A nil TeamIDs with AllTeams
// returns every team's notices.
type ListFilter struct {
	TeamIDs  []uuid.UUID
	AllTeams bool
	ActiveAt *time.Time
	Limit    int
}
