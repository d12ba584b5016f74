package availabilitydb

import (
	"time"

	availabilitydomain "github.com/Black-And-White-Club/dugout/app/modules/availability/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Availability is one player's response for one game.
type Availability struct {
	bun.BaseModel `bun:"table:availability,alias:av"`
	GameID        uuid.UUID                 `bun:"game_id,pk,type:uuid" json:"gameId"`
	PlayerID      uuid.UUID                 `bun:"player_id,pk,type:uuid" json:"playerId"`
	TeamID        uuid.UUID                 `bun:"team_id,type:uuid,notnull" json:"teamId"`
	Status        availabilitydomain.Status `bun:"status,notnull" json:"status"`
	Note          string                    `bun:"note,notnull" json:"note,omitempty"`
	SetByUserID   uuid.UUID                 `bun:"set_by_user_id,type:uuid,notnull" json:"setByUserId"`
	UpdatedAt     time.Time                 `bun:"updated_at,notnull" json:"updatedAt"`
}
