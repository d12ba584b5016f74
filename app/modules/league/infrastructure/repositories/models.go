package leaguedb

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Season is one league season.
type Season struct {
	bun.BaseModel `bun:"table:seasons,alias:s"`
	ID            uuid.UUID `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	Name          string    `bun:"name,notnull" json:"name"`
	Year          int       `bun:"year,notnull" json:"year"`
	StartDate     time.Time `bun:"start_date,type:date,notnull" json:"startDate"`
	EndDate       time.Time `bun:"end_date,type:date,notnull" json:"endDate"`
	Active        bool      `bun:"active,notnull" json:"active"`
	CreatedAt     time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Team belongs to a season.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	SeasonID      uuid.UUID  `bun:"season_id,type:uuid,notnull" json:"seasonId"`
	Name          string     `bun:"name,notnull" json:"name"`
	Abbreviation  string     `bun:"abbreviation,notnull" json:"abbreviation"`
	Color         *string    `bun:"color" json:"color,omitempty"`
	ManagerUserID *uuid.UUID `bun:"manager_user_id,type:uuid" json:"managerUserId,omitempty"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// Player belongs to a team for one season.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:p"`
	ID            uuid.UUID  `bun:"id,pk,type:uuid,default:gen_random_uuid()" json:"id"`
	TeamID        uuid.UUID  `bun:"team_id,type:uuid,notnull" json:"teamId"`
	SeasonID      uuid.UUID  `bun:"season_id,type:uuid,notnull" json:"seasonId"`
	UserID        *uuid.UUID `bun:"user_id,type:uuid" json:"userId,omitempty"`
	FirstName     string     `bun:"first_name,notnull" json:"firstName"`
	LastName      string     `bun:"last_name,notnull" json:"lastName"`
	JerseyNumber  *int       `bun:"jersey_number" json:"jerseyNumber,omitempty"`
	Position      string     `bun:"position,notnull" json:"position"`
	Bats          string     `bun:"bats,notnull" json:"bats"`
	Throws        string     `bun:"throws,notnull" json:"throws"`
	Status        string     `bun:"status,notnull" json:"status"`
	CreatedAt     time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	UpdatedAt     time.Time  `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

// FullName returns "First Last".
func (p *Player) FullName() string {
	return p.FirstName + " " + p.LastName
}
