package gamedb

import (
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Game is the games table row.
type Game struct {
	bun.BaseModel `bun:"table:games,alias:g"`

	ID                uuid.UUID  `bun:"id,pk,type:uuid"`
	SeasonID          uuid.UUID  `bun:"season_id,type:uuid,notnull"`
	HomeTeamID        uuid.UUID  `bun:"home_team_id,type:uuid,notnull"`
	AwayTeamID        uuid.UUID  `bun:"away_team_id,type:uuid,notnull"`
	ScheduledAt       time.Time  `bun:"scheduled_at,notnull"`
	Location          string     `bun:"location,notnull,default:''"`
	Status            string     `bun:"status,notnull"`
	HomeScore         int        `bun:"home_score,notnull,default:0"`
	AwayScore         int        `bun:"away_score,notnull,default:0"`
	CurrentInning     *int       `bun:"current_inning"`
	CurrentHalf       *string    `bun:"current_half"`
	Outs              *int       `bun:"outs"`
	HomeInningScores  []int      `bun:"home_inning_scores,array,notnull"`
	AwayInningScores  []int      `bun:"away_inning_scores,array,notnull"`
	Notes             string     `bun:"notes,notnull,default:''"`
	RegulationInnings int        `bun:"regulation_innings,notnull"`
	Version           int64      `bun:"version,notnull,default:1"`
	CreatedAt         time.Time  `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt         time.Time  `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
	StartedAt         *time.Time `bun:"started_at"`
	EndedAt           *time.Time `bun:"ended_at"`
}

// ListFilter narrows List. Zero values match everything.
type ListFilter struct {
	SeasonID *uuid.UUID
	TeamID   *uuid.UUID
	Statuses []gamedomain.Status
	From     *time.Time
	To       *time.Time
	Limit    int
}

// ToDomain converts the row to the scoring state.
func (g *Game) ToDomain() gamedomain.Game {
	out := gamedomain.Game{
		ID:                g.ID,
		SeasonID:          g.SeasonID,
		HomeTeamID:        g.HomeTeamID,
		AwayTeamID:        g.AwayTeamID,
		ScheduledAt:       g.ScheduledAt,
		Location:          g.Location,
		Status:            gamedomain.Status(g.Status),
		HomeScore:         g.HomeScore,
		AwayScore:         g.AwayScore,
		CurrentInning:     g.CurrentInning,
		Outs:              g.Outs,
		HomeInningScores:  g.HomeInningScores,
		AwayInningScores:  g.AwayInningScores,
		Notes:             g.Notes,
		RegulationInnings: g.RegulationInnings,
		Version:           g.Version,
		CreatedAt:         g.CreatedAt,
		StartedAt:         g.StartedAt,
		EndedAt:           g.EndedAt,
	}
	if g.CurrentHalf != nil {
		h := gamedomain.Half(*g.CurrentHalf)
		out.CurrentHalf = &h
	}
	return out.Clone()
}

// FromDomain builds a row from the scoring state.
func FromDomain(g gamedomain.Game) *Game {
	g = g.Clone()
	row := &Game{
		ID:                g.ID,
		SeasonID:          g.SeasonID,
		HomeTeamID:        g.HomeTeamID,
		AwayTeamID:        g.AwayTeamID,
		ScheduledAt:       g.ScheduledAt,
		Location:          g.Location,
		Status:            string(g.Status),
		HomeScore:         g.HomeScore,
		AwayScore:         g.AwayScore,
		CurrentInning:     g.CurrentInning,
		Outs:              g.Outs,
		HomeInningScores:  g.HomeInningScores,
		AwayInningScores:  g.AwayInningScores,
		Notes:             g.Notes,
		RegulationInnings: g.RegulationInnings,
		Version:           g.Version,
		CreatedAt:         g.CreatedAt,
		StartedAt:         g.StartedAt,
		EndedAt:           g.EndedAt,
	}
	if g.CurrentHalf != nil {
		h := string(*g.CurrentHalf)
		row.CurrentHalf = &h
	}
	return row
}
