package statsdb

import (
	"time"

	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// BattingRow is one player's batting line for one game. TeamID and SeasonID
// are copied from the player so season queries need no join.
type BattingRow struct {
	bun.BaseModel `bun:"table:batting_lines,alias:bl"`
	GameID        uuid.UUID `bun:"game_id,pk,type:uuid" json:"gameId"`
	PlayerID      uuid.UUID `bun:"player_id,pk,type:uuid" json:"playerId"`
	TeamID        uuid.UUID `bun:"team_id,type:uuid,notnull" json:"teamId"`
	SeasonID      uuid.UUID `bun:"season_id,type:uuid,notnull" json:"seasonId"`
	AtBats        int       `bun:"at_bats,notnull" json:"ab"`
	Runs          int       `bun:"runs,notnull" json:"r"`
	Hits          int       `bun:"hits,notnull" json:"h"`
	Doubles       int       `bun:"doubles,notnull" json:"doubles"`
	Triples       int       `bun:"triples,notnull" json:"triples"`
	HomeRuns      int       `bun:"home_runs,notnull" json:"hr"`
	RBI           int       `bun:"rbi,notnull" json:"rbi"`
	Walks         int       `bun:"walks,notnull" json:"bb"`
	Strikeouts    int       `bun:"strikeouts,notnull" json:"so"`
	StolenBases   int       `bun:"stolen_bases,notnull" json:"sb"`
	HitByPitch    int       `bun:"hit_by_pitch,notnull" json:"hbp"`
	SacFlies      int       `bun:"sac_flies,notnull" json:"sf"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

func (r *BattingRow) Line() statsdomain.BattingLine {
	return statsdomain.BattingLine{
		AtBats: r.AtBats, Runs: r.Runs, Hits: r.Hits, Doubles: r.Doubles, Triples: r.Triples,
		HomeRuns: r.HomeRuns, RBI: r.RBI, Walks: r.Walks, Strikeouts: r.Strikeouts,
		StolenBases: r.StolenBases, HitByPitch: r.HitByPitch, SacFlies: r.SacFlies,
	}
}

func (r *BattingRow) SetLine(l statsdomain.BattingLine) {
	r.AtBats, r.Runs, r.Hits = l.AtBats, l.Runs, l.Hits
	r.Doubles, r.Triples, r.HomeRuns = l.Doubles, l.Triples, l.HomeRuns
	r.RBI, r.Walks, r.Strikeouts = l.RBI, l.Walks, l.Strikeouts
	r.StolenBases, r.HitByPitch, r.SacFlies = l.StolenBases, l.HitByPitch, l.SacFlies
}

// PitchingRow is one pitcher's line for one game.
type PitchingRow struct {
	bun.BaseModel `bun:"table:pitching_lines,alias:pl"`
	GameID        uuid.UUID `bun:"game_id,pk,type:uuid" json:"gameId"`
	PlayerID      uuid.UUID `bun:"player_id,pk,type:uuid" json:"playerId"`
	TeamID        uuid.UUID `bun:"team_id,type:uuid,notnull" json:"teamId"`
	SeasonID      uuid.UUID `bun:"season_id,type:uuid,notnull" json:"seasonId"`
	Outs          int       `bun:"outs,notnull" json:"outs"`
	Hits          int       `bun:"hits,notnull" json:"h"`
	Runs          int       `bun:"runs,notnull" json:"r"`
	EarnedRuns    int       `bun:"earned_runs,notnull" json:"er"`
	Walks         int       `bun:"walks,notnull" json:"bb"`
	Strikeouts    int       `bun:"strikeouts,notnull" json:"so"`
	HomeRuns      int       `bun:"home_runs,notnull" json:"hr"`
	Pitches       int       `bun:"pitches,notnull" json:"pitches"`
	Decision      *string   `bun:"decision" json:"decision,omitempty"`
	UpdatedAt     time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`
}

func (r *PitchingRow) Line() statsdomain.PitchingLine {
	l := statsdomain.PitchingLine{
		Outs: r.Outs, Hits: r.Hits, Runs: r.Runs, EarnedRuns: r.EarnedRuns, Walks: r.Walks,
		Strikeouts: r.Strikeouts, HomeRuns: r.HomeRuns, Pitches: r.Pitches,
	}
	if r.Decision != nil {
		d := statsdomain.Decision(*r.Decision)
		l.Decision = &d
	}
	return l
}

func (r *PitchingRow) SetLine(l statsdomain.PitchingLine) {
	r.Outs, r.Hits, r.Runs, r.EarnedRuns = l.Outs, l.Hits, l.Runs, l.EarnedRuns
	r.Walks, r.Strikeouts, r.HomeRuns, r.Pitches = l.Walks, l.Strikeouts, l.HomeRuns, l.Pitches
	r.Decision = nil
	if l.Decision != nil {
		d := string(*l.Decision)
		r.Decision = &d
	}
}

// SeasonFilter narrows season queries to one team.
type SeasonFilter struct {
	SeasonID uuid.UUID
	TeamID   *uuid.UUID
}
