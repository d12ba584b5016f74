package statsdomain

import (
	"sort"

	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

// Category names a leaderboard stat.
type Category string

const (
	CategoryAVG        Category = "avg"
	CategoryOBP        Category = "obp"
	CategorySLG        Category = "slg"
	CategoryOPS        Category = "ops"
	CategoryHits       Category = "h"
	CategoryHomeRuns   Category = "hr"
	CategoryRBI        Category = "rbi"
	CategoryRuns       Category = "r"
	CategoryStolen     Category = "sb"
	CategoryWalks      Category = "bb"
	CategoryERA        Category = "era"
	CategoryWHIP       Category = "whip"
	CategoryStrikeouts Category = "so"
	CategoryWins       Category = "w"
	CategorySaves      Category = "sv"
	CategoryOuts       Category = "outs"
)

// category describes how one stat is read and ranked.
type category struct {
	pitching  bool
	rate      bool
	ascending bool
	batting   func(BattingTotals) float64
	pitcher   func(PitchingTotals) float64
}

var categories = map[Category]category{
	CategoryAVG:        {rate: true, batting: func(t BattingTotals) float64 { return t.AVG }},
	CategoryOBP:        {rate: true, batting: func(t BattingTotals) float64 { return t.OBP }},
	CategorySLG:        {rate: true, batting: func(t BattingTotals) float64 { return t.SLG }},
	CategoryOPS:        {rate: true, batting: func(t BattingTotals) float64 { return t.OPS }},
	CategoryHits:       {batting: func(t BattingTotals) float64 { return float64(t.Hits) }},
	CategoryHomeRuns:   {batting: func(t BattingTotals) float64 { return float64(t.HomeRuns) }},
	CategoryRBI:        {batting: func(t BattingTotals) float64 { return float64(t.RBI) }},
	CategoryRuns:       {batting: func(t BattingTotals) float64 { return float64(t.Runs) }},
	CategoryStolen:     {batting: func(t BattingTotals) float64 { return float64(t.StolenBases) }},
	CategoryWalks:      {batting: func(t BattingTotals) float64 { return float64(t.Walks) }},
	CategoryERA:        {pitching: true, rate: true, ascending: true, pitcher: func(t PitchingTotals) float64 { return t.ERA }},
	CategoryWHIP:       {pitching: true, rate: true, ascending: true, pitcher: func(t PitchingTotals) float64 { return t.WHIP }},
	CategoryStrikeouts: {pitching: true, pitcher: func(t PitchingTotals) float64 { return float64(t.Strikeouts) }},
	CategoryWins:       {pitching: true, pitcher: func(t PitchingTotals) float64 { return float64(t.Wins) }},
	CategorySaves:      {pitching: true, pitcher: func(t PitchingTotals) float64 { return float64(t.Saves) }},
	CategoryOuts:       {pitching: true, pitcher: func(t PitchingTotals) float64 { return float64(t.Outs) }},
}

// ParseCategory validates a leaderboard stat name.
func ParseCategory(s string) (Category, *apperr.Failure) {
	c := Category(s)
	if _, ok := categories[c]; !ok {
		return "", apperr.Validation("unknown stat category: " + s)
	}
	return c, nil
}

// IsPitching reports whether c ranks pitchers.
func (c Category) IsPitching() bool { return categories[c].pitching }

// BatterRow and PitcherRow pair totals with the player they belong to.
type BatterRow struct {
	PlayerID uuid.UUID     `json:"playerId"`
	Name     string        `json:"name"`
	TeamID   uuid.UUID     `json:"teamId"`
	Totals   BattingTotals `json:"totals"`
}

type PitcherRow struct {
	PlayerID uuid.UUID      `json:"playerId"`
	Name     string         `json:"name"`
	TeamID   uuid.UUID      `json:"teamId"`
	Totals   PitchingTotals `json:"totals"`
}

// Leader is one ranked entry.
type Leader struct {
	Rank     int       `json:"rank"`
	PlayerID uuid.UUID `json:"playerId"`
	Name     string    `json:"name"`
	TeamID   uuid.UUID `json:"teamId"`
	Value    float64   `json:"value"`
}

// LeaderOptions bound a leaderboard. Qualifiers apply to rate stats only.
type LeaderOptions struct {
	Limit   int
	MinPA   int
	MinOuts int
}

// BattingLeaders ranks batters by c. Ties share a rank and are ordered by name.
func BattingLeaders(rows []BatterRow, c Category, opts LeaderOptions) []Leader {
	cat := categories[c]
	out := make([]Leader, 0, len(rows))
	for _, r := range rows {
		if cat.rate && r.Totals.PA < opts.MinPA {
			continue
		}
		out = append(out, Leader{PlayerID: r.PlayerID, Name: r.Name, TeamID: r.TeamID, Value: cat.batting(r.Totals)})
	}
	return rank(out, cat.ascending, opts.Limit)
}

// PitchingLeaders ranks pitchers by c.
func PitchingLeaders(rows []PitcherRow, c Category, opts LeaderOptions) []Leader {
	cat := categories[c]
	out := make([]Leader, 0, len(rows))
	for _, r := range rows {
		if cat.rate && r.Totals.Outs < opts.MinOuts {
			continue
		}
		out = append(out, Leader{PlayerID: r.PlayerID, Name: r.Name, TeamID: r.TeamID, Value: cat.pitcher(r.Totals)})
	}
	return rank(out, cat.ascending, opts.Limit)
}

func rank(out []Leader, ascending bool, limit int) []Leader {
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Value != out[j].Value {
			if ascending {
				return out[i].Value < out[j].Value
			}
			return out[i].Value > out[j].Value
		}
		return out[i].Name < out[j].Name
	})
	for i := range out {
		if i > 0 && out[i].Value == out[i-1].Value {
			out[i].Rank = out[i-1].Rank
		} else {
			out[i].Rank = i + 1
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
