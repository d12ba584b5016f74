// Package standingsdomain computes the league table from final games.
package standingsdomain

import (
	"fmt"
	"math"
	"sort"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/google/uuid"
)

// lastN is the window for the recent-form column.
const lastN = 10

// Team is the slice of a team the table needs.
type Team struct {
	ID           uuid.UUID
	Name         string
	Abbreviation string
}

// Record is a won-lost-tied line.
type Record struct {
	Wins   int `json:"w"`
	Losses int `json:"l"`
	Ties   int `json:"t"`
}

// Display renders "W-L", or "W-L-T" once a tie is recorded.
func (r Record) Display() string {
	if r.Ties > 0 {
		return fmt.Sprintf("%d-%d-%d", r.Wins, r.Losses, r.Ties)
	}
	return fmt.Sprintf("%d-%d", r.Wins, r.Losses)
}

func (r Record) played() int { return r.Wins + r.Losses + r.Ties }

func (r *Record) add(o outcome) {
	switch o {
	case win:
		r.Wins++
	case loss:
		r.Losses++
	default:
		r.Ties++
	}
}

// Row is one team's line in the table.
type Row struct {
	Rank         int       `json:"rank"`
	TeamID       uuid.UUID `json:"teamId"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Record
	GamesPlayed int     `json:"gp"`
	Pct         float64 `json:"pct"`
	GamesBack   float64 `json:"gb"`
	RunsFor     int     `json:"rs"`
	RunsAgainst int     `json:"ra"`
	Diff        int     `json:"diff"`
	Home        string  `json:"home"`
	Away        string  `json:"away"`
	LastTen     string  `json:"last10"`
	Streak      string  `json:"streak"`
}

type outcome byte

const (
	win  outcome = 'W'
	loss outcome = 'L'
	tie  outcome = 'T'
)

type ledger struct {
	row     Row
	home    Record
	away    Record
	results []outcome
}

// Compute builds the table for teams from games. Only final games count and
// games involving teams not in the list are skipped. Rows are ordered by
// winning percentage, then run differential, then name.
func Compute(teams []Team, games []gamedomain.Game) []Row {
	byID := make(map[uuid.UUID]*ledger, len(teams))
	for _, t := range teams {
		byID[t.ID] = &ledger{row: Row{TeamID: t.ID, Name: t.Name, Abbreviation: t.Abbreviation}}
	}

	final := make([]gamedomain.Game, 0, len(games))
	for _, g := range games {
		if g.Status == gamedomain.StatusFinal {
			final = append(final, g)
		}
	}
	sort.SliceStable(final, func(i, j int) bool { return playedAt(final[i]).Before(playedAt(final[j])) })

	for _, g := range final {
		home, okHome := byID[g.HomeTeamID]
		away, okAway := byID[g.AwayTeamID]
		if !okHome || !okAway {
			continue
		}
		homeResult, awayResult := tie, tie
		switch {
		case g.HomeScore > g.AwayScore:
			homeResult, awayResult = win, loss
		case g.HomeScore < g.AwayScore:
			homeResult, awayResult = loss, win
		}
		home.record(homeResult, g.HomeScore, g.AwayScore)
		home.home.add(homeResult)
		away.record(awayResult, g.AwayScore, g.HomeScore)
		away.away.add(awayResult)
	}

	rows := make([]Row, 0, len(byID))
	for _, t := range teams {
		rows = append(rows, byID[t.ID].finish())
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Pct != rows[j].Pct {
			return rows[i].Pct > rows[j].Pct
		}
		if rows[i].Diff != rows[j].Diff {
			return rows[i].Diff > rows[j].Diff
		}
		return rows[i].Name < rows[j].Name
	})

	if len(rows) > 0 {
		leader := rows[0].Record
		for i := range rows {
			rows[i].GamesBack = gamesBack(leader, rows[i].Record)
			rows[i].Rank = i + 1
			if i > 0 && rows[i].Pct == rows[i-1].Pct && rows[i].Diff == rows[i-1].Diff {
				rows[i].Rank = rows[i-1].Rank
			}
		}
	}
	return rows
}

func (l *ledger) record(o outcome, runsFor, runsAgainst int) {
	l.row.Record.add(o)
	l.row.RunsFor += runsFor
	l.row.RunsAgainst += runsAgainst
	l.results = append(l.results, o)
}

func (l *ledger) finish() Row {
	r := l.row
	r.GamesPlayed = r.played()
	if r.GamesPlayed > 0 {
		r.Pct = math.Round((float64(r.Wins)+0.5*float64(r.Ties))/float64(r.GamesPlayed)*1000) / 1000
	}
	r.Diff = r.RunsFor - r.RunsAgainst
	r.Home = l.home.Display()
	r.Away = l.away.Display()
	r.LastTen = lastTen(l.results)
	r.Streak = streak(l.results)
	return r
}

// gamesBack is half the sum of the win and loss gaps to the leader.
func gamesBack(leader, r Record) float64 {
	gb := float64((leader.Wins-r.Wins)+(r.Losses-leader.Losses)) / 2
	if gb < 0 {
		return 0
	}
	return gb
}

func lastTen(results []outcome) string {
	start := max(len(results)-lastN, 0)
	var rec Record
	for _, o := range results[start:] {
		rec.add(o)
	}
	return rec.Display()
}

// streak renders the current run of identical results, e.g. "W3".
func streak(results []outcome) string {
	if len(results) == 0 {
		return ""
	}
	last := results[len(results)-1]
	n := 0
	for i := len(results) - 1; i >= 0 && results[i] == last; i-- {
		n++
	}
	return fmt.Sprintf("%c%d", last, n)
}

func playedAt(g gamedomain.Game) time.Time {
	if g.EndedAt != nil {
		return *g.EndedAt
	}
	return g.ScheduledAt
}
