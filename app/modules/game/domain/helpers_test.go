package gamedomain

import (
	"time"

	"github.com/google/uuid"
)

var (
	homeTeam = uuid.MustParse("11111111-1111-1111-1111-111111111111")
	awayTeam = uuid.MustParse("22222222-2222-2222-2222-222222222222")
	fixedNow = time.Date(2026, 6, 14, 18, 30, 0, 0, time.UTC)
)

type gameOpt func(*Game)

func newGame(status Status, opts ...gameOpt) Game {
	g := Game{
		ID:                uuid.MustParse("33333333-3333-3333-3333-333333333333"),
		HomeTeamID:        homeTeam,
		AwayTeamID:        awayTeam,
		Status:            status,
		HomeInningScores:  []int{},
		AwayInningScores:  []int{},
		RegulationInnings: 7,
		Version:           1,
	}
	for _, o := range opts {
		o(&g)
	}
	return g
}

func at(inning int, half Half, outs int) gameOpt {
	return func(g *Game) {
		g.CurrentInning = ptr(inning)
		g.CurrentHalf = ptr(half)
		g.Outs = ptr(outs)
		padInnings(g)
	}
}

func score(home, away int) gameOpt {
	return func(g *Game) {
		g.HomeScore = home
		g.AwayScore = away
	}
}

// innings sets the per-inning runs and derives both totals from them.
func innings(home, away []int) gameOpt {
	return func(g *Game) {
		g.HomeInningScores = home
		g.AwayInningScores = away
		g.HomeScore, g.AwayScore = sum(home), sum(away)
	}
}

func sum(xs []int) int {
	n := 0
	for _, x := range xs {
		n += x
	}
	return n
}
