// Package gamedomain holds the live scoring state machine. Everything here is
// pure: validators inspect a Game, mutators return a modified copy.
package gamedomain

import (
	"time"

	"github.com/google/uuid"
)

// Status is a game's lifecycle state.
type Status string

const (
	StatusScheduled  Status = "scheduled"
	StatusWarmup     Status = "warmup"
	StatusInProgress Status = "in_progress"
	StatusFinal      Status = "final"
	StatusPostponed  Status = "postponed"
	StatusCancelled  Status = "cancelled"
	StatusSuspended  Status = "suspended"
)

// IsValid checks if the status is a known value.
func (s Status) IsValid() bool {
	switch s {
	case StatusScheduled, StatusWarmup, StatusInProgress, StatusFinal,
		StatusPostponed, StatusCancelled, StatusSuspended:
		return true
	}
	return false
}

// IsTerminal reports whether scoring is closed for good.
func (s Status) IsTerminal() bool {
	return s == StatusFinal || s == StatusCancelled || s == StatusPostponed
}

// IsLive reports whether the game is being played or about to be.
func (s Status) IsLive() bool {
	return s == StatusWarmup || s == StatusInProgress
}

// Half is the half-inning. Away bats in the top, home in the bottom.
type Half string

const (
	HalfTop    Half = "top"
	HalfBottom Half = "bottom"
)

func (h Half) IsValid() bool {
	return h == HalfTop || h == HalfBottom
}

// Action names a scoring transition.
type Action string

const (
	ActionStart   Action = "start"
	ActionScore   Action = "score"
	ActionOut     Action = "out"
	ActionAdvance Action = "advance"
	ActionEnd     Action = "end"
)

const (
	OutsPerHalf     = 3
	MaxRunsPerEntry = 50
	MaxInnings      = 30
	maxNotesLength  = 2000
)

// Game is the scoring state of one contest.
type Game struct {
	ID                uuid.UUID  `json:"id"`
	SeasonID          uuid.UUID  `json:"seasonId"`
	HomeTeamID        uuid.UUID  `json:"homeTeamId"`
	AwayTeamID        uuid.UUID  `json:"awayTeamId"`
	ScheduledAt       time.Time  `json:"scheduledAt"`
	Location          string     `json:"location"`
	Status            Status     `json:"status"`
	HomeScore         int        `json:"homeScore"`
	AwayScore         int        `json:"awayScore"`
	CurrentInning     *int       `json:"currentInning"`
	CurrentHalf       *Half      `json:"currentHalf"`
	Outs              *int       `json:"outs"`
	HomeInningScores  []int      `json:"homeInningScores"`
	AwayInningScores  []int      `json:"awayInningScores"`
	Notes             string     `json:"notes"`
	RegulationInnings int        `json:"regulationInnings"`
	Version           int64      `json:"version"`
	CreatedAt         time.Time  `json:"createdAt"`
	StartedAt         *time.Time `json:"startedAt"`
	EndedAt           *time.Time `json:"endedAt"`
}

// Clone returns a deep copy.
func (g Game) Clone() Game {
	out := g
	out.CurrentInning = clonePtr(g.CurrentInning)
	out.CurrentHalf = clonePtr(g.CurrentHalf)
	out.Outs = clonePtr(g.Outs)
	out.StartedAt = clonePtr(g.StartedAt)
	out.EndedAt = clonePtr(g.EndedAt)
	out.HomeInningScores = append([]int(nil), g.HomeInningScores...)
	out.AwayInningScores = append([]int(nil), g.AwayInningScores...)
	if out.HomeInningScores == nil {
		out.HomeInningScores = []int{}
	}
	if out.AwayInningScores == nil {
		out.AwayInningScores = []int{}
	}
	return out
}

// Inning returns the current inning or 0 before the game starts.
func (g Game) Inning() int {
	if g.CurrentInning == nil {
		return 0
	}
	return *g.CurrentInning
}

// HalfOrTop returns the current half, defaulting to top.
func (g Game) HalfOrTop() Half {
	if g.CurrentHalf == nil {
		return HalfTop
	}
	return *g.CurrentHalf
}

// OutCount returns the current outs or 0.
func (g Game) OutCount() int {
	if g.Outs == nil {
		return 0
	}
	return *g.Outs
}

// HasTeam reports whether teamID plays in the game.
func (g Game) HasTeam(teamID uuid.UUID) bool {
	return g.HomeTeamID == teamID || g.AwayTeamID == teamID
}

// Transition is the before and after of one mutation.
type Transition struct {
	Action        Action `json:"action"`
	PreviousState Game   `json:"previousState"`
	NewState      Game   `json:"newState"`
}

// Rules are the league's completion rules.
type Rules struct {
	RegulationInnings int
	MercyRuns         int
	MercyInning       int
}

// DefaultRules is a seven-inning game with a ten-run rule after five.
var DefaultRules = Rules{RegulationInnings: 7, MercyRuns: 10, MercyInning: 5}

// ForGame returns r with the game's own regulation length when it has one.
func (r Rules) ForGame(g Game) Rules {
	if g.RegulationInnings > 0 {
		r.RegulationInnings = g.RegulationInnings
	}
	if r.MercyInning > r.RegulationInnings {
		r.MercyInning = r.RegulationInnings
	}
	return r
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func ptr[T any](v T) *T { return &v }
