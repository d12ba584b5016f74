package gamedomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
)

// Start moves the game to target (in_progress or warmup), stamping startedAt
// and placing the game at the top of the first with no outs if it has no
// position yet. Resuming a suspended game keeps its position.
func Start(g Game, target Status, now time.Time) (Game, *apperr.Failure) {
	if target == "" {
		target = StatusInProgress
	}
	if d := CanStartGame(g, target); !d.Allowed {
		return g, apperr.Blocked(d.Reason)
	}

	next := g.Clone()
	next.Status = target
	if next.StartedAt == nil {
		next.StartedAt = ptr(now)
	}
	next.EndedAt = nil
	if next.CurrentInning == nil {
		next.CurrentInning = ptr(1)
	}
	if next.CurrentHalf == nil {
		next.CurrentHalf = ptr(HalfTop)
	}
	if next.Outs == nil {
		next.Outs = ptr(0)
	}
	padInnings(&next)
	return next, nil
}

// ValidateRuns checks a run entry.
func ValidateRuns(runs int) *apperr.Failure {
	if runs < 1 || runs > MaxRunsPerEntry {
		return apperr.Validation(fmt.Sprintf("runs must be between 1 and %d", MaxRunsPerEntry))
	}
	return nil
}

// RecordScore credits runs to the batting team: away in the top half, home in
// the bottom half, both in the total and in the current inning's slot.
func RecordScore(g Game, runs int) (Game, *apperr.Failure) {
	if f := ValidateRuns(runs); f != nil {
		return g, f
	}
	if d := CanScore(g); !d.Allowed {
		return g, apperr.Blocked(d.Reason)
	}

	next := g.Clone()
	padInnings(&next)
	idx := next.Inning() - 1
	if next.HalfOrTop() == HalfTop {
		next.AwayScore += runs
		next.AwayInningScores[idx] += runs
	} else {
		next.HomeScore += runs
		next.HomeInningScores[idx] += runs
	}
	return next, nil
}

// ValidateOutCount checks an out entry against the outs left in the half.
func ValidateOutCount(g Game, count int) *apperr.Failure {
	if count < 1 || count > OutsPerHalf {
		return apperr.Validation(fmt.Sprintf("out count must be between 1 and %d", OutsPerHalf))
	}
	if remaining := OutsPerHalf - g.OutCount(); count > remaining {
		return apperr.Validation(fmt.Sprintf("only %d out(s) remain in this half-inning", remaining))
	}
	return nil
}

// RecordOut adds outs. Reaching three outs ends the half-inning: outs reset,
// the half flips, and the inning increments after the bottom half.
func RecordOut(g Game, count int) (Game, *apperr.Failure) {
	if d := CanRecordOut(g); !d.Allowed {
		return g, apperr.Blocked(d.Reason)
	}
	if f := ValidateOutCount(g, count); f != nil {
		return g, f
	}

	next := g.Clone()
	outs := next.OutCount() + count
	if outs >= OutsPerHalf {
		stepHalf(&next)
		return next, nil
	}
	next.Outs = ptr(outs)
	return next, nil
}

// AdvanceOptions override the natural half-inning step.
type AdvanceOptions struct {
	ForceInning *int  `json:"forceInning,omitempty"`
	ForceHalf   *Half `json:"forceHalf,omitempty"`
}

// ValidateAdvance checks forced positions.
func ValidateAdvance(opts AdvanceOptions) *apperr.Failure {
	if opts.ForceInning != nil && (*opts.ForceInning < 1 || *opts.ForceInning > MaxInnings) {
		return apperr.Validation(fmt.Sprintf("forceInning must be between 1 and %d", MaxInnings))
	}
	if opts.ForceHalf != nil && !opts.ForceHalf.IsValid() {
		return apperr.Validation("forceHalf must be top or bottom")
	}
	return nil
}

// AdvanceInning performs the natural top/bottom step, or jumps to the forced
// inning and half when either is supplied. Outs always reset.
func AdvanceInning(g Game, opts AdvanceOptions) (Game, *apperr.Failure) {
	if f := ValidateAdvance(opts); f != nil {
		return g, f
	}
	if d := CanAdvance(g); !d.Allowed {
		return g, apperr.Blocked(d.Reason)
	}

	next := g.Clone()
	if opts.ForceInning == nil && opts.ForceHalf == nil {
		stepHalf(&next)
		return next, nil
	}

	inning, half := next.Inning(), next.HalfOrTop()
	if opts.ForceInning != nil {
		inning = *opts.ForceInning
	}
	if opts.ForceHalf != nil {
		half = *opts.ForceHalf
	}
	next.CurrentInning = ptr(inning)
	next.CurrentHalf = ptr(half)
	next.Outs = ptr(0)
	padInnings(&next)
	return next, nil
}

// EndOptions describe how a game ends.
type EndOptions struct {
	Status Status `json:"status,omitempty"`
	Notes  string `json:"notes,omitempty"`
}

// EndGame moves the game to a terminal or suspended status, stamps endedAt and
// appends notes.
func EndGame(g Game, opts EndOptions, rules Rules, now time.Time) (Game, *apperr.Failure) {
	target := opts.Status
	if target == "" {
		target = StatusFinal
	}
	if !target.IsValid() {
		return g, apperr.Validation(fmt.Sprintf("unknown status %q", target))
	}
	if len(opts.Notes) > maxNotesLength {
		return g, apperr.Validation(fmt.Sprintf("notes must be at most %d characters", maxNotesLength))
	}
	if d := CanEndGame(g, target, rules); !d.Allowed {
		return g, apperr.Blocked(d.Reason)
	}

	next := g.Clone()
	next.Status = target
	next.EndedAt = ptr(now)
	if notes := strings.TrimSpace(opts.Notes); notes != "" {
		if next.Notes != "" {
			next.Notes += "\n"
		}
		next.Notes += notes
	}
	return next, nil
}

// stepHalf ends the current half-inning.
func stepHalf(g *Game) {
	inning := g.Inning()
	if inning == 0 {
		inning = 1
	}
	if g.HalfOrTop() == HalfTop {
		g.CurrentHalf = ptr(HalfBottom)
	} else {
		g.CurrentHalf = ptr(HalfTop)
		inning++
	}
	g.CurrentInning = ptr(inning)
	g.Outs = ptr(0)
	padInnings(g)
}

// padInnings grows the per-inning arrays with zeros so every half-inning that
// has started has a slot.
func padInnings(g *Game) {
	inning := g.Inning()
	if inning == 0 {
		return
	}
	homeLen := inning - 1
	if g.HalfOrTop() == HalfBottom {
		homeLen = inning
	}
	g.AwayInningScores = padTo(g.AwayInningScores, inning)
	g.HomeInningScores = padTo(g.HomeInningScores, homeLen)
}

func padTo(s []int, n int) []int {
	if s == nil {
		s = []int{}
	}
	for len(s) < n {
		s = append(s, 0)
	}
	return s
}

// Apply runs the mutator for cmd against g and returns the before and after
// states. The service and the client panel both go through it.
func Apply(g Game, cmd Command, rules Rules, now time.Time) (Transition, *apperr.Failure) {
	var (
		next Game
		f    *apperr.Failure
	)
	switch cmd.Action {
	case ActionStart:
		next, f = Start(g, cmd.StartStatus, now)
	case ActionScore:
		next, f = RecordScore(g, cmd.Runs)
	case ActionOut:
		next, f = RecordOut(g, cmd.Outs)
	case ActionAdvance:
		next, f = AdvanceInning(g, cmd.Advance)
	case ActionEnd:
		next, f = EndGame(g, cmd.End, rules.ForGame(g), now)
	default:
		return Transition{}, apperr.BadRequest(fmt.Sprintf("unknown action %q", cmd.Action))
	}
	if f != nil {
		return Transition{}, f
	}
	return Transition{Action: cmd.Action, PreviousState: g.Clone(), NewState: next}, nil
}

// Command is one scoring request.
type Command struct {
	Action          Action         `json:"action"`
	StartStatus     Status         `json:"startStatus,omitempty"`
	Runs            int            `json:"runs,omitempty"`
	Outs            int            `json:"outs,omitempty"`
	Advance         AdvanceOptions `json:"advance,omitempty"`
	End             EndOptions     `json:"end,omitempty"`
	ExpectedVersion *int64         `json:"expectedVersion,omitempty"`
}
