package gamedomain

import "fmt"

// Decision is the outcome of a validator.
type Decision struct {
	Allowed bool   `json:"allowed"`
	Reason  string `json:"reason,omitempty"`
}

func allow() Decision { return Decision{Allowed: true} }

func deny(format string, args ...any) Decision {
	return Decision{Reason: fmt.Sprintf(format, args...)}
}

// CanStartGame allows scheduled or suspended games to begin (or resume), and a
// game in warmup to move to in_progress.
func CanStartGame(g Game, target Status) Decision {
	if target != StatusInProgress && target != StatusWarmup {
		return deny("cannot start a game as %s", target)
	}
	switch g.Status {
	case StatusScheduled, StatusSuspended:
		return allow()
	case StatusWarmup:
		if target == StatusInProgress {
			return allow()
		}
		return deny("game is already in warmup")
	case StatusInProgress:
		return deny("game is already in progress")
	default:
		return deny("cannot start a game that is %s", g.Status)
	}
}

// CanScore allows run entry only while the game is in progress.
func CanScore(g Game) Decision {
	return requireInProgress(g, "record a score")
}

// CanRecordOut allows out entry only while the game is in progress.
func CanRecordOut(g Game) Decision {
	return requireInProgress(g, "record an out")
}

// CanAdvance allows half-inning changes only while the game is in progress.
func CanAdvance(g Game) Decision {
	return requireInProgress(g, "advance the inning")
}

func requireInProgress(g Game, what string) Decision {
	if g.Status != StatusInProgress {
		return deny("cannot %s while the game is %s", what, g.Status)
	}
	if g.CurrentInning == nil || g.CurrentHalf == nil {
		return deny("cannot %s before the first pitch", what)
	}
	return allow()
}

// CanEndGame checks a move to a terminal or suspended status. Ending as final
// requires a natural stopping point; the other targets only require that the
// game has not already ended.
func CanEndGame(g Game, target Status, rules Rules) Decision {
	switch target {
	case StatusFinal, StatusSuspended, StatusPostponed, StatusCancelled:
	default:
		return deny("cannot end a game as %s", target)
	}
	if g.Status.IsTerminal() {
		return deny("game has already ended as %s", g.Status)
	}
	if target != StatusFinal {
		if g.Status == target {
			return deny("game is already %s", target)
		}
		return allow()
	}

	if g.Status != StatusInProgress && g.Status != StatusSuspended {
		return deny("cannot finalize a game that is %s", g.Status)
	}
	if done, reason := NaturalCompletion(g, rules.ForGame(g)); !done {
		return deny("%s", reason)
	}
	return allow()
}

// NaturalCompletion reports whether the game may be called final, with the
// reason when it may not.
func NaturalCompletion(g Game, rules Rules) (bool, string) {
	if g.CurrentInning == nil || g.CurrentHalf == nil {
		return false, "game has not started"
	}
	inning, half := *g.CurrentInning, *g.CurrentHalf
	home, away := g.HomeScore, g.AwayScore
	if half == HalfTop {
		// The top half is unfinished, so the game stands as it was after the
		// previous inning.
		away -= inningRuns(g.AwayInningScores, inning)
	}
	if home == away {
		return false, "score is tied; play extra innings or suspend the game"
	}
	homeAhead := home > away

	// completedInnings is the number of full innings already played.
	completedInnings := inning - 1
	if reached(completedInnings, half, inning, homeAhead, rules.RegulationInnings) {
		return true, ""
	}

	lead := home - away
	if lead < 0 {
		lead = -lead
	}
	if rules.MercyRuns > 0 && rules.MercyInning > 0 && lead >= rules.MercyRuns &&
		reached(completedInnings, half, inning, homeAhead, rules.MercyInning) {
		return true, ""
	}

	return false, fmt.Sprintf("game has not reached a natural stopping point (inning %d %s, %d innings required)",
		inning, half, rules.RegulationInnings)
}

// reached reports whether the game has gone far enough for a threshold of n
// innings: either n full innings are complete, or the home team leads once the
// away team has finished batting in inning n or later.
func reached(completed int, half Half, inning int, homeAhead bool, n int) bool {
	if half == HalfTop && completed >= n {
		return true
	}
	return half == HalfBottom && inning >= n && homeAhead
}

// inningRuns returns the runs scored in the given 1-based inning, or 0 when
// the slot does not exist.
func inningRuns(scores []int, inning int) int {
	if inning < 1 || inning > len(scores) {
		return 0
	}
	return scores[inning-1]
}
