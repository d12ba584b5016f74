package gamedomain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/google/uuid"
)

const (
	maxLocationLength = 200
	MaxSeriesGames    = 20
)

// NewGameInput describes one game to put on the schedule.
type NewGameInput struct {
	SeasonID          uuid.UUID
	HomeTeamID        uuid.UUID
	AwayTeamID        uuid.UUID
	ScheduledAt       time.Time
	Location          string
	RegulationInnings int
}

// NewScheduledGame validates in and returns a game in the scheduled status.
func NewScheduledGame(in NewGameInput, rules Rules) (Game, *apperr.Failure) {
	switch {
	case in.SeasonID == uuid.Nil:
		return Game{}, apperr.Validation("seasonId is required")
	case in.HomeTeamID == uuid.Nil || in.AwayTeamID == uuid.Nil:
		return Game{}, apperr.Validation("homeTeamId and awayTeamId are required")
	case in.HomeTeamID == in.AwayTeamID:
		return Game{}, apperr.Validation("a team cannot play itself")
	case in.ScheduledAt.IsZero():
		return Game{}, apperr.Validation("scheduledAt is required")
	}
	location := strings.TrimSpace(in.Location)
	if len(location) > maxLocationLength {
		return Game{}, apperr.Validation(fmt.Sprintf("location must be at most %d characters", maxLocationLength))
	}
	innings := in.RegulationInnings
	if innings == 0 {
		innings = rules.RegulationInnings
	}
	if innings < 1 || innings > MaxInnings {
		return Game{}, apperr.Validation(fmt.Sprintf("regulationInnings must be between 1 and %d", MaxInnings))
	}

	return Game{
		ID:                uuid.New(),
		SeasonID:          in.SeasonID,
		HomeTeamID:        in.HomeTeamID,
		AwayTeamID:        in.AwayTeamID,
		ScheduledAt:       in.ScheduledAt.UTC(),
		Location:          location,
		Status:            StatusScheduled,
		HomeInningScores:  []int{},
		AwayInningScores:  []int{},
		RegulationInnings: innings,
	}, nil
}

// SeriesInput describes repeated meetings between two teams.
type SeriesInput struct {
	NewGameInput
	Count         int
	IntervalDays  int
	AlternateHome bool
}

// NewSeries expands a series into scheduled games spaced IntervalDays apart in
// loc, so a series keeps its wall-clock start across DST changes.
func NewSeries(in SeriesInput, rules Rules, loc *time.Location) ([]Game, *apperr.Failure) {
	if in.Count < 1 || in.Count > MaxSeriesGames {
		return nil, apperr.Validation(fmt.Sprintf("count must be between 1 and %d", MaxSeriesGames))
	}
	if in.IntervalDays == 0 {
		in.IntervalDays = 7
	}
	if in.IntervalDays < 1 || in.IntervalDays > 60 {
		return nil, apperr.Validation("intervalDays must be between 1 and 60")
	}
	if loc == nil {
		loc = time.UTC
	}

	first := in.ScheduledAt.In(loc)
	games := make([]Game, 0, in.Count)
	for i := 0; i < in.Count; i++ {
		game := in.NewGameInput
		game.ScheduledAt = first.AddDate(0, 0, i*in.IntervalDays)
		if in.AlternateHome && i%2 == 1 {
			game.HomeTeamID, game.AwayTeamID = in.AwayTeamID, in.HomeTeamID
		}
		g, f := NewScheduledGame(game, rules)
		if f != nil {
			return nil, f
		}
		games = append(games, g)
	}
	return games, nil
}

// CanReschedule allows changing time or place before the game is played.
func CanReschedule(g Game) Decision {
	if g.Status != StatusScheduled && g.Status != StatusPostponed {
		return deny("cannot reschedule a game that is %s", g.Status)
	}
	return allow()
}

// Reinstate puts a postponed game back on the calendar at a new time. Runs
// and the inning already played are kept so a restart resumes them.
func Reinstate(g *Game, at time.Time) {
	g.ScheduledAt = at
	if g.Status == StatusPostponed {
		g.Status = StatusScheduled
		g.EndedAt = nil
	}
}

// CanDelete allows removing a game that has not started.
func CanDelete(g Game) Decision {
	if g.Status != StatusScheduled {
		return deny("only scheduled games can be deleted; this game is %s", g.Status)
	}
	return allow()
}
