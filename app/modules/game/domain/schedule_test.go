package gamedomain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewScheduledGame(t *testing.T) {
	season := uuid.New()
	base := NewGameInput{
		SeasonID:    season,
		HomeTeamID:  homeTeam,
		AwayTeamID:  awayTeam,
		ScheduledAt: fixedNow,
		Location:    "  Memorial Park ",
	}

	g, f := NewScheduledGame(base, DefaultRules)
	require.Nil(t, f)
	assert.Equal(t, StatusScheduled, g.Status)
	assert.Equal(t, "Memorial Park", g.Location)
	assert.Equal(t, 7, g.RegulationInnings)
	assert.NotEqual(t, uuid.Nil, g.ID)
	assert.Nil(t, g.CurrentInning)

	same := base
	same.AwayTeamID = homeTeam
	_, f = NewScheduledGame(same, DefaultRules)
	require.NotNil(t, f)

	tooLong := base
	tooLong.RegulationInnings = MaxInnings + 1
	_, f = NewScheduledGame(tooLong, DefaultRules)
	require.NotNil(t, f)
}

func TestNewSeries_AlternatesHomeAndKeepsWallClock(t *testing.T) {
	loc, err := time.LoadLocation("America/Chicago")
	require.NoError(t, err)
	// Saturday before the November DST change.
	first := time.Date(2026, 10, 24, 18, 0, 0, 0, loc)

	games, f := NewSeries(SeriesInput{
		NewGameInput: NewGameInput{
			SeasonID:    uuid.New(),
			HomeTeamID:  homeTeam,
			AwayTeamID:  awayTeam,
			ScheduledAt: first,
		},
		Count:         3,
		AlternateHome: true,
	}, DefaultRules, loc)
	require.Nil(t, f)
	require.Len(t, games, 3)

	assert.Equal(t, homeTeam, games[0].HomeTeamID)
	assert.Equal(t, awayTeam, games[1].HomeTeamID)
	assert.Equal(t, homeTeam, games[2].HomeTeamID)
	for _, g := range games {
		assert.Equal(t, 18, g.ScheduledAt.In(loc).Hour())
	}
	assert.Equal(t, 31, games[1].ScheduledAt.In(loc).Day())

	_, f = NewSeries(SeriesInput{Count: MaxSeriesGames + 1}, DefaultRules, loc)
	require.NotNil(t, f)
}

func TestCanRescheduleAndDelete(t *testing.T) {
	assert.True(t, CanReschedule(newGame(StatusScheduled)).Allowed)
	assert.True(t, CanReschedule(newGame(StatusPostponed)).Allowed)
	assert.False(t, CanReschedule(newGame(StatusInProgress)).Allowed)

	assert.True(t, CanDelete(newGame(StatusScheduled)).Allowed)
	assert.False(t, CanDelete(newGame(StatusFinal)).Allowed)
}

func TestReinstate(t *testing.T) {
	at := fixedNow.Add(72 * time.Hour)

	g := newGame(StatusPostponed, score(2, 1))
	g.EndedAt = &fixedNow
	Reinstate(&g, at)
	assert.Equal(t, StatusScheduled, g.Status)
	assert.Equal(t, at, g.ScheduledAt)
	assert.Nil(t, g.EndedAt)
	assert.Equal(t, 2, g.HomeScore)
	assert.True(t, CanStartGame(g, StatusInProgress).Allowed)

	s := newGame(StatusScheduled)
	Reinstate(&s, at)
	assert.Equal(t, StatusScheduled, s.Status)
	assert.Equal(t, at, s.ScheduledAt)
}
