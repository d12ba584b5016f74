package gameservice

import (
	"context"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/parsers"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Service defines the game service interface.
type Service interface {
	// Scoring. Each returns the state before and after the change.
	StartGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req StartRequest) (*gamedomain.Transition, error)
	RecordScore(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req ScoreRequest) (*gamedomain.Transition, error)
	RecordOut(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req OutRequest) (*gamedomain.Transition, error)
	AdvanceInning(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req AdvanceRequest) (*gamedomain.Transition, error)
	EndGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req EndRequest) (*gamedomain.Transition, error)

	// Queries.
	GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error)
	ListGames(ctx context.Context, filter gamedb.ListFilter) ([]gamedomain.Game, error)
	LiveGames(ctx context.Context) ([]gamedomain.Game, error)

	// Scheduling (admin and commissioner).
	CreateGame(ctx context.Context, sess *authdomain.Session, req CreateGameRequest) (*gamedomain.Game, error)
	CreateSeries(ctx context.Context, sess *authdomain.Session, req CreateSeriesRequest) ([]gamedomain.Game, error)
	ImportSchedule(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, fileName string, data []byte) ([]gamedomain.Game, error)
	UpdateGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req UpdateGameRequest) (*gamedomain.Game, error)
	DeleteGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) error
}

// StartRequest starts or resumes a game.
type StartRequest struct {
	Status          gamedomain.Status `json:"status,omitempty"`
	ExpectedVersion *int64            `json:"expectedVersion,omitempty"`
}

// ScoreRequest credits runs to the batting team.
type ScoreRequest struct {
	Runs            int    `json:"runs"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// OutRequest records outs. A zero count records one out.
type OutRequest struct {
	Count           int    `json:"count,omitempty"`
	ExpectedVersion *int64 `json:"expectedVersion,omitempty"`
}

// AdvanceRequest moves to the next half-inning or a forced position.
type AdvanceRequest struct {
	ForceInning     *int             `json:"forceInning,omitempty"`
	ForceHalf       *gamedomain.Half `json:"forceHalf,omitempty"`
	ExpectedVersion *int64           `json:"expectedVersion,omitempty"`
}

// EndRequest ends, suspends, postpones or cancels a game.
type EndRequest struct {
	Status          gamedomain.Status `json:"status,omitempty"`
	Notes           string            `json:"notes,omitempty"`
	ExpectedVersion *int64            `json:"expectedVersion,omitempty"`
}

// CreateGameRequest schedules one game. ScheduledAt accepts RFC3339, common
// date layouts, or phrases such as "next saturday at 6pm".
type CreateGameRequest struct {
	SeasonID          uuid.UUID `json:"seasonId"`
	HomeTeamID        uuid.UUID `json:"homeTeamId"`
	AwayTeamID        uuid.UUID `json:"awayTeamId"`
	ScheduledAt       string    `json:"scheduledAt"`
	Location          string    `json:"location,omitempty"`
	RegulationInnings int       `json:"regulationInnings,omitempty"`
}

// CreateSeriesRequest schedules repeated meetings between two teams.
type CreateSeriesRequest struct {
	CreateGameRequest
	Count         int  `json:"count"`
	IntervalDays  int  `json:"intervalDays,omitempty"`
	AlternateHome bool `json:"alternateHome,omitempty"`
}

// UpdateGameRequest reschedules a game. Nil fields are left alone.
type UpdateGameRequest struct {
	ScheduledAt     *string `json:"scheduledAt,omitempty"`
	Location        *string `json:"location,omitempty"`
	ExpectedVersion *int64  `json:"expectedVersion,omitempty"`
}

// RowError describes one rejected import row.
type RowError struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// LeagueReader is the part of the league repository the game service reads.
type LeagueReader interface {
	GetSeason(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Season, error)
	GetTeam(ctx context.Context, db bun.IDB, id uuid.UUID) (*leaguedb.Team, error)
	ListTeams(ctx context.Context, db bun.IDB, seasonID uuid.UUID) ([]leaguedb.Team, error)
}

// EventPublisher emits game events after commit.
type EventPublisher interface {
	PublishTransition(ctx context.Context, actorID uuid.UUID, t gamedomain.Transition) error
	PublishScheduled(ctx context.Context, games []gamedomain.Game) error
}

// ReminderScheduler enqueues pre-game reminders.
type ReminderScheduler interface {
	ScheduleReminder(ctx context.Context, gameID uuid.UUID, remindAt time.Time) error
	CancelGameJobs(ctx context.Context, gameID uuid.UUID) error
}

// TimeParser reads user-entered game times.
type TimeParser interface {
	Parse(input string) (time.Time, error)
	Location() *time.Location
}

// ParserFactory picks a schedule parser for an uploaded file.
type ParserFactory interface {
	GetParser(fileName string) (parsers.Parser, error)
}

// Config holds the game service settings.
type Config struct {
	Rules            gamedomain.Rules
	ReminderLeadTime time.Duration
}
