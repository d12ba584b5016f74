package leaguehandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leagueservice "github.com/Black-And-White-Club/dugout/app/modules/league/application"
	leaguedomain "github.com/Black-And-White-Club/dugout/app/modules/league/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeService overrides the calls under test. Anything else panics through
// the nil embedded interface.
type FakeService struct {
	leagueservice.Service
	trace []string

	CreateSeasonFunc func(ctx context.Context, sess *authdomain.Session, in leaguedomain.SeasonInput) (*leaguedb.Season, error)
	CreateTeamFunc   func(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error)
	RosterFunc       func(ctx context.Context, teamID uuid.UUID) ([]leaguedb.Player, error)
	CreatePlayerFunc func(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Trace() []string { return f.trace }

func (f *FakeService) CreateSeason(ctx context.Context, sess *authdomain.Session, in leaguedomain.SeasonInput) (*leaguedb.Season, error) {
	f.record("CreateSeason")
	return f.CreateSeasonFunc(ctx, sess, in)
}

func (f *FakeService) CreateTeam(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, in leaguedomain.TeamInput) (*leaguedb.Team, error) {
	f.record("CreateTeam")
	return f.CreateTeamFunc(ctx, sess, seasonID, in)
}

func (f *FakeService) Roster(ctx context.Context, teamID uuid.UUID) ([]leaguedb.Player, error) {
	f.record("Roster")
	return f.RosterFunc(ctx, teamID)
}

func (f *FakeService) CreatePlayer(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in leaguedomain.PlayerInput) (*leaguedb.Player, error) {
	f.record("CreatePlayer")
	return f.CreatePlayerFunc(ctx, sess, teamID, in)
}
