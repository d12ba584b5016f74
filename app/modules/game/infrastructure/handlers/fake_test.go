package gamehandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gameservice "github.com/Black-And-White-Club/dugout/app/modules/game/application"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeService implements gameservice.Service for handler tests.
type FakeService struct {
	trace []string

	StartGameFunc      func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.StartRequest) (*gamedomain.Transition, error)
	RecordScoreFunc    func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.ScoreRequest) (*gamedomain.Transition, error)
	RecordOutFunc      func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.OutRequest) (*gamedomain.Transition, error)
	AdvanceInningFunc  func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.AdvanceRequest) (*gamedomain.Transition, error)
	EndGameFunc        func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.EndRequest) (*gamedomain.Transition, error)
	GetGameFunc        func(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error)
	ListGamesFunc      func(ctx context.Context, filter gamedb.ListFilter) ([]gamedomain.Game, error)
	LiveGamesFunc      func(ctx context.Context) ([]gamedomain.Game, error)
	CreateGameFunc     func(ctx context.Context, sess *authdomain.Session, req gameservice.CreateGameRequest) (*gamedomain.Game, error)
	CreateSeriesFunc   func(ctx context.Context, sess *authdomain.Session, req gameservice.CreateSeriesRequest) ([]gamedomain.Game, error)
	ImportScheduleFunc func(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, fileName string, data []byte) ([]gamedomain.Game, error)
	UpdateGameFunc     func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.UpdateGameRequest) (*gamedomain.Game, error)
	DeleteGameFunc     func(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) error
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeService) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeService) StartGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.StartRequest) (*gamedomain.Transition, error) {
	f.record("StartGame")
	if f.StartGameFunc != nil {
		return f.StartGameFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) RecordScore(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.ScoreRequest) (*gamedomain.Transition, error) {
	f.record("RecordScore")
	if f.RecordScoreFunc != nil {
		return f.RecordScoreFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) RecordOut(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.OutRequest) (*gamedomain.Transition, error) {
	f.record("RecordOut")
	if f.RecordOutFunc != nil {
		return f.RecordOutFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) AdvanceInning(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.AdvanceRequest) (*gamedomain.Transition, error) {
	f.record("AdvanceInning")
	if f.AdvanceInningFunc != nil {
		return f.AdvanceInningFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) EndGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.EndRequest) (*gamedomain.Transition, error) {
	f.record("EndGame")
	if f.EndGameFunc != nil {
		return f.EndGameFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) GetGame(ctx context.Context, gameID uuid.UUID) (*gamedomain.Game, error) {
	f.record("GetGame")
	if f.GetGameFunc != nil {
		return f.GetGameFunc(ctx, gameID)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) ListGames(ctx context.Context, filter gamedb.ListFilter) ([]gamedomain.Game, error) {
	f.record("ListGames")
	if f.ListGamesFunc != nil {
		return f.ListGamesFunc(ctx, filter)
	}
	return []gamedomain.Game{}, nil
}

func (f *FakeService) LiveGames(ctx context.Context) ([]gamedomain.Game, error) {
	f.record("LiveGames")
	if f.LiveGamesFunc != nil {
		return f.LiveGamesFunc(ctx)
	}
	return []gamedomain.Game{}, nil
}

func (f *FakeService) CreateGame(ctx context.Context, sess *authdomain.Session, req gameservice.CreateGameRequest) (*gamedomain.Game, error) {
	f.record("CreateGame")
	if f.CreateGameFunc != nil {
		return f.CreateGameFunc(ctx, sess, req)
	}
	return nil, gameservice.ErrSeasonNotFound
}

func (f *FakeService) CreateSeries(ctx context.Context, sess *authdomain.Session, req gameservice.CreateSeriesRequest) ([]gamedomain.Game, error) {
	f.record("CreateSeries")
	if f.CreateSeriesFunc != nil {
		return f.CreateSeriesFunc(ctx, sess, req)
	}
	return nil, gameservice.ErrSeasonNotFound
}

func (f *FakeService) ImportSchedule(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, fileName string, data []byte) ([]gamedomain.Game, error) {
	f.record("ImportSchedule")
	if f.ImportScheduleFunc != nil {
		return f.ImportScheduleFunc(ctx, sess, seasonID, fileName, data)
	}
	return nil, gameservice.ErrSeasonNotFound
}

func (f *FakeService) UpdateGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req gameservice.UpdateGameRequest) (*gamedomain.Game, error) {
	f.record("UpdateGame")
	if f.UpdateGameFunc != nil {
		return f.UpdateGameFunc(ctx, sess, gameID, req)
	}
	return nil, gameservice.ErrGameNotFound
}

func (f *FakeService) DeleteGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) error {
	f.record("DeleteGame")
	if f.DeleteGameFunc != nil {
		return f.DeleteGameFunc(ctx, sess, gameID)
	}
	return gameservice.ErrGameNotFound
}

var _ gameservice.Service = (*FakeService)(nil)
