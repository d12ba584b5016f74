package statshandlers

import (
	"context"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	statsservice "github.com/Black-And-White-Club/dugout/app/modules/stats/application"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/google/uuid"
)

// FakeService overrides the calls under test.
type FakeService struct {
	statsservice.Service
	trace []string

	RecordBattingFunc  func(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.BattingLine) (*statsdb.BattingRow, error)
	DeletePitchingFunc func(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error
	LeadersFunc        func(ctx context.Context, seasonID uuid.UUID, category statsdomain.Category, opts statsdomain.LeaderOptions) ([]statsdomain.Leader, error)
	SeasonBattingFunc  func(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.BatterRow, error)
}

func NewFakeService() *FakeService {
	return &FakeService{trace: []string{}}
}

func (f *FakeService) record(step string) { f.trace = append(f.trace, step) }

func (f *FakeService) Trace() []string { return f.trace }

func (f *FakeService) RecordBatting(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID, line statsdomain.BattingLine) (*statsdb.BattingRow, error) {
	f.record("RecordBatting")
	if f.RecordBattingFunc != nil {
		return f.RecordBattingFunc(ctx, sess, gameID, playerID, line)
	}
	row := &statsdb.BattingRow{GameID: gameID, PlayerID: playerID}
	row.SetLine(line)
	return row, nil
}

func (f *FakeService) DeletePitching(ctx context.Context, sess *authdomain.Session, gameID, playerID uuid.UUID) error {
	f.record("DeletePitching")
	if f.DeletePitchingFunc != nil {
		return f.DeletePitchingFunc(ctx, sess, gameID, playerID)
	}
	return nil
}

func (f *FakeService) Leaders(ctx context.Context, seasonID uuid.UUID, category statsdomain.Category, opts statsdomain.LeaderOptions) ([]statsdomain.Leader, error) {
	f.record("Leaders")
	if f.LeadersFunc != nil {
		return f.LeadersFunc(ctx, seasonID, category, opts)
	}
	return []statsdomain.Leader{}, nil
}

func (f *FakeService) SeasonBatting(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.BatterRow, error) {
	f.record("SeasonBatting")
	if f.SeasonBattingFunc != nil {
		return f.SeasonBattingFunc(ctx, filter)
	}
	return []statsdomain.BatterRow{}, nil
}
