package statsservice

import (
	"context"
	"errors"
	"fmt"
	"sort"

	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	statsdomain "github.com/Black-And-White-Club/dugout/app/modules/stats/domain"
	statsdb "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/google/uuid"
)

const (
	defaultLeaderLimit = 10
	maxLeaderLimit     = 50
	DefaultMinPA       = 10
	DefaultMinOuts     = 15
)

func (s *StatsService) BoxScore(ctx context.Context, gameID uuid.UUID) (*BoxScore, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "BoxScore", gameID.String(), func(ctx context.Context) (result[*BoxScore], error) {
		if _, err := s.games.Get(ctx, nil, gameID); err != nil {
			if errors.Is(err, gamedb.ErrNotFound) {
				return failure[*BoxScore](ErrGameNotFound)
			}
			return result[*BoxScore]{}, fmt.Errorf("failed to load game: %w", err)
		}
		batting, err := s.repo.ListBattingByGame(ctx, nil, gameID)
		if err != nil {
			return result[*BoxScore]{}, err
		}
		pitching, err := s.repo.ListPitchingByGame(ctx, nil, gameID)
		if err != nil {
			return result[*BoxScore]{}, err
		}
		return success(&BoxScore{GameID: gameID, Batting: batting, Pitching: pitching})
	}))
}

func (s *StatsService) SeasonBatting(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.BatterRow, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "SeasonBatting", filter.SeasonID.String(), func(ctx context.Context) (result[[]statsdomain.BatterRow], error) {
		rows, err := s.seasonBatting(ctx, filter)
		if err != nil {
			return result[[]statsdomain.BatterRow]{}, err
		}
		return success(rows)
	}))
}

func (s *StatsService) SeasonPitching(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.PitcherRow, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "SeasonPitching", filter.SeasonID.String(), func(ctx context.Context) (result[[]statsdomain.PitcherRow], error) {
		rows, err := s.seasonPitching(ctx, filter)
		if err != nil {
			return result[[]statsdomain.PitcherRow]{}, err
		}
		return success(rows)
	}))
}

// Leaders ranks the season's players by category.
func (s *StatsService) Leaders(ctx context.Context, seasonID uuid.UUID, category statsdomain.Category, opts statsdomain.LeaderOptions) ([]statsdomain.Leader, error) {
	if opts.Limit <= 0 {
		opts.Limit = defaultLeaderLimit
	}
	if opts.Limit > maxLeaderLimit {
		opts.Limit = maxLeaderLimit
	}
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "Leaders", seasonID.String(), func(ctx context.Context) (result[[]statsdomain.Leader], error) {
		filter := statsdb.SeasonFilter{SeasonID: seasonID}
		if category.IsPitching() {
			rows, err := s.seasonPitching(ctx, filter)
			if err != nil {
				return result[[]statsdomain.Leader]{}, err
			}
			return success(statsdomain.PitchingLeaders(rows, category, opts))
		}
		rows, err := s.seasonBatting(ctx, filter)
		if err != nil {
			return result[[]statsdomain.Leader]{}, err
		}
		return success(statsdomain.BattingLeaders(rows, category, opts))
	}))
}

func (s *StatsService) seasonBatting(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.BatterRow, error) {
	lines, err := s.repo.ListBattingBySeason(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	names, err := s.playerNames(ctx, filter.SeasonID)
	if err != nil {
		return nil, err
	}

	type acc struct {
		team  uuid.UUID
		sum   statsdomain.BattingLine
		games int
	}
	byPlayer := map[uuid.UUID]*acc{}
	for i := range lines {
		a, ok := byPlayer[lines[i].PlayerID]
		if !ok {
			a = &acc{team: lines[i].TeamID}
			byPlayer[lines[i].PlayerID] = a
		}
		a.sum = a.sum.Add(lines[i].Line())
		a.games++
	}

	out := make([]statsdomain.BatterRow, 0, len(byPlayer))
	for id, a := range byPlayer {
		out = append(out, statsdomain.BatterRow{
			PlayerID: id,
			Name:     names[id],
			TeamID:   a.team,
			Totals:   statsdomain.NewBattingTotals(a.sum, a.games),
		})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *StatsService) seasonPitching(ctx context.Context, filter statsdb.SeasonFilter) ([]statsdomain.PitcherRow, error) {
	lines, err := s.repo.ListPitchingBySeason(ctx, nil, filter)
	if err != nil {
		return nil, err
	}
	names, err := s.playerNames(ctx, filter.SeasonID)
	if err != nil {
		return nil, err
	}

	byPlayer := map[uuid.UUID]*statsdomain.PitcherRow{}
	for i := range lines {
		row, ok := byPlayer[lines[i].PlayerID]
		if !ok {
			row = &statsdomain.PitcherRow{PlayerID: lines[i].PlayerID, Name: names[lines[i].PlayerID], TeamID: lines[i].TeamID}
			byPlayer[lines[i].PlayerID] = row
		}
		row.Totals.Add(lines[i].Line())
	}

	out := make([]statsdomain.PitcherRow, 0, len(byPlayer))
	for _, row := range byPlayer {
		row.Totals.Finish(s.config.RegulationInnings)
		out = append(out, *row)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// playerNames maps every rostered player in the season to a display name.
func (s *StatsService) playerNames(ctx context.Context, seasonID uuid.UUID) (map[uuid.UUID]string, error) {
	teams, err := s.players.ListTeams(ctx, nil, seasonID)
	if err != nil {
		return nil, err
	}
	names := map[uuid.UUID]string{}
	for _, t := range teams {
		players, err := s.players.ListPlayers(ctx, nil, t.ID)
		if err != nil {
			return nil, err
		}
		for i := range players {
			names[players[i].ID] = players[i].FullName()
		}
	}
	return names, nil
}
