package gameservice

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/parsers"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const maxImportRows = 500

// CreateGame schedules one game.
func (s *GameService) CreateGame(ctx context.Context, sess *authdomain.Session, req CreateGameRequest) (*gamedomain.Game, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "CreateGame", req.SeasonID.String(), func(ctx context.Context) (result[*gamedomain.Game], error) {
		if !sess.IsPrivileged() {
			return failure[*gamedomain.Game](ErrNotScheduler)
		}
		at, f := s.parseTime(req.ScheduledAt)
		if f != nil {
			return failure[*gamedomain.Game](f)
		}
		game, f := gamedomain.NewScheduledGame(s.newGameInput(req, at), s.config.Rules)
		if f != nil {
			return failure[*gamedomain.Game](f)
		}

		res, err := s.insertGames(ctx, []gamedomain.Game{game})
		if err != nil {
			return result[*gamedomain.Game]{}, err
		}
		if res.IsFailure() {
			return failure[*gamedomain.Game](*res.Failure)
		}
		created := (*res.Success)[0]
		return success(&created)
	}))
}

// CreateSeries schedules repeated meetings between two teams.
func (s *GameService) CreateSeries(ctx context.Context, sess *authdomain.Session, req CreateSeriesRequest) ([]gamedomain.Game, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "CreateSeries", req.SeasonID.String(), func(ctx context.Context) (result[[]gamedomain.Game], error) {
		if !sess.IsPrivileged() {
			return failure[[]gamedomain.Game](ErrNotScheduler)
		}
		at, f := s.parseTime(req.ScheduledAt)
		if f != nil {
			return failure[[]gamedomain.Game](f)
		}
		games, f := gamedomain.NewSeries(gamedomain.SeriesInput{
			NewGameInput:  s.newGameInput(req.CreateGameRequest, at),
			Count:         req.Count,
			IntervalDays:  req.IntervalDays,
			AlternateHome: req.AlternateHome,
		}, s.config.Rules, s.location())
		if f != nil {
			return failure[[]gamedomain.Game](f)
		}
		return s.insertGames(ctx, games)
	}))
}

// ImportSchedule creates every game in an uploaded CSV or XLSX file. Team
// columns may hold a team name or abbreviation from the season. Any bad row
// rejects the whole file.
func (s *GameService) ImportSchedule(ctx context.Context, sess *authdomain.Session, seasonID uuid.UUID, fileName string, data []byte) ([]gamedomain.Game, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ImportSchedule", fileName, func(ctx context.Context) (result[[]gamedomain.Game], error) {
		if !sess.IsPrivileged() {
			return failure[[]gamedomain.Game](ErrNotScheduler)
		}

		parser, err := s.parsers.GetParser(fileName)
		if err != nil {
			return failure[[]gamedomain.Game](apperr.BadRequest(err.Error()))
		}
		rows, err := parser.Parse(data)
		if err != nil {
			return failure[[]gamedomain.Game](apperr.Validation(err.Error()))
		}
		if len(rows) > maxImportRows {
			return failure[[]gamedomain.Game](apperr.Validation(fmt.Sprintf("schedule has %d rows; the limit is %d", len(rows), maxImportRows)))
		}

		if _, err := s.league.GetSeason(ctx, nil, seasonID); err != nil {
			if errors.Is(err, leaguedb.ErrNotFound) {
				return failure[[]gamedomain.Game](ErrSeasonNotFound)
			}
			return result[[]gamedomain.Game]{}, fmt.Errorf("failed to load season: %w", err)
		}
		teams, err := s.league.ListTeams(ctx, nil, seasonID)
		if err != nil {
			return result[[]gamedomain.Game]{}, fmt.Errorf("failed to load teams: %w", err)
		}
		lookup := newTeamLookup(teams)

		var (
			games     []gamedomain.Game
			rowErrors []RowError
		)
		for _, row := range rows {
			game, msg := s.gameFromRow(seasonID, row, lookup)
			if msg != "" {
				rowErrors = append(rowErrors, RowError{Line: row.Line, Message: msg})
				continue
			}
			games = append(games, game)
		}
		if len(rowErrors) > 0 {
			return failure[[]gamedomain.Game](
				apperr.Validation(fmt.Sprintf("%d of %d rows could not be imported", len(rowErrors), len(rows))).
					WithDetail("rows", rowErrors),
			)
		}

		return s.insertGames(ctx, games)
	}))
}

func (s *GameService) gameFromRow(seasonID uuid.UUID, row parsers.ScheduleRow, lookup teamLookup) (gamedomain.Game, string) {
	home, ok := lookup.find(row.Home)
	if !ok {
		return gamedomain.Game{}, fmt.Sprintf("unknown home team %q", row.Home)
	}
	away, ok := lookup.find(row.Away)
	if !ok {
		return gamedomain.Game{}, fmt.Sprintf("unknown away team %q", row.Away)
	}
	at, err := s.times.Parse(row.When)
	if err != nil {
		return gamedomain.Game{}, fmt.Sprintf("invalid date %q", row.When)
	}
	game, f := gamedomain.NewScheduledGame(gamedomain.NewGameInput{
		SeasonID:    seasonID,
		HomeTeamID:  home,
		AwayTeamID:  away,
		ScheduledAt: at,
		Location:    row.Location,
	}, s.config.Rules)
	if f != nil {
		return gamedomain.Game{}, f.Message
	}
	return game, ""
}

// UpdateGame changes the time or place of a game that has not been played.
func (s *GameService) UpdateGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req UpdateGameRequest) (*gamedomain.Game, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "UpdateGame", gameID.String(), func(ctx context.Context) (result[*gamedomain.Game], error) {
		if !sess.IsPrivileged() {
			return failure[*gamedomain.Game](ErrNotScheduler)
		}

		var newTime *time.Time
		if req.ScheduledAt != nil {
			at, f := s.parseTime(*req.ScheduledAt)
			if f != nil {
				return failure[*gamedomain.Game](f)
			}
			newTime = &at
		}

		res, err := operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*gamedomain.Game], error) {
			game, err := s.repo.GetForUpdate(ctx, db, gameID)
			if err != nil {
				if errors.Is(err, gamedb.ErrNotFound) {
					return failure[*gamedomain.Game](ErrGameNotFound)
				}
				return result[*gamedomain.Game]{}, fmt.Errorf("failed to load game: %w", err)
			}
			if req.ExpectedVersion != nil && *req.ExpectedVersion != game.Version {
				return failure[*gamedomain.Game](ErrStaleVersion.WithDetail("currentVersion", game.Version))
			}
			if d := gamedomain.CanReschedule(game); !d.Allowed {
				return failure[*gamedomain.Game](apperr.Blocked(d.Reason))
			}
			if game.Status == gamedomain.StatusPostponed && newTime == nil {
				return failure[*gamedomain.Game](ErrPostponedNeedsTime)
			}

			input := gamedomain.NewGameInput{
				SeasonID:          game.SeasonID,
				HomeTeamID:        game.HomeTeamID,
				AwayTeamID:        game.AwayTeamID,
				ScheduledAt:       game.ScheduledAt,
				Location:          game.Location,
				RegulationInnings: game.RegulationInnings,
			}
			if newTime != nil {
				input.ScheduledAt = *newTime
			}
			if req.Location != nil {
				input.Location = *req.Location
			}
			checked, f := gamedomain.NewScheduledGame(input, s.config.Rules)
			if f != nil {
				return failure[*gamedomain.Game](f)
			}
			gamedomain.Reinstate(&game, checked.ScheduledAt)
			game.Location = checked.Location

			if err := s.repo.Update(ctx, db, &game); err != nil {
				if errors.Is(err, gamedb.ErrVersionConflict) {
					return failure[*gamedomain.Game](ErrStaleVersion)
				}
				return result[*gamedomain.Game]{}, fmt.Errorf("failed to save game: %w", err)
			}
			return success(&game)
		})
		if err != nil || res.IsFailure() {
			return res, err
		}

		updated := **res.Success
		if newTime != nil && updated.Status == gamedomain.StatusScheduled {
			s.rescheduleReminder(ctx, updated)
		}
		s.publishScheduled(ctx, []gamedomain.Game{updated})
		return res, nil
	}))
}

// DeleteGame removes a game that has not started.
func (s *GameService) DeleteGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "DeleteGame", gameID.String(), func(ctx context.Context) (result[struct{}], error) {
		if !sess.IsPrivileged() {
			return failure[struct{}](ErrNotScheduler)
		}
		res, err := operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[struct{}], error) {
			game, err := s.repo.GetForUpdate(ctx, db, gameID)
			if err != nil {
				if errors.Is(err, gamedb.ErrNotFound) {
					return failure[struct{}](ErrGameNotFound)
				}
				return result[struct{}]{}, fmt.Errorf("failed to load game: %w", err)
			}
			if d := gamedomain.CanDelete(game); !d.Allowed {
				return failure[struct{}](apperr.Blocked(d.Reason))
			}
			if err := s.repo.Delete(ctx, db, gameID); err != nil {
				return result[struct{}]{}, fmt.Errorf("failed to delete game: %w", err)
			}
			return success(struct{}{})
		})
		if err != nil || res.IsFailure() {
			return res, err
		}
		if s.reminders != nil {
			if err := s.reminders.CancelGameJobs(ctx, gameID); err != nil {
				s.run.Logger.WarnContext(ctx, "Failed to cancel game reminders", attr.String("game_id", gameID.String()), attr.Error(err))
			}
		}
		return res, nil
	}))
	return err
}

// insertGames checks team membership and writes games in one transaction,
// then schedules reminders and publishes the schedule event.
func (s *GameService) insertGames(ctx context.Context, games []gamedomain.Game) (result[[]gamedomain.Game], error) {
	res, err := operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[[]gamedomain.Game], error) {
		checked := map[uuid.UUID]bool{}
		for _, g := range games {
			for _, teamID := range []uuid.UUID{g.HomeTeamID, g.AwayTeamID} {
				if checked[teamID] {
					continue
				}
				team, err := s.league.GetTeam(ctx, db, teamID)
				if err != nil {
					if errors.Is(err, leaguedb.ErrNotFound) {
						return failure[[]gamedomain.Game](apperr.Validation(fmt.Sprintf("team %s not found", teamID)))
					}
					return result[[]gamedomain.Game]{}, fmt.Errorf("failed to load team: %w", err)
				}
				if team.SeasonID != g.SeasonID {
					return failure[[]gamedomain.Game](apperr.Validation(fmt.Sprintf("team %s does not play in this season", team.Name)))
				}
				checked[teamID] = true
			}
		}

		ptrs := make([]*gamedomain.Game, len(games))
		for i := range games {
			ptrs[i] = &games[i]
		}
		if err := s.repo.Create(ctx, db, ptrs...); err != nil {
			if errors.Is(err, gamedb.ErrInvalidReference) {
				return failure[[]gamedomain.Game](apperr.Validation("season or team not found"))
			}
			return result[[]gamedomain.Game]{}, fmt.Errorf("failed to create games: %w", err)
		}
		return success(games)
	})
	if err != nil || res.IsFailure() {
		return res, err
	}

	for _, g := range games {
		s.rescheduleReminder(ctx, g)
	}
	s.publishScheduled(ctx, games)
	return res, nil
}

func (s *GameService) publishScheduled(ctx context.Context, games []gamedomain.Game) {
	if s.events == nil {
		return
	}
	if err := s.events.PublishScheduled(ctx, games); err != nil {
		s.run.Logger.WarnContext(ctx, "Failed to publish schedule event", attr.Error(err))
	}
}

func (s *GameService) rescheduleReminder(ctx context.Context, g gamedomain.Game) {
	if s.reminders == nil {
		return
	}
	if err := s.reminders.CancelGameJobs(ctx, g.ID); err != nil {
		s.run.Logger.WarnContext(ctx, "Failed to cancel game reminders", attr.String("game_id", g.ID.String()), attr.Error(err))
	}
	if err := s.reminders.ScheduleReminder(ctx, g.ID, g.ScheduledAt.Add(-s.config.ReminderLeadTime)); err != nil {
		s.run.Logger.WarnContext(ctx, "Failed to schedule game reminder", attr.String("game_id", g.ID.String()), attr.Error(err))
	}
}

func (s *GameService) parseTime(input string) (time.Time, *apperr.Failure) {
	if strings.TrimSpace(input) == "" {
		return time.Time{}, apperr.Validation("scheduledAt is required")
	}
	at, err := s.times.Parse(input)
	if err != nil {
		return time.Time{}, apperr.Validation(fmt.Sprintf("invalid scheduledAt: %v", err))
	}
	return at, nil
}

func (s *GameService) location() *time.Location {
	if s.times == nil {
		return time.UTC
	}
	return s.times.Location()
}

func (s *GameService) newGameInput(req CreateGameRequest, at time.Time) gamedomain.NewGameInput {
	return gamedomain.NewGameInput{
		SeasonID:          req.SeasonID,
		HomeTeamID:        req.HomeTeamID,
		AwayTeamID:        req.AwayTeamID,
		ScheduledAt:       at,
		Location:          req.Location,
		RegulationInnings: req.RegulationInnings,
	}
}

// teamLookup resolves team names and abbreviations case-insensitively.
type teamLookup map[string]uuid.UUID

func newTeamLookup(teams []leaguedb.Team) teamLookup {
	l := teamLookup{}
	for _, t := range teams {
		l[strings.ToLower(t.Abbreviation)] = t.ID
		l[strings.ToLower(t.Name)] = t.ID
	}
	return l
}

func (l teamLookup) find(s string) (uuid.UUID, bool) {
	id, ok := l[strings.ToLower(strings.TrimSpace(s))]
	return id, ok
}
