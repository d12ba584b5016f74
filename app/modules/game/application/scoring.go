package gameservice

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// StartGame moves a scheduled, warmup or suspended game into play.
func (s *GameService) StartGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req StartRequest) (*gamedomain.Transition, error) {
	return s.score(ctx, "StartGame", sess, gameID, gamedomain.Command{
		Action:          gamedomain.ActionStart,
		StartStatus:     req.Status,
		ExpectedVersion: req.ExpectedVersion,
	})
}

// RecordScore credits runs to the team at bat.
func (s *GameService) RecordScore(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req ScoreRequest) (*gamedomain.Transition, error) {
	return s.score(ctx, "RecordScore", sess, gameID, gamedomain.Command{
		Action:          gamedomain.ActionScore,
		Runs:            req.Runs,
		ExpectedVersion: req.ExpectedVersion,
	})
}

// RecordOut records outs, ending the half-inning at three.
func (s *GameService) RecordOut(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req OutRequest) (*gamedomain.Transition, error) {
	if req.Count == 0 {
		req.Count = 1
	}
	return s.score(ctx, "RecordOut", sess, gameID, gamedomain.Command{
		Action:          gamedomain.ActionOut,
		Outs:            req.Count,
		ExpectedVersion: req.ExpectedVersion,
	})
}

// AdvanceInning steps to the next half-inning or a forced position.
func (s *GameService) AdvanceInning(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req AdvanceRequest) (*gamedomain.Transition, error) {
	return s.score(ctx, "AdvanceInning", sess, gameID, gamedomain.Command{
		Action:          gamedomain.ActionAdvance,
		Advance:         gamedomain.AdvanceOptions{ForceInning: req.ForceInning, ForceHalf: req.ForceHalf},
		ExpectedVersion: req.ExpectedVersion,
	})
}

// EndGame finalizes, suspends, postpones or cancels a game.
func (s *GameService) EndGame(ctx context.Context, sess *authdomain.Session, gameID uuid.UUID, req EndRequest) (*gamedomain.Transition, error) {
	return s.score(ctx, "EndGame", sess, gameID, gamedomain.Command{
		Action:          gamedomain.ActionEnd,
		End:             gamedomain.EndOptions{Status: req.Status, Notes: req.Notes},
		ExpectedVersion: req.ExpectedVersion,
	})
}

// score is the shared pipeline: authorize the caller against the locked row,
// check the version, apply the transition, write it, then publish.
func (s *GameService) score(ctx context.Context, operationName string, sess *authdomain.Session, gameID uuid.UUID, cmd gamedomain.Command) (*gamedomain.Transition, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, operationName, gameID.String(), func(ctx context.Context) (result[*gamedomain.Transition], error) {
		if sess == nil {
			return failure[*gamedomain.Transition](apperr.Unauthenticated("authentication required"))
		}
		if !sess.Can(authdomain.RoleManager) {
			return failure[*gamedomain.Transition](ErrNotScorer)
		}

		res, err := operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*gamedomain.Transition], error) {
			game, err := s.repo.GetForUpdate(ctx, db, gameID)
			if err != nil {
				if errors.Is(err, gamedb.ErrNotFound) {
					return failure[*gamedomain.Transition](ErrGameNotFound)
				}
				return result[*gamedomain.Transition]{}, fmt.Errorf("failed to load game: %w", err)
			}

			if !sess.CanManageTeam(game.HomeTeamID, game.AwayTeamID) {
				return failure[*gamedomain.Transition](ErrNotScorer)
			}
			if cmd.ExpectedVersion != nil && *cmd.ExpectedVersion != game.Version {
				return failure[*gamedomain.Transition](ErrStaleVersion.WithDetail("currentVersion", game.Version))
			}

			transition, f := gamedomain.Apply(game, cmd, s.config.Rules, s.clock.Now().UTC())
			if f != nil {
				return failure[*gamedomain.Transition](f)
			}

			if err := s.repo.Update(ctx, db, &transition.NewState); err != nil {
				if errors.Is(err, gamedb.ErrVersionConflict) {
					return failure[*gamedomain.Transition](ErrStaleVersion)
				}
				return result[*gamedomain.Transition]{}, fmt.Errorf("failed to save game: %w", err)
			}
			return success(&transition)
		})
		if err != nil || res.IsFailure() {
			return res, err
		}

		s.afterTransition(ctx, sess, cmd, **res.Success)
		return res, nil
	}))
}

func (s *GameService) afterTransition(ctx context.Context, sess *authdomain.Session, cmd gamedomain.Command, t gamedomain.Transition) {
	s.scoring.RecordTransition(ctx, string(t.Action), string(t.PreviousState.Status), string(t.NewState.Status))
	if t.Action == gamedomain.ActionScore {
		s.scoring.RecordRuns(ctx, string(t.PreviousState.HalfOrTop()), cmd.Runs)
	}

	if s.events != nil {
		if err := s.events.PublishTransition(ctx, sess.UserID, t); err != nil {
			s.run.Logger.WarnContext(ctx, "Failed to publish game transition",
				attr.String("game_id", t.NewState.ID.String()),
				attr.String("action", string(t.Action)),
				attr.Error(err),
			)
		}
	}

	if s.reminders != nil && t.Action == gamedomain.ActionEnd && t.NewState.Status.IsTerminal() {
		if err := s.reminders.CancelGameJobs(ctx, t.NewState.ID); err != nil {
			s.run.Logger.WarnContext(ctx, "Failed to cancel game reminders",
				attr.String("game_id", t.NewState.ID.String()),
				attr.Error(err),
			)
		}
	}
}
