package announcementservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	announcementdomain "github.com/Black-And-White-Club/dugout/app/modules/announcement/domain"
	announcementdb "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories"
	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
)

const (
	defaultListLimit = 50
	maxListLimit     = 200
)

// Config holds announcement settings.
type Config struct {
	// Location renders game times in reminders.
	Location *time.Location
	// ReminderTTL is how long after first pitch a reminder stays listed.
	ReminderTTL time.Duration
}

// AnnouncementService implements the Service interface.
type AnnouncementService struct {
	run    operation.Runner
	repo   announcementdb.Repository
	teams  TeamReader
	config Config
	clock  clockwork.Clock
}

func NewService(run operation.Runner, repo announcementdb.Repository, teams TeamReader, config Config, clock clockwork.Clock) *AnnouncementService {
	if config.Location == nil {
		config.Location = time.UTC
	}
	if config.ReminderTTL == 0 {
		config.ReminderTTL = 4 * time.Hour
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &AnnouncementService{run: run, repo: repo, teams: teams, config: config, clock: clock}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

func (s *AnnouncementService) List(ctx context.Context, sess *authdomain.Session, q ListQuery) ([]announcementdb.Announcement, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListAnnouncements", sess.UserID.String(), func(ctx context.Context) (result[[]announcementdb.Announcement], error) {
		filter := announcementdb.ListFilter{Limit: q.Limit}
		if filter.Limit <= 0 {
			filter.Limit = defaultListLimit
		}
		filter.Limit = min(filter.Limit, maxListLimit)

		switch {
		case q.TeamID != nil:
			if !announcementdomain.CanView(sess, q.TeamID) {
				return failure[[]announcementdb.Announcement](ErrCannotView)
			}
			filter.TeamIDs = []uuid.UUID{*q.TeamID}
		case sess.IsPrivileged():
			filter.AllTeams = true
		case sess.TeamID != nil:
			filter.TeamIDs = []uuid.UUID{*sess.TeamID}
		}
		// Expired notices stay hidden from everyone but league staff.
		if !q.IncludeExpired || !sess.IsPrivileged() {
			now := s.clock.Now()
			filter.ActiveAt = &now
		}

		rows, err := s.repo.List(ctx, nil, filter)
		if err != nil {
			return result[[]announcementdb.Announcement]{}, err
		}
		return success(rows)
	}))
}

func (s *AnnouncementService) Get(ctx context.Context, sess *authdomain.Session, id uuid.UUID) (*announcementdb.Announcement, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "GetAnnouncement", id.String(), func(ctx context.Context) (result[*announcementdb.Announcement], error) {
		a, err := s.repo.Get(ctx, nil, id)
		if err != nil {
			if errors.Is(err, announcementdb.ErrNotFound) {
				return failure[*announcementdb.Announcement](ErrNotFound)
			}
			return result[*announcementdb.Announcement]{}, err
		}
		// Team notices are invisible outside the team.
		if !announcementdomain.CanView(sess, a.TeamID) {
			return failure[*announcementdb.Announcement](ErrNotFound)
		}
		return success(a)
	}))
}

func (s *AnnouncementService) Create(ctx context.Context, sess *authdomain.Session, in announcementdomain.Input) (*announcementdb.Announcement, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "CreateAnnouncement", sess.UserID.String(), func(ctx context.Context) (result[*announcementdb.Announcement], error) {
		in.Normalize()
		if !announcementdomain.CanPublish(sess, in.TeamID) {
			return failure[*announcementdb.Announcement](ErrCannotPost)
		}
		now := s.clock.Now().UTC()
		if f := in.Validate(now); f != nil {
			return failure[*announcementdb.Announcement](f)
		}
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*announcementdb.Announcement], error) {
			f, err := s.checkTeam(ctx, db, in.TeamID)
			if err != nil {
				return result[*announcementdb.Announcement]{}, err
			}
			if f != nil {
				return failure[*announcementdb.Announcement](f)
			}
			a := &announcementdb.Announcement{AuthorID: &sess.UserID, CreatedAt: now}
			apply(a, in, now)
			if err := s.repo.Create(ctx, db, a); err != nil {
				return result[*announcementdb.Announcement]{}, err
			}
			return success(a)
		})
	}))
}

func (s *AnnouncementService) Update(ctx context.Context, sess *authdomain.Session, id uuid.UUID, in announcementdomain.Input) (*announcementdb.Announcement, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "UpdateAnnouncement", id.String(), func(ctx context.Context) (result[*announcementdb.Announcement], error) {
		in.Normalize()
		now := s.clock.Now().UTC()
		if f := in.Validate(now); f != nil {
			return failure[*announcementdb.Announcement](f)
		}
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*announcementdb.Announcement], error) {
			a, err := s.repo.Get(ctx, db, id)
			if err != nil {
				if errors.Is(err, announcementdb.ErrNotFound) {
					return failure[*announcementdb.Announcement](ErrNotFound)
				}
				return result[*announcementdb.Announcement]{}, err
			}
			// Both the current and the requested scope must be the caller's.
			if !announcementdomain.CanPublish(sess, a.TeamID) || !announcementdomain.CanPublish(sess, in.TeamID) {
				return failure[*announcementdb.Announcement](ErrCannotPost)
			}
			f, err := s.checkTeam(ctx, db, in.TeamID)
			if err != nil {
				return result[*announcementdb.Announcement]{}, err
			}
			if f != nil {
				return failure[*announcementdb.Announcement](f)
			}
			apply(a, in, now)
			if err := s.repo.Update(ctx, db, a); err != nil {
				return result[*announcementdb.Announcement]{}, err
			}
			return success(a)
		})
	}))
}

func (s *AnnouncementService) Delete(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "DeleteAnnouncement", id.String(), func(ctx context.Context) (result[struct{}], error) {
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[struct{}], error) {
			a, err := s.repo.Get(ctx, db, id)
			if err != nil {
				if errors.Is(err, announcementdb.ErrNotFound) {
					return failure[struct{}](ErrNotFound)
				}
				return result[struct{}]{}, err
			}
			if !announcementdomain.CanPublish(sess, a.TeamID) {
				return failure[struct{}](ErrCannotPost)
			}
			if err := s.repo.Delete(ctx, db, id); err != nil {
				return result[struct{}]{}, err
			}
			return success(struct{}{})
		})
	}))
	return err
}

func (s *AnnouncementService) checkTeam(ctx context.Context, db bun.IDB, teamID *uuid.UUID) (*apperr.Failure, error) {
	if teamID == nil {
		return nil, nil
	}
	if _, err := s.teams.GetTeam(ctx, db, *teamID); err != nil {
		if errors.Is(err, leaguedb.ErrNotFound) {
			return ErrTeamNotFound, nil
		}
		return nil, fmt.Errorf("failed to load team: %w", err)
	}
	return nil, nil
}

func apply(a *announcementdb.Announcement, in announcementdomain.Input, now time.Time) {
	a.Title = in.Title
	a.Body = in.Body
	a.Priority = in.Priority
	a.Pinned = in.Pinned
	a.ExpiresAt = in.ExpiresAt
	a.TeamID = in.TeamID
	a.UpdatedAt = now
}
