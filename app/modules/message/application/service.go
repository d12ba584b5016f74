package messageservice

import (
	"context"
	"errors"
	"fmt"

	authdomain "github.com/Black-And-White-Club/dugout/app/modules/auth/domain"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	messagedomain "github.com/Black-And-White-Club/dugout/app/modules/message/domain"
	messagedb "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/app/shared/apperr"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/utils/results"
	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/uptrace/bun"
)

const (
	DefaultPageSize = 50
	MaxPageSize     = 100
)

// MessageService implements the Service interface.
type MessageService struct {
	run   operation.Runner
	repo  messagedb.Repository
	teams TeamReader
	clock clockwork.Clock
}

func NewService(run operation.Runner, repo messagedb.Repository, teams TeamReader, clock clockwork.Clock) *MessageService {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &MessageService{run: run, repo: repo, teams: teams, clock: clock}
}

type result[S any] = results.OperationResult[S, *apperr.Failure]

func success[S any](v S) (result[S], error) {
	return results.SuccessResult[S, *apperr.Failure](v), nil
}

func failure[S any](f *apperr.Failure) (result[S], error) {
	return results.FailureResult[S, *apperr.Failure](f), nil
}

func (s *MessageService) List(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, q ListQuery) (*Page, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "ListMessages", teamID.String(), func(ctx context.Context) (result[*Page], error) {
		if !messagedomain.CanRead(sess, teamID) {
			return failure[*Page](ErrNotTeamMember)
		}
		if q.Before != nil && q.After != nil {
			return failure[*Page](ErrTwoCursors)
		}
		if q.Channel == "" {
			q.Channel = messagedomain.ChannelGeneral
		}
		limit := q.Limit
		if limit <= 0 {
			limit = DefaultPageSize
		}
		limit = min(limit, MaxPageSize)

		rows, err := s.repo.List(ctx, nil, messagedb.ListFilter{
			TeamID:  teamID,
			Channel: q.Channel,
			Before:  q.Before,
			After:   q.After,
			Limit:   limit + 1,
		})
		if err != nil {
			if errors.Is(err, messagedb.ErrCursorNotFound) {
				return failure[*Page](ErrCursorNotFound)
			}
			return result[*Page]{}, err
		}

		page := &Page{HasMore: len(rows) > limit}
		if page.HasMore {
			rows = rows[:limit]
		}
		page.Messages = make([]messagedb.Message, len(rows))
		for i := range rows {
			page.Messages[i] = rows[i].Redacted()
		}
		return success(page)
	}))
}

func (s *MessageService) Pinned(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID) ([]messagedb.Message, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "PinnedMessages", teamID.String(), func(ctx context.Context) (result[[]messagedb.Message], error) {
		if !messagedomain.CanRead(sess, teamID) {
			return failure[[]messagedb.Message](ErrNotTeamMember)
		}
		rows, err := s.repo.ListPinned(ctx, nil, teamID)
		if err != nil {
			return result[[]messagedb.Message]{}, err
		}
		return success(rows)
	}))
}

func (s *MessageService) Post(ctx context.Context, sess *authdomain.Session, teamID uuid.UUID, in PostInput) (*messagedb.Message, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "PostMessage", teamID.String(), func(ctx context.Context) (result[*messagedb.Message], error) {
		ch := in.Channel
		if ch == "" {
			ch = messagedomain.ChannelGeneral
		}
		if !ch.IsValid() {
			_, f := messagedomain.ParseChannel(string(ch))
			return failure[*messagedb.Message](f)
		}
		if !messagedomain.CanRead(sess, teamID) {
			return failure[*messagedb.Message](ErrNotTeamMember)
		}
		if !messagedomain.CanPost(sess, teamID, ch) {
			return failure[*messagedb.Message](ErrImportantOnly)
		}
		content, f := messagedomain.NormalizeContent(in.Content)
		if f != nil {
			return failure[*messagedb.Message](f)
		}

		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*messagedb.Message], error) {
			if _, err := s.teams.GetTeam(ctx, db, teamID); err != nil {
				if errors.Is(err, leaguedb.ErrNotFound) {
					return failure[*messagedb.Message](ErrTeamNotFound)
				}
				return result[*messagedb.Message]{}, fmt.Errorf("failed to load team: %w", err)
			}
			if in.ReplyToID != nil {
				parent, err := s.repo.Get(ctx, db, *in.ReplyToID)
				if err != nil && !errors.Is(err, messagedb.ErrNotFound) {
					return result[*messagedb.Message]{}, err
				}
				if parent == nil || parent.TeamID != teamID {
					return failure[*messagedb.Message](ErrBadReply)
				}
			}

			m := &messagedb.Message{
				TeamID:    teamID,
				AuthorID:  sess.UserID,
				Channel:   ch,
				Content:   content,
				ReplyToID: in.ReplyToID,
				CreatedAt: s.clock.Now().UTC(),
			}
			if err := s.repo.Create(ctx, db, m); err != nil {
				return result[*messagedb.Message]{}, err
			}
			return success(m)
		})
	}))
}

func (s *MessageService) Edit(ctx context.Context, sess *authdomain.Session, id uuid.UUID, content string) (*messagedb.Message, error) {
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "EditMessage", id.String(), func(ctx context.Context) (result[*messagedb.Message], error) {
		text, f := messagedomain.NormalizeContent(content)
		if f != nil {
			return failure[*messagedb.Message](f)
		}
		return s.mutate(ctx, id, func(m *messagedb.Message) (*apperr.Failure, []string) {
			if !messagedomain.CanEdit(sess, m.AuthorID) {
				return ErrNotAuthor, nil
			}
			if m.Deleted {
				return ErrDeleted, nil
			}
			now := s.clock.Now().UTC()
			m.Content, m.Edited, m.EditedAt = text, true, &now
			return nil, []string{"content", "edited", "edited_at"}
		})
	}))
}

// Delete soft-deletes a message and clears any pin. Deleting twice is a no-op.
func (s *MessageService) Delete(ctx context.Context, sess *authdomain.Session, id uuid.UUID) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "DeleteMessage", id.String(), func(ctx context.Context) (result[*messagedb.Message], error) {
		return s.mutate(ctx, id, func(m *messagedb.Message) (*apperr.Failure, []string) {
			if !messagedomain.CanDelete(sess, m.TeamID, m.AuthorID) {
				return ErrCannotDelete, nil
			}
			if m.Deleted {
				return nil, nil
			}
			now := s.clock.Now().UTC()
			m.Deleted, m.DeletedAt = true, &now
			m.Pinned, m.PinnedAt, m.PinnedBy = false, nil, nil
			return nil, []string{"deleted", "deleted_at", "pinned", "pinned_at", "pinned_by"}
		})
	}))
	return err
}

func (s *MessageService) SetPinned(ctx context.Context, sess *authdomain.Session, id uuid.UUID, pinned bool) (*messagedb.Message, error) {
	op := "PinMessage"
	if !pinned {
		op = "UnpinMessage"
	}
	return operation.Unwrap(operation.WithTelemetry(&s.run, ctx, op, id.String(), func(ctx context.Context) (result[*messagedb.Message], error) {
		return s.mutate(ctx, id, func(m *messagedb.Message) (*apperr.Failure, []string) {
			if !messagedomain.CanPin(sess, m.TeamID) {
				return ErrCannotPin, nil
			}
			if m.Deleted {
				return ErrDeleted, nil
			}
			if m.Pinned == pinned {
				return nil, nil
			}
			m.Pinned = pinned
			m.PinnedAt, m.PinnedBy = nil, nil
			if pinned {
				now := s.clock.Now().UTC()
				m.PinnedAt, m.PinnedBy = &now, &sess.UserID
			}
			return nil, []string{"pinned", "pinned_at", "pinned_by"}
		})
	}))
}

// mutate loads a message, lets change edit it in place and writes the
// returned columns. No columns means nothing to write.
func (s *MessageService) mutate(ctx context.Context, id uuid.UUID, change func(m *messagedb.Message) (*apperr.Failure, []string)) (result[*messagedb.Message], error) {
	return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[*messagedb.Message], error) {
		m, err := s.repo.Get(ctx, db, id)
		if err != nil {
			if errors.Is(err, messagedb.ErrNotFound) {
				return failure[*messagedb.Message](ErrMessageNotFound)
			}
			return result[*messagedb.Message]{}, err
		}
		f, columns := change(m)
		if f != nil {
			return failure[*messagedb.Message](f)
		}
		if len(columns) > 0 {
			if err := s.repo.Update(ctx, db, m, columns...); err != nil {
				return result[*messagedb.Message]{}, err
			}
		}
		redacted := m.Redacted()
		return success(&redacted)
	})
}
