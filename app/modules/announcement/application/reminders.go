package announcementservice

import (
	"context"
	"fmt"

	announcementdomain "github.com/Black-And-White-Club/dugout/app/modules/announcement/domain"
	announcementdb "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories"
	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	"github.com/Black-And-White-Club/dugout/app/shared/operation"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

const reminderTimeLayout = "Mon Jan 2, 3:04 PM MST"

// NotifyGameReminder posts one high-priority notice per team. Reminder jobs
// can be retried, so a notice already posted for a game and team is kept.
func (s *AnnouncementService) NotifyGameReminder(ctx context.Context, game gamedomain.Game) error {
	_, err := operation.Unwrap(operation.WithTelemetry(&s.run, ctx, "NotifyGameReminder", game.ID.String(), func(ctx context.Context) (result[int], error) {
		return operation.RunInTx(&s.run, ctx, func(ctx context.Context, db bun.IDB) (result[int], error) {
			home, err := s.teams.GetTeam(ctx, db, game.HomeTeamID)
			if err != nil {
				return result[int]{}, fmt.Errorf("failed to load home team: %w", err)
			}
			away, err := s.teams.GetTeam(ctx, db, game.AwayTeamID)
			if err != nil {
				return result[int]{}, fmt.Errorf("failed to load away team: %w", err)
			}

			now := s.clock.Now().UTC()
			expires := game.ScheduledAt.Add(s.config.ReminderTTL)
			title := fmt.Sprintf("Game reminder: %s @ %s", away.Abbreviation, home.Abbreviation)
			body := fmt.Sprintf("%s at %s, %s", away.Name, home.Name, game.ScheduledAt.In(s.config.Location).Format(reminderTimeLayout))
			if game.Location != "" {
				body += " at " + game.Location
			}
			body += "."

			posted := 0
			for _, teamID := range []uuid.UUID{game.HomeTeamID, game.AwayTeamID} {
				a := &announcementdb.Announcement{
					TeamID:    &teamID,
					GameID:    &game.ID,
					Title:     title,
					Body:      body,
					Priority:  announcementdomain.PriorityHigh,
					ExpiresAt: &expires,
					CreatedAt: now,
					UpdatedAt: now,
				}
				created, err := s.repo.CreateForGame(ctx, db, a)
				if err != nil {
					return result[int]{}, err
				}
				if created {
					posted++
				}
			}
			s.run.Logger.InfoContext(ctx, "Game reminder posted",
				attr.String("game_id", game.ID.String()),
				attr.Int("announcements", posted),
			)
			return success(posted)
		})
	}))
	return err
}
