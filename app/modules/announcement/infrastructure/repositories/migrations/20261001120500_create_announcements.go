package announcementmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating announcements table...")

		if _, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS announcements (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				team_id UUID REFERENCES teams(id) ON DELETE CASCADE,
				author_id UUID REFERENCES users(id) ON DELETE SET NULL,
				game_id UUID REFERENCES games(id) ON DELETE CASCADE,
				title VARCHAR(200) NOT NULL,
				body TEXT NOT NULL CHECK (char_length(body) <= 5000),
				priority TEXT NOT NULL DEFAULT 'normal'
					CHECK (priority IN ('low','normal','high','urgent')),
				pinned BOOLEAN NOT NULL DEFAULT FALSE,
				expires_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_announcements_team ON announcements (team_id);
			CREATE INDEX IF NOT EXISTS idx_announcements_order ON announcements (pinned DESC, created_at DESC);
			CREATE UNIQUE INDEX IF NOT EXISTS idx_announcements_game_team
				ON announcements (game_id, team_id) WHERE game_id IS NOT NULL;
		`); err != nil {
			return fmt.Errorf("failed to create announcements table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping announcements table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS announcements;`); err != nil {
			return fmt.Errorf("failed to drop announcements table: %w", err)
		}
		return nil
	})
}
