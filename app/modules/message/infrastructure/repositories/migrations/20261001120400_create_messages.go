package messagemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating messages table...")

		if _, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS messages (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				author_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
				channel TEXT NOT NULL DEFAULT 'general'
					CHECK (channel IN ('important','general','substitutes')),
				content TEXT NOT NULL CHECK (char_length(content) <= 2000),
				reply_to_id UUID REFERENCES messages(id) ON DELETE SET NULL,
				pinned BOOLEAN NOT NULL DEFAULT FALSE,
				pinned_at TIMESTAMPTZ,
				pinned_by UUID REFERENCES users(id) ON DELETE SET NULL,
				edited BOOLEAN NOT NULL DEFAULT FALSE,
				edited_at TIMESTAMPTZ,
				deleted BOOLEAN NOT NULL DEFAULT FALSE,
				deleted_at TIMESTAMPTZ,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
			);
			CREATE INDEX IF NOT EXISTS idx_messages_team_channel_created
				ON messages (team_id, channel, created_at DESC, id DESC);
			CREATE INDEX IF NOT EXISTS idx_messages_team_pinned
				ON messages (team_id) WHERE pinned AND NOT deleted;
		`); err != nil {
			return fmt.Errorf("failed to create messages table: %w", err)
		}
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping messages table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS messages;`); err != nil {
			return fmt.Errorf("failed to drop messages table: %w", err)
		}
		return nil
	})
}
