package availabilitymigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating availability table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS availability (
				game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
				player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
				team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				status TEXT NOT NULL CHECK (status IN ('available','unavailable','maybe')),
				note TEXT NOT NULL DEFAULT '' CHECK (char_length(note) <= 280),
				set_by_user_id UUID NOT NULL REFERENCES users(id),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (game_id, player_id)
			);
		`)
		if err != nil {
			return err
		}

		fmt.Println("Availability table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping availability table...")
		_, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS availability;`)
		return err
	})
}
