package gamemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating games table...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS games (
				id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
				season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
				home_team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				away_team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				scheduled_at TIMESTAMPTZ NOT NULL,
				location TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'scheduled'
					CHECK (status IN ('scheduled','warmup','in_progress','final','postponed','cancelled','suspended')),
				home_score INTEGER NOT NULL DEFAULT 0 CHECK (home_score >= 0),
				away_score INTEGER NOT NULL DEFAULT 0 CHECK (away_score >= 0),
				current_inning INTEGER CHECK (current_inning > 0),
				current_half TEXT CHECK (current_half IN ('top','bottom')),
				outs INTEGER CHECK (outs BETWEEN 0 AND 3),
				home_inning_scores INTEGER[] NOT NULL DEFAULT '{}',
				away_inning_scores INTEGER[] NOT NULL DEFAULT '{}',
				notes TEXT NOT NULL DEFAULT '',
				regulation_innings INTEGER NOT NULL DEFAULT 7 CHECK (regulation_innings > 0),
				version BIGINT NOT NULL DEFAULT 1,
				created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				started_at TIMESTAMPTZ,
				ended_at TIMESTAMPTZ,
				CHECK (home_team_id <> away_team_id)
			);
			CREATE INDEX IF NOT EXISTS idx_games_season_scheduled ON games (season_id, scheduled_at);
			CREATE INDEX IF NOT EXISTS idx_games_home_team ON games (home_team_id);
			CREATE INDEX IF NOT EXISTS idx_games_away_team ON games (away_team_id);
			CREATE INDEX IF NOT EXISTS idx_games_live ON games (status) WHERE status IN ('warmup','in_progress');
		`)
		if err != nil {
			return fmt.Errorf("failed to create games table: %w", err)
		}

		fmt.Println("Games table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping games table...")

		if _, err := db.ExecContext(ctx, `DROP TABLE IF EXISTS games CASCADE`); err != nil {
			return fmt.Errorf("failed to drop games table: %w", err)
		}

		fmt.Println("Games table dropped successfully!")
		return nil
	})
}
