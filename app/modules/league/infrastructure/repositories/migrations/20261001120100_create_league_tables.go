package leaguemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating seasons, teams and players tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS seasons (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					name TEXT NOT NULL,
					year INTEGER NOT NULL,
					start_date DATE NOT NULL,
					end_date DATE NOT NULL,
					active BOOLEAN NOT NULL DEFAULT FALSE,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					CHECK (end_date >= start_date)
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_seasons_single_active ON seasons (active) WHERE active;
			`); err != nil {
				return fmt.Errorf("failed to create seasons table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS teams (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
					name TEXT NOT NULL,
					abbreviation VARCHAR(4) NOT NULL,
					color VARCHAR(7),
					manager_user_id UUID REFERENCES users(id) ON DELETE SET NULL,
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					UNIQUE (season_id, abbreviation)
				);
				CREATE INDEX IF NOT EXISTS idx_teams_season_id ON teams (season_id);
			`); err != nil {
				return fmt.Errorf("failed to create teams table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				CREATE TABLE IF NOT EXISTS players (
					id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
					team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
					season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
					user_id UUID REFERENCES users(id) ON DELETE SET NULL,
					first_name TEXT NOT NULL,
					last_name TEXT NOT NULL,
					jersey_number INTEGER CHECK (jersey_number BETWEEN 0 AND 99),
					position VARCHAR(4) NOT NULL DEFAULT 'UTIL'
						CHECK (position IN ('P','C','1B','2B','3B','SS','LF','CF','RF','DH','UTIL')),
					bats CHAR(1) NOT NULL DEFAULT 'R' CHECK (bats IN ('L','R','S')),
					throws CHAR(1) NOT NULL DEFAULT 'R' CHECK (throws IN ('L','R')),
					status TEXT NOT NULL DEFAULT 'active' CHECK (status IN ('active','inactive','injured')),
					created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
					updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
				);
				CREATE UNIQUE INDEX IF NOT EXISTS idx_players_team_jersey
					ON players (team_id, season_id, jersey_number) WHERE jersey_number IS NOT NULL;
				CREATE INDEX IF NOT EXISTS idx_players_user_id ON players (user_id);
			`); err != nil {
				return fmt.Errorf("failed to create players table: %w", err)
			}

			if _, err := tx.ExecContext(ctx, `
				ALTER TABLE users DROP CONSTRAINT IF EXISTS fk_users_team;
				ALTER TABLE users ADD CONSTRAINT fk_users_team
					FOREIGN KEY (team_id) REFERENCES teams(id) ON DELETE SET NULL;
			`); err != nil {
				return fmt.Errorf("failed to add users team FK: %w", err)
			}
			return nil
		})
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping players, teams and seasons tables...")

		return db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			if _, err := tx.ExecContext(ctx, `ALTER TABLE users DROP CONSTRAINT IF EXISTS fk_users_team;`); err != nil {
				return fmt.Errorf("failed to drop users team FK: %w", err)
			}
			if _, err := tx.ExecContext(ctx, `
				DROP TABLE IF EXISTS players;
				DROP TABLE IF EXISTS teams;
				DROP TABLE IF EXISTS seasons;
			`); err != nil {
				return fmt.Errorf("failed to drop league tables: %w", err)
			}
			return nil
		})
	})
}
