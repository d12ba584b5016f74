package statsmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating batting_lines and pitching_lines tables...")

		_, err := db.ExecContext(ctx, `
			CREATE TABLE IF NOT EXISTS batting_lines (
				game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
				player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
				team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
				at_bats INTEGER NOT NULL DEFAULT 0 CHECK (at_bats >= 0),
				runs INTEGER NOT NULL DEFAULT 0 CHECK (runs >= 0),
				hits INTEGER NOT NULL DEFAULT 0 CHECK (hits >= 0 AND hits <= at_bats),
				doubles INTEGER NOT NULL DEFAULT 0 CHECK (doubles >= 0),
				triples INTEGER NOT NULL DEFAULT 0 CHECK (triples >= 0),
				home_runs INTEGER NOT NULL DEFAULT 0 CHECK (home_runs >= 0),
				rbi INTEGER NOT NULL DEFAULT 0 CHECK (rbi >= 0),
				walks INTEGER NOT NULL DEFAULT 0 CHECK (walks >= 0),
				strikeouts INTEGER NOT NULL DEFAULT 0 CHECK (strikeouts >= 0),
				stolen_bases INTEGER NOT NULL DEFAULT 0 CHECK (stolen_bases >= 0),
				hit_by_pitch INTEGER NOT NULL DEFAULT 0 CHECK (hit_by_pitch >= 0),
				sac_flies INTEGER NOT NULL DEFAULT 0 CHECK (sac_flies >= 0),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (game_id, player_id),
				CHECK (doubles + triples + home_runs <= hits)
			);
			CREATE INDEX IF NOT EXISTS idx_batting_lines_season ON batting_lines (season_id, team_id);

			CREATE TABLE IF NOT EXISTS pitching_lines (
				game_id UUID NOT NULL REFERENCES games(id) ON DELETE CASCADE,
				player_id UUID NOT NULL REFERENCES players(id) ON DELETE CASCADE,
				team_id UUID NOT NULL REFERENCES teams(id) ON DELETE CASCADE,
				season_id UUID NOT NULL REFERENCES seasons(id) ON DELETE CASCADE,
				outs INTEGER NOT NULL DEFAULT 0 CHECK (outs >= 0),
				hits INTEGER NOT NULL DEFAULT 0 CHECK (hits >= 0),
				runs INTEGER NOT NULL DEFAULT 0 CHECK (runs >= 0),
				earned_runs INTEGER NOT NULL DEFAULT 0 CHECK (earned_runs >= 0 AND earned_runs <= runs),
				walks INTEGER NOT NULL DEFAULT 0 CHECK (walks >= 0),
				strikeouts INTEGER NOT NULL DEFAULT 0 CHECK (strikeouts >= 0),
				home_runs INTEGER NOT NULL DEFAULT 0 CHECK (home_runs >= 0),
				pitches INTEGER NOT NULL DEFAULT 0 CHECK (pitches >= 0),
				decision TEXT CHECK (decision IN ('W','L','S')),
				updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
				PRIMARY KEY (game_id, player_id)
			);
			CREATE INDEX IF NOT EXISTS idx_pitching_lines_season ON pitching_lines (season_id, team_id);
		`)
		if err != nil {
			return err
		}

		fmt.Println("Stat line tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping stat line tables...")
		_, err := db.ExecContext(ctx, `
			DROP TABLE IF EXISTS pitching_lines;
			DROP TABLE IF EXISTS batting_lines;
		`)
		return err
	})
}
