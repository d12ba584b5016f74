package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	gamedomain "github.com/Black-And-White-Club/dugout/app/modules/game/domain"
	gamedb "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories"
	leaguedb "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories"
	userdb "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/Black-And-White-Club/dugout/internal/fakeleague"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/urfave/cli/v2"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "seed",
		Usage: "fill the database with a fake season",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Value: "config.yaml", EnvVars: []string{"CONFIG_PATH"}},
			&cli.IntFlag{Name: "teams", Value: 6, Usage: "number of teams"},
			&cli.IntFlag{Name: "roster", Value: 14, Usage: "players per team"},
			&cli.IntFlag{Name: "year", Value: time.Now().Year(), Usage: "season year"},
			&cli.Int64Flag{Name: "seed", Usage: "generator seed; random when zero"},
			&cli.StringFlag{Name: "admin-email", Value: "admin@example.com"},
			&cli.StringFlag{Name: "password", Value: "changeme123", Usage: "password for every seeded account"},
		},
		Action: seed,
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func seed(c *cli.Context) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	gen := fakeleague.New()
	if s := c.Int64("seed"); s != 0 {
		gen = fakeleague.New(s)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(c.String("password")), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	stores := fakeleague.Stores{
		Users:  userdb.NewRepository(db),
		League: leaguedb.NewRepository(db),
		Games:  gamedb.NewRepository(db),
	}
	opts := fakeleague.Options{
		Year:         c.Int("year"),
		Teams:        c.Int("teams"),
		Roster:       c.Int("roster"),
		AdminEmail:   c.String("admin-email"),
		PasswordHash: string(hash),
		Rules: gamedomain.Rules{
			RegulationInnings: cfg.League.RegulationInnings,
			MercyRuns:         cfg.League.MercyRuleRuns,
			MercyInning:       cfg.League.MercyRuleInning,
		},
	}

	var league *fakeleague.League
	err = db.RunInTx(c.Context, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		league, err = gen.Populate(ctx, tx, stores, opts)
		return err
	})
	if err != nil {
		return err
	}

	fmt.Printf("Seeded %q: %d teams, %d games (seed %d)\n", league.Season.Name, len(league.Teams), len(league.Games), gen.Seed())
	fmt.Printf("  commissioner: %s\n", league.Admin.Email)
	for _, team := range league.Teams {
		fmt.Printf("  %-4s manager: %s\n", team.Abbreviation, league.Managers[team.ID].Email)
	}
	return nil
}
