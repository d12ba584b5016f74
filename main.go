package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Black-And-White-Club/dugout/app"
	"github.com/Black-And-White-Club/dugout/app/shared/logging"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/urfave/cli/v2"
)

func main() {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "dugout",
		Usage: "amateur baseball league backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "serve",
				Usage: "run the API server, event bus and reminder queue",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "migrate",
						Usage:   "apply pending migrations before serving",
						EnvVars: []string{"MIGRATE_ON_START"},
					},
				},
				Action: serve,
			},
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func serve(c *cli.Context) error {
	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger := logging.New(cfg.Observability, os.Stdout)

	db, err := bundb.Open(ctx, cfg.Postgres.DSN)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if c.Bool("migrate") {
		if err := bundb.Migrate(ctx, db, cfg.Postgres.DSN, logger); err != nil {
			_ = db.Close()
			return err
		}
	}

	application, err := app.New(ctx, cfg, logger, db, clockwork.NewRealClock())
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to initialize app: %w", err)
	}

	logger.InfoContext(ctx, "Starting dugout")
	return application.Run(ctx)
}
