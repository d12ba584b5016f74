package main

import (
	"fmt"
	"log"
	"os"
	"slices"
	"strings"

	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/joho/godotenv"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
	"github.com/urfave/cli/v2"
)

type moduleMigrator struct {
	name     string
	migrator *migrate.Migrator
}

func main() {
	_ = godotenv.Load()

	cliApp := &cli.App{
		Name:  "bun",
		Usage: "dugout database migrations",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Value:   "config.yaml",
				Usage:   "path to the configuration file",
				EnvVars: []string{"CONFIG_PATH"},
			},
		},
		Commands: []*cli.Command{
			newMultiModuleDBCommand(),
		},
	}

	if err := cliApp.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// withMigrators opens the database and hands fn one migrator per module, in
// the order their tables depend on each other.
func withMigrators(c *cli.Context, fn func(cfg *config.Config, db *bun.DB, migrators []moduleMigrator) error) error {
	cfg, err := config.LoadConfig(c.String("config"))
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := bundb.Open(c.Context, cfg.Postgres.DSN)
	if err != nil {
		return err
	}
	defer db.Close()

	var migrators []moduleMigrator
	for _, mod := range bundb.Modules() {
		migrators = append(migrators, moduleMigrator{mod.Name, migrate.NewMigrator(db, mod.Migrations)})
	}
	return fn(cfg, db, migrators)
}

func findMigrator(migrators []moduleMigrator, name string) (*migrate.Migrator, error) {
	for _, m := range migrators {
		if m.name == name {
			return m.migrator, nil
		}
	}
	return nil, fmt.Errorf("invalid module name: %s", name)
}

func newMultiModuleDBCommand() *cli.Command {
	return &cli.Command{
		Name:  "migrate",
		Usage: "database migrations",
		Subcommands: []*cli.Command{
			{
				Name:  "init",
				Usage: "create migration tables",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, _ *bun.DB, migrators []moduleMigrator) error {
						// All modules share one bun_migrations table.
						fmt.Println("Initializing migration tables")
						return migrators[0].migrator.Init(c.Context)
					})
				},
			},
			{
				Name:  "migrate",
				Usage: "migrate database",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(cfg *config.Config, _ *bun.DB, migrators []moduleMigrator) error {
						fmt.Println("Running River migrations")
						if err := bundb.MigrateRiver(c.Context, cfg.Postgres.DSN); err != nil {
							return err
						}
						for _, m := range migrators {
							fmt.Printf("Running migrations for module: %s\n", m.name)
							group, err := m.migrator.Migrate(c.Context)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No new migrations to run for module: %s\n", m.name)
							} else {
								fmt.Printf("Migrated module: %s to %s\n", m.name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:  "rollback",
				Usage: "rollback the last migration group",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, _ *bun.DB, migrators []moduleMigrator) error {
						// Dependents go first.
						for _, m := range slices.Backward(migrators) {
							fmt.Printf("Rolling back migrations for module: %s\n", m.name)
							group, err := m.migrator.Rollback(c.Context)
							if err != nil {
								return fmt.Errorf("module %s: %w", m.name, err)
							}
							if group.IsZero() {
								fmt.Printf("No groups to roll back for module: %s\n", m.name)
							} else {
								fmt.Printf("Rolled back module: %s to %s\n", m.name, group)
							}
						}
						return nil
					})
				},
			},
			{
				Name:      "create_go",
				Usage:     "create Go migration",
				ArgsUsage: "<module> <name...>",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, _ *bun.DB, migrators []moduleMigrator) error {
						moduleName := c.Args().First()
						migrator, err := findMigrator(migrators, moduleName)
						if err != nil {
							return err
						}
						mf, err := migrator.CreateGoMigration(c.Context, strings.Join(c.Args().Tail(), "_"))
						if err != nil {
							return err
						}
						fmt.Printf("Created migration for module %s: %s (%s)\n", moduleName, mf.Name, mf.Path)
						return nil
					})
				},
			},
			{
				Name:  "status",
				Usage: "print migrations status",
				Action: func(c *cli.Context) error {
					return withMigrators(c, func(_ *config.Config, _ *bun.DB, migrators []moduleMigrator) error {
						for _, m := range migrators {
							ms, err := m.migrator.MigrationsWithStatus(c.Context)
							if err != nil {
								return err
							}
							fmt.Printf("Migrations for module: %s\n", m.name)
							fmt.Printf("  Applied: %s\n", ms.Applied())
							fmt.Printf("  Unapplied: %s\n", ms.Unapplied())
						}
						return nil
					})
				},
			},
		},
	}
}
