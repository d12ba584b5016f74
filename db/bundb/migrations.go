package bundb

import (
	"context"
	"fmt"
	"log/slog"

	announcementmigrations "github.com/Black-And-White-Club/dugout/app/modules/announcement/infrastructure/repositories/migrations"
	availabilitymigrations "github.com/Black-And-White-Club/dugout/app/modules/availability/infrastructure/repositories/migrations"
	gamemigrations "github.com/Black-And-White-Club/dugout/app/modules/game/infrastructure/repositories/migrations"
	leaguemigrations "github.com/Black-And-White-Club/dugout/app/modules/league/infrastructure/repositories/migrations"
	messagemigrations "github.com/Black-And-White-Club/dugout/app/modules/message/infrastructure/repositories/migrations"
	statsmigrations "github.com/Black-And-White-Club/dugout/app/modules/stats/infrastructure/repositories/migrations"
	usermigrations "github.com/Black-And-White-Club/dugout/app/modules/user/infrastructure/repositories/migrations"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/migrate"
)

// ModuleMigrations names one module's migration set.
type ModuleMigrations struct {
	Name       string
	Migrations *migrate.Migrations
}

// Modules lists every module's migrations in foreign key order: users and
// teams first, then games, then everything keyed by a game.
func Modules() []ModuleMigrations {
	return []ModuleMigrations{
		{"user", usermigrations.Migrations},
		{"league", leaguemigrations.Migrations},
		{"game", gamemigrations.Migrations},
		{"stats", statsmigrations.Migrations},
		{"message", messagemigrations.Migrations},
		{"announcement", announcementmigrations.Migrations},
		{"availability", availabilitymigrations.Migrations},
	}
}

// Migrate creates the bun migration tables, applies River's schema using
// dsn, then applies every module's pending migrations in order.
func Migrate(ctx context.Context, db *bun.DB, dsn string, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}

	mods := Modules()
	if err := migrate.NewMigrator(db, mods[0].Migrations).Init(ctx); err != nil {
		return fmt.Errorf("failed to initialize migration tables: %w", err)
	}

	if err := MigrateRiver(ctx, dsn); err != nil {
		return err
	}
	logger.InfoContext(ctx, "River migrations applied")

	for _, mod := range mods {
		group, err := migrate.NewMigrator(db, mod.Migrations).Migrate(ctx)
		if err != nil {
			return fmt.Errorf("failed to run %s migrations: %w", mod.Name, err)
		}
		if group.IsZero() {
			logger.InfoContext(ctx, "No migrations to run", attr.String("module", mod.Name))
			continue
		}
		logger.InfoContext(ctx, "Migrated module",
			attr.String("module", mod.Name),
			attr.Int64("group_id", group.ID),
		)
	}
	return nil
}

// MigrateRiver brings River's job tables up to date.
func MigrateRiver(ctx context.Context, dsn string) error {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return fmt.Errorf("failed to create pgx pool for River migrations: %w", err)
	}
	defer pool.Close()

	migrator, err := rivermigrate.New(riverpgxv5.New(pool), nil)
	if err != nil {
		return fmt.Errorf("failed to create River migrator: %w", err)
	}
	if _, err := migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{}); err != nil {
		return fmt.Errorf("failed to run River migrations: %w", err)
	}
	return nil
}
