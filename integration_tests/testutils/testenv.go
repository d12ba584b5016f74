// Package testutils starts the containers shared by the integration suites
// and builds applications against them.
package testutils

import (
	"context"
	"fmt"
	"io"
	"log"
	"log/slog"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/Black-And-White-Club/dugout/app"
	"github.com/Black-And-White-Club/dugout/config"
	"github.com/Black-And-White-Club/dugout/db/bundb"
	"github.com/Black-And-White-Club/dugout/integration_tests/containers"
	"github.com/jonboulle/clockwork"
	tcnats "github.com/testcontainers/testcontainers-go/modules/nats"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/uptrace/bun"
)

// TestEnvironment holds the containers and a migrated database.
type TestEnvironment struct {
	Ctx           context.Context
	PgContainer   *postgres.PostgresContainer
	NatsContainer *tcnats.NATSContainer
	DSN           string
	NatsURL       string
	DB            *bun.DB
}

// NewTestEnvironment starts Postgres and NATS and applies every migration.
func NewTestEnvironment(ctx context.Context) (*TestEnvironment, error) {
	env := &TestEnvironment{Ctx: ctx}

	pg, dsn, err := containers.SetupPostgresContainer(ctx)
	if err != nil {
		return nil, err
	}
	env.PgContainer, env.DSN = pg, dsn

	nc, natsURL, err := containers.SetupNatsContainer(ctx)
	if err != nil {
		env.Terminate()
		return nil, err
	}
	env.NatsContainer, env.NatsURL = nc, natsURL

	db, err := bundb.Open(ctx, dsn)
	if err != nil {
		env.Terminate()
		return nil, err
	}
	env.DB = db

	if err := bundb.Migrate(ctx, db, dsn, Logger()); err != nil {
		env.Terminate()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return env, nil
}

// Terminate closes the connection and stops the containers.
func (env *TestEnvironment) Terminate() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if env.DB != nil {
		_ = env.DB.Close()
	}
	if env.NatsContainer != nil {
		if err := env.NatsContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate NATS container: %v", err)
		}
	}
	if env.PgContainer != nil {
		if err := env.PgContainer.Terminate(ctx); err != nil {
			log.Printf("Failed to terminate Postgres container: %v", err)
		}
	}
}

// Config returns settings pointing at the containers. The reminder queue is
// off unless a test turns it on.
func (env *TestEnvironment) Config() *config.Config {
	return &config.Config{
		Postgres: config.PostgresConfig{DSN: env.DSN},
		HTTP: config.HTTPConfig{
			Address:        "127.0.0.1:0",
			RateLimitRPS:   1000,
			RateLimitBurst: 1000,
		},
		JWT: config.JWTConfig{
			Secret:     strings.Repeat("k", 32),
			Issuer:     "dugout-test",
			DefaultTTL: time.Hour,
		},
		NATS:          config.NATSConfig{URL: env.NatsURL},
		Observability: config.ObservabilityConfig{Environment: "development"},
		League: config.LeagueConfig{
			RegulationInnings: 7,
			MercyRuleRuns:     10,
			MercyRuleInning:   5,
			Timezone:          "America/Chicago",
		},
	}
}

// StartApp builds an application on its own connection and runs it until
// the test ends.
func (env *TestEnvironment) StartApp(t *testing.T, cfg *config.Config) *app.App {
	t.Helper()

	db, err := bundb.Open(env.Ctx, env.DSN)
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	a, err := app.New(env.Ctx, cfg, Logger(), db, clockwork.NewRealClock())
	if err != nil {
		_ = db.Close()
		t.Fatalf("build app: %v", err)
	}

	ctx, cancel := context.WithCancel(env.Ctx)
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	select {
	case <-a.Bus.Running():
	case err := <-done:
		cancel()
		t.Fatalf("app stopped during startup: %v", err)
	case <-time.After(10 * time.Second):
		cancel()
		t.Fatal("event bus did not start")
	}

	t.Cleanup(func() {
		cancel()
		select {
		case err := <-done:
			if err != nil {
				t.Logf("app shutdown: %v", err)
			}
		case <-time.After(20 * time.Second):
			t.Log("app did not shut down in time")
		}
	})
	return a
}

// Logger discards output unless DUGOUT_TEST_LOGS is set.
func Logger() *slog.Logger {
	if os.Getenv("DUGOUT_TEST_LOGS") != "" {
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
