package livefeed

import (
	"context"
	"fmt"

	livefeedservice "github.com/Black-And-White-Club/dugout/app/modules/livefeed/application"
	"github.com/Black-And-White-Club/dugout/app/modules/livefeed/infrastructure/natsconn"
	"github.com/Black-And-White-Club/dugout/app/shared/metrics"
	"github.com/Black-And-White-Club/dugout/app/shared/platform"
	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/nats-io/nats.go"
)

// Module relays game state to NATS. It is inert when no NATS URL is set.
type Module struct {
	deps platform.Deps
	nc   *nats.Conn
}

// NewModule connects to NATS and registers the relay on the bus. It must
// be called before the bus starts running.
func NewModule(ctx context.Context, deps platform.Deps) (*Module, error) {
	m := &Module{deps: deps}
	cfg := deps.Config.NATS
	if cfg.URL == "" {
		deps.Logger.InfoContext(ctx, "Live feed disabled: no NATS URL configured")
		return m, nil
	}

	deps.Logger.InfoContext(ctx, "Initializing live feed module", attr.String("url", cfg.URL))
	nc, err := natsconn.Connect(cfg.URL, cfg.NKeySeed, deps.Logger)
	if err != nil {
		return nil, err
	}
	m.nc = nc

	var relayed metrics.RelayMetrics
	if deps.Metrics != nil {
		relayed = deps.Metrics
	}
	livefeedservice.NewRelay(nc, deps.Logger, deps.Tracer, relayed).Register(deps.Bus)
	return m, nil
}

// Enabled reports whether frames are being relayed.
func (m *Module) Enabled() bool { return m.nc != nil }

// Close flushes pending frames and closes the connection.
func (m *Module) Close() error {
	if m.nc == nil {
		return nil
	}
	m.deps.Logger.Info("Stopping live feed module")
	if err := m.nc.Drain(); err != nil {
		return fmt.Errorf("failed to drain NATS connection: %w", err)
	}
	return nil
}
