// Package natsconn opens the NATS connection used by the live feed.
package natsconn

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nkeys"
)

// Options builds connection options. A non-empty seed authenticates with
// the nkey derived from it.
func Options(name, seed string, logger *slog.Logger) ([]nats.Option, error) {
	opts := []nats.Option{
		nats.Name(name),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("NATS disconnected", attr.Error(err))
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("NATS reconnected", attr.String("url", nc.ConnectedUrl()))
		}),
	}
	if seed == "" {
		return opts, nil
	}

	kp, err := nkeys.FromSeed([]byte(seed))
	if err != nil {
		return nil, fmt.Errorf("failed to parse nkey seed: %w", err)
	}
	pub, err := kp.PublicKey()
	if err != nil {
		return nil, fmt.Errorf("failed to derive nkey public key: %w", err)
	}
	return append(opts, nats.Nkey(pub, kp.Sign)), nil
}

// Connect dials url.
func Connect(url, seed string, logger *slog.Logger) (*nats.Conn, error) {
	opts, err := Options("dugout-livefeed", seed, logger)
	if err != nil {
		return nil, err
	}
	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS at %s: %w", url, err)
	}
	return nc, nil
}
