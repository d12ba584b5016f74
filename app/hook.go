package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
)

// Close drains the HTTP servers, stops the background workers and releases
// the bus, NATS and database connections. It is safe to call once.
func (a *App) Close() error {
	var errs []error

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	for _, srv := range a.servers {
		if err := srv.Shutdown(ctx); err != nil {
			errs = append(errs, fmt.Errorf("http shutdown %s: %w", srv.Addr, err))
		}
	}

	if a.Modules.Game != nil {
		if err := a.Modules.Game.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	a.wg.Wait()

	if a.Modules.LiveFeed != nil {
		if err := a.Modules.LiveFeed.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := a.Bus.Close(); err != nil {
		errs = append(errs, fmt.Errorf("event bus close: %w", err))
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("database close: %w", err))
		}
	}

	err := errors.Join(errs...)
	if err != nil {
		a.Logger.Error("Shutdown finished with errors", attr.Error(err))
	} else {
		a.Logger.Info("Shutdown complete")
	}
	return err
}
